package cmd

import (
	"context"
	"flag"
	"strings"
	"testing"

	"github.com/google/subcommands"
)

func TestTopicDefaultsToIndex(t *testing.T) {
	cmd := &topicCmd{}
	f := flag.NewFlagSet("test", flag.ContinueOnError)
	cmd.SetFlags(f)
	f.Parse(nil)

	var status subcommands.ExitStatus
	out := captureStdout(t, func() {
		status = cmd.Execute(context.Background(), f)
	})

	if status != subcommands.ExitSuccess {
		t.Fatalf("Expected ExitSuccess, got %v", status)
	}
	for _, topic := range []string{"formats", "currencies", "settlement"} {
		if !strings.Contains(out, topic) {
			t.Errorf("index is missing topic %q:\n%s", topic, out)
		}
	}
}

func TestTopicUnknown(t *testing.T) {
	cmd := &topicCmd{}
	f := flag.NewFlagSet("test", flag.ContinueOnError)
	cmd.SetFlags(f)
	f.Parse([]string{"no-such-topic"})

	status := cmd.Execute(context.Background(), f)
	if status != subcommands.ExitFailure {
		t.Errorf("Expected ExitFailure, got %v", status)
	}
}
