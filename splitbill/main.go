package main

import (
	"context"
	"flag"
	"maps"
	"os"
	"path"

	"github.com/cabinz/easy-split/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	completion()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// completion answers shell completion requests. In a normal run it
// returns immediately.
func completion() {
	source := map[string]complete.Predictor{
		"f":            predict.Files("*"),
		"col-creditor": predict.Something,
		"col-debtor":   predict.Something,
		"col-amount":   predict.Something,
		"col-currency": predict.Something,
		"separator":    predict.Something,
		"all-selector": predict.Something,
		"currency":     predict.Something,
		"rate":         predict.Something,
		"secondary":    predict.Something,
		"v":            predict.Nothing,
	}
	settle := map[string]complete.Predictor{
		"exact":       predict.Nothing,
		"exact-limit": predict.Something,
		"o":           predict.Files("*.csv"),
	}
	maps.Copy(settle, source)

	splitbill := &complete.Command{
		Sub: map[string]*complete.Command{
			"settle":   {Flags: settle},
			"balances": {Flags: source},
			"check":    {Flags: source},
			"topic":    {Args: predict.Set{"readme", "formats", "currencies", "settlement", "*"}},
		},
	}
	splitbill.Complete("splitbill")
}
