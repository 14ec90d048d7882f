package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"slices"

	easysplit "github.com/cabinz/easy-split"
	"github.com/cabinz/easy-split/renderer"
	"github.com/google/subcommands"
)

// defaultExactLimit bounds the exhaustive search; past a dozen unsettled
// participants it stops being interactive.
const defaultExactLimit = 12

// settleCmd holds the flags for the 'settle' subcommand.
type settleCmd struct {
	src        sourceFlags
	exact      bool
	exactLimit int
	output     string
}

func (*settleCmd) Name() string     { return "settle" }
func (*settleCmd) Synopsis() string { return "compute the payment plan that settles the ledger" }
func (*settleCmd) Usage() string {
	return `splitbill settle -f <file> [-exact] [-o <plan.csv>]

  Reads the shared-expense ledger, nets out everyone's balance, and prints
  the short list of payments that settles the group. With -exact, searches
  for the fewest possible payments instead of the fast pairwise plan.
`
}

func (c *settleCmd) SetFlags(f *flag.FlagSet) {
	c.src.register(f)
	f.BoolVar(&c.exact, "exact", false, "Search exhaustively for the fewest possible payments.")
	f.IntVar(&c.exactLimit, "exact-limit", defaultExactLimit, "Most unsettled participants the -exact search accepts.")
	f.StringVar(&c.output, "o", "", "Write the payment plan to this CSV file.")
}

func (c *settleCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	src, err := c.src.load()
	if err != nil {
		return fail(err)
	}

	var reduced *easysplit.Graph
	if c.exact {
		reduced, err = easysplit.ReduceExact(src.graph, c.exactLimit)
		if errors.Is(err, easysplit.ErrTooManyParticipants) {
			fmt.Fprintf(os.Stderr, "%v; falling back to the pairwise plan\n", err)
			reduced, err = easysplit.Reduce(src.graph)
		}
	} else {
		reduced, err = easysplit.Reduce(src.graph)
	}
	if err != nil {
		return fail(err)
	}

	report := &renderer.PlanReport{
		Members:       src.members,
		Currency:      src.currency,
		Secondary:     src.secondary,
		SecondaryRate: src.secondaryRate,
		Payments:      slices.Collect(reduced.Edges()),
	}
	printMarkdown(renderer.Plan(report))

	if c.output != "" {
		table := reduced.Render("Creditor", "Debtor", "Amount")
		if err := table.ExportCSV(c.output); err != nil {
			return fail(err)
		}
		fmt.Fprintf(os.Stderr, "Plan written to %s\n", c.output)
	}
	return subcommands.ExitSuccess
}
