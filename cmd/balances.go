package cmd

import (
	"context"
	"flag"

	"github.com/cabinz/easy-split/renderer"
	"github.com/google/subcommands"
)

// balancesCmd holds the flags for the 'balances' subcommand.
type balancesCmd struct {
	src sourceFlags
}

func (*balancesCmd) Name() string     { return "balances" }
func (*balancesCmd) Synopsis() string { return "display everyone's net balance" }
func (*balancesCmd) Usage() string {
	return `splitbill balances -f <file>

  Reads the shared-expense ledger and prints each member's net position:
  what the group owes them, or what they owe the group, without working
  out a payment plan.
`
}

func (c *balancesCmd) SetFlags(f *flag.FlagSet) {
	c.src.register(f)
}

func (c *balancesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	src, err := c.src.load()
	if err != nil {
		return fail(err)
	}

	report := &renderer.BalanceReport{
		Currency:      src.currency,
		Secondary:     src.secondary,
		SecondaryRate: src.secondaryRate,
	}
	for _, name := range src.graph.Participants() {
		net := src.graph.NetBalance(name)
		switch {
		case net.IsNegligible():
			report.Settled = append(report.Settled, name)
		case net.IsPositive():
			report.Creditors = append(report.Creditors, renderer.Entry{Name: name, Amount: net})
		default:
			report.Debtors = append(report.Debtors, renderer.Entry{Name: name, Amount: net.Neg()})
		}
	}
	printMarkdown(renderer.Balances(report))

	return subcommands.ExitSuccess
}
