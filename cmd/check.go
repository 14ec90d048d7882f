package cmd

import (
	"context"
	"flag"

	"github.com/cabinz/easy-split/ingest"
	"github.com/cabinz/easy-split/renderer"
	"github.com/google/subcommands"
)

// checkCmd holds the flags for the 'check' subcommand.
type checkCmd struct {
	src sourceFlags
}

func (*checkCmd) Name() string     { return "check" }
func (*checkCmd) Synopsis() string { return "validate the data file and report every issue" }
func (*checkCmd) Usage() string {
	return `splitbill check -f <file>

  Validates the shared-expense ledger without computing anything: missing
  columns, empty cells, malformed amounts, unknown currencies, and member
  lists that expand to nobody. Exits non-zero when errors are found.
`
}

func (c *checkCmd) SetFlags(f *flag.FlagSet) {
	c.src.register(f)
}

func (c *checkCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.src.file == "" {
		return fail(errMissingFile)
	}
	table, err := ingest.ReadTable(c.src.file)
	if err != nil {
		return fail(err)
	}
	format := ingest.DetectFormat(table.Header, ingest.Format{
		Creditor:    c.src.colCreditor,
		Debtor:      c.src.colDebtor,
		Amount:      c.src.colAmount,
		Currency:    c.src.colCurrency,
		Separator:   c.src.separator,
		AllSelector: c.src.allSelector,
	})
	rates, err := c.src.buildRates()
	if err != nil {
		return fail(err)
	}

	result := ingest.Validate(table, format, rates)
	printMarkdown(renderer.Issues(result))

	if result.HasErrors() {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
