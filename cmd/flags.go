package cmd

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	easysplit "github.com/cabinz/easy-split"
	"github.com/cabinz/easy-split/ingest"
	"github.com/charmbracelet/log"
	"github.com/google/subcommands"
)

var errMissingFile = errors.New("missing -f: no data file to read")

// rateFlags collects repeated -rate flags.
type rateFlags []string

func (r *rateFlags) String() string { return strings.Join(*r, ",") }
func (r *rateFlags) Set(v string) error {
	*r = append(*r, v)
	return nil
}

// sourceFlags are the flags shared by every command that reads a data file.
type sourceFlags struct {
	file        string
	colCreditor string
	colDebtor   string
	colAmount   string
	colCurrency string
	separator   string
	allSelector string
	currency    string
	rates       rateFlags
	secondary   string
	verbose     bool
}

func (s *sourceFlags) register(f *flag.FlagSet) {
	f.StringVar(&s.file, "f", "", "Data file to read (.csv, .tsv or .xlsx).")
	f.StringVar(&s.colCreditor, "col-creditor", "", "Name of the creditor column. Auto-detected by default.")
	f.StringVar(&s.colDebtor, "col-debtor", "", "Name of the debtor column. Auto-detected by default.")
	f.StringVar(&s.colAmount, "col-amount", "", "Name of the amount column. Auto-detected by default.")
	f.StringVar(&s.colCurrency, "col-currency", "", "Name of the currency column. Auto-detected by default.")
	f.StringVar(&s.separator, "separator", ingest.DefaultSeparator, "Separator between names in a debtor cell.")
	f.StringVar(&s.allSelector, "all-selector", ingest.DefaultAllSelector, "Debtor keyword expanding to every member but the creditor.")
	f.StringVar(&s.currency, "currency", "", "Standard currency to report in. Enables per-row conversion.")
	f.Var(&s.rates, "rate", "Exchange rate as BASE/QUOTE=RATE. May be repeated.")
	f.StringVar(&s.secondary, "secondary", "", "Additional display currency for the report tables.")
	f.BoolVar(&s.verbose, "v", false, "Log each record as it lands on the balance graph.")
}

// tracer returns the graph tracer selected by -v: a debug logger on
// stderr, or none.
func (s *sourceFlags) tracer() easysplit.Tracer {
	if !s.verbose {
		return easysplit.NopTracer{}
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
		Level:           log.DebugLevel,
	})
	return easysplit.TracerFunc(func(event string, kv ...any) {
		logger.Debug(event, kv...)
	})
}

// buildRates turns -currency and the -rate flags into a rates table,
// collecting every bad quotation rather than stopping at the first.
func (s *sourceFlags) buildRates() (*easysplit.Rates, error) {
	rates := easysplit.NewRates(s.currency)
	var errs []error
	for _, spec := range s.rates {
		base, quote, rate, err := easysplit.ParseRateSpec(spec)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := rates.AddRate(base, quote, rate); err != nil {
			errs = append(errs, err)
		}
	}
	return rates, errors.Join(errs...)
}

// source is what a command works on once the data file is in: the
// expenses folded into a graph, the member roster, and the display
// currencies.
type source struct {
	graph         *easysplit.Graph
	members       []string
	currency      string
	secondary     string
	secondaryRate easysplit.Amount
}

// load runs the shared front of every pipeline: read the table, detect
// the format, validate, build the expenses, and fold them into a graph.
// Validation issues are printed to stderr; errors among them stop the
// pipeline.
func (s *sourceFlags) load() (*source, error) {
	if s.file == "" {
		return nil, errMissingFile
	}
	table, err := ingest.ReadTable(s.file)
	if err != nil {
		return nil, err
	}
	format := ingest.DetectFormat(table.Header, ingest.Format{
		Creditor:    s.colCreditor,
		Debtor:      s.colDebtor,
		Amount:      s.colAmount,
		Currency:    s.colCurrency,
		Separator:   s.separator,
		AllSelector: s.allSelector,
	})
	rates, err := s.buildRates()
	if err != nil {
		return nil, err
	}

	result := ingest.Validate(table, format, rates)
	if result.HasErrors() {
		fmt.Fprintln(os.Stderr, "Validation Errors Found:")
		for _, issue := range result.Issues() {
			fmt.Fprintln(os.Stderr, issue)
		}
		fmt.Fprintf(os.Stderr, "Found %d error(s) and %d warning(s).\n", len(result.Errors), len(result.Warnings))
		return nil, errors.New("please fix errors before processing")
	}
	for _, issue := range result.Warnings {
		fmt.Fprintln(os.Stderr, issue)
	}

	expenses, members, err := ingest.Expenses(table, format, rates)
	if err != nil {
		return nil, err
	}
	graph := easysplit.NewGraph()
	graph.SetTracer(s.tracer())
	for _, e := range expenses {
		if err := graph.Apply(e); err != nil {
			return nil, err
		}
	}

	src := &source{graph: graph, members: members, currency: rates.Standard()}
	if s.secondary != "" {
		src.secondary = strings.ToUpper(strings.TrimSpace(s.secondary))
		if src.currency == "" {
			return nil, errors.New("-secondary needs -currency to name the standard currency first")
		}
		src.secondaryRate, err = rates.Rate(src.currency, src.secondary)
		if err != nil {
			return nil, err
		}
	}
	return src, nil
}

// fail prints the error and maps it to an exit status.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	if errors.Is(err, errMissingFile) {
		return subcommands.ExitUsageError
	}
	return subcommands.ExitFailure
}
