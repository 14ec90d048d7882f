package ingest

import (
	"fmt"
	"strings"

	easysplit "github.com/cabinz/easy-split"
)

// Severity grades an issue: errors block processing, warnings do not.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

// Issue is a single finding against one cell, one row, or the file as a
// whole when Row is zero.
type Issue struct {
	Row      int
	Column   string
	Message  string
	Severity Severity
}

// String renders the issue the way the check report prints it.
func (i Issue) String() string {
	prefix := "✗"
	if i.Severity == SeverityWarning {
		prefix = "⚠"
	}
	switch {
	case i.Row > 0 && i.Column != "":
		return fmt.Sprintf("  %s Row %d, Column '%s': %s", prefix, i.Row, i.Column, i.Message)
	case i.Row > 0:
		return fmt.Sprintf("  %s Row %d: %s", prefix, i.Row, i.Message)
	default:
		return fmt.Sprintf("  %s %s", prefix, i.Message)
	}
}

// Result collects what a validation pass found, errors and warnings apart.
type Result struct {
	Errors   []Issue
	Warnings []Issue
}

func (r *Result) error(row int, column, message string) {
	r.Errors = append(r.Errors, Issue{Row: row, Column: column, Message: message, Severity: SeverityError})
}

func (r *Result) warning(row int, column, message string) {
	r.Warnings = append(r.Warnings, Issue{Row: row, Column: column, Message: message, Severity: SeverityWarning})
}

// HasErrors reports whether any error-grade issue was found.
func (r *Result) HasErrors() bool { return len(r.Errors) > 0 }

// HasWarnings reports whether any warning was found.
func (r *Result) HasWarnings() bool { return len(r.Warnings) > 0 }

// Issues returns all findings, errors first, each group in discovery
// order.
func (r *Result) Issues() []Issue {
	return append(append([]Issue(nil), r.Errors...), r.Warnings...)
}

// Validate checks the table against the format before any expense is
// built. The structure check runs first and, when columns are missing,
// alone: every later check needs the columns in place. Then each row's
// required cells, amounts, currencies (when a standard currency is in
// force through rates), and member usage are checked. The rates table may
// be nil.
//
// Validation only reads; it never touches files and never fixes anything.
func Validate(t *Table, f Format, rates *easysplit.Rates) *Result {
	v := &validator{t: t, f: f, rates: rates, result: &Result{}}

	v.checkStructure()
	if v.result.HasErrors() {
		return v.result
	}
	v.checkRequiredCells()
	v.checkAmounts()
	v.checkCurrencies()
	v.checkMembers()
	return v.result
}

type validator struct {
	t       *Table
	f       Format
	rates   *easysplit.Rates
	result  *Result
	members map[string]bool
}

// needsCurrency reports whether per-row currencies are in force.
func (v *validator) needsCurrency() bool {
	return v.rates != nil && v.rates.Standard() != ""
}

func (v *validator) checkStructure() {
	type required struct {
		column  string
		kind    string
		aliases []string
	}
	columns := []required{
		{v.f.Creditor, "creditor", creditorAliases},
		{v.f.Debtor, "debtor", debtorAliases},
		{v.f.Amount, "amount", amountAliases},
	}
	if v.needsCurrency() {
		columns = append(columns, required{v.f.Currency, "currency", currencyAliases})
	}

	var missing, suggestions []string
	for _, r := range columns {
		if v.t.Column(r.column) < 0 {
			missing = append(missing, r.column)
			suggestions = append(suggestions,
				fmt.Sprintf("%s column (looked for: %s)", r.kind, strings.Join(r.aliases, ", ")))
		}
	}
	if len(missing) > 0 {
		v.result.error(0, "", fmt.Sprintf(
			"Missing required columns: %s. Could not auto-detect: %s. Please specify column names using command line flags.",
			strings.Join(missing, ", "), strings.Join(suggestions, ", ")))
	}
}

func (v *validator) checkRequiredCells() {
	ci, di, ai := v.t.Column(v.f.Creditor), v.t.Column(v.f.Debtor), v.t.Column(v.f.Amount)
	for _, row := range v.t.Rows {
		if row.Cell(ci) == "" {
			v.result.error(row.Num, v.f.Creditor, "Creditor cannot be empty")
		}
		if row.Cell(di) == "" {
			v.result.error(row.Num, v.f.Debtor,
				fmt.Sprintf("Debtor cannot be empty (did you mean '%s'?)", v.f.AllSelector))
		}
		if row.Cell(ai) == "" {
			v.result.error(row.Num, v.f.Amount, "Amount cannot be empty")
		}
	}
}

func (v *validator) checkAmounts() {
	ai := v.t.Column(v.f.Amount)
	for _, row := range v.t.Rows {
		cell := row.Cell(ai)
		if cell == "" {
			continue
		}
		amount, err := easysplit.ParseAmount(cell)
		if err != nil {
			v.result.error(row.Num, v.f.Amount, fmt.Sprintf("Invalid amount value: %s", cell))
			continue
		}
		switch {
		case amount.IsNegative():
			v.result.error(row.Num, v.f.Amount, fmt.Sprintf("Amount cannot be negative: %s", amount))
		case amount.IsZero():
			v.result.warning(row.Num, v.f.Amount, "Amount is 0 (transaction will be ignored)")
		}
	}
}

func (v *validator) checkCurrencies() {
	if !v.needsCurrency() {
		return
	}
	ci := v.t.Column(v.f.Currency)
	std := v.rates.Standard()
	var missing []string
	reported := map[string]bool{}
	for _, row := range v.t.Rows {
		cell := row.Cell(ci)
		if cell == "" {
			v.result.error(row.Num, v.f.Currency,
				"Currency cannot be empty when standard currency is specified")
			continue
		}
		currency := strings.ToUpper(cell)
		if currency == std {
			continue
		}
		if _, err := v.rates.Rate(currency, std); err != nil {
			v.result.error(row.Num, v.f.Currency,
				fmt.Sprintf("Currency '%s' has no exchange rate to standard currency '%s'", currency, std))
			if !reported[currency] {
				reported[currency] = true
				missing = append(missing, currency+"/"+std)
			}
		}
	}
	if len(missing) > 0 {
		v.result.error(0, "", "Missing exchange rates: "+strings.Join(missing, ", "))
	}
}

func (v *validator) checkMembers() {
	ci, di := v.t.Column(v.f.Creditor), v.t.Column(v.f.Debtor)

	// First pass collects the member roster the all-selector expands to.
	v.members = map[string]bool{}
	for _, row := range v.t.Rows {
		creditor, debtor := row.Cell(ci), row.Cell(di)
		if creditor != "" && !v.f.IsAll(creditor) {
			names := v.f.SplitNames(creditor)
			if len(names) > 1 {
				v.result.error(row.Num, v.f.Creditor,
					"Multiple creditors not supported. Please specify only one creditor per transaction")
			} else if names[0] != "" {
				v.members[names[0]] = true
			}
		}
		if debtor != "" && !v.f.IsAll(debtor) {
			for _, name := range v.f.SplitNames(debtor) {
				if name != "" {
					v.members[name] = true
				}
			}
		}
	}

	for _, row := range v.t.Rows {
		creditor, debtor := row.Cell(ci), row.Cell(di)
		if v.f.IsAll(creditor) {
			v.result.error(row.Num, v.f.Creditor,
				fmt.Sprintf("'%s' (all selector) cannot be used as creditor", creditor))
		}
		if debtor == "" {
			continue
		}
		if v.f.IsAll(debtor) {
			switch {
			case len(v.members) == 0:
				v.result.error(row.Num, v.f.Debtor,
					fmt.Sprintf("'%s' (all selector) used but no members found in data", debtor))
			case len(v.members) == 1 && v.members[creditor]:
				v.result.warning(row.Num, v.f.Debtor,
					fmt.Sprintf("'%s' expands to nobody but the payer (transaction will be ignored)", debtor))
			}
			continue
		}
		for _, name := range v.f.SplitNames(debtor) {
			switch {
			case name == "":
				v.result.error(row.Num, v.f.Debtor,
					fmt.Sprintf("Empty member name after splitting with '%s'", v.f.Separator))
			case name == creditor:
				v.result.error(row.Num, v.f.Debtor,
					fmt.Sprintf("Creditor '%s' cannot appear in its own debtor list", creditor))
			}
		}
	}
}
