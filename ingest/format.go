package ingest

import "strings"

// Column aliases tried by the auto-detection, in priority order.
var (
	creditorAliases = []string{"Creditor", "Payer", "From", "Paid By"}
	debtorAliases   = []string{"Debtor", "Payee", "To", "Split With"}
	amountAliases   = []string{"Amount", "Total", "Value", "Cost"}
	currencyAliases = []string{"Currency", "Curr", "CCY"}
)

// Defaults used when neither an override nor an alias resolves a column.
const (
	DefaultCreditorColumn = "Creditor"
	DefaultDebtorColumn   = "Debtor"
	DefaultAmountColumn   = "Amount"
	DefaultCurrencyColumn = "Currency"
	DefaultSeparator      = ","
	DefaultAllSelector    = "all"
)

// Format names the columns holding each field of a record, the separator
// splitting multiple names within a cell, and the selector standing for
// "every member".
type Format struct {
	Creditor    string
	Debtor      string
	Amount      string
	Currency    string
	Separator   string
	AllSelector string
}

// DetectFormat resolves the format for a header. A non-empty override
// always wins. Otherwise the aliases are scanned in priority order and the
// first one present in the header is used, under the header's own
// spelling. A column with no override and no alias match falls back to the
// default name.
func DetectFormat(header []string, overrides Format) Format {
	pick := func(override string, aliases []string, fallback string) string {
		if override != "" {
			return override
		}
		for _, alias := range aliases {
			for _, col := range header {
				if strings.EqualFold(col, alias) {
					return col
				}
			}
		}
		return fallback
	}
	f := Format{
		Creditor:    pick(overrides.Creditor, creditorAliases, DefaultCreditorColumn),
		Debtor:      pick(overrides.Debtor, debtorAliases, DefaultDebtorColumn),
		Amount:      pick(overrides.Amount, amountAliases, DefaultAmountColumn),
		Currency:    pick(overrides.Currency, currencyAliases, DefaultCurrencyColumn),
		Separator:   overrides.Separator,
		AllSelector: overrides.AllSelector,
	}
	if f.Separator == "" {
		f.Separator = DefaultSeparator
	}
	if f.AllSelector == "" {
		f.AllSelector = DefaultAllSelector
	}
	return f
}

// IsAll reports whether the cell selects every member. The configured
// selector matches case-insensitively; the default configuration also
// accepts the spreadsheet-friendly "*".
func (f Format) IsAll(cell string) bool {
	cell = strings.TrimSpace(cell)
	if strings.EqualFold(cell, f.AllSelector) {
		return true
	}
	return f.AllSelector == DefaultAllSelector && cell == "*"
}

// SplitNames splits a multi-name cell on the separator and trims each
// part. Empty parts are kept so the validator can point at them.
func (f Format) SplitNames(cell string) []string {
	parts := strings.Split(cell, f.Separator)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
