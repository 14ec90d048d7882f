package easysplit

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
)

// Rates is a table of exchange quotations used to normalize multi-currency
// records into one standard currency. A quotation BASE/QUOTE = R means one
// unit of the base currency exchanges for R units of the quote currency;
// adding it also records the implied inverse QUOTE/BASE = 1/R.
type Rates struct {
	standard string
	table    map[string]map[string]Amount // base -> quote -> rate
}

// NewRates returns an empty table reporting in the given standard currency.
// An empty standard means records are taken at face value, unconverted.
func NewRates(standard string) *Rates {
	return &Rates{
		standard: strings.ToUpper(strings.TrimSpace(standard)),
		table:    make(map[string]map[string]Amount),
	}
}

// Standard returns the standard (reporting) currency code, or "".
func (r *Rates) Standard() string { return r.standard }

// AddRate records the BASE/QUOTE quotation and its inverse. Currency codes
// must be known ISO 4217 codes, the rate must be positive, and a pair can
// only be quoted once.
func (r *Rates) AddRate(base, quote string, rate Amount) error {
	base = strings.ToUpper(strings.TrimSpace(base))
	quote = strings.ToUpper(strings.TrimSpace(quote))
	for _, code := range []string{base, quote} {
		if money.GetCurrency(code) == nil {
			return fmt.Errorf("unknown currency code %q", code)
		}
	}
	if base == quote {
		return fmt.Errorf("cannot quote %s against itself", base)
	}
	if !rate.IsPositive() {
		return fmt.Errorf("exchange rate %s/%s must be positive, got %s", base, quote, rate)
	}
	if _, ok := r.table[base][quote]; ok {
		return fmt.Errorf("the exchange rate %s/%s is already added", base, quote)
	}
	r.insert(base, quote, rate)
	r.insert(quote, base, A(1).Div(rate))
	return nil
}

func (r *Rates) insert(base, quote string, rate Amount) {
	m := r.table[base]
	if m == nil {
		m = make(map[string]Amount)
		r.table[base] = m
	}
	m[quote] = rate
}

// Rate returns the BASE/QUOTE rate. Identical codes rate 1; an unquoted
// pair is an error.
func (r *Rates) Rate(base, quote string) (Amount, error) {
	base = strings.ToUpper(strings.TrimSpace(base))
	quote = strings.ToUpper(strings.TrimSpace(quote))
	if base == quote {
		return A(1), nil
	}
	rate, ok := r.table[base][quote]
	if !ok {
		return Amount{}, fmt.Errorf("exchange rate %s/%s is not provided", base, quote)
	}
	return rate, nil
}

// ToStandard converts an amount from the given currency into the standard
// currency. With no standard currency, or no row currency, the amount
// passes through unchanged.
func (r *Rates) ToStandard(currency string, amount Amount) (Amount, error) {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if r.standard == "" || currency == "" || currency == r.standard {
		return amount, nil
	}
	rate, err := r.Rate(currency, r.standard)
	if err != nil {
		return Amount{}, err
	}
	return amount.Mul(rate), nil
}

// ParseRateSpec parses a quotation in the "BASE/QUOTE=RATE" form used by
// the -rate command line flag, e.g. "USD/HKD=7.8".
func ParseRateSpec(spec string) (base, quote string, rate Amount, err error) {
	pair, value, ok := strings.Cut(spec, "=")
	if !ok {
		return "", "", Amount{}, fmt.Errorf("malformed rate %q, want BASE/QUOTE=RATE", spec)
	}
	base, quote, ok = strings.Cut(pair, "/")
	if !ok {
		return "", "", Amount{}, fmt.Errorf("malformed rate %q, want BASE/QUOTE=RATE", spec)
	}
	rate, err = ParseAmount(strings.TrimSpace(value))
	if err != nil {
		return "", "", Amount{}, fmt.Errorf("malformed rate %q: %w", spec, err)
	}
	return strings.ToUpper(strings.TrimSpace(base)), strings.ToUpper(strings.TrimSpace(quote)), rate, nil
}
