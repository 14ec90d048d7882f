package easysplit

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case uint:
		return decimal.NewFromUint64(uint64(v))
	case uint32:
		return decimal.NewFromUint64(uint64(v))
	case uint64:
		return decimal.NewFromUint64(v)
	default:
		panic("unsupported type")
	}
}

// tolerance is the absolute amount below which a balance counts as settled.
// Two cents never need to change hands over a rounding residue, so every
// comparison in this package goes through IsNegligible or ApproxEqual
// rather than raw equality.
var tolerance = decimal.NewFromFloat(1e-2)

// Amount is a monetary value with exact decimal arithmetic. The zero value
// is zero.
type Amount struct {
	value decimal.Decimal
}

func A[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Amount {
	return Amount{value: newDecimal(value)}
}

// ParseAmount parses a decimal string like "12.50" into an Amount.
func ParseAmount(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, err
	}
	return Amount{value: d}, nil
}

func (a Amount) Add(b Amount) Amount          { return Amount{value: a.value.Add(b.value)} }
func (a Amount) Sub(b Amount) Amount          { return Amount{value: a.value.Sub(b.value)} }
func (a Amount) Mul(b Amount) Amount          { return Amount{value: a.value.Mul(b.value)} }
func (a Amount) Div(b Amount) Amount          { return Amount{value: a.value.Div(b.value)} }
func (a Amount) Neg() Amount                  { return Amount{value: a.value.Neg()} }
func (a Amount) Abs() Amount                  { return Amount{value: a.value.Abs()} }
func (a Amount) Equal(b Amount) bool          { return a.value.Equal(b.value) }
func (a Amount) LessThan(b Amount) bool       { return a.value.LessThan(b.value) }
func (a Amount) GreaterThan(b Amount) bool    { return a.value.GreaterThan(b.value) }
func (a Amount) IsNegative() bool             { return a.value.IsNegative() }
func (a Amount) IsPositive() bool             { return a.value.IsPositive() }
func (a Amount) IsZero() bool                 { return a.value.IsZero() }
func (a Amount) String() string               { return a.value.String() }
func (a Amount) StringFixed(places int32) string { return a.value.StringFixed(places) }

// IsNegligible reports whether the amount is within the settlement
// tolerance of zero.
func (a Amount) IsNegligible() bool {
	return a.value.Abs().LessThanOrEqual(tolerance)
}

// ApproxEqual reports whether the two amounts differ by no more than the
// settlement tolerance.
func (a Amount) ApproxEqual(b Amount) bool {
	return a.Sub(b).IsNegligible()
}

// Display formats the amount in the given ISO 4217 currency, using the
// currency's symbol and fraction rules. An empty currency renders the bare
// decimal value.
func (a Amount) Display(currency string) string {
	if currency == "" {
		return a.StringFixed(2)
	}
	// Going through the Money constructor yields a never-nil currency.
	cur := *money.New(0, currency).Currency()
	shifted := a.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(shifted.Round(0).IntPart())
}

// MarshalJSON implements the json.Marshaler interface.
func (a Amount) MarshalJSON() ([]byte, error) {
	return a.value.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (a *Amount) UnmarshalJSON(decimalBytes []byte) error {
	return a.value.UnmarshalJSON(decimalBytes)
}
