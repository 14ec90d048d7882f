package easysplit

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestAmountIsNegligible(t *testing.T) {
	testCases := []struct {
		name   string
		amount float64
		want   bool
	}{
		{"zero", 0, true},
		{"half a cent", 0.005, true},
		{"exactly at tolerance", 0.01, true},
		{"negative at tolerance", -0.01, true},
		{"just above tolerance", 0.011, false},
		{"just below negative tolerance", -0.011, false},
		{"whole amount", 25, false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := A(tc.amount).IsNegligible(); got != tc.want {
				t.Errorf("A(%v).IsNegligible() = %v, want %v", tc.amount, got, tc.want)
			}
		})
	}
}

func TestAmountApproxEqual(t *testing.T) {
	testCases := []struct {
		name string
		a, b float64
		want bool
	}{
		{"equal", 10, 10, true},
		{"within tolerance", 10, 9.995, true},
		{"at tolerance", 10, 9.99, true},
		{"beyond tolerance", 10, 9.98, false},
		{"opposite signs", 0.005, -0.005, true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := A(tc.a).ApproxEqual(A(tc.b)); got != tc.want {
				t.Errorf("A(%v).ApproxEqual(A(%v)) = %v, want %v", tc.a, tc.b, got, tc.want)
			}
		})
	}
}

func TestAmountConstructors(t *testing.T) {
	if got, want := A(42), A(42.0); !got.Equal(want) {
		t.Errorf("A(42) = %s, want %s", got, want)
	}
	if got, want := A(decimal.NewFromInt(7)), A(7); !got.Equal(want) {
		t.Errorf("A(decimal 7) = %s, want %s", got, want)
	}
	if got := A(12.5).Add(A(0.5)); !got.Equal(A(13)) {
		t.Errorf("12.5 + 0.5 = %s, want 13", got)
	}
	if got := A(1).Sub(A(3)); !got.Equal(A(-2)) {
		t.Errorf("1 - 3 = %s, want -2", got)
	}
	if got := A(-4).Abs(); !got.Equal(A(4)) {
		t.Errorf("abs(-4) = %s, want 4", got)
	}
}

func TestParseAmount(t *testing.T) {
	testCases := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{in: "12.50", want: 12.5},
		{in: "-3", want: -3},
		{in: "0", want: 0},
		{in: "12,50", wantErr: true},
		{in: "abc", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseAmount(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("ParseAmount(%q) = %s, want error", tc.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAmount(%q) returned %v", tc.in, err)
			}
			if !got.Equal(A(tc.want)) {
				t.Errorf("ParseAmount(%q) = %s, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestAmountDisplay(t *testing.T) {
	testCases := []struct {
		name     string
		amount   float64
		currency string
		want     string
	}{
		{"usd with thousands", 1234.5, "USD", "$1,234.50"},
		{"usd negative", -10, "USD", "-$10.00"},
		{"usd rounds to cents", 7.699, "USD", "$7.70"},
		{"no currency", 10, "", "10.00"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := A(tc.amount).Display(tc.currency); got != tc.want {
				t.Errorf("A(%v).Display(%q) = %q, want %q", tc.amount, tc.currency, got, tc.want)
			}
		})
	}
}
