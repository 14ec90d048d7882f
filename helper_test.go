package easysplit

import (
	"fmt"
	"testing"
)

// debt is a compact (creditor, debtor, amount) triple for building test graphs.
type debt struct {
	creditor string
	debtor   string
	amount   float64
}

// graphOf builds a graph by accumulating the given debts, failing the test
// on any error.
func graphOf(t *testing.T, debts ...debt) *Graph {
	t.Helper()
	g := NewGraph()
	for _, d := range debts {
		if err := g.Accumulate(d.creditor, d.debtor, A(d.amount)); err != nil {
			t.Fatalf("Accumulate(%q, %q, %v) = %v, want nil", d.creditor, d.debtor, d.amount, err)
		}
	}
	return g
}

// flows flattens the stored edges into "Creditor<-Debtor:Amount" strings in
// the graph's deterministic order, for compact comparison.
func flows(g *Graph) []string {
	var out []string
	for e := range g.Edges() {
		out = append(out, fmt.Sprintf("%s<-%s:%s", e.Creditor, e.Debtor, e.Amount.String()))
	}
	return out
}
