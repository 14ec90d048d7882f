package easysplit

import (
	"iter"
	"strings"
)

// Graph is a directed weighted graph of debts. An edge from creditor C to
// debtor D with amount X means "D owes C the amount X". Edges are folded:
// accumulating several debts between the same pair keeps a single edge, and
// a debt below the settlement tolerance is dropped rather than stored.
//
// The graph also maintains, for every participant, the signed net balance
// (total owed to them minus total they owe), kept exactly equal to the
// column sums of the stored edges. The sum of all net balances is zero at
// all times: the group as a whole neither gains nor loses money.
type Graph struct {
	edges  map[string]map[string]Amount // creditor -> debtor -> amount
	net    map[string]Amount            // signed net balance per participant
	order  []string                     // participants in first-seen order
	seen   map[string]bool
	tracer Tracer
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{
		edges:  make(map[string]map[string]Amount),
		net:    make(map[string]Amount),
		seen:   make(map[string]bool),
		tracer: NopTracer{},
	}
}

// SetTracer routes diagnostic events to t. A nil t silences them.
func (g *Graph) SetTracer(t Tracer) {
	if t == nil {
		t = NopTracer{}
	}
	g.tracer = t
}

func (g *Graph) touch(name string) {
	if !g.seen[name] {
		g.seen[name] = true
		g.order = append(g.order, name)
	}
}

// Accumulate folds a single debt of amount from debtor to creditor into the
// graph. It keeps at most one edge per pair: an amount that cancels the
// opposite edge beyond the tolerance flips the edge's direction, and a pair
// whose folded debt falls within the tolerance ends up with no edge at all.
//
// Both endpoints are trimmed of surrounding whitespace. A blank endpoint or
// a participant owing itself returns an *InvalidEdgeError and leaves the
// graph untouched.
func (g *Graph) Accumulate(creditor, debtor string, amount Amount) error {
	creditor = strings.TrimSpace(creditor)
	debtor = strings.TrimSpace(debtor)
	if creditor == "" || debtor == "" || creditor == debtor {
		return &InvalidEdgeError{Creditor: creditor, Debtor: debtor}
	}
	g.touch(creditor)
	g.touch(debtor)

	g.net[creditor] = g.net[creditor].Add(amount)
	g.net[debtor] = g.net[debtor].Sub(amount)

	// Fold the new amount with whatever edge exists between the pair,
	// in either direction, into one signed value seen from the creditor.
	v := g.Flow(creditor, debtor).Sub(g.Flow(debtor, creditor)).Add(amount)
	g.unlink(creditor, debtor)
	g.unlink(debtor, creditor)
	g.tracer.Trace("edge.accumulate",
		"creditor", creditor, "debtor", debtor, "amount", amount, "folded", v)

	switch {
	case v.IsNegligible():
		// The pair is settled. Back the residual out of the net balances
		// so they remain the exact column sums of the stored edges.
		g.net[creditor] = g.net[creditor].Sub(v)
		g.net[debtor] = g.net[debtor].Add(v)
		if !v.IsZero() {
			g.tracer.Trace("edge.drop", "creditor", creditor, "debtor", debtor, "residual", v)
		}
	case v.IsPositive():
		g.link(creditor, debtor, v)
	default:
		g.tracer.Trace("edge.rebook", "creditor", debtor, "debtor", creditor, "amount", v.Neg())
		g.link(debtor, creditor, v.Neg())
	}
	return nil
}

func (g *Graph) link(creditor, debtor string, v Amount) {
	m := g.edges[creditor]
	if m == nil {
		m = make(map[string]Amount)
		g.edges[creditor] = m
	}
	m[debtor] = v
}

func (g *Graph) unlink(creditor, debtor string) {
	if m := g.edges[creditor]; m != nil {
		delete(m, debtor)
		if len(m) == 0 {
			delete(g.edges, creditor)
		}
	}
}

// Flow returns the current amount on the creditor -> debtor edge, or zero
// when no such edge exists.
func (g *Graph) Flow(creditor, debtor string) Amount {
	return g.edges[creditor][debtor]
}

// HasEdge reports whether a creditor -> debtor edge is currently stored.
func (g *Graph) HasEdge(creditor, debtor string) bool {
	_, ok := g.edges[creditor][debtor]
	return ok
}

// NetBalance returns the signed net balance of a participant: positive when
// the group owes them money, negative when they owe the group. Unknown
// participants have a zero balance.
func (g *Graph) NetBalance(p string) Amount {
	return g.net[p]
}

// EdgeCount returns the number of stored edges.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, m := range g.edges {
		n += len(m)
	}
	return n
}

// Participants returns every participant the graph has ever seen, settled
// or not, in first-seen order.
func (g *Graph) Participants() []string {
	return append([]string(nil), g.order...)
}

// Nodes returns the participants that appear as an endpoint of at least one
// stored edge, in first-seen order.
func (g *Graph) Nodes() []string {
	active := make(map[string]bool)
	for c, m := range g.edges {
		for d := range m {
			active[c] = true
			active[d] = true
		}
	}
	var nodes []string
	for _, p := range g.order {
		if active[p] {
			nodes = append(nodes, p)
		}
	}
	return nodes
}

// Edge is one stored debt: Debtor owes Creditor the Amount.
type Edge struct {
	Creditor string
	Debtor   string
	Amount   Amount
}

// Edges yields every stored edge, creditors in first-seen order and, for
// each creditor, debtors in first-seen order.
func (g *Graph) Edges() iter.Seq[Edge] {
	return func(yield func(Edge) bool) {
		for _, c := range g.order {
			m := g.edges[c]
			if m == nil {
				continue
			}
			for _, d := range g.order {
				v, ok := m[d]
				if !ok {
					continue
				}
				if !yield(Edge{Creditor: c, Debtor: d, Amount: v}) {
					return
				}
			}
		}
	}
}

// TotalImbalance returns the sum of all net balances. It is a conservation
// probe: for any graph built purely through Accumulate it is zero.
func (g *Graph) TotalImbalance() Amount {
	var sum Amount
	for _, p := range g.order {
		sum = sum.Add(g.net[p])
	}
	return sum
}

// Tabular is a plain header-and-rows projection of a graph, the data
// contract shared by rendering and CSV export.
type Tabular struct {
	Header []string
	Rows   [][]string
}

// Render projects the graph into a table with one row per edge, under the
// given column names, in the deterministic order of Edges.
func (g *Graph) Render(creditorCol, debtorCol, amountCol string) *Tabular {
	t := &Tabular{Header: []string{creditorCol, debtorCol, amountCol}}
	for e := range g.Edges() {
		t.Rows = append(t.Rows, []string{e.Creditor, e.Debtor, e.Amount.StringFixed(2)})
	}
	return t
}
