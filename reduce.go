package easysplit

import (
	"fmt"
	"slices"
	"strings"
)

// pending is one unsettled participant during a reduction, with the
// positive magnitude still owed to them (creditors) or by them (debtors).
type pending struct {
	name string
	mag  Amount
}

func largest(list []*pending) *pending {
	best := list[0]
	for _, p := range list[1:] {
		if p.mag.GreaterThan(best.mag) {
			best = p
		}
	}
	return best
}

func dropSettled(list []*pending) []*pending {
	kept := list[:0]
	for _, p := range list {
		if !p.mag.IsNegligible() {
			kept = append(kept, p)
		}
	}
	return kept
}

// Reduce computes an equivalent graph with fewer edges: every participant
// keeps the same net balance within the tolerance, but the debts are
// rewritten into fewer point-to-point payments.
//
// It works in two phases over the net balances. First an exact-match pass
// settles every creditor/debtor pair whose magnitudes agree within the
// tolerance with a single payment, rescanning after each match. Then the
// largest remaining creditor is settled against the largest remaining
// debtor for the smaller of the two magnitudes, with ties broken by
// first-seen order, re-running the exact-match pass after each settlement.
//
// The result is a local minimum, not a guaranteed global one: a plan with
// fewer payments can exist when balances split into separately settling
// subgroups the greedy pairing never isolates. ReduceExact finds the true
// minimum for small groups.
//
// A *ConservationError is returned when the balances cannot be matched up,
// or when the reduced graph fails the equivalence check against its source.
// Both mean an internal defect and are never silently corrected.
func Reduce(g *Graph) (*Graph, error) {
	r := NewGraph()
	r.tracer = g.tracer

	var creditors, debtors []*pending
	for _, p := range g.Participants() {
		r.touch(p)
		n := g.NetBalance(p)
		switch {
		case n.IsNegligible():
		case n.IsPositive():
			creditors = append(creditors, &pending{name: p, mag: n})
		default:
			debtors = append(debtors, &pending{name: p, mag: n.Neg()})
		}
	}

	settle := func(c, d *pending, amount Amount) error {
		if err := r.Accumulate(c.name, d.name, amount); err != nil {
			return err
		}
		c.mag = c.mag.Sub(amount)
		d.mag = d.mag.Sub(amount)
		return nil
	}

	// The settlement amount of an exact match is the creditor's remaining
	// magnitude; the debtor's residual is within the tolerance and is
	// forgiven. Each match restarts the scan, since removals shift what
	// remains.
	matchExact := func() error {
		for matched := true; matched; {
			matched = false
		scan:
			for i, c := range creditors {
				for j, d := range debtors {
					if !c.mag.ApproxEqual(d.mag) {
						continue
					}
					g.tracer.Trace("reduce.match", "creditor", c.name, "debtor", d.name, "amount", c.mag)
					if err := settle(c, d, c.mag); err != nil {
						return err
					}
					creditors = slices.Delete(creditors, i, i+1)
					debtors = slices.Delete(debtors, j, j+1)
					matched = true
					break scan
				}
			}
		}
		return nil
	}

	if err := matchExact(); err != nil {
		return nil, err
	}
	for len(creditors) > 0 && len(debtors) > 0 {
		c := largest(creditors)
		d := largest(debtors)
		amount := c.mag
		if d.mag.LessThan(amount) {
			amount = d.mag
		}
		g.tracer.Trace("reduce.settle", "creditor", c.name, "debtor", d.name, "amount", amount)
		if err := settle(c, d, amount); err != nil {
			return nil, err
		}
		creditors = dropSettled(creditors)
		debtors = dropSettled(debtors)
		if err := matchExact(); err != nil {
			return nil, err
		}
	}

	if len(creditors) > 0 || len(debtors) > 0 {
		var imbalance Amount
		for _, c := range creditors {
			imbalance = imbalance.Add(c.mag)
		}
		for _, d := range debtors {
			imbalance = imbalance.Sub(d.mag)
		}
		return nil, &ConservationError{Detail: "balances left unmatched after reduction", Imbalance: imbalance}
	}

	g.tracer.Trace("reduce.done", "edges", r.EdgeCount())
	return verified(g, r)
}

// ReduceExact computes a settlement plan with the guaranteed minimal number
// of payments, by exhaustively searching every way of settling each
// participant in full against the others. The search is exponential, so it
// refuses graphs with more than maxParticipants unsettled participants with
// an error wrapping ErrTooManyParticipants. It never degrades to the greedy
// strategy on its own; that choice belongs to the caller.
func ReduceExact(g *Graph, maxParticipants int) (*Graph, error) {
	type account struct {
		name string
		net  Amount
	}
	var accounts []account
	for _, p := range g.Participants() {
		if n := g.NetBalance(p); !n.IsNegligible() {
			accounts = append(accounts, account{name: p, net: n})
		}
	}
	if len(accounts) > maxParticipants {
		return nil, fmt.Errorf("%d unsettled participants exceed the exhaustive search bound of %d: %w",
			len(accounts), maxParticipants, ErrTooManyParticipants)
	}

	type payment struct {
		creditor, debtor string
		amount           Amount
	}

	nets := make([]Amount, len(accounts))
	for i, a := range accounts {
		nets[i] = a.net
	}

	key := func() string {
		var b strings.Builder
		for _, n := range nets {
			b.WriteString(n.String())
			b.WriteByte('|')
		}
		return b.String()
	}
	firstActive := func() int {
		for i, n := range nets {
			if !n.IsNegligible() {
				return i
			}
		}
		return -1
	}

	best := -1 // payment count of the best plan found so far
	var bestPlan []payment
	visited := make(map[string]int) // state -> fewest payments it was reached with

	var search func(plan []payment)
	search = func(plan []payment) {
		if best >= 0 && len(plan) >= best {
			return
		}
		i := firstActive()
		if i < 0 {
			best = len(plan)
			bestPlan = slices.Clone(plan)
			return
		}
		k := key()
		if depth, ok := visited[k]; ok && depth <= len(plan) {
			return
		}
		visited[k] = len(plan)

		// Settle account i in full against each opposite-signed account.
		for j := i + 1; j < len(nets); j++ {
			if nets[j].IsNegligible() || nets[i].IsPositive() == nets[j].IsPositive() {
				continue
			}
			pay := payment{creditor: accounts[i].name, debtor: accounts[j].name, amount: nets[i]}
			if nets[i].IsNegative() {
				pay = payment{creditor: accounts[j].name, debtor: accounts[i].name, amount: nets[i].Neg()}
			}
			moved := nets[i]
			nets[j] = nets[j].Add(moved)
			nets[i] = Amount{}
			search(append(plan, pay))
			nets[i] = moved
			nets[j] = nets[j].Sub(moved)
		}
	}
	search(nil)

	if best < 0 {
		return nil, &ConservationError{
			Detail:    "exhaustive search found no settlement",
			Imbalance: g.TotalImbalance(),
		}
	}

	r := NewGraph()
	r.tracer = g.tracer
	for _, p := range g.Participants() {
		r.touch(p)
	}
	for _, pay := range bestPlan {
		if err := r.Accumulate(pay.creditor, pay.debtor, pay.amount); err != nil {
			return nil, err
		}
	}
	g.tracer.Trace("reduce.done", "edges", r.EdgeCount(), "exact", true)
	return verified(g, r)
}

// CheckEquivalent reports whether the two graphs leave every participant
// with the same net balance within the settlement tolerance. A participant
// absent from one graph counts as settled there: cancelling a full cycle
// legitimately removes every trace of its members.
func CheckEquivalent(g1, g2 *Graph) bool {
	checked := make(map[string]bool)
	for _, p := range g1.Participants() {
		checked[p] = true
		if !g1.NetBalance(p).ApproxEqual(g2.NetBalance(p)) {
			return false
		}
	}
	for _, p := range g2.Participants() {
		if checked[p] {
			continue
		}
		if !g1.NetBalance(p).ApproxEqual(g2.NetBalance(p)) {
			return false
		}
	}
	return true
}

// verified gates every reducer's return on the equivalence check.
func verified(src, reduced *Graph) (*Graph, error) {
	if !CheckEquivalent(src, reduced) {
		return nil, &ConservationError{
			Detail:    "reduced graph diverges from its source",
			Imbalance: reduced.TotalImbalance().Sub(src.TotalImbalance()),
		}
	}
	return reduced, nil
}
