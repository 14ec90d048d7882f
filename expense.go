package easysplit

import "strings"

// Expense is one shared-payment record: the creditor paid the total Amount,
// to be split evenly across the Debtors. The amount is expected to already
// be in the standard currency; see Rates.ToStandard.
type Expense struct {
	Creditor string
	Debtors  []string
	Amount   Amount
}

// Apply splits the expense total evenly across its debtors and folds one
// debt per debtor into the graph. An expense with no debtors (a selector
// that expanded to nobody but the payer) applies nothing. A debtor list
// naming the creditor fails with an *InvalidEdgeError.
func (g *Graph) Apply(e Expense) error {
	if len(e.Debtors) == 0 {
		return nil
	}
	share := e.Amount.Div(A(len(e.Debtors)))
	for _, d := range e.Debtors {
		if err := g.Accumulate(e.Creditor, d, share); err != nil {
			return err
		}
	}
	return nil
}

// Participants returns the distinct people the expense names, creditor
// first, preserving the order of the debtor list.
func (e Expense) Participants() []string {
	seen := map[string]bool{}
	var people []string
	for _, p := range append([]string{e.Creditor}, e.Debtors...) {
		p = strings.TrimSpace(p)
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		people = append(people, p)
	}
	return people
}
