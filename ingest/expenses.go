package ingest

import (
	"fmt"

	easysplit "github.com/cabinz/easy-split"
)

// Expenses builds one expense per data row, in file order, and returns the
// distinct member names in first-seen order. It runs two passes: the first
// discovers the members, so that a debtor cell holding the all-selector can
// expand to everyone minus the creditor; the second builds the expenses,
// converting each amount into the standard currency through rates (a nil
// table takes amounts at face value). Rows whose converted amount is
// within the settlement tolerance are skipped.
//
// The table is expected to validate cleanly. Validate reports, with row
// numbers, everything this builder would otherwise trip over.
func Expenses(t *Table, f Format, rates *easysplit.Rates) ([]easysplit.Expense, []string, error) {
	ci, di, ai := t.Column(f.Creditor), t.Column(f.Debtor), t.Column(f.Amount)
	for _, c := range []struct {
		name string
		idx  int
	}{{f.Creditor, ci}, {f.Debtor, di}, {f.Amount, ai}} {
		if c.idx < 0 {
			return nil, nil, fmt.Errorf("column %q not found in %s", c.name, t.Path)
		}
	}
	cui := t.Column(f.Currency)

	var members []string
	seen := map[string]bool{}
	add := func(name string) {
		if name != "" && !seen[name] {
			seen[name] = true
			members = append(members, name)
		}
	}
	for _, row := range t.Rows {
		if c := row.Cell(ci); !f.IsAll(c) {
			add(c)
		}
		if d := row.Cell(di); !f.IsAll(d) {
			for _, name := range f.SplitNames(d) {
				add(name)
			}
		}
	}

	var expenses []easysplit.Expense
	for _, row := range t.Rows {
		amount, err := easysplit.ParseAmount(row.Cell(ai))
		if err != nil {
			return nil, nil, fmt.Errorf("row %d: invalid amount %q", row.Num, row.Cell(ai))
		}
		if rates != nil {
			amount, err = rates.ToStandard(row.Cell(cui), amount)
			if err != nil {
				return nil, nil, fmt.Errorf("row %d: %w", row.Num, err)
			}
		}
		if amount.IsNegligible() {
			continue
		}

		creditor := row.Cell(ci)
		var debtors []string
		if f.IsAll(row.Cell(di)) {
			for _, m := range members {
				if m != creditor {
					debtors = append(debtors, m)
				}
			}
		} else {
			for _, name := range f.SplitNames(row.Cell(di)) {
				if name != "" {
					debtors = append(debtors, name)
				}
			}
		}
		expenses = append(expenses, easysplit.Expense{Creditor: creditor, Debtors: debtors, Amount: amount})
	}
	return expenses, members, nil
}
