package renderer

import (
	"strings"
	"testing"

	easysplit "github.com/cabinz/easy-split"
	"github.com/cabinz/easy-split/ingest"
	"github.com/stretchr/testify/assert"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// parseDoc parses generated markdown with the GFM table extension. The
// reports are only useful if they parse back into the blocks they were
// meant to be, so the tests check structure, not just substrings.
func parseDoc(doc string) (ast.Node, []byte) {
	source := []byte(doc)
	root := goldmark.New(goldmark.WithExtensions(extension.Table)).Parser().Parse(text.NewReader(source))
	return root, source
}

// nodeText concatenates every text segment under n.
func nodeText(n ast.Node, source []byte) string {
	var sb strings.Builder
	ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			if t, ok := c.(*ast.Text); ok {
				sb.Write(t.Segment.Value(source))
			}
		}
		return ast.WalkContinue, nil
	})
	return sb.String()
}

// parseTables returns every table in the document as rows of cell texts,
// header row first.
func parseTables(t *testing.T, doc string) [][][]string {
	t.Helper()
	root, source := parseDoc(doc)

	var tables [][][]string
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if _, ok := n.(*east.Table); !ok {
			return ast.WalkContinue, nil
		}
		var rows [][]string
		for row := n.FirstChild(); row != nil; row = row.NextSibling() {
			var cells []string
			for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
				cells = append(cells, nodeText(cell, source))
			}
			rows = append(rows, cells)
		}
		tables = append(tables, rows)
		return ast.WalkSkipChildren, nil
	})
	return tables
}

// topLevelParagraphs returns the text of every paragraph sitting directly
// under the document root.
func topLevelParagraphs(t *testing.T, doc string) []string {
	t.Helper()
	root, source := parseDoc(doc)

	var out []string
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		if _, ok := n.(*ast.Paragraph); ok {
			out = append(out, nodeText(n, source))
		}
	}
	return out
}

// listItems returns the text of every bullet item in the document.
func listItems(t *testing.T, doc string) []string {
	t.Helper()
	root, source := parseDoc(doc)

	var out []string
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if _, ok := n.(*ast.ListItem); ok {
			out = append(out, nodeText(n, source))
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return out
}

func TestPlan(t *testing.T) {
	p := &PlanReport{
		Members:  []string{"Alice", "Bob", "Carol"},
		Currency: "USD",
		Payments: []easysplit.Edge{
			{Creditor: "Alice", Debtor: "Bob", Amount: easysplit.A(50)},
			{Creditor: "Alice", Debtor: "Carol", Amount: easysplit.A(1234.5)},
		},
	}
	got := Plan(p)

	assert.Contains(t, got, "Members: Alice, Bob, Carol")
	assert.Contains(t, got, "## Settlement Plan")

	tables := parseTables(t, got)
	if assert.Len(t, tables, 1) {
		assert.Equal(t, [][]string{
			{"#", "Creditor", "", "Debtor", "Amount (USD)"},
			{"1", "Alice", "<--", "Bob", "$50.00"},
			{"2", "Alice", "<--", "Carol", "$1,234.50"},
		}, tables[0])
	}
}

func TestPlanUnitless(t *testing.T) {
	p := &PlanReport{
		Members:  []string{"Alice", "Bob"},
		Payments: []easysplit.Edge{{Creditor: "Alice", Debtor: "Bob", Amount: easysplit.A(12.5)}},
	}
	got := Plan(p)

	tables := parseTables(t, got)
	if assert.Len(t, tables, 1) {
		assert.Equal(t, []string{"#", "Creditor", "", "Debtor", "Amount"}, tables[0][0])
		assert.Equal(t, []string{"1", "Alice", "<--", "Bob", "12.50"}, tables[0][1])
	}
}

func TestPlanSecondaryCurrency(t *testing.T) {
	p := &PlanReport{
		Members:       []string{"Alice", "Bob"},
		Currency:      "USD",
		Secondary:     "HKD",
		SecondaryRate: easysplit.A(7.8),
		Payments:      []easysplit.Edge{{Creditor: "Alice", Debtor: "Bob", Amount: easysplit.A(10)}},
	}
	got := Plan(p)

	tables := parseTables(t, got)
	if assert.Len(t, tables, 1) {
		assert.Equal(t, []string{"#", "Creditor", "", "Debtor", "Amount (USD)", "Amount (HKD)"}, tables[0][0])
		assert.Equal(t, easysplit.A(78).Display("HKD"), tables[0][1][5])
	}
}

func TestPlanEmpty(t *testing.T) {
	got := Plan(&PlanReport{Members: []string{"Alice", "Bob"}})

	assert.Contains(t, got, "No transactions needed - everyone is settled!")
	assert.Empty(t, parseTables(t, got))
}

func TestBalances(t *testing.T) {
	b := &BalanceReport{
		Creditors: []Entry{{Name: "Alice", Amount: easysplit.A(30)}},
		Debtors:   []Entry{{Name: "Bob", Amount: easysplit.A(10)}, {Name: "Carol", Amount: easysplit.A(20)}},
		Settled:   []string{"Dave"},
	}
	got := Balances(b)

	assert.Contains(t, got, "## Creditors")
	assert.Contains(t, got, "## Debtors")
	assert.Contains(t, got, "## Settled")
	assert.Contains(t, got, "Dave")

	tables := parseTables(t, got)
	if assert.Len(t, tables, 2) {
		assert.Equal(t, [][]string{
			{"Member", "Amount"},
			{"Alice", "30.00"},
		}, tables[0])
		assert.Equal(t, [][]string{
			{"Member", "Amount"},
			{"Bob", "10.00"},
			{"Carol", "20.00"},
		}, tables[1])
	}
}

func TestBalancesSecondaryCurrency(t *testing.T) {
	b := &BalanceReport{
		Currency:      "USD",
		Secondary:     "EUR",
		SecondaryRate: easysplit.A(0.9),
		Creditors:     []Entry{{Name: "Alice", Amount: easysplit.A(100)}},
	}
	got := Balances(b)

	tables := parseTables(t, got)
	if assert.Len(t, tables, 1) {
		assert.Equal(t, []string{"Member", "Amount (USD)", "Amount (EUR)"}, tables[0][0])
		assert.Equal(t, easysplit.A(90).Display("EUR"), tables[0][1][2])
	}
}

func TestBalancesEmptySides(t *testing.T) {
	got := Balances(&BalanceReport{Settled: []string{"Alice", "Bob"}})

	assert.Empty(t, parseTables(t, got))
	assert.Contains(t, got, "None.")
	assert.Contains(t, got, "Alice, Bob")
}

func TestIssuesClean(t *testing.T) {
	got := Issues(&ingest.Result{})

	assert.Equal(t, "✓ Data validation passed. No issues found.", strings.TrimSpace(got))
}

func TestIssuesReport(t *testing.T) {
	r := &ingest.Result{
		Errors: []ingest.Issue{
			{Row: 2, Column: "Creditor", Message: "Creditor cannot be empty", Severity: ingest.SeverityError},
			{Row: 4, Column: "Amount", Message: "Invalid amount value: abc", Severity: ingest.SeverityError},
		},
		Warnings: []ingest.Issue{
			{Row: 3, Column: "Amount", Message: "Amount is 0 (transaction will be ignored)", Severity: ingest.SeverityWarning},
		},
	}
	got := Issues(r)

	assert.Contains(t, got, "Validation Errors Found:")

	items := listItems(t, got)
	if assert.Len(t, items, 3) {
		assert.Equal(t, "✗ Row 2, Column 'Creditor': Creditor cannot be empty", items[0])
		assert.Equal(t, "✗ Row 4, Column 'Amount': Invalid amount value: abc", items[1])
		assert.Equal(t, "⚠ Row 3, Column 'Amount': Amount is 0 (transaction will be ignored)", items[2])
	}

	// The summary must stand apart from the list, or markdown folds it
	// into the last bullet.
	paras := topLevelParagraphs(t, got)
	assert.Contains(t, paras, "Found 2 error(s) and 1 warning(s).")
	assert.Contains(t, paras, "Please fix errors before processing.")
}

func TestIssuesWarningsOnly(t *testing.T) {
	r := &ingest.Result{
		Warnings: []ingest.Issue{
			{Row: 3, Column: "Amount", Message: "Amount is 0 (transaction will be ignored)", Severity: ingest.SeverityWarning},
		},
	}
	got := Issues(r)

	assert.Contains(t, got, "Validation Errors Found:")
	assert.Contains(t, got, "Found 0 error(s) and 1 warning(s).")
	assert.NotContains(t, got, "Please fix errors before processing.")
}
