package renderer

import (
	"bytes"
	"strings"

	easysplit "github.com/cabinz/easy-split"
	md "github.com/nao1215/markdown"
)

// Entry is one participant's net position, always a positive magnitude.
type Entry struct {
	Name   string
	Amount easysplit.Amount
}

// BalanceReport is the per-participant view of a graph: who is owed
// money, who owes it, and who is square. Both lists keep the graph's
// first-seen participant order.
type BalanceReport struct {
	Currency      string
	Secondary     string
	SecondaryRate easysplit.Amount
	Creditors     []Entry
	Debtors       []Entry
	Settled       []string
}

// Balances renders the creditor and debtor summaries as markdown.
func Balances(b *BalanceReport) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H2("Creditors")
	balanceTable(doc, b, b.Creditors)
	doc.H2("Debtors")
	balanceTable(doc, b, b.Debtors)

	if len(b.Settled) > 0 {
		doc.H2("Settled")
		doc.PlainText(strings.Join(b.Settled, ", "))
	}
	return doc.String()
}

func balanceTable(doc *md.Markdown, b *BalanceReport, entries []Entry) {
	if len(entries) == 0 {
		doc.PlainText("None.")
		return
	}
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Member", amountHeader(b.Currency)},
	}
	if b.Secondary != "" {
		table.Alignment = append(table.Alignment, md.AlignRight)
		table.Header = append(table.Header, amountHeader(b.Secondary))
	}
	for _, e := range entries {
		row := []string{e.Name, e.Amount.Display(b.Currency)}
		if b.Secondary != "" {
			row = append(row, e.Amount.Mul(b.SecondaryRate).Display(b.Secondary))
		}
		table.Rows = append(table.Rows, row)
	}
	doc.Table(table)
}
