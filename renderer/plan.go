package renderer

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	easysplit "github.com/cabinz/easy-split"
	md "github.com/nao1215/markdown"
)

// PlanReport is everything the settlement plan view needs: the member
// roster, the payments of the reduced graph in their deterministic order,
// and the display currencies. Currency may be empty for unitless amounts.
// Secondary, when set, adds a converted column computed with SecondaryRate
// (units of the secondary currency per unit of the primary one).
type PlanReport struct {
	Members       []string
	Currency      string
	Secondary     string
	SecondaryRate easysplit.Amount
	Payments      []easysplit.Edge
}

// Plan renders the settlement plan as markdown: the member roster, then
// one numbered row per payment, the arrow reading "debtor pays creditor".
func Plan(p *PlanReport) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	if len(p.Members) > 0 {
		doc.PlainText("Members: " + strings.Join(p.Members, ", "))
	}
	doc.H2("Settlement Plan")

	if len(p.Payments) == 0 {
		doc.PlainText("No transactions needed - everyone is settled!")
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignCenter,
			md.AlignLeft,
			md.AlignRight,
		},
		Header: []string{"#", "Creditor", "", "Debtor", amountHeader(p.Currency)},
	}
	if p.Secondary != "" {
		table.Alignment = append(table.Alignment, md.AlignRight)
		table.Header = append(table.Header, amountHeader(p.Secondary))
	}
	for i, e := range p.Payments {
		row := []string{strconv.Itoa(i + 1), e.Creditor, "<--", e.Debtor, e.Amount.Display(p.Currency)}
		if p.Secondary != "" {
			row = append(row, e.Amount.Mul(p.SecondaryRate).Display(p.Secondary))
		}
		table.Rows = append(table.Rows, row)
	}
	doc.Table(table)

	return doc.String()
}

func amountHeader(currency string) string {
	if currency == "" {
		return "Amount"
	}
	return fmt.Sprintf("Amount (%s)", currency)
}
