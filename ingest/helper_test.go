package ingest

import (
	"strings"
	"testing"
)

// tableOf builds an in-memory table from pipe-separated cells, numbering
// rows the way a loaded sheet would (first data row is 2).
func tableOf(t *testing.T, header string, rows ...string) *Table {
	t.Helper()
	tab := &Table{Path: "test.csv", Header: splitCells(header)}
	for i, r := range rows {
		tab.Rows = append(tab.Rows, Row{Num: i + 2, Cells: splitCells(r)})
	}
	return tab
}

func splitCells(s string) []string {
	cells := strings.Split(s, "|")
	for i := range cells {
		cells[i] = strings.TrimSpace(cells[i])
	}
	return cells
}
