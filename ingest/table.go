// Package ingest reads shared-expense records from tabular files and turns
// them into expenses ready to fold into a balance graph. It covers the
// steps between a file on disk and the graph: loading the sheet, working
// out which column holds what, validating the cells, and building the
// expense list.
package ingest

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tealeg/xlsx"
)

// Table is a sheet held in memory: the header row and the data rows below
// it. Cells are trimmed on load and rows with no content at all are
// dropped.
type Table struct {
	Path   string
	Header []string
	Rows   []Row
}

// Row is one data row. Num is the 1-based row number counting the header,
// so the first data row is row 2, matching what users see in their
// spreadsheet editor.
type Row struct {
	Num   int
	Cells []string
}

// Cell returns the cell at column i, or "" when the row is shorter.
func (r Row) Cell(i int) string {
	if i < 0 || i >= len(r.Cells) {
		return ""
	}
	return r.Cells[i]
}

// Column returns the index of the named header column, matching
// case-insensitively like the auto-detection, or -1 when absent.
func (t *Table) Column(name string) int {
	for i, col := range t.Header {
		if strings.EqualFold(col, name) {
			return i
		}
	}
	return -1
}

// ReadTable loads the file into a Table, dispatching on its suffix:
// .csv, .tsv, and .xlsx (first sheet) are supported.
func ReadTable(path string) (*Table, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return readCSV(path, ',')
	case ".tsv":
		return readCSV(path, '\t')
	case ".xlsx":
		return readXLSX(path)
	default:
		if ext == "" {
			ext = "no suffix"
		}
		return nil, fmt.Errorf("unsupported format %q: supported formats are .csv, .tsv, .xlsx", ext)
	}
}

func readCSV(path string, comma rune) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open data file %q: %w", path, err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.Comma = comma
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("could not parse data file %q: %w", path, err)
	}
	return tableFrom(path, records), nil
}

func readXLSX(path string) (*Table, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not open data file %q: %w", path, err)
	}
	if len(f.Sheets) == 0 {
		return nil, fmt.Errorf("data file %q has no sheets", path)
	}
	var records [][]string
	for _, row := range f.Sheets[0].Rows {
		var cells []string
		for _, cell := range row.Cells {
			cells = append(cells, cell.String())
		}
		records = append(records, cells)
	}
	return tableFrom(path, records), nil
}

func tableFrom(path string, records [][]string) *Table {
	t := &Table{Path: path}
	for i, rec := range records {
		cells := make([]string, len(rec))
		blank := true
		for j, c := range rec {
			cells[j] = strings.TrimSpace(c)
			if cells[j] != "" {
				blank = false
			}
		}
		if i == 0 {
			t.Header = cells
			continue
		}
		if blank {
			continue
		}
		// Row numbers stay anchored to the file, not to the kept rows.
		t.Rows = append(t.Rows, Row{Num: i + 1, Cells: cells})
	}
	return t
}
