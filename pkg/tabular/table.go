// Package tabular reads column-addressed tables from CSV, TSV, XLSX and HTML sources.
package tabular

import (
	"fmt"
	"strings"
)

// Table is an in-memory table addressed by column name.
type Table struct {
	Headers []string
	Rows    [][]string
	index   map[string]int
}

// New builds a table, trimming header cells. Duplicate headers resolve to the first column.
func New(headers []string, rows [][]string) *Table {
	t := &Table{
		Headers: make([]string, len(headers)),
		Rows:    rows,
		index:   make(map[string]int, len(headers)),
	}
	for i, h := range headers {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		t.Headers[i] = h
		if _, exists := t.index[h]; !exists && h != "" {
			t.index[h] = i
		}
	}
	return t
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Has reports whether the column exists.
func (t *Table) Has(column string) bool {
	if t == nil {
		return false
	}
	_, ok := t.index[column]
	return ok
}

// Require fails with *MissingColumnsError when any column is absent.
func (t *Table) Require(columns ...string) error {
	var missing []string
	for _, col := range columns {
		if !t.Has(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return &MissingColumnsError{Columns: missing}
	}
	return nil
}

// Value returns the cell at row/column, or "" when the column or cell is absent.
func (t *Table) Value(row int, column string) string {
	if t == nil || row < 0 || row >= len(t.Rows) {
		return ""
	}
	idx, ok := t.index[column]
	if !ok || idx >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][idx]
}

// MissingColumnsError lists required columns absent from a table.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing required column(s): %s", strings.Join(e.Columns, ", "))
}

func fromRecords(records [][]string) (*Table, error) {
	header := -1
	for i, rec := range records {
		if !blank(rec) {
			header = i
			break
		}
	}
	if header < 0 {
		return nil, ErrNoHeader
	}
	rows := make([][]string, 0, len(records)-header-1)
	for _, rec := range records[header+1:] {
		if blank(rec) {
			continue
		}
		rows = append(rows, rec)
	}
	return New(records[header], rows), nil
}

func blank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
