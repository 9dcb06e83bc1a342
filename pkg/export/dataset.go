// Package export renders report tables into downloadable CSV, PDF and XLSX documents.
package export

import "fmt"

// Dataset is one report table ready for rendering. Rows are positional and may be shorter than Headers.
type Dataset struct {
	Title   string
	Headers []string
	Rows    [][]string
}

func (d Dataset) validate(format string) error {
	if len(d.Headers) == 0 {
		return fmt.Errorf("%s requires at least one header", format)
	}
	return nil
}

func (d Dataset) cell(row []string, col int) string {
	if col < len(row) {
		return row[col]
	}
	return ""
}
