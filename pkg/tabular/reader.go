package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/xuri/excelize/v2"
)

// Format identifies a supported table encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatTSV  Format = "tsv"
	FormatXLSX Format = "xlsx"
	FormatHTML Format = "html"
)

var (
	// ErrNoHeader is returned when a source has no non-blank row to use as header.
	ErrNoHeader = errors.New("table has no header row")
	// ErrUnsupportedFormat is returned for file extensions without a reader.
	ErrUnsupportedFormat = errors.New("unsupported table format")
)

// FormatFromFilename maps an upload's extension to a Format.
func FormatFromFilename(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(strings.TrimSpace(name))) {
	case ".csv":
		return FormatCSV, nil
	case ".tsv", ".tab":
		return FormatTSV, nil
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	case ".html", ".htm":
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
}

// Read decodes r according to format.
func Read(r io.Reader, format Format) (*Table, error) {
	switch format {
	case FormatCSV:
		return ReadDelimited(r, ',')
	case FormatTSV:
		return ReadDelimited(r, '\t')
	case FormatXLSX:
		return ReadXLSX(r)
	case FormatHTML:
		return ReadHTML(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// ReadDelimited parses delimiter-separated text with a header row.
func ReadDelimited(r io.Reader, delimiter rune) (*Table, error) {
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse delimited table: %w", err)
	}
	return fromRecords(records)
}

// ReadXLSX reads the first worksheet of a spreadsheet.
func ReadXLSX(r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer f.Close() //nolint:errcheck

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, ErrNoHeader
	}
	records, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read worksheet %s: %w", sheet, err)
	}
	return fromRecords(records)
}

// ReadHTML reads the first <table> of an HTML document. Header cells come from the first row.
func ReadHTML(r io.Reader) (*Table, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil, ErrNoHeader
	}

	var records [][]string
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		var record []string
		tr.Children().Filter("th, td").Each(func(_ int, cell *goquery.Selection) {
			record = append(record, strings.Join(strings.Fields(cell.Text()), " "))
		})
		records = append(records, record)
	})
	return fromRecords(records)
}
