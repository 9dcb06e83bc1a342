package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestCSVExporterPadsShortRows(t *testing.T) {
	out, err := NewCSVExporter(false).Render(Dataset{Headers: []string{"A", "B"}, Rows: [][]string{{"1"}, {"2", "3", "ignored"}}})
	require.NoError(t, err)
	assert.Equal(t, "A,B\n1,\n2,3\n", string(out))
}

func TestCSVExporterWritesBOMAndNeutralizesFormulas(t *testing.T) {
	out, err := NewCSVExporter(true).Render(Dataset{
		Headers: []string{"Course Name", "Credits"},
		Rows:    [][]string{{"=HYPERLINK(\"x\")", "-3"}, {"-", "@sum"}},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, utf8BOM))
	body := string(out[len(utf8BOM):])
	assert.Contains(t, body, `"'=HYPERLINK(""x"")",-3`)
	assert.Contains(t, body, "-,'@sum")
}

func TestExportersRequireHeaders(t *testing.T) {
	_, err := NewCSVExporter(false).Render(Dataset{})
	assert.Error(t, err)
	_, err = NewPDFExporter().Render(Dataset{})
	assert.Error(t, err)
	_, err = NewXLSXExporter().Render(Dataset{})
	assert.Error(t, err)
}

func TestPDFExporterWideTable(t *testing.T) {
	headers := []string{"Level", "Term", "Course Code", "Course Name", "Status", "Missing", "Enrollment"}
	rows := make([][]string, 0, 80)
	for i := 0; i < 80; i++ {
		rows = append(rows, []string{"1Freshman", "Fall", "CS101", "Intro", "Met", "", "Unenrolled"})
	}
	out, err := NewPDFExporter().Render(Dataset{Title: "Recommended Courses", Headers: headers, Rows: rows})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestXLSXExporterNamesSheetAfterTitle(t *testing.T) {
	out, err := NewXLSXExporter().Render(Dataset{Title: "Failing Courses", Headers: []string{"Course Code"}, Rows: [][]string{{"MATH101"}}})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, "Failing Courses", f.GetSheetName(0))
	value, err := f.GetCellValue("Failing Courses", "A2")
	require.NoError(t, err)
	assert.Equal(t, "MATH101", value)
}

func TestSheetName(t *testing.T) {
	assert.Equal(t, "Recommended Courses up to 3Juni", sheetName("Recommended Courses up to 3Junior"))
	assert.Equal(t, "ab", sheetName("a/b"))
}
