package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/study-plan-api/internal/models"
	appErrors "github.com/noah-isme/study-plan-api/pkg/errors"
	"github.com/noah-isme/study-plan-api/pkg/tabular"
)

const requirementsCSV = "Course Code,Course Name,Program,Level,Term,Credits,Prereq 1,Prereq 2\n" +
	"CS101,Intro,Eng,1Freshman,Fall,3,-,-\n" +
	",,,,,,,\n" +
	"CS201,Data Structures,Eng,2Sophomore,Spring,4,CS101,MATH101\n"

func readCSV(t *testing.T, content string) *tabular.Table {
	t.Helper()
	table, err := tabular.ReadDelimited(strings.NewReader(content), ',')
	require.NoError(t, err)
	return table
}

func TestParseCatalog(t *testing.T) {
	entries, err := ParseCatalog(readCSV(t, requirementsCSV))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, models.CatalogEntry{
		CourseCode: "CS201", CourseName: "Data Structures", Program: "Eng", Level: "2Sophomore",
		Term: "Spring", Credits: 4, Prereq1: "CS101", Prereq2: "MATH101",
	}, entries[1])
	assert.Empty(t, entries[0].Prerequisites())
}

func TestParseCatalogMissingColumn(t *testing.T) {
	_, err := ParseCatalog(readCSV(t, "Course Code,Course Name,Program,Level,Term,Credits\nCS101,Intro,Eng,1Freshman,Fall,3\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrInputShape))
	assert.Contains(t, err.Error(), "Prereq 1, Prereq 2")
}

func TestParseCatalogBadCredits(t *testing.T) {
	_, err := ParseCatalog(readCSV(t, "Course Code,Course Name,Program,Level,Term,Credits,Prereq 1,Prereq 2\nCS101,Intro,Eng,1Freshman,Fall,three,-,-\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrInputShape))
	assert.Contains(t, err.Error(), "CS101")
}

func TestParseTranscript(t *testing.T) {
	rows, err := ParseTranscript(readCSV(t, "Rank,Course name,Grade\n1,CS101-Intro-F24,(B+)\n"))
	require.NoError(t, err)
	assert.Equal(t, []models.RawTranscriptRow{{Rank: "1", CourseField: "CS101-Intro-F24", GradeField: "(B+)"}}, rows)

	_, err = ParseTranscript(readCSV(t, "Course,Grade\nCS101,(A)\n"))
	assert.True(t, errors.Is(err, appErrors.ErrInputShape))
}

func TestParseSelection(t *testing.T) {
	selection, hasGroup, err := ParseSelection("Course Code\tGroup\nCS101\ta1\n\t\nMATH101\tb2\n")
	require.NoError(t, err)
	assert.True(t, hasGroup)
	assert.Equal(t, []models.SelectedCourse{{CourseCode: "CS101", Group: "a1"}, {CourseCode: "MATH101", Group: "b2"}}, selection)

	selection, hasGroup, err = ParseSelection("Course Code\nCS101\n")
	require.NoError(t, err)
	assert.False(t, hasGroup)
	assert.Len(t, selection, 1)
}

func TestParseSelectionWithoutCodeColumn(t *testing.T) {
	_, _, err := ParseSelection("Code\tGroup\nCS101\ta\n")
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrInputShape))
}
