package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/noah-isme/study-plan-api/internal/models"
	appErrors "github.com/noah-isme/study-plan-api/pkg/errors"
	"github.com/noah-isme/study-plan-api/pkg/tabular"
)

// Column names of the uploaded tables.
const (
	ColCourseCode = "Course Code"
	ColCourseName = "Course Name"
	ColProgram    = "Program"
	ColLevel      = "Level"
	ColTerm       = "Term"
	ColCredits    = "Credits"
	ColPrereq1    = "Prereq 1"
	ColPrereq2    = "Prereq 2"

	ColRank          = "Rank"
	ColHistoryCourse = "Course name"
	ColGrade         = "Grade"

	ColGroup = "Group"
)

var (
	catalogColumns   = []string{ColCourseCode, ColCourseName, ColProgram, ColLevel, ColTerm, ColCredits, ColPrereq1, ColPrereq2}
	historyColumns   = []string{ColRank, ColHistoryCourse, ColGrade}
	selectionColumns = []string{ColCourseCode}
)

// ParseCatalog converts a requirements table into catalog entries.
// Rows without a course code are skipped; an unreadable credits cell is an input-shape error.
func ParseCatalog(table *tabular.Table) ([]models.CatalogEntry, error) {
	if err := requireColumns(table, "university requirements", catalogColumns); err != nil {
		return nil, err
	}
	entries := make([]models.CatalogEntry, 0, table.Len())
	for row := 0; row < table.Len(); row++ {
		code := strings.TrimSpace(table.Value(row, ColCourseCode))
		if code == "" {
			continue
		}
		credits, err := parseCredits(table.Value(row, ColCredits))
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrInputShape,
				fmt.Sprintf("university requirements data row %d (%s): invalid credits: %v", row+1, code, err))
		}
		entries = append(entries, models.CatalogEntry{
			CourseCode: code,
			CourseName: table.Value(row, ColCourseName),
			Program:    models.Program(table.Value(row, ColProgram)),
			Level:      models.Level(table.Value(row, ColLevel)),
			Term:       models.Term(table.Value(row, ColTerm)),
			Credits:    credits,
			Prereq1:    table.Value(row, ColPrereq1),
			Prereq2:    table.Value(row, ColPrereq2),
		})
	}
	return entries, nil
}

// ParseTranscript converts a student history table into raw transcript rows.
func ParseTranscript(table *tabular.Table) ([]models.RawTranscriptRow, error) {
	if err := requireColumns(table, "student history", historyColumns); err != nil {
		return nil, err
	}
	rows := make([]models.RawTranscriptRow, table.Len())
	for row := range rows {
		rows[row] = models.RawTranscriptRow{
			Rank:        table.Value(row, ColRank),
			CourseField: table.Value(row, ColHistoryCourse),
			GradeField:  table.Value(row, ColGrade),
		}
	}
	return rows, nil
}

// ParseSelection parses the tab-delimited selection block.
func ParseSelection(block string) ([]models.SelectedCourse, bool, error) {
	table, err := tabular.ReadDelimited(strings.NewReader(block), '\t')
	if err != nil {
		return nil, false, appErrors.Clone(appErrors.ErrInputShape, fmt.Sprintf("error parsing selected courses: %v", err))
	}
	if err := requireColumns(table, "selected courses", selectionColumns); err != nil {
		return nil, false, err
	}
	hasGroup := table.Has(ColGroup)
	out := make([]models.SelectedCourse, 0, table.Len())
	for row := 0; row < table.Len(); row++ {
		code := strings.TrimSpace(table.Value(row, ColCourseCode))
		if code == "" {
			continue
		}
		out = append(out, models.SelectedCourse{
			CourseCode: code,
			Group:      strings.TrimSpace(table.Value(row, ColGroup)),
		})
	}
	return out, hasGroup, nil
}

func requireColumns(table *tabular.Table, name string, columns []string) error {
	err := table.Require(columns...)
	var missing *tabular.MissingColumnsError
	if errors.As(err, &missing) {
		return appErrors.Clone(appErrors.ErrInputShape,
			fmt.Sprintf("%s table is missing required column(s): %s", name, strings.Join(missing.Columns, ", ")))
	}
	return err
}

func parseCredits(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, fmt.Errorf("credits must not be negative: %s", raw)
	}
	return v, nil
}
