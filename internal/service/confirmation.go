package service

import (
	"fmt"
	"strings"

	"github.com/noah-isme/study-plan-api/internal/models"
)

// ConfirmedRow flattens Met courses and their selection groups into code, GROUP, code, GROUP, ...
// Each Met course pairs with every selection row of the same code.
func ConfirmedRow(results []models.PrerequisiteResult, selection []models.SelectedCourse) []string {
	groups := make(map[string][]string, len(selection))
	for _, sel := range selection {
		groups[sel.CourseCode] = append(groups[sel.CourseCode], sel.Group)
	}
	row := make([]string, 0, len(results)*2)
	for _, res := range results {
		if res.Status != models.PrerequisiteMet {
			continue
		}
		matches := groups[res.CourseCode]
		if len(matches) == 0 {
			row = append(row, res.CourseCode, "")
			continue
		}
		for _, group := range matches {
			row = append(row, res.CourseCode, strings.ToUpper(group))
		}
	}
	return row
}

// ConfirmedHeaders names the columns of a confirmed row Col1..ColN.
func ConfirmedHeaders(n int) []string {
	headers := make([]string, n)
	for i := range headers {
		headers[i] = fmt.Sprintf("Col%d", i+1)
	}
	return headers
}
