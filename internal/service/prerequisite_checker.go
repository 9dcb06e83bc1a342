package service

import (
	"strings"

	"github.com/noah-isme/study-plan-api/internal/models"
)

// PrerequisiteChecker reports missing prerequisites for queried courses.
type PrerequisiteChecker struct {
	policy *Policy
}

// NewPrerequisiteChecker constructs a checker.
func NewPrerequisiteChecker(policy *Policy) *PrerequisiteChecker {
	if policy == nil {
		policy = DefaultPolicy()
	}
	return &PrerequisiteChecker{policy: policy}
}

// PassedCourses maps passed course codes to their grade. With the in-progress policy
// enabled, current-term courses count as passed with an empty grade.
func (c *PrerequisiteChecker) PassedCourses(records []models.TranscriptRecord, inProgress []string) map[string]string {
	passed := make(map[string]string, len(records))
	for _, rec := range records {
		if rec.Status == models.CourseStatusPass {
			passed[strings.TrimSpace(rec.CourseCode)] = rec.Grade
		}
	}
	if c.policy.InProgressSatisfiesPrereq {
		for _, code := range inProgress {
			if _, ok := passed[code]; !ok {
				passed[code] = ""
			}
		}
	}
	return passed
}

// Check returns one result per queried code in query order. Repeated codes yield repeated rows.
func (c *PrerequisiteChecker) Check(courses []string, passed map[string]string, catalog *CatalogIndex) []models.PrerequisiteResult {
	results := make([]models.PrerequisiteResult, 0, len(courses))
	for _, code := range courses {
		entry, ok := catalog.Lookup(code)
		if !ok {
			results = append(results, models.PrerequisiteResult{CourseCode: code, Status: models.PrerequisiteNoInfo})
			continue
		}
		var missing []string
		for _, prereq := range entry.Prerequisites() {
			if _, done := passed[prereq]; !done {
				missing = append(missing, prereq)
			}
		}
		result := models.PrerequisiteResult{CourseCode: code, Status: models.PrerequisiteMet}
		if len(missing) > 0 {
			result.Status = models.PrerequisiteMissing
			result.Missing = missing
		}
		results = append(results, result)
	}
	return results
}
