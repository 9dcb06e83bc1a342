package service

import (
	"strings"

	"github.com/noah-isme/study-plan-api/internal/models"
	appErrors "github.com/noah-isme/study-plan-api/pkg/errors"
)

// RecommendationEngine proposes not-yet-passed catalog courses up to a target level.
type RecommendationEngine struct {
	policy  *Policy
	prereqs *PrerequisiteChecker
}

// NewRecommendationEngine constructs an engine.
func NewRecommendationEngine(policy *Policy, prereqs *PrerequisiteChecker) *RecommendationEngine {
	if policy == nil {
		policy = DefaultPolicy()
	}
	if prereqs == nil {
		prereqs = NewPrerequisiteChecker(policy)
	}
	return &RecommendationEngine{policy: policy, prereqs: prereqs}
}

// CoursesUpToLevel returns catalog entries whose level is at or below target.
// An unrecognized target is a configuration error.
func (e *RecommendationEngine) CoursesUpToLevel(catalog *CatalogIndex, target string) ([]models.CatalogEntry, error) {
	allowed, err := e.policy.Levels.UpTo(target)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrInvalidLevel, err.Error())
	}
	var out []models.CatalogEntry
	for _, entry := range catalog.Entries() {
		pos, ok := e.policy.Levels.Position(string(entry.Level))
		if !ok {
			continue
		}
		if _, in := allowed[pos]; in {
			out = append(out, entry)
		}
	}
	return out, nil
}

// Recommend lists candidate courses in catalog order. term narrows the candidates when set.
func (e *RecommendationEngine) Recommend(catalog *CatalogIndex, records []models.TranscriptRecord, inProgress []string, level string, term string) ([]models.Recommendation, error) {
	courses, err := e.CoursesUpToLevel(catalog, level)
	if err != nil {
		return nil, err
	}

	completed := make(map[string]struct{})
	failed := make(map[string]struct{})
	for _, rec := range records {
		code := strings.TrimSpace(rec.CourseCode)
		switch rec.Status {
		case models.CourseStatusPass:
			completed[code] = struct{}{}
		case models.CourseStatusFail:
			failed[code] = struct{}{}
		}
	}

	term = strings.TrimSpace(term)
	candidates := make([]string, 0, len(courses))
	for _, entry := range courses {
		if _, done := completed[entry.CourseCode]; done {
			continue
		}
		if term != "" && !strings.EqualFold(string(entry.Term), term) {
			continue
		}
		candidates = append(candidates, entry.CourseCode)
	}

	checks := e.prereqs.Check(candidates, e.prereqs.PassedCourses(records, inProgress), catalog)
	out := make([]models.Recommendation, 0, len(checks))
	for _, check := range checks {
		rec := models.Recommendation{
			CourseCode:      check.CourseCode,
			Status:          check.Status,
			Missing:         check.Missing,
			EnrollmentState: models.EnrollmentUnenrolled,
		}
		if entry, ok := catalog.Lookup(check.CourseCode); ok {
			rec.Level = entry.Level
			rec.Term = entry.Term
			rec.CourseName = entry.CourseName
		}
		if _, retake := failed[check.CourseCode]; retake {
			rec.EnrollmentState = models.EnrollmentFail
		}
		out = append(out, rec)
	}
	return out, nil
}
