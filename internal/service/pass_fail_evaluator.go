package service

import (
	"go.uber.org/zap"

	"github.com/noah-isme/study-plan-api/internal/models"
)

// PassFailEvaluator joins normalized records with the catalog and applies the program threshold.
type PassFailEvaluator struct {
	policy *Policy
	logger *zap.Logger
}

// NewPassFailEvaluator constructs an evaluator.
func NewPassFailEvaluator(policy *Policy, logger *zap.Logger) *PassFailEvaluator {
	if policy == nil {
		policy = DefaultPolicy()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PassFailEvaluator{policy: policy, logger: logger}
}

// Evaluate returns one evaluated record per input record, in input order.
// Codes missing from the catalog fall into the default program bucket with sentinel placement.
func (e *PassFailEvaluator) Evaluate(records []models.TranscriptRecord, catalog *CatalogIndex) []models.TranscriptRecord {
	out := make([]models.TranscriptRecord, len(records))
	unmapped := 0
	for i, rec := range records {
		entry, ok := catalog.Lookup(rec.CourseCode)
		if ok {
			rec.CourseName = entry.CourseName
			rec.Program = entry.Program
			rec.Level = entry.Level
			rec.Term = entry.Term
		} else {
			unmapped++
			rec.CourseName = e.policy.UnmappedCourseName
			rec.Program = e.policy.DefaultProgram
			rec.Level = models.Level(e.policy.UnmappedPlacement)
			rec.Term = models.Term(e.policy.UnmappedPlacement)
		}
		rec.Status = e.status(rec.Program, rec.Grade)
		out[i] = rec
	}
	if unmapped > 0 {
		e.logger.Debug("transcript courses missing from catalog", zap.Int("count", unmapped))
	}
	return out
}

func (e *PassFailEvaluator) status(program models.Program, grade string) models.CourseStatus {
	if e.policy.Passes(string(program), grade) {
		return models.CourseStatusPass
	}
	return models.CourseStatusFail
}

// FailingCourses filters evaluated records down to failures.
func FailingCourses(records []models.TranscriptRecord) []models.TranscriptRecord {
	out := make([]models.TranscriptRecord, 0)
	for _, rec := range records {
		if rec.Status == models.CourseStatusFail {
			out = append(out, rec)
		}
	}
	return out
}
