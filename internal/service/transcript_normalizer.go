package service

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/noah-isme/study-plan-api/internal/models"
)

var gradeAnnotation = regexp.MustCompile(`\((.*?)\)`)

// NormalizedTranscript is the canonical transcript plus courses still in progress.
type NormalizedTranscript struct {
	Records    []models.TranscriptRecord
	InProgress []string
}

// TranscriptNormalizer reduces raw history rows to one best-grade record per course code.
type TranscriptNormalizer struct {
	policy *Policy
	logger *zap.Logger
}

// NewTranscriptNormalizer constructs a normalizer.
func NewTranscriptNormalizer(policy *Policy, logger *zap.Logger) *TranscriptNormalizer {
	if policy == nil {
		policy = DefaultPolicy()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TranscriptNormalizer{policy: policy, logger: logger}
}

// Normalize never fails: malformed rows either drop out (no usable code) or carry an empty grade.
// Records come back sorted by course code.
func (n *TranscriptNormalizer) Normalize(rows []models.RawTranscriptRow) NormalizedTranscript {
	best := make(map[string]int)
	var records []models.TranscriptRecord
	var inProgress []string
	seenInProgress := make(map[string]struct{})

	for _, row := range rows {
		field := strings.TrimSpace(row.CourseField)
		code := CourseCodeFromField(field)
		current := n.isCurrentTerm(field, code)
		if !validCourseCode(code) {
			continue
		}
		if current {
			if _, seen := seenInProgress[code]; !seen {
				seenInProgress[code] = struct{}{}
				inProgress = append(inProgress, code)
			}
			continue
		}

		grade := ExtractGrade(row.GradeField)
		if pos, ok := best[code]; ok {
			if n.rank(grade) > n.rank(records[pos].Grade) {
				records[pos].Grade = grade
			}
			continue
		}
		best[code] = len(records)
		records = append(records, models.TranscriptRecord{CourseCode: code, Grade: grade})
	}

	sort.SliceStable(records, func(i, j int) bool { return records[i].CourseCode < records[j].CourseCode })
	sort.Strings(inProgress)
	n.logger.Debug("transcript normalized",
		zap.Int("raw_rows", len(rows)),
		zap.Int("records", len(records)),
		zap.Int("in_progress", len(inProgress)),
	)
	return NormalizedTranscript{Records: records, InProgress: inProgress}
}

func (n *TranscriptNormalizer) rank(grade string) int {
	r, _ := n.policy.Scale.Rank(grade)
	return r
}

func (n *TranscriptNormalizer) isCurrentTerm(field, code string) bool {
	suffix := n.policy.ExcludedTermSuffix
	if suffix == "" {
		return false
	}
	return strings.HasSuffix(field, suffix) || strings.HasSuffix(code, suffix)
}

// ExtractGrade returns the trimmed text of the first parenthesised group, or "" when absent.
func ExtractGrade(field string) string {
	m := gradeAnnotation.FindStringSubmatch(field)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// CourseCodeFromField returns the trimmed text before the first hyphen.
func CourseCodeFromField(field string) string {
	code, _, _ := strings.Cut(field, "-")
	return strings.TrimSpace(code)
}

// validCourseCode requires at least one letter and one digit, which drops header and blank rows.
func validCourseCode(code string) bool {
	var letter, digit bool
	for _, r := range code {
		switch {
		case unicode.IsLetter(r):
			letter = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return letter && digit
}
