package models

import "time"

// Report sections, used to label partial failures and export targets.
const (
	SectionTranscript      = "transcript"
	SectionSelected        = "selected"
	SectionCredits         = "credits"
	SectionFailing         = "failing"
	SectionPrerequisites   = "prerequisites"
	SectionRecommendations = "recommendations"
	SectionConfirmed       = "confirmed"
)

// SectionError records a report section that could not be computed.
type SectionError struct {
	Section string `json:"section"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// StudyPlanReport bundles every table produced by one pipeline run. Section slices are nil when
// the section was not computed and empty when it was computed with no rows; both survive JSON.
type StudyPlanReport struct {
	ID              string               `json:"id"`
	GeneratedAt     time.Time            `json:"generated_at"`
	Level           Level                `json:"level,omitempty"`
	Term            Term                 `json:"term,omitempty"`
	Transcript      []TranscriptRecord   `json:"transcript"`
	SelectedCourses []SelectedCourse     `json:"selected_courses"`
	Credits         *CreditLoad          `json:"credits,omitempty"`
	FailingCourses  []TranscriptRecord   `json:"failing_courses"`
	Prerequisites   []PrerequisiteResult `json:"prerequisites"`
	Recommendations []Recommendation     `json:"recommendations"`
	Confirmed       []string             `json:"confirmed"`
	Errors          []SectionError       `json:"errors,omitempty"`
}

// HasSection reports whether the named section was computed successfully.
func (r *StudyPlanReport) HasSection(section string) bool {
	for _, e := range r.Errors {
		if e.Section == section {
			return false
		}
	}
	switch section {
	case SectionSelected:
		return r.SelectedCourses != nil
	case SectionCredits:
		return r.Credits != nil
	case SectionPrerequisites:
		return r.Prerequisites != nil
	case SectionRecommendations:
		return r.Recommendations != nil
	case SectionConfirmed:
		return r.Confirmed != nil
	default:
		return true
	}
}

// CurriculumPolicyView exposes the active grading policy.
type CurriculumPolicyView struct {
	GradeOrder                []string          `json:"grade_order"`
	PassThresholds            map[string]string `json:"pass_thresholds"`
	DefaultProgram            Program           `json:"default_program"`
	Levels                    []Level           `json:"levels"`
	Terms                     []Term            `json:"terms"`
	CreditCap                 float64           `json:"credit_cap"`
	ExcludedTermSuffix        string            `json:"excluded_term_suffix"`
	InProgressSatisfiesPrereq bool              `json:"in_progress_satisfies_prereq"`
}
