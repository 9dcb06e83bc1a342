package models

// Program identifies the degree track that governs the passing threshold.
type Program string

const (
	// ProgramPreEngineering passes from D+ upward.
	ProgramPreEngineering Program = "Pre"
	// ProgramEngineering passes from C- upward and is the bucket for unmapped courses.
	ProgramEngineering Program = "Eng"
)

// Level is the academic standing label attached to catalog entries (e.g. "3Junior").
type Level string

// Term is the academic term label attached to catalog entries.
type Term string

const (
	TermFall   Term = "Fall"
	TermSpring Term = "Spring"
)

// CourseStatus is the outcome of evaluating a transcript record.
type CourseStatus string

const (
	CourseStatusPass CourseStatus = "Pass"
	CourseStatusFail CourseStatus = "Fail"
)

// PrerequisiteStatus summarises a prerequisite check for one course.
type PrerequisiteStatus string

const (
	PrerequisiteNoInfo  PrerequisiteStatus = "No prerequisite information available"
	PrerequisiteMissing PrerequisiteStatus = "Missing"
	PrerequisiteMet     PrerequisiteStatus = "Met"
)

// EnrollmentState separates retake candidates from courses never attempted.
type EnrollmentState string

const (
	EnrollmentFail       EnrollmentState = "Fail"
	EnrollmentUnenrolled EnrollmentState = "Unenrolled"
)

// CatalogEntry is one row of the university requirements table.
type CatalogEntry struct {
	CourseCode string  `db:"course_code" json:"course_code"`
	CourseName string  `db:"course_name" json:"course_name"`
	Program    Program `db:"program" json:"program"`
	Level      Level   `db:"level" json:"level"`
	Term       Term    `db:"term" json:"term"`
	Credits    float64 `db:"credits" json:"credits"`
	Prereq1    string  `db:"prereq_1" json:"prereq_1"`
	Prereq2    string  `db:"prereq_2" json:"prereq_2"`
}

// Prerequisites returns the populated prerequisite slots in slot order.
func (e CatalogEntry) Prerequisites() []string {
	var out []string
	for _, slot := range []string{e.Prereq1, e.Prereq2} {
		if !IsNoPrerequisite(slot) {
			out = append(out, slot)
		}
	}
	return out
}

// IsNoPrerequisite reports whether a slot value means "no requirement".
func IsNoPrerequisite(slot string) bool {
	switch slot {
	case "", "-", "none", "None", "NONE":
		return true
	}
	return false
}

// RawTranscriptRow is one unprocessed row of the student history table.
type RawTranscriptRow struct {
	Rank        string `json:"rank"`
	CourseField string `json:"course_field"`
	GradeField  string `json:"grade_field"`
}

// TranscriptRecord is a normalized transcript row; evaluation fills the catalog-derived fields.
type TranscriptRecord struct {
	CourseCode string       `json:"course_code"`
	Grade      string       `json:"grade,omitempty"`
	CourseName string       `json:"course_name"`
	Program    Program      `json:"program"`
	Level      Level        `json:"level"`
	Term       Term         `json:"term"`
	Status     CourseStatus `json:"status"`
}

// PrerequisiteResult is the outcome of checking one queried course.
type PrerequisiteResult struct {
	CourseCode string             `json:"course_code"`
	Status     PrerequisiteStatus `json:"status"`
	Missing    []string           `json:"missing"`
}

// Recommendation is a candidate course annotated with readiness and enrollment state.
type Recommendation struct {
	Level           Level              `json:"level"`
	Term            Term               `json:"term"`
	CourseCode      string             `json:"course_code"`
	CourseName      string             `json:"course_name"`
	Status          PrerequisiteStatus `json:"status"`
	Missing         []string           `json:"missing"`
	EnrollmentState EnrollmentState    `json:"enrollment_state"`
}

// SelectedCourse is one row of the pasted course-selection block.
type SelectedCourse struct {
	CourseCode string `json:"course_code"`
	Group      string `json:"group,omitempty"`
}

// CreditLoad is the credit total for a selection checked against the cap.
type CreditLoad struct {
	TotalCredits float64 `json:"total_credits"`
	Cap          float64 `json:"cap"`
	Exceeds      bool    `json:"exceeds"`
}
