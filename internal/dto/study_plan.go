package dto

// CheckStudyPlanRequest carries the non-file form fields of a study plan check.
type CheckStudyPlanRequest struct {
	SelectedCourses string `form:"selectedCourses" json:"selected_courses" validate:"max=65536"`
	Level           string `form:"level" json:"level" validate:"omitempty,max=32"`
	Term            string `form:"term" json:"term" validate:"omitempty,max=32"`
}

// ExportStudyPlanRequest selects one report table and an output format.
type ExportStudyPlanRequest struct {
	CheckStudyPlanRequest
	Table  string `form:"table" json:"table" validate:"required,oneof=transcript selected failing prerequisites recommendations confirmed"`
	Format string `form:"format" json:"format" validate:"required,oneof=csv pdf xlsx"`
}
