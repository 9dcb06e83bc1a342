package service

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/noah-isme/study-plan-api/internal/models"
)

func exportReportFixture() *models.StudyPlanReport {
	return &models.StudyPlanReport{
		ID:    "report-1",
		Level: "2Sophomore",
		Transcript: []models.TranscriptRecord{
			{CourseCode: "CS101", Grade: "B+", CourseName: "Intro", Program: "Eng", Level: "1Freshman", Term: "Fall", Status: models.CourseStatusPass},
		},
		FailingCourses:  []models.TranscriptRecord{},
		SelectedCourses: []models.SelectedCourse{{CourseCode: "CS201", Group: "a"}},
		Credits:         &models.CreditLoad{TotalCredits: 22, Cap: 21, Exceeds: true},
		Prerequisites: []models.PrerequisiteResult{
			{CourseCode: "CS201", Status: models.PrerequisiteMissing, Missing: []string{"MATH101", "CS101"}},
		},
		Recommendations: []models.Recommendation{
			{Level: "1Freshman", Term: "Fall", CourseCode: "MATH101", CourseName: "Calculus I", Status: models.PrerequisiteMet, EnrollmentState: models.EnrollmentFail},
		},
		Confirmed: []string{"CS101", "A"},
	}
}

func newExportServiceForTest() *ExportService {
	svc := NewExportService(nil, nil, nil, nil)
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 8, 30, 0, 0, time.UTC) }
	return svc
}

func TestExportServiceCSV(t *testing.T) {
	svc := newExportServiceForTest()

	result, err := svc.Render(exportReportFixture(), models.SectionPrerequisites, FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "study_plan_prerequisites_20260301_083000.csv", result.Filename)
	assert.Equal(t, "Course Code,Status,Missing Prerequisites\nCS201,Missing,\"MATH101, CS101\"\n", string(result.Payload))
}

func TestExportServicePDF(t *testing.T) {
	svc := newExportServiceForTest()

	result, err := svc.Render(exportReportFixture(), models.SectionRecommendations, FormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", result.ContentType)
	assert.True(t, bytes.HasPrefix(result.Payload, []byte("%PDF")))
}

func TestExportServiceXLSX(t *testing.T) {
	svc := newExportServiceForTest()

	result, err := svc.Render(exportReportFixture(), models.SectionTranscript, FormatXLSX)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(result.Payload))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Course Code", rows[0][0])
	assert.Equal(t, []string{"CS101", "B+", "Intro", "Eng", "1Freshman", "Fall", "Pass"}, rows[1])
}

func TestExportServiceUnavailableSection(t *testing.T) {
	svc := newExportServiceForTest()
	report := exportReportFixture()
	report.Errors = []models.SectionError{{Section: models.SectionRecommendations, Code: "CONFIGURATION_ERROR"}}

	_, err := svc.Render(report, models.SectionRecommendations, FormatCSV)
	assert.Error(t, err)

	_, err = svc.Render(report, models.SectionTranscript, "docx")
	assert.Error(t, err)
}

func TestBuildDatasetSelectedAndConfirmed(t *testing.T) {
	report := exportReportFixture()

	selected, err := BuildDataset(report, models.SectionSelected)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"CS201", "a"}, {"Total Credits", "22"}, {"Exceeds Cap", "21"}}, selected.Rows)

	confirmed, err := BuildDataset(report, models.SectionConfirmed)
	require.NoError(t, err)
	assert.Equal(t, []string{"Col1", "Col2"}, confirmed.Headers)
	assert.Equal(t, [][]string{{"CS101", "A"}}, confirmed.Rows)

	_, err = BuildDataset(report, "grades")
	assert.Error(t, err)
}
