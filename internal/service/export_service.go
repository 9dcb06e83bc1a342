package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/study-plan-api/internal/models"
	appErrors "github.com/noah-isme/study-plan-api/pkg/errors"
	"github.com/noah-isme/study-plan-api/pkg/export"
)

// Export formats.
const (
	FormatCSV  = "csv"
	FormatPDF  = "pdf"
	FormatXLSX = "xlsx"
)

var contentTypes = map[string]string{
	FormatCSV:  "text/csv",
	FormatPDF:  "application/pdf",
	FormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

type renderer interface {
	Render(data export.Dataset) ([]byte, error)
}

// ExportResult is a rendered report table ready for download.
type ExportResult struct {
	Filename    string
	ContentType string
	Payload     []byte
}

// ExportService renders a single report table into a downloadable document.
type ExportService struct {
	renderers map[string]renderer
	logger    *zap.Logger
	now       func() time.Time
}

// NewExportService constructs an ExportService. Nil renderers fall back to the package defaults.
func NewExportService(logger *zap.Logger, csv, pdf, xlsx renderer) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter(false)
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	if xlsx == nil {
		xlsx = export.NewXLSXExporter()
	}
	return &ExportService{
		renderers: map[string]renderer{FormatCSV: csv, FormatPDF: pdf, FormatXLSX: xlsx},
		logger:    logger,
		now:       time.Now,
	}
}

// Render exports one section of report. Sections that failed or were not requested are a validation error.
func (s *ExportService) Render(report *models.StudyPlanReport, table, format string) (*ExportResult, error) {
	if report == nil {
		return nil, appErrors.Clone(appErrors.ErrInternal, "report is nil")
	}
	r, ok := s.renderers[format]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
	if !report.HasSection(table) {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%s table is not available for this request", table))
	}
	dataset, err := BuildDataset(report, table)
	if err != nil {
		return nil, err
	}

	payload, err := r.Render(dataset)
	if err != nil {
		return nil, appErrors.WrapAs(appErrors.ErrInternal, err, "failed to render export")
	}
	s.logger.Debug("report table exported",
		zap.String("report_id", report.ID),
		zap.String("table", table),
		zap.String("format", format),
		zap.Int("rows", len(dataset.Rows)),
	)
	return &ExportResult{
		Filename:    s.buildFilename(table, format),
		ContentType: contentTypes[format],
		Payload:     payload,
	}, nil
}

func (s *ExportService) buildFilename(table, format string) string {
	timestamp := s.now().UTC().Format("20060102_150405")
	return fmt.Sprintf("study_plan_%s_%s.%s", sanitizeFilename(table), timestamp, format)
}

func sanitizeFilename(raw string) string {
	if raw == "" {
		return "na"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-", ":", "-", "..", ".", "__", "_")
	result := replacer.Replace(raw)
	if len(result) > 100 {
		return result[:100]
	}
	return result
}

// BuildDataset flattens one report section into rows.
func BuildDataset(report *models.StudyPlanReport, table string) (export.Dataset, error) {
	switch table {
	case models.SectionTranscript:
		return transcriptDataset("Student Transcript", report.Transcript), nil
	case models.SectionFailing:
		return transcriptDataset("Failing Courses", report.FailingCourses), nil
	case models.SectionSelected:
		return selectedDataset(report), nil
	case models.SectionPrerequisites:
		return prerequisiteDataset(report.Prerequisites), nil
	case models.SectionRecommendations:
		return recommendationDataset(report), nil
	case models.SectionConfirmed:
		return export.Dataset{
			Title:   "Confirmed Courses",
			Headers: ConfirmedHeaders(max(len(report.Confirmed), 1)),
			Rows:    [][]string{report.Confirmed},
		}, nil
	default:
		return export.Dataset{}, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown report table %q", table))
	}
}

func transcriptDataset(title string, records []models.TranscriptRecord) export.Dataset {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{r.CourseCode, r.Grade, r.CourseName, string(r.Program), string(r.Level), string(r.Term), string(r.Status)})
	}
	return export.Dataset{
		Title:   title,
		Headers: []string{"Course Code", "Grade", "Course Name", "Program", "Level", "Term", "Status"},
		Rows:    rows,
	}
}

func selectedDataset(report *models.StudyPlanReport) export.Dataset {
	rows := make([][]string, 0, len(report.SelectedCourses)+1)
	for _, sel := range report.SelectedCourses {
		rows = append(rows, []string{sel.CourseCode, sel.Group})
	}
	if report.Credits != nil {
		rows = append(rows, []string{"Total Credits", formatCredits(report.Credits.TotalCredits)})
		if report.Credits.Exceeds {
			rows = append(rows, []string{"Exceeds Cap", formatCredits(report.Credits.Cap)})
		}
	}
	return export.Dataset{
		Title:   "Selected Courses",
		Headers: []string{"Course Code", "Group"},
		Rows:    rows,
	}
}

func prerequisiteDataset(results []models.PrerequisiteResult) export.Dataset {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, []string{r.CourseCode, string(r.Status), strings.Join(r.Missing, ", ")})
	}
	return export.Dataset{
		Title:   "Prerequisite Check",
		Headers: []string{"Course Code", "Status", "Missing Prerequisites"},
		Rows:    rows,
	}
}

func recommendationDataset(report *models.StudyPlanReport) export.Dataset {
	rows := make([][]string, 0, len(report.Recommendations))
	for _, r := range report.Recommendations {
		rows = append(rows, []string{
			string(r.Level),
			string(r.Term),
			r.CourseCode,
			r.CourseName,
			string(r.Status),
			strings.Join(r.Missing, ", "),
			string(r.EnrollmentState),
		})
	}
	title := "Recommended Courses"
	if report.Level != "" {
		title += " up to " + string(report.Level)
	}
	return export.Dataset{
		Title:   title,
		Headers: []string{"Level", "Term", "Course Code", "Course Name", "Status", "Missing Prerequisites", "Enrollment"},
		Rows:    rows,
	}
}

func formatCredits(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
