package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/study-plan-api/internal/dto"
	"github.com/noah-isme/study-plan-api/internal/middleware"
	"github.com/noah-isme/study-plan-api/internal/models"
	"github.com/noah-isme/study-plan-api/internal/service"
	appErrors "github.com/noah-isme/study-plan-api/pkg/errors"
	"github.com/noah-isme/study-plan-api/pkg/logger"
	"github.com/noah-isme/study-plan-api/pkg/response"
)

const (
	requirementsField = "requirements"
	historyField      = "history"
)

type studyPlanService interface {
	Check(ctx context.Context, req dto.CheckStudyPlanRequest, uploads service.StudyPlanUploads) (*models.StudyPlanReport, error)
	Export(ctx context.Context, req dto.ExportStudyPlanRequest, uploads service.StudyPlanUploads) (*service.ExportResult, error)
}

// StudyPlanHandler exposes the study plan check endpoints.
type StudyPlanHandler struct {
	service     studyPlanService
	maxFileSize int64
}

// NewStudyPlanHandler constructs handler. maxFileSize bounds each uploaded table.
func NewStudyPlanHandler(svc studyPlanService, maxFileSize int64) *StudyPlanHandler {
	if maxFileSize <= 0 {
		maxFileSize = 5 << 20
	}
	return &StudyPlanHandler{service: svc, maxFileSize: maxFileSize}
}

// Check godoc
// @Summary Check a study plan
// @Description Normalizes the transcript, evaluates pass/fail, checks prerequisites and credits, and recommends courses.
// @Tags StudyPlans
// @Accept multipart/form-data
// @Produce json
// @Param requirements formData file false "University requirements table (csv, tsv, xlsx, html)"
// @Param history formData file true "Student history table (csv, tsv, xlsx, html)"
// @Param selectedCourses formData string false "Tab separated selection block with a Course Code header"
// @Param level formData string false "Target level, e.g. 3Junior"
// @Param term formData string false "Optional term filter for recommendations"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /study-plans/check [post]
func (h *StudyPlanHandler) Check(c *gin.Context) {
	var req dto.CheckStudyPlanRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid form payload"))
		return
	}
	uploads, err := h.readUploads(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	report, err := h.service.Check(c.Request.Context(), req, uploads)
	if err != nil {
		response.Error(c, err)
		return
	}
	extra := map[string]interface{}{"report_id": report.ID}
	if len(report.Errors) > 0 {
		extra["partial"] = true
		sections := make([]string, 0, len(report.Errors))
		for _, e := range report.Errors {
			sections = append(sections, e.Section+":"+e.Code)
		}
		logger.FromContext(c, zap.NewNop()).Warn("study plan report is partial",
			zap.String("report_id", report.ID),
			zap.Strings("sections", sections),
		)
	}
	response.JSON(c, http.StatusOK, report, middleware.ResponseMeta(c, extra))
}

// Export godoc
// @Summary Export one study plan table
// @Tags StudyPlans
// @Accept multipart/form-data
// @Produce text/csv
// @Produce application/pdf
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param requirements formData file false "University requirements table"
// @Param history formData file true "Student history table"
// @Param selectedCourses formData string false "Tab separated selection block"
// @Param level formData string false "Target level"
// @Param term formData string false "Optional term filter"
// @Param table formData string true "transcript, selected, failing, prerequisites, recommendations or confirmed"
// @Param format formData string true "csv, pdf or xlsx"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /study-plans/export [post]
func (h *StudyPlanHandler) Export(c *gin.Context) {
	var req dto.ExportStudyPlanRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid form payload"))
		return
	}
	uploads, err := h.readUploads(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.service.Export(c.Request.Context(), req, uploads)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, result.Filename, result.ContentType, result.Payload)
}

func (h *StudyPlanHandler) readUploads(c *gin.Context) (service.StudyPlanUploads, error) {
	var uploads service.StudyPlanUploads

	history, err := c.FormFile(historyField)
	if err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return uploads, appErrors.Clone(appErrors.ErrUnsupportedMedia, "expected multipart/form-data")
		}
		return uploads, appErrors.Clone(appErrors.ErrValidation, "history file is required")
	}
	if uploads.History, err = h.readFile(history); err != nil {
		return uploads, err
	}

	requirements, err := c.FormFile(requirementsField)
	if err == nil {
		upload, err := h.readFile(requirements)
		if err != nil {
			return uploads, err
		}
		uploads.Requirements = &upload
	} else if !errors.Is(err, http.ErrMissingFile) {
		return uploads, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "unable to read requirements file")
	}
	return uploads, nil
}

func (h *StudyPlanHandler) readFile(header *multipart.FileHeader) (service.TableUpload, error) {
	if header.Size > h.maxFileSize {
		return service.TableUpload{}, appErrors.Clone(appErrors.ErrPayloadTooLarge, fmt.Sprintf("%s exceeds %d bytes", header.Filename, h.maxFileSize))
	}
	file, err := header.Open()
	if err != nil {
		return service.TableUpload{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "unable to open "+header.Filename)
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, h.maxFileSize+1))
	if err != nil {
		return service.TableUpload{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "unable to read "+header.Filename)
	}
	if int64(len(content)) > h.maxFileSize {
		return service.TableUpload{}, appErrors.Clone(appErrors.ErrPayloadTooLarge, fmt.Sprintf("%s exceeds %d bytes", header.Filename, h.maxFileSize))
	}
	return service.TableUpload{Filename: header.Filename, Content: content}, nil
}
