package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/study-plan-api/internal/dto"
	"github.com/noah-isme/study-plan-api/internal/models"
	appErrors "github.com/noah-isme/study-plan-api/pkg/errors"
	"github.com/noah-isme/study-plan-api/pkg/tabular"
)

type catalogResolver interface {
	Resolve(ctx context.Context, upload *TableUpload) (*CatalogIndex, string, error)
}

type reportCache interface {
	Lookup(ctx context.Context, key string) (*models.StudyPlanReport, bool)
	Store(ctx context.Context, key string, report *models.StudyPlanReport)
}

// StudyPlanUploads are the files accompanying a check. Requirements may be nil when a stored
// catalog is configured.
type StudyPlanUploads struct {
	Requirements *TableUpload
	History      TableUpload
}

// PipelineInput is everything one evaluation needs, already decoded.
type PipelineInput struct {
	Catalog        *CatalogIndex
	History        []models.RawTranscriptRow
	SelectionBlock string
	Level          string
	Term           string
}

// StudyPlanService runs the evaluation pipeline for one student per call.
type StudyPlanService struct {
	policy          *Policy
	catalogs        catalogResolver
	cache           reportCache
	exports         *ExportService
	metrics         *MetricsService
	validator       *validator.Validate
	logger          *zap.Logger
	normalizer      *TranscriptNormalizer
	evaluator       *PassFailEvaluator
	credits         *CreditValidator
	prereqs         *PrerequisiteChecker
	recommendations *RecommendationEngine
	now             func() time.Time
}

// NewStudyPlanService wires the pipeline components around a policy.
func NewStudyPlanService(policy *Policy, catalogs catalogResolver, cache reportCache, exports *ExportService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *StudyPlanService {
	if policy == nil {
		policy = DefaultPolicy()
	}
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if exports == nil {
		exports = NewExportService(logger, nil, nil, nil)
	}
	prereqs := NewPrerequisiteChecker(policy)
	return &StudyPlanService{
		policy:          policy,
		catalogs:        catalogs,
		cache:           cache,
		exports:         exports,
		metrics:         metrics,
		validator:       validate,
		logger:          logger,
		normalizer:      NewTranscriptNormalizer(policy, logger),
		evaluator:       NewPassFailEvaluator(policy, logger),
		credits:         NewCreditValidator(policy),
		prereqs:         prereqs,
		recommendations: NewRecommendationEngine(policy, prereqs),
		now:             time.Now,
	}
}

// Policy returns the active grading policy.
func (s *StudyPlanService) Policy() *Policy {
	return s.policy
}

// Check decodes the uploads and runs the pipeline. Failures in the catalog or history abort the
// request; selection and level problems are reported per section.
func (s *StudyPlanService) Check(ctx context.Context, req dto.CheckStudyPlanRequest, uploads StudyPlanUploads) (*models.StudyPlanReport, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid study plan payload")
	}
	if s.catalogs == nil {
		return nil, appErrors.Clone(appErrors.ErrInternal, "catalog service not configured")
	}

	catalog, catalogKey, err := s.catalogs.Resolve(ctx, uploads.Requirements)
	if err != nil {
		s.metrics.ObservePipeline("error", 0, nil)
		return nil, err
	}

	historyFormat, err := uploadFormat(uploads.History)
	if err != nil {
		s.metrics.ObservePipeline("error", 0, nil)
		return nil, err
	}

	cacheKey := s.cacheKey(catalogKey, historyFormat, uploads.History.Content, req)
	if s.cache != nil {
		if cached, hit := s.cache.Lookup(ctx, cacheKey); hit {
			s.metrics.ObservePipeline("cached", 0, nil)
			return cached, nil
		}
	}

	table, err := ReadTable(uploads.History)
	if err != nil {
		s.metrics.ObservePipeline("error", 0, nil)
		return nil, err
	}
	history, err := ParseTranscript(table)
	if err != nil {
		s.metrics.ObservePipeline("error", 0, nil)
		return nil, err
	}

	start := time.Now()
	report := s.Run(PipelineInput{
		Catalog:        catalog,
		History:        history,
		SelectionBlock: req.SelectedCourses,
		Level:          req.Level,
		Term:           req.Term,
	})
	failed := make([]string, 0, len(report.Errors))
	for _, e := range report.Errors {
		failed = append(failed, e.Section)
	}
	outcome := "ok"
	if len(failed) > 0 {
		outcome = "partial"
	}
	s.metrics.ObservePipeline(outcome, time.Since(start), failed)
	s.logger.Info("study plan evaluated",
		zap.String("report_id", report.ID),
		zap.Int("transcript_records", len(report.Transcript)),
		zap.Int("recommendations", len(report.Recommendations)),
		zap.Strings("failed_sections", failed),
	)

	if s.cache != nil {
		s.cache.Store(ctx, cacheKey, report)
	}
	return report, nil
}

// Export runs a check and renders the requested table.
func (s *StudyPlanService) Export(ctx context.Context, req dto.ExportStudyPlanRequest, uploads StudyPlanUploads) (*ExportResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid export payload")
	}
	report, err := s.Check(ctx, req.CheckStudyPlanRequest, uploads)
	if err != nil {
		return nil, err
	}
	return s.exports.Render(report, req.Table, req.Format)
}

// Run evaluates decoded inputs. It never fails as a whole: section problems land in report.Errors.
func (s *StudyPlanService) Run(in PipelineInput) *models.StudyPlanReport {
	report := &models.StudyPlanReport{
		ID:          uuid.NewString(),
		GeneratedAt: s.now().UTC(),
		Term:        models.Term(strings.TrimSpace(in.Term)),
	}

	normalized := s.normalizer.Normalize(in.History)
	report.Transcript = s.evaluator.Evaluate(normalized.Records, in.Catalog)
	report.FailingCourses = FailingCourses(report.Transcript)

	s.runSelection(report, in, normalized.InProgress)
	s.runRecommendations(report, in, normalized.InProgress)
	return report
}

func (s *StudyPlanService) runSelection(report *models.StudyPlanReport, in PipelineInput, inProgress []string) {
	selection := []models.SelectedCourse{}
	hasGroup := false
	if strings.TrimSpace(in.SelectionBlock) != "" {
		parsed, group, err := ParseSelection(in.SelectionBlock)
		if err != nil {
			for _, section := range []string{models.SectionSelected, models.SectionCredits, models.SectionPrerequisites, models.SectionConfirmed} {
				addSectionError(report, section, err)
			}
			return
		}
		selection, hasGroup = parsed, group
	}

	codes := make([]string, len(selection))
	for i, sel := range selection {
		codes[i] = sel.CourseCode
	}
	report.SelectedCourses = selection
	credits := s.credits.Validate(codes, in.Catalog)
	report.Credits = &credits
	report.Prerequisites = s.prereqs.Check(codes, s.prereqs.PassedCourses(report.Transcript, inProgress), in.Catalog)
	if hasGroup {
		report.Confirmed = ConfirmedRow(report.Prerequisites, selection)
	}
}

func (s *StudyPlanService) runRecommendations(report *models.StudyPlanReport, in PipelineInput, inProgress []string) {
	level := strings.TrimSpace(in.Level)
	if level == "" {
		addSectionError(report, models.SectionRecommendations, appErrors.Clone(appErrors.ErrValidation, "level is required for recommendations"))
		return
	}
	recs, err := s.recommendations.Recommend(in.Catalog, report.Transcript, inProgress, level, in.Term)
	if err != nil {
		addSectionError(report, models.SectionRecommendations, err)
		return
	}
	report.Level, _ = s.policy.Levels.Parse(level)
	report.Recommendations = recs
}

func (s *StudyPlanService) cacheKey(catalogKey string, historyFormat tabular.Format, history []byte, req dto.CheckStudyPlanRequest) string {
	return "study-plan:" + s.policy.Fingerprint() + ":" + contentHash(
		[]byte(catalogKey),
		[]byte(historyFormat),
		history,
		[]byte(req.SelectedCourses),
		[]byte(strings.TrimSpace(req.Level)),
		[]byte(strings.TrimSpace(req.Term)),
	)
}

func addSectionError(report *models.StudyPlanReport, section string, err error) {
	appErr := appErrors.FromError(err)
	report.Errors = append(report.Errors, models.SectionError{
		Section: section,
		Code:    appErr.Code,
		Message: appErr.Message,
	})
}
