package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/study-plan-api/internal/models"
	appErrors "github.com/noah-isme/study-plan-api/pkg/errors"
)

const reportCacheName = "report"

// CacheRepository abstracts persistence for cached payloads.
type CacheRepository interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// CacheService memoises finished reports keyed by a digest of every input and the policy.
// A hit therefore returns exactly what recomputation would.
type CacheService struct {
	repo    CacheRepository
	metrics *MetricsService
	ttl     time.Duration
	logger  *zap.Logger
	enabled bool
}

// NewCacheService constructs a report cache. A nil repo or enabled=false turns it into a no-op.
func NewCacheService(repo CacheRepository, metrics *MetricsService, ttl time.Duration, logger *zap.Logger, enabled bool) *CacheService {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CacheService{repo: repo, metrics: metrics, ttl: ttl, logger: logger, enabled: enabled}
}

// Enabled indicates whether caching is active.
func (s *CacheService) Enabled() bool {
	return s != nil && s.enabled && s.repo != nil
}

// Lookup returns the cached report for key. Backend failures are logged and reported as a miss.
func (s *CacheService) Lookup(ctx context.Context, key string) (*models.StudyPlanReport, bool) {
	if !s.Enabled() {
		return nil, false
	}
	start := time.Now()
	var report models.StudyPlanReport
	err := s.repo.Get(ctx, key, &report)
	s.metrics.RecordCacheOperation(reportCacheName, err == nil, time.Since(start))
	if err != nil {
		if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("report cache lookup failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	return &report, true
}

// Store saves a report. Failures are logged and otherwise ignored.
func (s *CacheService) Store(ctx context.Context, key string, report *models.StudyPlanReport) {
	if !s.Enabled() || report == nil {
		return
	}
	start := time.Now()
	err := s.repo.Set(ctx, key, report, s.ttl)
	s.metrics.ObserveCacheWrite(reportCacheName, time.Since(start))
	if err != nil {
		s.logger.Warn("report cache store failed", zap.String("key", key), zap.Error(err))
	}
}
