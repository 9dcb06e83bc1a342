package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/study-plan-api/internal/models"
)

type failingCacheRepo struct{}

func (failingCacheRepo) Get(ctx context.Context, key string, dest interface{}) error {
	return errors.New("connection refused")
}

func (failingCacheRepo) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return errors.New("connection refused")
}

func TestCacheServiceNilIsNoop(t *testing.T) {
	var svc *CacheService

	assert.False(t, svc.Enabled())
	report, hit := svc.Lookup(context.Background(), "k")
	assert.False(t, hit)
	assert.Nil(t, report)
	svc.Store(context.Background(), "k", &models.StudyPlanReport{ID: "r1"})
}

func TestCacheServiceRoundTrip(t *testing.T) {
	repo := newMemoryReportCache()
	svc := NewCacheService(repo, NewMetricsService(), time.Minute, nil, true)

	_, hit := svc.Lookup(context.Background(), "k")
	assert.False(t, hit)

	svc.Store(context.Background(), "k", &models.StudyPlanReport{ID: "r1", Level: "2Sophomore"})
	report, hit := svc.Lookup(context.Background(), "k")
	require.True(t, hit)
	assert.Equal(t, "r1", report.ID)
	assert.Equal(t, models.Level("2Sophomore"), report.Level)
}

func TestCacheServiceDisabledSkipsRepository(t *testing.T) {
	repo := newMemoryReportCache()
	svc := NewCacheService(repo, nil, 0, nil, false)

	svc.Store(context.Background(), "k", &models.StudyPlanReport{ID: "r1"})
	_, hit := svc.Lookup(context.Background(), "k")

	assert.False(t, hit)
	assert.Zero(t, repo.gets)
	assert.Zero(t, repo.sets)
}

func TestCacheServiceBackendErrorsAreMisses(t *testing.T) {
	svc := NewCacheService(failingCacheRepo{}, nil, time.Minute, nil, true)

	svc.Store(context.Background(), "k", &models.StudyPlanReport{ID: "r1"})
	_, hit := svc.Lookup(context.Background(), "k")
	assert.False(t, hit)
}
