package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/study-plan-api/internal/models"
	appErrors "github.com/noah-isme/study-plan-api/pkg/errors"
)

type catalogStoreStub struct {
	entries []models.CatalogEntry
	err     error
	calls   int
}

func (s *catalogStoreStub) List(ctx context.Context) ([]models.CatalogEntry, error) {
	s.calls++
	return s.entries, s.err
}

func TestCatalogServiceFromUploadCachesByContent(t *testing.T) {
	svc := NewCatalogService(nil, time.Minute, nil, nil)
	upload := &TableUpload{Filename: "requirements.csv", Content: []byte(requirementsCSV)}

	first, key, err := svc.Resolve(context.Background(), upload)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Len())
	assert.Contains(t, key, "catalog:")

	second, key2, err := svc.Resolve(context.Background(), &TableUpload{Filename: "copy.csv", Content: []byte(requirementsCSV)})
	require.NoError(t, err)
	assert.Equal(t, key, key2)
	assert.Same(t, first, second)
}

func TestCatalogServiceKeysUploadsByFormat(t *testing.T) {
	svc := NewCatalogService(nil, time.Minute, nil, nil)

	_, csvKey, err := svc.Resolve(context.Background(), &TableUpload{Filename: "requirements.csv", Content: []byte(requirementsCSV)})
	require.NoError(t, err)

	_, _, err = svc.Resolve(context.Background(), &TableUpload{Filename: "requirements.xls", Content: []byte(requirementsCSV)})
	assert.True(t, errors.Is(err, appErrors.ErrInputShape))

	_, tsvKey, err := svc.Resolve(context.Background(), &TableUpload{Filename: "requirements.tsv", Content: []byte(requirementsCSV)})
	assert.True(t, errors.Is(err, appErrors.ErrInputShape))
	assert.NotEqual(t, csvKey, tsvKey)
}

func TestCatalogServiceRequiresUploadWithoutStore(t *testing.T) {
	svc := NewCatalogService(nil, time.Minute, nil, nil)
	assert.False(t, svc.DatabaseEnabled())

	_, _, err := svc.Resolve(context.Background(), nil)
	assert.True(t, errors.Is(err, appErrors.ErrCatalogMissing))
}

func TestCatalogServiceFromDatabase(t *testing.T) {
	store := &catalogStoreStub{entries: []models.CatalogEntry{{CourseCode: "CS101", Credits: 3}}}
	svc := NewCatalogService(store, time.Minute, NewMetricsService(), nil)
	require.True(t, svc.DatabaseEnabled())

	idx, key, err := svc.Resolve(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "catalog:database", key)
	assert.Equal(t, 1, idx.Len())

	_, _, err = svc.Resolve(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, store.calls)
}

func TestCatalogServiceDatabaseError(t *testing.T) {
	svc := NewCatalogService(&catalogStoreStub{err: errors.New("db down")}, time.Minute, nil, nil)

	_, _, err := svc.Resolve(context.Background(), nil)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInternal.Code, appErrors.FromError(err).Code)
}

func TestReadTableRejectsUnknownExtension(t *testing.T) {
	_, err := ReadTable(TableUpload{Filename: "requirements.pdf", Content: []byte("%PDF")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrInputShape))
}

func TestReadTableEmptyFile(t *testing.T) {
	_, err := ReadTable(TableUpload{Filename: "history.csv"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrInputShape))
}
