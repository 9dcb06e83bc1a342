package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/noah-isme/study-plan-api/internal/models"
	appErrors "github.com/noah-isme/study-plan-api/pkg/errors"
	"github.com/noah-isme/study-plan-api/pkg/tabular"
)

const (
	catalogCacheName   = "catalog"
	databaseCatalogKey = "catalog:database"
)

type catalogStore interface {
	List(ctx context.Context) ([]models.CatalogEntry, error)
}

// TableUpload is an uploaded table file held in memory.
type TableUpload struct {
	Filename string
	Content  []byte
}

// CatalogService turns requirement tables into shared, read-only CatalogIndex values.
// Indexes are cached by content hash; they are never mutated after construction.
type CatalogService struct {
	store   catalogStore
	cache   *gocache.Cache
	metrics *MetricsService
	logger  *zap.Logger
}

// NewCatalogService constructs the service. store may be nil when the database catalog is disabled.
func NewCatalogService(store catalogStore, ttl time.Duration, metrics *MetricsService, logger *zap.Logger) *CatalogService {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{
		store:   store,
		cache:   gocache.New(ttl, 2*ttl),
		metrics: metrics,
		logger:  logger,
	}
}

// DatabaseEnabled reports whether a stored catalog can stand in for an upload.
func (s *CatalogService) DatabaseEnabled() bool {
	return s.store != nil
}

// Resolve returns the index for an uploaded catalog, or the stored catalog when upload is nil.
// The returned key identifies the catalog content for report caching.
func (s *CatalogService) Resolve(ctx context.Context, upload *TableUpload) (*CatalogIndex, string, error) {
	if upload != nil {
		return s.FromUpload(upload)
	}
	if !s.DatabaseEnabled() {
		return nil, "", appErrors.ErrCatalogMissing
	}
	idx, err := s.FromDatabase(ctx)
	return idx, databaseCatalogKey, err
}

// FromUpload parses and indexes an uploaded requirements table.
func (s *CatalogService) FromUpload(upload *TableUpload) (*CatalogIndex, string, error) {
	format, err := uploadFormat(*upload)
	if err != nil {
		return nil, "", err
	}
	key := "catalog:" + contentHash([]byte(format), upload.Content)
	if idx, ok := s.cached(key); ok {
		return idx, key, nil
	}

	table, err := ReadTable(*upload)
	if err != nil {
		return nil, "", err
	}
	entries, err := ParseCatalog(table)
	if err != nil {
		return nil, "", err
	}
	idx := s.remember(key, entries)
	return idx, key, nil
}

// FromDatabase loads the stored requirements catalog.
func (s *CatalogService) FromDatabase(ctx context.Context) (*CatalogIndex, error) {
	if idx, ok := s.cached(databaseCatalogKey); ok {
		return idx, nil
	}
	entries, err := s.store.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load university requirements")
	}
	return s.remember(databaseCatalogKey, entries), nil
}

func (s *CatalogService) cached(key string) (*CatalogIndex, bool) {
	start := time.Now()
	v, ok := s.cache.Get(key)
	s.metrics.RecordCacheOperation(catalogCacheName, ok, time.Since(start))
	if !ok {
		return nil, false
	}
	idx, ok := v.(*CatalogIndex)
	return idx, ok
}

func (s *CatalogService) remember(key string, entries []models.CatalogEntry) *CatalogIndex {
	idx := NewCatalogIndex(entries)
	if dups := idx.Duplicates(); len(dups) > 0 {
		s.logger.Warn("duplicate course codes in catalog; first entry kept", zap.Strings("course_codes", dups))
	}
	s.cache.Set(key, idx, gocache.DefaultExpiration)
	return idx
}

// ReadTable decodes an uploaded file according to its extension.
func ReadTable(upload TableUpload) (*tabular.Table, error) {
	format, err := uploadFormat(upload)
	if err != nil {
		return nil, err
	}
	table, err := tabular.Read(bytes.NewReader(upload.Content), format)
	if err != nil {
		if errors.Is(err, tabular.ErrNoHeader) {
			return nil, appErrors.Clone(appErrors.ErrInputShape, upload.Filename+" has no header row")
		}
		return nil, appErrors.WrapAs(appErrors.ErrInputShape, err, "unable to read "+upload.Filename)
	}
	return table, nil
}

// uploadFormat resolves the reader for an upload. The format is part of every cache key derived
// from the upload, since the same bytes decode differently as csv and tsv.
func uploadFormat(upload TableUpload) (tabular.Format, error) {
	format, err := tabular.FormatFromFilename(upload.Filename)
	if err != nil {
		return "", appErrors.Clone(appErrors.ErrInputShape, "unsupported file format for "+upload.Filename+"; use csv, tsv, xlsx or html")
	}
	return format, nil
}

func contentHash(parts ...[]byte) string {
	h := sha256.New()
	for _, p := range parts {
		_, _ = h.Write(p)
		_, _ = h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
