package repository

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/study-plan-api/internal/models"
)

const defaultCatalogTable = "university_requirements"

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

type queryObserver interface {
	ObserveDBQuery(label string, duration time.Duration)
}

// CatalogRepository reads the university requirements catalog. It never writes.
type CatalogRepository struct {
	db       *sqlx.DB
	table    string
	observer queryObserver
}

// NewCatalogRepository validates the table identifier before it is interpolated into SQL.
func NewCatalogRepository(db *sqlx.DB, table string, observer queryObserver) (*CatalogRepository, error) {
	if table == "" {
		table = defaultCatalogTable
	}
	if !identifierPattern.MatchString(table) {
		return nil, fmt.Errorf("invalid catalog table name %q", table)
	}
	return &CatalogRepository{db: db, table: table, observer: observer}, nil
}

// List returns every catalog row in insertion order.
func (r *CatalogRepository) List(ctx context.Context) ([]models.CatalogEntry, error) {
	query := fmt.Sprintf(`SELECT course_code, course_name, program, level, term, credits,
COALESCE(prereq_1, '') AS prereq_1, COALESCE(prereq_2, '') AS prereq_2
FROM %s ORDER BY id`, r.table)

	start := time.Now()
	var entries []models.CatalogEntry
	err := r.db.SelectContext(ctx, &entries, query)
	if r.observer != nil {
		r.observer.ObserveDBQuery("catalog_list", time.Since(start))
	}
	if err != nil {
		return nil, fmt.Errorf("list catalog entries: %w", err)
	}
	return entries, nil
}
