package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/study-plan-api/internal/models"
)

type observerStub struct {
	labels []string
}

func (o *observerStub) ObserveDBQuery(label string, _ time.Duration) {
	o.labels = append(o.labels, label)
}

func newCatalogRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestCatalogRepositoryList(t *testing.T) {
	db, mock, cleanup := newCatalogRepoMock(t)
	defer cleanup()
	observer := &observerStub{}
	repo, err := NewCatalogRepository(db, "", observer)
	require.NoError(t, err)

	rows := sqlmock.NewRows([]string{"course_code", "course_name", "program", "level", "term", "credits", "prereq_1", "prereq_2"}).
		AddRow("MATH101", "Calculus I", "Eng", "1Freshman", "Fall", 3.0, "", "").
		AddRow("CS201", "Data Structures", "Eng", "2Sophomore", "Spring", 4.0, "CS101", "MATH101")
	mock.ExpectQuery(regexp.QuoteMeta("FROM university_requirements ORDER BY id")).WillReturnRows(rows)

	entries, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "MATH101", entries[0].CourseCode)
	assert.Equal(t, models.Level("2Sophomore"), entries[1].Level)
	assert.Equal(t, []string{"CS101", "MATH101"}, entries[1].Prerequisites())
	assert.Equal(t, 4.0, entries[1].Credits)
	assert.Equal(t, []string{"catalog_list"}, observer.labels)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogRepositoryListError(t *testing.T) {
	db, mock, cleanup := newCatalogRepoMock(t)
	defer cleanup()
	repo, err := NewCatalogRepository(db, "curriculum.requirements", nil)
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta("FROM curriculum.requirements")).WillReturnError(errors.New("connection reset"))

	_, err = repo.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewCatalogRepositoryRejectsUnsafeTable(t *testing.T) {
	_, err := NewCatalogRepository(nil, "requirements; DROP TABLE users", nil)
	assert.Error(t, err)
}
