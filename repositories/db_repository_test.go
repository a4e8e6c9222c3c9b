package repositories

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"linkscraper/domain"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}

	dialector := postgres.New(postgres.Config{
		DSN:                  "sqlmock_db_0",
		DriverName:           "postgres",
		Conn:                 db,
		PreferSimpleProtocol: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func TestNewRunRepository_Default(t *testing.T) {
	repo := NewRunRepository(nil, 0)
	assert.Equal(t, 100, repo.batchSize)
}

func TestSaveRun_Success(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRunRepository(db, 100)

	summary := domain.RunSummary{
		Results: []domain.ScrapeResult{
			{
				RowNumber: 1,
				RecordID:  "rec1",
				SourceURL: "https://example.com",
				Links: []string{
					"https://www.linkedin.com/in/jane",
					"https://www.linkedin.com/in/john",
				},
				LinkCount: 2,
			},
		},
		TotalLinks: 2,
	}

	// Insert run
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "scrape_runs"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectCommit()

	// Insert record result
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "record_results"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectCommit()

	// Batch insert links
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "result_links"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1).AddRow(2))
	mock.ExpectCommit()

	err := repo.SaveRun(summary)
	assert.NoError(t, err)
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestSaveRun_RunInsertError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRunRepository(db, 100)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "scrape_runs"`).
		WillReturnError(errors.New("db error"))
	mock.ExpectRollback()

	err := repo.SaveRun(domain.RunSummary{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to insert scrape run")
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestSaveRun_NoLinksSkipsBatch(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRunRepository(db, 100)

	summary := domain.RunSummary{
		Results: []domain.ScrapeResult{
			{RowNumber: 1, RecordID: "rec1", SourceURL: "https://example.com"},
		},
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "scrape_runs"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectCommit()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "record_results"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectCommit()

	err := repo.SaveRun(summary)
	assert.NoError(t, err)
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}
