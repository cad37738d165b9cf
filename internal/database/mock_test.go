package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	return &DB{DB: sqlDB}, mock
}

func TestTransactionJoinsRollbackError(t *testing.T) {
	db, mock := setupMockDB(t)

	fnErr := errors.New("write failed")
	mock.ExpectBegin()
	mock.ExpectRollback().WillReturnError(errors.New("connection lost"))

	err := db.Transaction(context.Background(), func(tx *sql.Tx) error {
		return fnErr
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, fnErr)
	assert.Contains(t, err.Error(), "rollback failed")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestImportRollsBackOnSellerError(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO enquiries").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO sellers").WillReturnError(errors.New("constraint failed"))
	mock.ExpectRollback()

	err := db.Import(context.Background(), &Dataset{
		Enquiries: []Enquiry{{ID: "e1", Title: "Need a plumber", OwnerID: "b1"}},
		Sellers:   []Seller{{ID: "s1", Name: "Quick Fix"}},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save seller s1")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestImportCommits(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec("(?s)INSERT INTO sellers .* ON CONFLICT\\(id\\) DO UPDATE").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := db.Import(context.Background(), &Dataset{Sellers: []Seller{{ID: "s1", Name: "Quick Fix"}}})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountsError(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectQuery("SELECT \\(SELECT COUNT").WillReturnError(errors.New("database is locked"))

	_, _, err := db.Counts(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database is locked")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLatestMatchRunCorruptResults(t *testing.T) {
	db, mock := setupMockDB(t)

	rows := sqlmock.NewRows([]string{"id", "enquiry_id", "candidate_count", "result_count", "results", "cached", "created_at"}).
		AddRow("run-1", "e1", 3, 1, "{broken", false, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	mock.ExpectQuery("FROM match_runs").WithArgs("e1").WillReturnRows(rows)

	_, err := db.LatestMatchRun(context.Background(), "e1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode match results")
	assert.NoError(t, mock.ExpectationsWereMet())
}
