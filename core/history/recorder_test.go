package history

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"i18n-sync/core/database"
	"i18n-sync/core/reconcile"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func testSummary() *reconcile.Summary {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return &reconcile.Summary{
		RunID:    "6f1c8f9e-2d2b-4a4e-9f57-0c1a3a8c1d11",
		Workflow: reconcile.WorkflowPush,
		Languages: []*reconcile.LanguageReport{
			{Language: "en-US", Path: "en-US.json", Status: reconcile.StatusPushed, New: 2},
			{Language: "fr-FR", Path: "fr-FR.json", Status: reconcile.StatusFailed, Error: "submitting delta: status 500"},
		},
		Succeeded:  1,
		Failed:     1,
		StartedAt:  start,
		FinishedAt: start.Add(2 * time.Second),
	}
}

func TestRecord_InsertsRunAndOutcomes(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `sync_runs`")).
		WithArgs("6f1c8f9e-2d2b-4a4e-9f57-0c1a3a8c1d11", "push", 1, 1, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `language_outcomes`")).
		WillReturnResult(sqlmock.NewResult(1, 2))
	mock.ExpectCommit()

	err := NewRecorder(db).Record(context.Background(), testSummary())
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecord_NoLanguages(t *testing.T) {
	db, mock := setupMockDB(t)

	summary := testSummary()
	summary.Languages = nil

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `sync_runs`")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := NewRecorder(db).Record(context.Background(), summary)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecord_RollsBackOnFailure(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `sync_runs`")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `language_outcomes`")).
		WillReturnError(errors.New("table is read only"))
	mock.ExpectRollback()

	err := NewRecorder(db).Record(context.Background(), testSummary())
	assert.ErrorContains(t, err, "inserting outcomes of run")
	assert.ErrorContains(t, err, "table is read only")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateAndRecord_SQLite(t *testing.T) {
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)

	recorder := NewRecorder(db)
	require.NoError(t, recorder.Migrate(context.Background()))
	require.NoError(t, recorder.Record(context.Background(), testSummary()))

	var runs []SyncRun
	require.NoError(t, db.Find(&runs).Error)
	require.Len(t, runs, 1)
	assert.Equal(t, "push", runs[0].Workflow)
	assert.Equal(t, 1, runs[0].Failed)

	var outcomes []LanguageOutcome
	require.NoError(t, db.Order("language").Find(&outcomes).Error)
	require.Len(t, outcomes, 2)
	assert.Equal(t, "en-US", outcomes[0].Language)
	assert.Equal(t, 2, outcomes[0].New)
	assert.Equal(t, "failed", outcomes[1].Status)
	assert.Equal(t, "submitting delta: status 500", outcomes[1].Error)
	assert.Equal(t, runs[0].ID, outcomes[1].RunID)
}
