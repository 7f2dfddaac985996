package history

import (
	"context"
	"fmt"
	"strings"

	"i18n-sync/core/database"
	"i18n-sync/core/reconcile"

	"gorm.io/gorm"
)

// Recorder writes run summaries to the database.
type Recorder struct {
	db *gorm.DB
}

var _ reconcile.Recorder = (*Recorder)(nil)

// NewRecorder creates a recorder on db.
func NewRecorder(db *gorm.DB) *Recorder {
	return &Recorder{db: db}
}

// Migrate creates or updates the history tables and checks their columns.
func (r *Recorder) Migrate(ctx context.Context) error {
	db := r.db.WithContext(ctx)
	if err := db.AutoMigrate(&SyncRun{}, &LanguageOutcome{}); err != nil {
		return fmt.Errorf("migrating history tables: %w", err)
	}

	tables := map[string][]string{
		SyncRun{}.TableName():         {"id", "workflow", "succeeded", "failed", "started_at", "finished_at"},
		LanguageOutcome{}.TableName(): {"id", "run_id", "language", "path", "status", "error"},
	}
	for table, want := range tables {
		missing, err := database.MissingColumns(db, table, want)
		if err != nil {
			return err
		}
		if len(missing) > 0 {
			return fmt.Errorf("table %s is missing columns: %s", table, strings.Join(missing, ", "))
		}
	}
	return nil
}

// Record stores summary and its language reports in one transaction.
func (r *Recorder) Record(ctx context.Context, summary *reconcile.Summary) error {
	run := SyncRun{
		ID:         summary.RunID,
		Workflow:   string(summary.Workflow),
		Succeeded:  summary.Succeeded,
		Failed:     summary.Failed,
		StartedAt:  summary.StartedAt,
		FinishedAt: summary.FinishedAt,
	}

	outcomes := make([]LanguageOutcome, 0, len(summary.Languages))
	for _, l := range summary.Languages {
		outcomes = append(outcomes, LanguageOutcome{
			RunID:      summary.RunID,
			Language:   l.Language,
			Path:       l.Path,
			Status:     string(l.Status),
			New:        l.New,
			Updated:    l.Updated,
			Unchanged:  l.Unchanged,
			Backfilled: l.Backfilled,
			Divergent:  l.Divergent,
			Error:      l.Error,
		})
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&run).Error; err != nil {
			return fmt.Errorf("inserting run %s: %w", run.ID, err)
		}
		if len(outcomes) == 0 {
			return nil
		}
		if err := tx.Create(&outcomes).Error; err != nil {
			return fmt.Errorf("inserting outcomes of run %s: %w", run.ID, err)
		}
		return nil
	})
}
