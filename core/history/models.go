package history

import "time"

// SyncRun is one recorded workflow run.
type SyncRun struct {
	ID         string    `gorm:"column:id;primaryKey;size:36"`
	Workflow   string    `gorm:"column:workflow;size:16;index"`
	Succeeded  int       `gorm:"column:succeeded"`
	Failed     int       `gorm:"column:failed"`
	StartedAt  time.Time `gorm:"column:started_at"`
	FinishedAt time.Time `gorm:"column:finished_at"`
}

// TableName overrides the table name used by SyncRun to `sync_runs`
func (SyncRun) TableName() string {
	return "sync_runs"
}

// LanguageOutcome is the result of one language within a run.
type LanguageOutcome struct {
	ID         uint   `gorm:"column:id;primaryKey;autoIncrement"`
	RunID      string `gorm:"column:run_id;size:36;index"`
	Language   string `gorm:"column:language;size:35"`
	Path       string `gorm:"column:path;size:512"`
	Status     string `gorm:"column:status;size:16"`
	New        int    `gorm:"column:new"`
	Updated    int    `gorm:"column:updated"`
	Unchanged  int    `gorm:"column:unchanged"`
	Backfilled int    `gorm:"column:backfilled"`
	Divergent  int    `gorm:"column:divergent"`
	Error      string `gorm:"column:error;type:text"`
}

// TableName overrides the table name used by LanguageOutcome to `language_outcomes`
func (LanguageOutcome) TableName() string {
	return "language_outcomes"
}
