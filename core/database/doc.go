// Package database opens the run history database.
//
// It wraps GORM and supports MySQL for shared history and SQLite for a local
// file. Connections are verified with a ping so a misconfigured database is
// reported before a run starts.
//
// # Schema Inspection
//
// GetTableColumns and MissingColumns read the live schema, so callers can
// verify that migrations produced the columns they write.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Warn("History disabled", zap.Error(err))
//	}
package database
