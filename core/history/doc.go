// Package history records sync run summaries in a SQL database.
//
// Each run is stored as one sync_runs row plus one language_outcomes row per
// language, written in a single transaction.
package history
