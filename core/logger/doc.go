// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments
// (development vs production) and a console encoding suited to a CLI.
//
// # Run Correlation
//
// Every synchronization run carries a unique run ID. The WithRunID helper
// attaches it to the logger so all entries of one run can be correlated,
// including entries persisted by the run history.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Encoding: json or console
//
// # Usage
//
//	log, _ := logger.New(&cfg.Log)
//	log.Info("Push started")
//
//	l := logger.WithRunID(log, summary.RunID)
//	l.Error("Upload failed", zap.Error(err))
package logger
