// Package config provides configuration management for i18n-sync.
//
// It uses Viper to merge, in order of increasing precedence, defaults from
// struct tags, an optional .i18n-sync.yaml file and environment variables.
// A .env file is loaded into the environment first.
//
// # Configuration Structure
//
// The Config struct is divided into subsections:
//   - Remote: translation service host, product and version
//   - Sync: base language, include/exclude patterns, work directory
//   - Log: logging level and format
//   - Storage: optional S3/MinIO snapshot mirror
//   - Database: optional run history
//
// Environment variables map to keys by replacing dots with underscores,
// e.g. SYNC_BASE_LANGUAGE sets sync.base_language.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
package config
