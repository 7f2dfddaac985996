// Package workspace reads and writes translation files below a base directory.
//
// Files are selected with doublestar include and exclude patterns relative to
// the base directory, e.g. "locales/**/*.json". The language code of a file is
// its name without extension. A Workspace also serves as an on-disk snapshot
// sink for remote translations.
package workspace
