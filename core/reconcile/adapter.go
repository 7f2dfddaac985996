package reconcile

import (
	"context"

	"i18n-sync/core/translation"
)

// Remote is the translation service the engine synchronizes with.
type Remote interface {
	// FetchManifest lists, per language, the blobs holding its translations.
	// It must complete before any blob is fetched.
	FetchManifest(ctx context.Context) ([]Source, error)

	// FetchBlob returns the raw JSON document behind a locator.
	FetchBlob(ctx context.Context, locator Locator) ([]byte, error)

	// SubmitDelta uploads flat key/value pairs for one language.
	// It must either apply the whole delta or return an error.
	SubmitDelta(ctx context.Context, languageCode, relativePath string, delta map[string]string) error
}

// Workspace is the local tree of translation files.
type Workspace interface {
	// Load reads and flattens every translation file selected by the
	// workspace's include and exclude patterns.
	Load(ctx context.Context) ([]*translation.Set, error)

	// ReadTree parses one file. A missing file yields an empty object.
	ReadTree(relativePath string) (*translation.Node, error)

	// WriteTree writes a tree, creating parent directories as needed.
	WriteTree(relativePath string, tree *translation.Node) error

	// Reset clears the workspace root and recreates it empty.
	Reset() error
}

// Snapshotter receives remote trees as they are fetched.
type Snapshotter interface {
	Snapshot(ctx context.Context, languageCode string, tree *translation.Node) error
}

// Resetter is implemented by snapshot sinks that must be cleared per run.
type Resetter interface {
	Reset() error
}

// Recorder persists run summaries.
type Recorder interface {
	Record(ctx context.Context, summary *Summary) error
}
