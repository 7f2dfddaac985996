package reconcile

import (
	"fmt"
	"time"
)

// Workflow names a synchronization workflow.
type Workflow string

const (
	// WorkflowPush uploads local gaps to the remote.
	WorkflowPush Workflow = "push"
	// WorkflowPull merges remote trees into local files.
	WorkflowPull Workflow = "pull"
	// WorkflowDownload writes remote trees to a preview directory.
	WorkflowDownload Workflow = "download"
)

// Status is the outcome of one language within a run.
type Status string

const (
	// StatusPushed means a delta was submitted.
	StatusPushed Status = "pushed"
	// StatusPlanned means a delta was computed but not submitted (dry run).
	StatusPlanned Status = "planned"
	// StatusUnchanged means there was nothing to submit.
	StatusUnchanged Status = "unchanged"
	// StatusWritten means a tree was written to disk.
	StatusWritten Status = "written"
	// StatusFailed means the language failed; see LanguageReport.Error.
	StatusFailed Status = "failed"
)

// Locator identifies one remote translation blob.
type Locator struct {
	// PathPrefix is the remote directory holding the file.
	PathPrefix string `json:"path_prefix"`
	// FileName is the blob's file name below PathPrefix.
	FileName string `json:"file_name"`
}

// Key returns a stable identity for deduplicating fetches.
func (l Locator) Key() string {
	return l.PathPrefix + "|" + l.FileName
}

// Source lists the blobs that make up one language on the remote.
type Source struct {
	// LanguageCode identifies the language, e.g. "en-US".
	LanguageCode string `json:"language_code"`
	// Locators are fetched and merged in order.
	Locators []Locator `json:"locators"`
}

// LanguageReport is the per-language outcome of a run.
type LanguageReport struct {
	// Language is the language code.
	Language string `json:"language"`
	// Path is the local relative path involved, if any.
	Path string `json:"path"`
	// Status is the outcome.
	Status Status `json:"status"`
	// New counts keys absent on the receiving side.
	New int `json:"new"`
	// Updated counts keys that replaced a blank or different value.
	Updated int `json:"updated"`
	// Unchanged counts keys left as they were.
	Unchanged int `json:"unchanged"`
	// Backfilled counts base-language keys added before a push.
	Backfilled int `json:"backfilled"`
	// Divergent counts local edits shadowed by a populated remote value.
	Divergent int `json:"divergent"`
	// Err holds the failure, if Status is StatusFailed.
	Err error `json:"-"`
	// Error is Err rendered for serialization.
	Error string `json:"error,omitempty"`
}

// Succeeded reports whether the language did not fail.
func (r *LanguageReport) Succeeded() bool {
	return r.Status != StatusFailed
}

func (r *LanguageReport) fail(err error) {
	r.Status = StatusFailed
	r.Err = err
	r.Error = err.Error()
}

// Summary aggregates the outcome of a run.
type Summary struct {
	// RunID uniquely identifies the run.
	RunID string `json:"run_id"`
	// Workflow is the workflow that ran.
	Workflow Workflow `json:"workflow"`
	// Languages holds one report per language in processing order.
	Languages []*LanguageReport `json:"languages"`
	// Succeeded counts languages that did not fail.
	Succeeded int `json:"succeeded"`
	// Failed counts languages that failed.
	Failed int `json:"failed"`
	// StartedAt is when the run started.
	StartedAt time.Time `json:"started_at"`
	// FinishedAt is when the run finished.
	FinishedAt time.Time `json:"finished_at"`
}

// Total returns the number of languages processed.
func (s *Summary) Total() int {
	return s.Succeeded + s.Failed
}

// String renders the summary line shown to users.
func (s *Summary) String() string {
	return fmt.Sprintf("%d succeeded, %d failed, %d total", s.Succeeded, s.Failed, s.Total())
}

// Failures returns the error of every failed language keyed by language code.
func (s *Summary) Failures() map[string]error {
	out := make(map[string]error)
	for _, r := range s.Languages {
		if !r.Succeeded() {
			out[r.Language] = r.Err
		}
	}
	return out
}

func (s *Summary) add(r *LanguageReport) {
	s.Languages = append(s.Languages, r)
	if r.Succeeded() {
		s.Succeeded++
	} else {
		s.Failed++
	}
}

// Spec bundles the collaborators and settings of an Engine.
type Spec struct {
	// Remote is the translation service.
	Remote Remote

	// Workspace is the local translation tree.
	Workspace Workspace

	// Snapshots receive every fetched remote tree. Failures are logged only.
	Snapshots []Snapshotter

	// Recorder receives the final summary. Optional.
	Recorder Recorder

	// BaseLanguage is the language all others are completed against.
	BaseLanguage string

	// BlobKeyTemplate locates a language's subtree inside a remote blob,
	// e.g. "languages/%s.json". Empty means the blob is the tree.
	BlobKeyTemplate string

	// FetchConcurrency bounds parallel blob downloads. Values below 1 mean 1.
	FetchConcurrency int
}

// PushOptions controls push behavior.
type PushOptions struct {
	// DryRun computes deltas without submitting them.
	DryRun bool

	// WriteBackfill writes backfilled placeholders into local files.
	WriteBackfill bool
}
