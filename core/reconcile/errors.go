package reconcile

import (
	"fmt"
	"sort"
	"strings"
)

// ConfigError reports a setup problem that stops a run before any work.
type ConfigError struct {
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("config error: %s: %v", e.Reason, e.Err)
	}
	return "config error: " + e.Reason
}

func (e *ConfigError) Unwrap() error { return e.Err }

// RemoteFetchError reports a failed manifest or blob download, or a blob
// that could not be parsed.
type RemoteFetchError struct {
	// Language is empty for manifest failures.
	Language string
	Err      error
}

func (e *RemoteFetchError) Error() string {
	if e.Language == "" {
		return fmt.Sprintf("fetching remote manifest: %v", e.Err)
	}
	return fmt.Sprintf("fetching remote translations for %s: %v", e.Language, e.Err)
}

func (e *RemoteFetchError) Unwrap() error { return e.Err }

// PersistError reports a local read or write failure for one language.
type PersistError struct {
	Language string
	Path     string
	Err      error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("persisting %s to %s: %v", e.Language, e.Path, e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }

// NoProgressError ends a run in which no language succeeded.
type NoProgressError struct {
	Succeeded int
	Failed    int
	// Failures maps language codes to their errors.
	Failures map[string]error
	// Cause is set when the run failed before any language was attempted.
	Cause error
}

func (e *NoProgressError) Error() string {
	msg := fmt.Sprintf("no language succeeded: %d succeeded, %d failed, %d total",
		e.Succeeded, e.Failed, e.Succeeded+e.Failed)
	if e.Cause != nil {
		return msg + ": " + e.Cause.Error()
	}
	if len(e.Failures) > 0 {
		langs := make([]string, 0, len(e.Failures))
		for lang := range e.Failures {
			langs = append(langs, lang)
		}
		sort.Strings(langs)
		msg += " (" + strings.Join(langs, ", ") + ")"
	}
	return msg
}

func (e *NoProgressError) Unwrap() error { return e.Cause }
