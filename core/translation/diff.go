package translation

import "maps"

// MissingKeys returns every key of base that other lacks, with base's values.
func MissingKeys(base, other *Set) map[string]string {
	missing := make(map[string]string)
	for key, value := range base.Content {
		if _, ok := other.Content[key]; !ok {
			missing[key] = value
		}
	}
	return missing
}

// Diff returns the local keys that should be uploaded: those absent from
// the cached remote set or whose remote value is blank. A populated remote
// value wins over a differing local value and is not included.
// A nil remote means the language was never synced, so all content is returned.
func Diff(local, cachedRemote *Set) map[string]string {
	if cachedRemote == nil {
		return maps.Clone(local.Content)
	}

	delta := make(map[string]string)
	for key, value := range local.Content {
		remoteValue, ok := cachedRemote.Content[key]
		if !ok || IsBlank(remoteValue) {
			delta[key] = value
		}
	}
	return delta
}

// Divergent returns local keys whose value differs from a populated remote
// value. These are never pushed; they are reported so users can see local
// edits the remote shadows.
func Divergent(local, remote *Set) map[string]string {
	out := make(map[string]string)
	if remote == nil {
		return out
	}
	for key, value := range local.Content {
		remoteValue, ok := remote.Content[key]
		if ok && !IsBlank(remoteValue) && remoteValue != value {
			out[key] = value
		}
	}
	return out
}

// DiffStats counts local keys by their remote state.
type DiffStats struct {
	// New counts keys absent remotely.
	New int `json:"new"`
	// Updated counts keys whose remote value is blank.
	Updated int `json:"updated"`
	// Unchanged counts keys with a populated remote value.
	Unchanged int `json:"unchanged"`
}

// Stats classifies every local key against the remote set.
func Stats(local, remote *Set) DiffStats {
	var s DiffStats
	for key := range local.Content {
		if remote == nil {
			s.New++
			continue
		}
		remoteValue, ok := remote.Content[key]
		switch {
		case !ok:
			s.New++
		case IsBlank(remoteValue):
			s.Updated++
		default:
			s.Unchanged++
		}
	}
	return s
}
