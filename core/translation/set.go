package translation

import (
	"maps"
	"path/filepath"
	"strings"
)

// Set is one language variant of a translation resource in flattened form.
type Set struct {
	// LanguageCode identifies the language, e.g. "en-US".
	LanguageCode string
	// RelativePath locates the file below the workspace base directory.
	RelativePath string
	// Content maps dotted key paths to values. It never holds nested data.
	Content map[string]string
}

// NewSet flattens tree into a Set.
func NewSet(languageCode, relativePath string, tree *Node) *Set {
	return &Set{
		LanguageCode: languageCode,
		RelativePath: relativePath,
		Content:      Flatten(tree),
	}
}

// Clone returns a copy of s with its own content map.
func (s *Set) Clone() *Set {
	return &Set{
		LanguageCode: s.LanguageCode,
		RelativePath: s.RelativePath,
		Content:      maps.Clone(s.Content),
	}
}

// Tree rebuilds the nested tree of the set's content.
func (s *Set) Tree() (*Node, error) {
	return Unflatten(s.Content)
}

// Add copies entries into the set's content, overwriting existing keys.
func (s *Set) Add(entries map[string]string) {
	if s.Content == nil {
		s.Content = make(map[string]string, len(entries))
	}
	maps.Copy(s.Content, entries)
}

// LanguageFromPath derives a language code from a file name,
// e.g. "locales/en-US.json" -> "en-US".
func LanguageFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
