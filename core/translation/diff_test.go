package translation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func set(lang string, content map[string]string) *Set {
	return &Set{LanguageCode: lang, RelativePath: lang + ".json", Content: content}
}

// TestMissingKeys tests backfill detection against the base language.
func TestMissingKeys(t *testing.T) {
	tests := []struct {
		name  string
		base  map[string]string
		other map[string]string
		want  map[string]string
	}{
		{
			name:  "one key missing",
			base:  map[string]string{"a": "1", "b": "2"},
			other: map[string]string{"a": "x"},
			want:  map[string]string{"b": "2"},
		},
		{
			name:  "superset has nothing missing",
			base:  map[string]string{"a": "1"},
			other: map[string]string{"a": "x", "extra": "y"},
			want:  map[string]string{},
		},
		{
			name:  "nested keys",
			base:  map[string]string{"key1": "Value1", "key2": "Value2", "detail.label_time": "Time"},
			other: map[string]string{"key1": "值1"},
			want:  map[string]string{"key2": "Value2", "detail.label_time": "Time"},
		},
		{
			name:  "empty other value still counts as present",
			base:  map[string]string{"a": "1"},
			other: map[string]string{"a": ""},
			want:  map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MissingKeys(set("en-US", tt.base), set("zh-CN", tt.other))
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestDiff tests the gap-filling upload policy.
func TestDiff(t *testing.T) {
	tests := []struct {
		name   string
		local  map[string]string
		remote map[string]string
		want   map[string]string
	}{
		{
			name:   "empty remote triggers re-upload",
			local:  map[string]string{"k": "hello"},
			remote: map[string]string{"k": ""},
			want:   map[string]string{"k": "hello"},
		},
		{
			name:   "whitespace remote triggers re-upload",
			local:  map[string]string{"k": "hello"},
			remote: map[string]string{"k": "  \t"},
			want:   map[string]string{"k": "hello"},
		},
		{
			name:   "populated remote wins",
			local:  map[string]string{"k": "hello"},
			remote: map[string]string{"k": "world"},
			want:   map[string]string{},
		},
		{
			name:   "absent remote key uploaded",
			local:  map[string]string{"k": "hello", "n": "new"},
			remote: map[string]string{"k": "hello"},
			want:   map[string]string{"n": "new"},
		},
		{
			name:   "remote-only keys ignored",
			local:  map[string]string{},
			remote: map[string]string{"r": "x"},
			want:   map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Diff(set("en-US", tt.local), set("en-US", tt.remote))
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestDiff_NoCachedRemote tests that a first-time sync uploads everything.
func TestDiff_NoCachedRemote(t *testing.T) {
	local := set("en-US", map[string]string{"a": "1", "b.c": "2"})
	got := Diff(local, nil)
	assert.Equal(t, local.Content, got)

	// The result must not alias the local content.
	got["z"] = "added"
	assert.NotContains(t, local.Content, "z")
}

// TestDivergent tests reporting of local edits shadowed by remote values.
func TestDivergent(t *testing.T) {
	local := set("en-US", map[string]string{"same": "x", "edited": "mine", "gap": "g", "new": "n"})
	remote := set("en-US", map[string]string{"same": "x", "edited": "theirs", "gap": ""})

	assert.Equal(t, map[string]string{"edited": "mine"}, Divergent(local, remote))
	assert.Empty(t, Divergent(local, nil))
}

// TestStats tests classification counts.
func TestStats(t *testing.T) {
	local := set("en-US", map[string]string{"a": "1", "b": "2", "c": "3", "d": "4"})
	remote := set("en-US", map[string]string{"a": "1", "b": "", "c": "other"})

	assert.Equal(t, DiffStats{New: 1, Updated: 1, Unchanged: 2}, Stats(local, remote))
	assert.Equal(t, DiffStats{New: 4}, Stats(local, nil))
}

// TestSet_AddAndClone tests content mutation helpers.
func TestSet_AddAndClone(t *testing.T) {
	s := set("fr-FR", map[string]string{"a": "1"})
	c := s.Clone()
	c.Add(map[string]string{"b": "2"})

	assert.Len(t, s.Content, 1)
	assert.Equal(t, map[string]string{"a": "1", "b": "2"}, c.Content)
	assert.Equal(t, "fr-FR", LanguageFromPath("locales/fr-FR.json"))
}
