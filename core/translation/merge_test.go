package translation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMerge_Scenarios tests the conflict policy leaf by leaf.
func TestMerge_Scenarios(t *testing.T) {
	tests := []struct {
		name   string
		local  string
		remote string
		want   string
	}{
		{
			name:   "union of objects with remote update",
			local:  `{"common": {"a": "X", "b": "Y"}}`,
			remote: `{"common": {"b": "Z", "c": "W"}}`,
			want:   `{"common": {"a": "X", "b": "Z", "c": "W"}}`,
		},
		{
			name:   "blank remote keeps local",
			local:  `{"k": "hello"}`,
			remote: `{"k": "   "}`,
			want:   `{"k": "hello"}`,
		},
		{
			name:   "blank remote over blank local takes remote",
			local:  `{"k": ""}`,
			remote: `{"k": " "}`,
			want:   `{"k": " "}`,
		},
		{
			name:   "remote scalar replaces local object",
			local:  `{"k": {"nested": "x"}}`,
			remote: `{"k": "flat"}`,
			want:   `{"k": "flat"}`,
		},
		{
			name:   "remote object replaces local scalar",
			local:  `{"k": "flat"}`,
			remote: `{"k": {"nested": "x"}}`,
			want:   `{"k": {"nested": "x"}}`,
		},
		{
			name:   "blank remote string over local object takes remote",
			local:  `{"k": {"nested": "x"}}`,
			remote: `{"k": ""}`,
			want:   `{"k": ""}`,
		},
		{
			name:   "raw values pass through",
			local:  `{"n": 1, "list": ["a"]}`,
			remote: `{"n": 2, "list": ["b", "c"]}`,
			want:   `{"n": 2, "list": ["b", "c"]}`,
		},
		{
			name:   "local raw survives blank remote",
			local:  `{"n": 1}`,
			remote: `{"n": ""}`,
			want:   `{"n": 1}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Merge(mustParse(t, tt.local), mustParse(t, tt.remote))
			want := mustParse(t, tt.want)
			assert.True(t, Equal(want, got), "got %v", Flatten(got))
		})
	}
}

// TestMerge_Nil tests that a missing side yields a copy of the other.
func TestMerge_Nil(t *testing.T) {
	tree := mustParse(t, `{"a": {"b": "c"}}`)

	got := Merge(nil, tree)
	assert.True(t, Equal(tree, got))
	assert.NotSame(t, tree, got)

	assert.True(t, Equal(tree, Merge(tree, nil)))
}

// TestMerge_Idempotent tests that merging a tree with itself is a no-op and
// that repeated merges with the same remote are stable.
func TestMerge_Idempotent(t *testing.T) {
	flats := []map[string]string{
		{},
		{"a": "1"},
		{"a": "", "b.c": "x", "b.d": " "},
		{"home.title": "Home", "home.hero.cta": "Go", "common.ok": "OK"},
	}

	for _, m := range flats {
		tree, err := Unflatten(m)
		require.NoError(t, err)
		assert.True(t, Equal(tree, Merge(tree, tree)))
	}

	local := mustParse(t, `{"a": "keep", "b": {"c": "old", "local": "only"}, "e": "x"}`)
	remote := mustParse(t, `{"a": "", "b": {"c": "new", "remote": "only"}, "d": "added"}`)
	once := Merge(local, remote)
	twice := Merge(once, remote)
	assert.True(t, Equal(once, twice))
	assert.Equal(t, map[string]string{
		"a":        "keep",
		"b.c":      "new",
		"b.local":  "only",
		"b.remote": "only",
		"d":        "added",
		"e":        "x",
	}, Flatten(once))
}

// TestMerge_DoesNotMutateInputs tests that inputs are left intact.
func TestMerge_DoesNotMutateInputs(t *testing.T) {
	local := mustParse(t, `{"a": {"b": "1"}}`)
	remote := mustParse(t, `{"a": {"c": "2"}}`)

	merged := Merge(local, remote)
	merged.Fields["a"].Fields["b"].Value = "changed"

	assert.Equal(t, map[string]string{"a.b": "1"}, Flatten(local))
	assert.Equal(t, map[string]string{"a.c": "2"}, Flatten(remote))
}
