package translation

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Separator joins nested object keys in a flat key path.
const Separator = "."

// ErrStructureConflict is matched by every StructureConflictError.
var ErrStructureConflict = errors.New("structure conflict")

// StructureConflictError reports a flat key that cannot be placed in a tree
// because an earlier key already used its path with a different shape.
type StructureConflictError struct {
	// Key is the flat key being placed.
	Key string
	// Path is the clashing prefix.
	Path string
	// Existing is the kind already stored at Path.
	Existing Kind
}

func (e *StructureConflictError) Error() string {
	return fmt.Sprintf("structure conflict: key %q clashes with %s at %q", e.Key, e.Existing, e.Path)
}

// Is makes errors.Is(err, ErrStructureConflict) hold.
func (e *StructureConflictError) Is(target error) bool {
	return target == ErrStructureConflict
}

// Flatten projects a tree onto a flat map of dotted key paths.
// A scalar root is stored under the empty key.
func Flatten(n *Node) map[string]string {
	out := make(map[string]string)
	flattenInto(n, "", out)
	return out
}

func flattenInto(n *Node, prefix string, out map[string]string) {
	if n == nil {
		return
	}
	if n.Kind != KindObject {
		out[prefix] = n.Value
		return
	}
	for key, child := range n.Fields {
		next := key
		if prefix != "" {
			next = prefix + Separator + key
		}
		flattenInto(child, next, out)
	}
}

// Unflatten rebuilds a tree from dotted key paths. Every leaf becomes a
// string node. Keys are placed in sorted order so conflicts are reported
// deterministically.
func Unflatten(flat map[string]string) (*Node, error) {
	root := NewObject()

	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if err := place(root, key, flat[key]); err != nil {
			return nil, err
		}
	}
	return root, nil
}

func place(root *Node, key, value string) error {
	parts := strings.Split(key, Separator)
	cur := root
	for i, part := range parts[:len(parts)-1] {
		child, ok := cur.Fields[part]
		if !ok {
			child = NewObject()
			cur.Fields[part] = child
		} else if !child.IsObject() {
			return &StructureConflictError{
				Key:      key,
				Path:     strings.Join(parts[:i+1], Separator),
				Existing: child.Kind,
			}
		}
		cur = child
	}

	leaf := parts[len(parts)-1]
	if existing, ok := cur.Fields[leaf]; ok && existing.IsObject() {
		return &StructureConflictError{Key: key, Path: key, Existing: KindObject}
	}
	cur.Fields[leaf] = NewString(value)
	return nil
}
