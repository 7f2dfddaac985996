package translation

import (
	"sort"
	"strings"
)

// Kind identifies the variant held by a Node.
type Kind int

const (
	// KindObject is a JSON object with named children.
	KindObject Kind = iota
	// KindString is a JSON string scalar.
	KindString
	// KindRaw is any other JSON literal kept as compact JSON text.
	KindRaw
)

// String returns a readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindObject:
		return "object"
	case KindString:
		return "string"
	case KindRaw:
		return "raw"
	default:
		return "unknown"
	}
}

// Node is one position in a translation tree.
type Node struct {
	// Kind selects which of the remaining fields is meaningful.
	Kind Kind
	// Fields holds the children of an object node.
	Fields map[string]*Node
	// Value holds the string of a string node or the JSON text of a raw node.
	Value string
}

// NewObject returns an empty object node.
func NewObject() *Node {
	return &Node{Kind: KindObject, Fields: make(map[string]*Node)}
}

// NewString returns a string scalar node.
func NewString(s string) *Node {
	return &Node{Kind: KindString, Value: s}
}

// NewRaw returns a raw scalar node holding JSON text.
func NewRaw(text string) *Node {
	return &Node{Kind: KindRaw, Value: text}
}

// IsObject reports whether n is an object node.
func (n *Node) IsObject() bool {
	return n != nil && n.Kind == KindObject
}

// IsScalar reports whether n is a string or raw node.
func (n *Node) IsScalar() bool {
	return n != nil && n.Kind != KindObject
}

// IsBlank reports whether n is a string scalar that is empty or whitespace only.
// Raw scalars are never blank.
func (n *Node) IsBlank() bool {
	return n != nil && n.Kind == KindString && IsBlank(n.Value)
}

// Set stores child under key, turning n's field map on if needed.
func (n *Node) Set(key string, child *Node) {
	if n.Fields == nil {
		n.Fields = make(map[string]*Node)
	}
	n.Fields[key] = child
}

// Get returns the child stored under key.
func (n *Node) Get(key string) (*Node, bool) {
	if !n.IsObject() {
		return nil, false
	}
	child, ok := n.Fields[key]
	return child, ok
}

// Keys returns the object's keys in sorted order.
func (n *Node) Keys() []string {
	if !n.IsObject() {
		return nil
	}
	keys := make([]string, 0, len(n.Fields))
	for k := range n.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a deep copy of n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	if n.Kind != KindObject {
		return &Node{Kind: n.Kind, Value: n.Value}
	}
	out := NewObject()
	for k, v := range n.Fields {
		out.Fields[k] = v.Clone()
	}
	return out
}

// Equal reports whether a and b describe the same tree.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind {
		return false
	}
	if a.Kind != KindObject {
		return a.Value == b.Value
	}
	if len(a.Fields) != len(b.Fields) {
		return false
	}
	for k, av := range a.Fields {
		bv, ok := b.Fields[k]
		if !ok || !Equal(av, bv) {
			return false
		}
	}
	return true
}

// IsBlank reports whether s is empty or contains only whitespace.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
