package translation

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/goccy/go-json"
)

// ParseTree decodes a JSON document into a tree.
// Numbers keep their literal text so they round-trip unchanged.
func ParseTree(data []byte) (*Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}
	return fromValue(v)
}

// EncodeTree renders a tree as indented JSON with sorted keys and a trailing newline.
// HTML characters are written verbatim since translation text often carries markup.
func EncodeTree(n *Node) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(toValue(n)); err != nil {
		return nil, fmt.Errorf("encoding JSON: %w", err)
	}
	return buf.Bytes(), nil
}

func fromValue(v any) (*Node, error) {
	switch t := v.(type) {
	case map[string]any:
		obj := NewObject()
		for k, child := range t {
			node, err := fromValue(child)
			if err != nil {
				return nil, err
			}
			obj.Fields[k] = node
		}
		return obj, nil
	case string:
		return NewString(t), nil
	case nil:
		return NewRaw("null"), nil
	case bool:
		return NewRaw(strconv.FormatBool(t)), nil
	case json.Number:
		return NewRaw(t.String()), nil
	default:
		// Arrays are kept whole as compact JSON text.
		b, err := json.Marshal(t)
		if err != nil {
			return nil, fmt.Errorf("encoding %T: %w", t, err)
		}
		return NewRaw(string(b)), nil
	}
}

func toValue(n *Node) any {
	if n == nil {
		return map[string]any{}
	}
	switch n.Kind {
	case KindObject:
		m := make(map[string]any, len(n.Fields))
		for k, child := range n.Fields {
			m[k] = toValue(child)
		}
		return m
	case KindRaw:
		return json.RawMessage(n.Value)
	default:
		return n.Value
	}
}
