package descriptor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"mint/internal/extract"
)

type namedValue struct {
	name    string
	members []extract.Member
}

func (n *namedValue) TypeName() string               { return n.name }
func (n *namedValue) NamedMembers() []extract.Member { return n.members }

type orderedValue struct {
	items []any
}

func (o *orderedValue) OrderedMembers() []any { return o.items }

// Value presents a decoded JSON tree as a data-capability construct.
// Objects become named sources under name, nested objects under
// "name.field" so registry entries stay readable; object keys are sorted
// since decoded JSON carries no member order. Arrays become ordered
// sources; scalars pass through after normalization.
func Value(name string, v any) any {
	switch val := v.(type) {
	case map[string]any:
		n := &namedValue{name: name}
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			child := ""
			if _, nested := val[k].(map[string]any); nested && name != "" {
				child = name + "." + k
			}
			n.members = append(n.members, extract.Member{Name: k, Value: Value(child, val[k])})
		}
		return n
	case []any:
		o := &orderedValue{items: make([]any, 0, len(val))}
		for _, it := range val {
			o.items = append(o.items, Value("", it))
		}
		return o
	default:
		return Normalize(v)
	}
}

// ParseJSON decodes JSON and wraps it as a construct named name. Numbers
// decode through json.Number so integral values stay integers.
func ParseJSON(name string, data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("descriptor: %w", err)
	}
	return Value(name, v), nil
}

// Normalize folds decoder-specific scalar spellings (YAML ints, JSON
// numbers) onto the canonical literal set.
func Normalize(v any) any {
	switch n := v.(type) {
	case int:
		return int64(n)
	case int32:
		return int64(n)
	case uint:
		return int64(n)
	case uint32:
		return int64(n)
	case uint64:
		return int64(n)
	case float32:
		return float64(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i
		}
		f, _ := n.Float64()
		return f
	case []any:
		out := make([]any, len(n))
		for i, it := range n {
			out[i] = Normalize(it)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(n))
		for k, it := range n {
			out[k] = Normalize(it)
		}
		return out
	default:
		return v
	}
}
