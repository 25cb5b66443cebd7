package codec

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Canonical literal encoding for default values. Null, bool, float and
// string map onto the host encoding directly; integers and bytes are tagged
// single-key objects so both JSON and MessagePack round-trip them without
// numeric ambiguity:
//
//	int64  → {"$int": "5"}
//	[]byte → {"$bytes": "<base64>"}
//
// Map literal keys beginning with '$' are escaped with a second '$'.

func encodeValue(v any) any {
	switch n := v.(type) {
	case nil, bool, float64, string:
		return n
	case int64:
		return map[string]any{"$int": strconv.FormatInt(n, 10)}
	case []byte:
		return map[string]any{"$bytes": base64.StdEncoding.EncodeToString(n)}
	case []any:
		out := make([]any, len(n))
		for i, it := range n {
			out[i] = encodeValue(it)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(n))
		for k, it := range n {
			if strings.HasPrefix(k, "$") {
				k = "$" + k
			}
			out[k] = encodeValue(it)
		}
		return out
	default:
		// Non-canonical literals should never reach the codec; encode the
		// textual form rather than dropping the value.
		return fmt.Sprint(n)
	}
}

func decodeValue(v any) (any, error) {
	switch n := v.(type) {
	case nil, bool, string:
		return n, nil
	case float64:
		return n, nil
	case int64:
		// MessagePack decodes bare numbers natively; our integers travel
		// tagged, so a bare integer was written as a float literal.
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case float32:
		return float64(n), nil
	case int8, int16, int32, int, uint8, uint16, uint32, uint:
		return nil, &Error{Kind: Malformed, Detail: fmt.Sprintf("unexpected numeric literal %T", v)}
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return nil, &Error{Kind: Malformed, Detail: err.Error()}
		}
		return f, nil
	case []any:
		out := make([]any, len(n))
		for i, it := range n {
			d, err := decodeValue(it)
			if err != nil {
				return nil, err
			}
			out[i] = d
		}
		return out, nil
	case map[string]any:
		return decodeObject(n)
	case map[any]any:
		// MessagePack may hand back untyped keys.
		conv := make(map[string]any, len(n))
		for k, it := range n {
			ks, ok := k.(string)
			if !ok {
				return nil, &Error{Kind: Malformed, Detail: "non-string literal key"}
			}
			conv[ks] = it
		}
		return decodeObject(conv)
	default:
		return nil, &Error{Kind: Malformed, Detail: fmt.Sprintf("unsupported literal %T", v)}
	}
}

func decodeObject(obj map[string]any) (any, error) {
	if len(obj) == 1 {
		if raw, ok := obj["$int"]; ok {
			s, ok := raw.(string)
			if !ok {
				return nil, &Error{Kind: Malformed, Detail: "$int literal must hold a string"}
			}
			i, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				return nil, &Error{Kind: Malformed, Detail: err.Error()}
			}
			return i, nil
		}
		if raw, ok := obj["$bytes"]; ok {
			s, ok := raw.(string)
			if !ok {
				return nil, &Error{Kind: Malformed, Detail: "$bytes literal must hold a string"}
			}
			b, err := base64.StdEncoding.DecodeString(s)
			if err != nil {
				return nil, &Error{Kind: Malformed, Detail: err.Error()}
			}
			return b, nil
		}
	}
	out := make(map[string]any, len(obj))
	for k, it := range obj {
		d, err := decodeValue(it)
		if err != nil {
			return nil, err
		}
		if strings.HasPrefix(k, "$$") {
			k = k[1:]
		}
		out[k] = d
	}
	return out, nil
}
