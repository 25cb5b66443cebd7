// Package lexicon maps source-type names and runtime values onto the closed
// canonical tag set and defines the widening relation between tags. All
// functions are pure; classification is total and falls back to unknown.
package lexicon

import (
	"strings"

	"mint/internal/mint"
)

// Rules configures the widening relation. The zero value permits nothing;
// Default() mirrors the conventional numeric rule set.
type Rules struct {
	IntToFloat    bool `toml:"int_to_float"`
	BoolToInt     bool `toml:"bool_to_int"`
	BytesToString bool `toml:"bytes_to_string"`
}

// Default returns the conservative rule set: only int→float widening.
func Default() Rules {
	return Rules{IntToFloat: true}
}

// Hints supplies per-adapter equivalences from source type spellings to
// canonical tag names, consulted before the built-in alias table.
type Hints map[string]string

// builtin aliases across common source-type systems.
var aliases = map[string]mint.Kind{
	"nil":     mint.KindNull,
	"none":    mint.KindNull,
	"null":    mint.KindNull,
	"void":    mint.KindNull,
	"unit":    mint.KindNull,
	"bool":    mint.KindBool,
	"boolean": mint.KindBool,
	"int":     mint.KindInt,
	"int8":    mint.KindInt,
	"int16":   mint.KindInt,
	"int32":   mint.KindInt,
	"int64":   mint.KindInt,
	"uint":    mint.KindInt,
	"uint8":   mint.KindInt,
	"uint16":  mint.KindInt,
	"uint32":  mint.KindInt,
	"uint64":  mint.KindInt,
	"integer": mint.KindInt,
	"long":    mint.KindInt,
	"float":   mint.KindFloat,
	"float32": mint.KindFloat,
	"float64": mint.KindFloat,
	"double":  mint.KindFloat,
	"number":  mint.KindFloat,
	"str":     mint.KindString,
	"string":  mint.KindString,
	"text":    mint.KindString,
	"bytes":   mint.KindBytes,
	"blob":    mint.KindBytes,
	"list":    mint.KindList,
	"array":   mint.KindList,
	"slice":   mint.KindList,
	"map":     mint.KindMap,
	"dict":    mint.KindMap,
	"object":  mint.KindStruct,
	"struct":  mint.KindStruct,
	"tuple":   mint.KindTuple,
	"fn":      mint.KindCallable,
	"func":    mint.KindCallable,
	"function": mint.KindCallable,
	"callable": mint.KindCallable,
	"any":      mint.KindAny,
	"unknown":  mint.KindUnknown,
}

// Classify maps a declared source-type spelling onto a canonical tag.
// Hints take precedence over the built-in alias table; full composite
// spellings (list<int>, map<string,any>, struct<Name>) are parsed as-is.
// Unrecognized spellings classify as unknown, never as an error.
func Classify(declared string, hints Hints) mint.Type {
	s := strings.TrimSpace(declared)
	if s == "" {
		return mint.Unknown
	}
	if hints != nil {
		if mapped, ok := hints[s]; ok {
			s = mapped
		}
	}
	if t, err := mint.ParseType(s); err == nil {
		return t
	}
	if k, ok := aliases[strings.ToLower(s)]; ok {
		return mint.Type{Kind: k}
	}
	return mint.Unknown
}

// ClassifyValue maps a runtime value (decoded JSON shapes plus Go scalars)
// onto a canonical tag. Containers classify to their kind only; the
// extractor is responsible for recursing into elements.
func ClassifyValue(v any) mint.Type {
	switch v.(type) {
	case nil:
		return mint.Null
	case bool:
		return mint.Bool
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return mint.Int
	case float32, float64:
		return mint.Float
	case string:
		return mint.String
	case []byte:
		return mint.Bytes
	case []any:
		return mint.Type{Kind: mint.KindList}
	case map[string]any:
		return mint.Type{Kind: mint.KindStruct}
	default:
		return mint.Unknown
	}
}

// Compatible reports whether a runtime tag satisfies a declared tag:
// identical tags, either side any, declared unknown, or a permitted
// widening from actual to declared.
func Compatible(declared, actual mint.Type, rules Rules) bool {
	if declared.Kind == mint.KindAny || actual.Kind == mint.KindAny {
		return true
	}
	if declared.Kind == mint.KindUnknown || actual.Kind == mint.KindUnknown {
		return true
	}
	if declared.Equal(actual) {
		return true
	}
	if declared.Kind == actual.Kind && declared.IsComposite() {
		return compatibleComposite(declared, actual, rules)
	}
	return widensTo(actual.Kind, declared.Kind, rules)
}

func compatibleComposite(declared, actual mint.Type, rules Rules) bool {
	switch declared.Kind {
	case mint.KindList:
		if declared.Elem == nil || actual.Elem == nil {
			return true
		}
		return Compatible(*declared.Elem, *actual.Elem, rules)
	case mint.KindMap:
		if declared.Key != nil && actual.Key != nil && !Compatible(*declared.Key, *actual.Key, rules) {
			return false
		}
		if declared.Value == nil || actual.Value == nil {
			return true
		}
		return Compatible(*declared.Value, *actual.Value, rules)
	case mint.KindTuple:
		if len(declared.Items) != len(actual.Items) {
			return false
		}
		for i := range declared.Items {
			if !Compatible(declared.Items[i], actual.Items[i], rules) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Widen returns the common supertype of two tags under the configured
// rules, reporting false when none exists.
func Widen(a, b mint.Type, rules Rules) (mint.Type, bool) {
	if a.Equal(b) {
		return a, true
	}
	if a.Kind == mint.KindAny || b.Kind == mint.KindAny {
		return mint.Any, true
	}
	if a.Kind == mint.KindUnknown {
		return b, true
	}
	if b.Kind == mint.KindUnknown {
		return a, true
	}
	if widensTo(a.Kind, b.Kind, rules) {
		return b, true
	}
	if widensTo(b.Kind, a.Kind, rules) {
		return a, true
	}
	return mint.Type{}, false
}

// widensTo reports whether a value tagged from may stand in for to.
func widensTo(from, to mint.Kind, rules Rules) bool {
	switch {
	case from == mint.KindInt && to == mint.KindFloat:
		return rules.IntToFloat
	case from == mint.KindBool && to == mint.KindInt:
		return rules.BoolToInt
	case from == mint.KindBytes && to == mint.KindString:
		return rules.BytesToString
	default:
		return false
	}
}
