package validate

import (
	"fmt"
	"sort"

	"mint/internal/mint"
)

// Args is a callable argument bundle: positional arguments in call order
// plus keyword arguments by name.
type Args struct {
	Positional []any
	Keyword    map[string]any
}

// Bind merges an argument bundle into name→value form against the mint's
// parameter order, so positional and keyword arguments can be handled
// uniformly. Surplus positional arguments and unknown keywords are returned
// separately for the caller to route to variadic slots or reject. arityOK
// is false when a keyword argument collides with an already-bound
// positional slot.
func Bind(m *mint.CallableMint, args Args) (bound map[string]any, surplusPos []any, surplusKw map[string]any, arityOK bool) {
	bound = make(map[string]any, len(m.Parameters))
	arityOK = true

	var positional []mint.Parameter
	for _, p := range m.Parameters {
		if p.Kind == mint.ParamPositional {
			positional = append(positional, p)
		}
	}
	for i, v := range args.Positional {
		if i < len(positional) {
			bound[positional[i].Name] = v
			continue
		}
		surplusPos = append(surplusPos, v)
	}
	for name, v := range args.Keyword {
		p, declared := m.Parameter(name)
		if !declared || p.Kind == mint.ParamVariadicPositional || p.Kind == mint.ParamVariadicKeyword {
			if surplusKw == nil {
				surplusKw = make(map[string]any)
			}
			surplusKw[name] = v
			continue
		}
		if _, taken := bound[name]; taken {
			arityOK = false
			continue
		}
		bound[name] = v
	}
	return bound, surplusPos, surplusKw, arityOK
}

// RequireFields checks that the struct mint declares every named field,
// a structural precondition helper for callers that depend on specific
// members being describable.
func RequireFields(m *mint.StructMint, names ...string) error {
	var missing []string
	for _, n := range names {
		if _, ok := m.Field(n); !ok {
			missing = append(missing, n)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("struct %q missing declared fields %v", m.Name, missing)
	}
	return nil
}

func asArgs(candidate any) (Args, bool) {
	switch c := candidate.(type) {
	case Args:
		return c, true
	case *Args:
		return *c, true
	case map[string]any:
		// A bare map is treated as a keyword-only bundle.
		return Args{Keyword: c}, true
	default:
		return Args{}, false
	}
}

// sortedKeys keeps map iteration deterministic so collect-all error order
// is stable between runs.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
