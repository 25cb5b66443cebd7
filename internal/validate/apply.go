package validate

import (
	"fortio.org/safecast"

	"mint/internal/mint"
)

// Apply validates raw against m and returns the value coerced into the
// shape the mint describes: defaults filled in, numeric values widened
// along the configured rules. It performs no semantic checks beyond
// structure and type. The first mismatch aborts with a *Error.
func (v *Validator) Apply(m mint.Mint, raw any) (any, error) {
	switch mm := m.(type) {
	case *mint.CallableMint:
		args, ok := asArgs(raw)
		if !ok {
			return nil, &Error{Kind: TypeMismatch}
		}
		return v.applyCallable(mm, args)
	case *mint.StructMint:
		return v.applyStruct(mm, raw, "")
	case *mint.LeafMint:
		return v.coerce(mm.Type, raw, "")
	default:
		return nil, &Error{Kind: TypeMismatch}
	}
}

// applyCallable returns the complete merged bundle: provided arguments
// coerced, absent defaults filled, variadic surplus grouped under the
// variadic parameter's name.
func (v *Validator) applyCallable(m *mint.CallableMint, args Args) (map[string]any, error) {
	bound, surplusPos, surplusKw, arityOK := Bind(m, args)
	if !arityOK {
		return nil, &Error{Kind: ArityMismatch}
	}
	out := make(map[string]any, len(m.Parameters))
	for _, p := range m.Parameters {
		switch p.Kind {
		case mint.ParamVariadicPositional:
			out[p.Name] = surplusPos
			surplusPos = nil
			continue
		case mint.ParamVariadicKeyword:
			if surplusKw == nil {
				surplusKw = map[string]any{}
			}
			out[p.Name] = surplusKw
			surplusKw = nil
			continue
		}
		val, provided := bound[p.Name]
		if !provided {
			if p.HasDefault {
				out[p.Name] = p.Default
				continue
			}
			return nil, &Error{Kind: MissingRequired, Path: p.Name}
		}
		coerced, err := v.coerce(p.Type, val, p.Name)
		if err != nil {
			return nil, err
		}
		out[p.Name] = coerced
	}
	if len(surplusPos) > 0 {
		return nil, &Error{Kind: ArityMismatch}
	}
	if len(surplusKw) > 0 {
		return nil, &Error{Kind: UnknownField, Path: sortedKeys(surplusKw)[0]}
	}
	return out, nil
}

func (v *Validator) applyStruct(m *mint.StructMint, raw any, path string) (map[string]any, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, &Error{Kind: TypeMismatch, Path: path}
	}
	out := make(map[string]any, len(m.Fields))
	for _, f := range m.Fields {
		fpath := joinPath(path, f.Name)
		val, present := obj[f.Name]
		if !present {
			if f.HasDefault {
				out[f.Name] = f.Default
				continue
			}
			if f.Required {
				return nil, &Error{Kind: MissingRequired, Path: fpath}
			}
			// Absent, optional, no default: left absent.
			continue
		}
		coerced, err := v.coerce(f.Type, val, fpath)
		if err != nil {
			return nil, err
		}
		out[f.Name] = coerced
	}
	for _, name := range sortedKeys(obj) {
		if _, declared := m.Field(name); declared {
			continue
		}
		if v.Options.Strict {
			return nil, &Error{Kind: UnknownField, Path: joinPath(path, name)}
		}
		out[name] = obj[name]
	}
	return out, nil
}

func (v *Validator) coerce(declared mint.Type, val any, path string) (any, error) {
	switch declared.Kind {
	case mint.KindAny, mint.KindUnknown:
		return val, nil
	case mint.KindStruct:
		if declared.Ref == "" {
			if obj, ok := val.(map[string]any); ok {
				return obj, nil
			}
			return nil, &Error{Kind: TypeMismatch, Path: path}
		}
		shape, ok := v.Registry.Lookup(declared.Ref)
		if !ok {
			return nil, &Error{Kind: TypeMismatch, Path: path}
		}
		return v.applyStruct(shape, val, path)
	case mint.KindList:
		items, ok := val.([]any)
		if !ok {
			return nil, &Error{Kind: TypeMismatch, Path: path}
		}
		if declared.Elem == nil {
			return items, nil
		}
		out := make([]any, len(items))
		for i, it := range items {
			c, err := v.coerce(*declared.Elem, it, indexPath(path, i))
			if err != nil {
				return nil, err
			}
			out[i] = c
		}
		return out, nil
	case mint.KindTuple:
		items, ok := val.([]any)
		if !ok {
			return nil, &Error{Kind: TypeMismatch, Path: path}
		}
		if len(items) != len(declared.Items) {
			return nil, &Error{Kind: ArityMismatch, Path: path}
		}
		out := make([]any, len(items))
		for i, it := range items {
			c, err := v.coerce(declared.Items[i], it, indexPath(path, i))
			if err != nil {
				return nil, err
			}
			out[i] = c
		}
		return out, nil
	case mint.KindMap:
		obj, ok := val.(map[string]any)
		if !ok {
			return nil, &Error{Kind: TypeMismatch, Path: path}
		}
		if declared.Value == nil {
			return obj, nil
		}
		out := make(map[string]any, len(obj))
		for _, k := range sortedKeys(obj) {
			c, err := v.coerce(*declared.Value, obj[k], joinPath(path, k))
			if err != nil {
				return nil, err
			}
			out[k] = c
		}
		return out, nil
	default:
		return v.coerceScalar(declared.Kind, val, path)
	}
}

func (v *Validator) coerceScalar(declared mint.Kind, val any, path string) (any, error) {
	norm, err := normalizeScalar(val)
	if err != nil {
		return nil, &Error{Kind: TypeMismatch, Path: path}
	}
	switch declared {
	case mint.KindNull:
		if norm == nil {
			return nil, nil
		}
	case mint.KindBool:
		if b, ok := norm.(bool); ok {
			return b, nil
		}
	case mint.KindInt:
		switch n := norm.(type) {
		case int64:
			return n, nil
		case bool:
			if v.Rules.BoolToInt {
				if n {
					return int64(1), nil
				}
				return int64(0), nil
			}
		}
	case mint.KindFloat:
		switch n := norm.(type) {
		case float64:
			return n, nil
		case int64:
			if v.Rules.IntToFloat {
				return float64(n), nil
			}
		}
	case mint.KindString:
		switch n := norm.(type) {
		case string:
			return n, nil
		case []byte:
			if v.Rules.BytesToString {
				return string(n), nil
			}
		}
	case mint.KindBytes:
		if b, ok := norm.([]byte); ok {
			return b, nil
		}
	}
	return nil, &Error{Kind: TypeMismatch, Path: path}
}

// normalizeScalar folds Go's numeric spellings onto the canonical literal
// set: every integer becomes int64 (checked), every float becomes float64.
func normalizeScalar(val any) (any, error) {
	switch n := val.(type) {
	case nil, bool, int64, float64, string, []byte:
		return n, nil
	case int:
		return int64(n), nil
	case int8:
		return int64(n), nil
	case int16:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case uint:
		return safecast.Conv[int64](n)
	case uint8:
		return int64(n), nil
	case uint16:
		return int64(n), nil
	case uint32:
		return int64(n), nil
	case uint64:
		return safecast.Conv[int64](n)
	case float32:
		return float64(n), nil
	default:
		return nil, &Error{Kind: TypeMismatch}
	}
}
