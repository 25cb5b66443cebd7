package mint

import "bytes"

// Equal reports structural equality of two mints. Parameter order is
// significant for callables; struct field order is display-only, so fields
// compare as a name→field set.
func Equal(a, b Mint) bool {
	switch am := a.(type) {
	case *CallableMint:
		bm, ok := b.(*CallableMint)
		if !ok {
			return false
		}
		return equalCallable(am, bm)
	case *StructMint:
		bm, ok := b.(*StructMint)
		if !ok {
			return false
		}
		return equalStruct(am, bm)
	case *LeafMint:
		bm, ok := b.(*LeafMint)
		if !ok {
			return false
		}
		return am.Type.Equal(bm.Type)
	default:
		return false
	}
}

func equalCallable(a, b *CallableMint) bool {
	if a.Name != b.Name || !a.ReturnType.Equal(b.ReturnType) || a.Doc != b.Doc {
		return false
	}
	if len(a.Parameters) != len(b.Parameters) {
		return false
	}
	for i := range a.Parameters {
		if !equalParameter(a.Parameters[i], b.Parameters[i]) {
			return false
		}
	}
	return true
}

func equalParameter(a, b Parameter) bool {
	return a.Name == b.Name &&
		a.Position == b.Position &&
		a.Kind == b.Kind &&
		a.HasDefault == b.HasDefault &&
		a.Type.Equal(b.Type) &&
		ValueEqual(a.Default, b.Default)
}

func equalStruct(a, b *StructMint) bool {
	if a.Name != b.Name || len(a.Fields) != len(b.Fields) {
		return false
	}
	for _, fa := range a.Fields {
		fb, ok := b.Field(fa.Name)
		if !ok || !equalField(fa, fb) {
			return false
		}
	}
	return true
}

func equalField(a, b Field) bool {
	return a.Name == b.Name &&
		a.Required == b.Required &&
		a.HasDefault == b.HasDefault &&
		a.Type.Equal(b.Type) &&
		ValueEqual(a.Default, b.Default)
}

// ValueEqual compares two canonical literal values (nil, bool, int64,
// float64, string, []byte, []any, map[string]any) structurally.
func ValueEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch av := a.(type) {
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case int64:
		bv, ok := b.(int64)
		return ok && av == bv
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case []byte:
		bv, ok := b.([]byte)
		return ok && bytes.Equal(av, bv)
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !ValueEqual(av[i], bv[i]) {
				return false
			}
		}
		return true
	case map[string]any:
		bv, ok := b.(map[string]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, v := range av {
			ov, present := bv[k]
			if !present || !ValueEqual(v, ov) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
