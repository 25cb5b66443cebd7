// Package mint defines the canonical in-memory description ("mint") of a
// construct's interface: callable signatures and tree-shaped data values.
// Mint values are immutable once constructed and safe for concurrent readers.
package mint

import (
	"fmt"
)

// ParamKind distinguishes how a parameter binds arguments.
type ParamKind uint8

const (
	ParamPositional ParamKind = iota
	ParamKeywordOnly
	ParamVariadicPositional
	ParamVariadicKeyword
)

func (k ParamKind) String() string {
	switch k {
	case ParamPositional:
		return "positional"
	case ParamKeywordOnly:
		return "keyword-only"
	case ParamVariadicPositional:
		return "variadic-positional"
	case ParamVariadicKeyword:
		return "variadic-keyword"
	default:
		return fmt.Sprintf("ParamKind(%d)", k)
	}
}

// ParamKindFromString inverts ParamKind.String.
func ParamKindFromString(s string) (ParamKind, bool) {
	switch s {
	case "positional":
		return ParamPositional, true
	case "keyword-only":
		return ParamKeywordOnly, true
	case "variadic-positional":
		return ParamVariadicPositional, true
	case "variadic-keyword":
		return ParamVariadicKeyword, true
	default:
		return 0, false
	}
}

// Parameter describes one slot of a callable signature. Default holds a
// canonical literal (nil, bool, int64, float64, string, []byte, []any or
// map[string]any) and is meaningful only when HasDefault is set.
type Parameter struct {
	Name       string
	Position   int
	Type       Type
	HasDefault bool
	Default    any
	Kind       ParamKind
}

// Field describes one named member of a struct shape.
type Field struct {
	Name       string
	Type       Type
	Required   bool
	HasDefault bool
	Default    any
}

// Mint is the canonical description of a construct. It is a sealed union
// over *CallableMint, *StructMint and *LeafMint.
type Mint interface {
	MintKind() Kind
}

// CallableMint describes a callable: name, ordered parameters, return type.
type CallableMint struct {
	Name       string
	Parameters []Parameter
	ReturnType Type
	Doc        string
}

// StructMint describes a named/ordered container of typed fields. Field
// order is preserved for display and serialization; equality ignores it.
type StructMint struct {
	Name   string
	Fields []Field
}

// LeafMint wraps a bare type tag for primitive top-level constructs.
type LeafMint struct {
	Type Type
}

func (*CallableMint) MintKind() Kind { return KindCallable }
func (*StructMint) MintKind() Kind   { return KindStruct }
func (m *LeafMint) MintKind() Kind   { return m.Type.Kind }

// NewCallable builds a CallableMint and checks the signature invariants:
// unique parameter names, strictly increasing positions for positional
// parameters, at most one variadic of each kind, variadics after all fixed
// positional slots.
func NewCallable(name string, params []Parameter, ret Type, doc string) (*CallableMint, error) {
	seen := make(map[string]struct{}, len(params))
	lastPos := -1
	sawVarPos, sawVarKw, sawKwOnly := false, false, false
	for i, p := range params {
		if p.Name == "" {
			return nil, fmt.Errorf("callable %q: parameter %d has no name", name, i)
		}
		if _, dup := seen[p.Name]; dup {
			return nil, fmt.Errorf("callable %q: duplicate parameter %q", name, p.Name)
		}
		seen[p.Name] = struct{}{}
		switch p.Kind {
		case ParamPositional:
			if sawVarPos || sawVarKw || sawKwOnly {
				return nil, fmt.Errorf("callable %q: positional parameter %q after variadic or keyword-only slot", name, p.Name)
			}
			if p.Position <= lastPos {
				return nil, fmt.Errorf("callable %q: position of %q not increasing", name, p.Name)
			}
			lastPos = p.Position
		case ParamVariadicPositional:
			if sawVarPos {
				return nil, fmt.Errorf("callable %q: multiple variadic-positional parameters", name)
			}
			if sawVarKw {
				return nil, fmt.Errorf("callable %q: variadic-positional %q after variadic-keyword", name, p.Name)
			}
			sawVarPos = true
		case ParamKeywordOnly:
			if sawVarKw {
				return nil, fmt.Errorf("callable %q: keyword-only parameter %q after variadic-keyword", name, p.Name)
			}
			sawKwOnly = true
		case ParamVariadicKeyword:
			if sawVarKw {
				return nil, fmt.Errorf("callable %q: multiple variadic-keyword parameters", name)
			}
			sawVarKw = true
		default:
			return nil, fmt.Errorf("callable %q: parameter %q has invalid kind", name, p.Name)
		}
	}
	return &CallableMint{
		Name:       name,
		Parameters: append([]Parameter(nil), params...),
		ReturnType: ret,
		Doc:        doc,
	}, nil
}

// NewStruct builds a StructMint, enforcing unique field names.
func NewStruct(name string, fields []Field) (*StructMint, error) {
	seen := make(map[string]struct{}, len(fields))
	for i, f := range fields {
		if f.Name == "" {
			return nil, fmt.Errorf("struct %q: field %d has no name", name, i)
		}
		if _, dup := seen[f.Name]; dup {
			return nil, fmt.Errorf("struct %q: duplicate field %q", name, f.Name)
		}
		seen[f.Name] = struct{}{}
	}
	return &StructMint{Name: name, Fields: append([]Field(nil), fields...)}, nil
}

// NewLeaf wraps a bare type tag.
func NewLeaf(t Type) *LeafMint { return &LeafMint{Type: t} }

// Field returns the named field, if declared.
func (m *StructMint) Field(name string) (Field, bool) {
	for _, f := range m.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Parameter returns the named parameter, if declared.
func (m *CallableMint) Parameter(name string) (Parameter, bool) {
	for _, p := range m.Parameters {
		if p.Name == name {
			return p, true
		}
	}
	return Parameter{}, false
}

// Variadic returns the variadic parameter of the given kind, if declared.
func (m *CallableMint) Variadic(kind ParamKind) (Parameter, bool) {
	for _, p := range m.Parameters {
		if p.Kind == kind {
			return p, true
		}
	}
	return Parameter{}, false
}

// Defaults returns a name→default table over parameters that declare one.
func (m *CallableMint) Defaults() map[string]any {
	out := make(map[string]any)
	for _, p := range m.Parameters {
		if p.HasDefault {
			out[p.Name] = p.Default
		}
	}
	return out
}
