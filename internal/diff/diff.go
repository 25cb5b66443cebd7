// Package diff compares two mints and reports structural and type deltas.
// Renames are never inferred: a member that disappears under one name and
// reappears under another is a removal plus an addition, since name
// correspondence cannot be established from shape alone.
package diff

import (
	"fmt"

	"mint/internal/mint"
)

// Op enumerates delta kinds.
type Op uint8

const (
	FieldAdded Op = iota
	FieldRemoved
	FieldTypeChanged
	ParameterAdded
	ParameterRemoved
	ParameterTypeChanged
	ReturnTypeChanged
	LeafTypeChanged
	KindChanged
)

func (o Op) String() string {
	switch o {
	case FieldAdded:
		return "field-added"
	case FieldRemoved:
		return "field-removed"
	case FieldTypeChanged:
		return "field-type-changed"
	case ParameterAdded:
		return "parameter-added"
	case ParameterRemoved:
		return "parameter-removed"
	case ParameterTypeChanged:
		return "parameter-type-changed"
	case ReturnTypeChanged:
		return "return-type-changed"
	case LeafTypeChanged:
		return "leaf-type-changed"
	case KindChanged:
		return "kind-changed"
	default:
		return fmt.Sprintf("Op(%d)", o)
	}
}

// Delta is one reported difference. Name is the member involved (empty for
// return/leaf/kind changes); From and To carry the tags for type changes
// and additions/removals (To for additions, From for removals).
type Delta struct {
	Op   Op
	Name string
	From mint.Type
	To   mint.Type
}

func (d Delta) String() string {
	switch d.Op {
	case FieldAdded, ParameterAdded:
		return fmt.Sprintf("%s %s:%s", d.Op, d.Name, d.To)
	case FieldRemoved, ParameterRemoved:
		return fmt.Sprintf("%s %s:%s", d.Op, d.Name, d.From)
	case FieldTypeChanged, ParameterTypeChanged:
		return fmt.Sprintf("%s %s:%s->%s", d.Op, d.Name, d.From, d.To)
	case ReturnTypeChanged, LeafTypeChanged:
		return fmt.Sprintf("%s %s->%s", d.Op, d.From, d.To)
	default:
		return d.Op.String()
	}
}

// Diff reports the deltas that turn a into b. Comparing mints of different
// variants yields a single KindChanged delta.
func Diff(a, b mint.Mint) []Delta {
	switch am := a.(type) {
	case *mint.StructMint:
		if bm, ok := b.(*mint.StructMint); ok {
			return diffStruct(am, bm)
		}
	case *mint.CallableMint:
		if bm, ok := b.(*mint.CallableMint); ok {
			return diffCallable(am, bm)
		}
	case *mint.LeafMint:
		if bm, ok := b.(*mint.LeafMint); ok {
			if am.Type.Equal(bm.Type) {
				return nil
			}
			return []Delta{{Op: LeafTypeChanged, From: am.Type, To: bm.Type}}
		}
	}
	return []Delta{{Op: KindChanged}}
}

func diffStruct(a, b *mint.StructMint) []Delta {
	var out []Delta
	for _, fa := range a.Fields {
		fb, ok := b.Field(fa.Name)
		if !ok {
			out = append(out, Delta{Op: FieldRemoved, Name: fa.Name, From: fa.Type})
			continue
		}
		if !fa.Type.Equal(fb.Type) {
			out = append(out, Delta{Op: FieldTypeChanged, Name: fa.Name, From: fa.Type, To: fb.Type})
		}
	}
	for _, fb := range b.Fields {
		if _, ok := a.Field(fb.Name); !ok {
			out = append(out, Delta{Op: FieldAdded, Name: fb.Name, To: fb.Type})
		}
	}
	return out
}

func diffCallable(a, b *mint.CallableMint) []Delta {
	var out []Delta
	for _, pa := range a.Parameters {
		pb, ok := b.Parameter(pa.Name)
		if !ok {
			out = append(out, Delta{Op: ParameterRemoved, Name: pa.Name, From: pa.Type})
			continue
		}
		if !pa.Type.Equal(pb.Type) {
			out = append(out, Delta{Op: ParameterTypeChanged, Name: pa.Name, From: pa.Type, To: pb.Type})
		}
	}
	for _, pb := range b.Parameters {
		if _, ok := a.Parameter(pb.Name); !ok {
			out = append(out, Delta{Op: ParameterAdded, Name: pb.Name, To: pb.Type})
		}
	}
	if !a.ReturnType.Equal(b.ReturnType) {
		out = append(out, Delta{Op: ReturnTypeChanged, From: a.ReturnType, To: b.ReturnType})
	}
	return out
}
