package mint

import (
	"fmt"
	"strings"
)

// Kind enumerates all canonical type tags.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindNull
	KindBool
	KindInt
	KindFloat
	KindString
	KindBytes
	KindList
	KindMap
	KindTuple
	KindStruct
	KindCallable
	KindAny
	KindUnknown
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindBytes:
		return "bytes"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	case KindTuple:
		return "tuple"
	case KindStruct:
		return "struct"
	case KindCallable:
		return "callable"
	case KindAny:
		return "any"
	case KindUnknown:
		return "unknown"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// KindFromString inverts Kind.String for the leaf kinds. Composite kinds
// (list/map/tuple/struct references) are parsed by ParseType.
func KindFromString(s string) (Kind, bool) {
	switch s {
	case "null":
		return KindNull, true
	case "bool":
		return KindBool, true
	case "int":
		return KindInt, true
	case "float":
		return KindFloat, true
	case "string":
		return KindString, true
	case "bytes":
		return KindBytes, true
	case "list":
		return KindList, true
	case "map":
		return KindMap, true
	case "tuple":
		return KindTuple, true
	case "struct":
		return KindStruct, true
	case "callable":
		return KindCallable, true
	case "any":
		return KindAny, true
	case "unknown":
		return KindUnknown, true
	default:
		return KindInvalid, false
	}
}

// Type is a compact descriptor for any canonical type tag. Leaf kinds use
// only Kind; containers carry their element descriptors; struct tags carry
// a reference name (Ref) resolved through a registry.
type Type struct {
	Kind  Kind
	Elem  *Type  // for list
	Key   *Type  // for map
	Value *Type  // for map
	Items []Type // for tuple
	Ref   string // for struct (named back-reference)
}

// Leaf descriptors, shared since Type values are never mutated.
var (
	Null     = Type{Kind: KindNull}
	Bool     = Type{Kind: KindBool}
	Int      = Type{Kind: KindInt}
	Float    = Type{Kind: KindFloat}
	String   = Type{Kind: KindString}
	Bytes    = Type{Kind: KindBytes}
	Callable = Type{Kind: KindCallable}
	Any      = Type{Kind: KindAny}
	Unknown  = Type{Kind: KindUnknown}
)

// MakeList describes list<elem>.
func MakeList(elem Type) Type {
	e := elem
	return Type{Kind: KindList, Elem: &e}
}

// MakeMap describes map<key,value>.
func MakeMap(key, value Type) Type {
	k, v := key, value
	return Type{Kind: KindMap, Key: &k, Value: &v}
}

// MakeTuple describes tuple<items...>.
func MakeTuple(items ...Type) Type {
	return Type{Kind: KindTuple, Items: append([]Type(nil), items...)}
}

// MakeRef describes a struct tag referencing a named StructMint. The name is
// resolved through a Registry at validation/serialization time, never owned.
func MakeRef(name string) Type {
	return Type{Kind: KindStruct, Ref: name}
}

func (t Type) String() string {
	switch t.Kind {
	case KindList:
		if t.Elem == nil {
			return "list<unknown>"
		}
		return "list<" + t.Elem.String() + ">"
	case KindMap:
		if t.Key == nil || t.Value == nil {
			return "map<unknown,unknown>"
		}
		return "map<" + t.Key.String() + "," + t.Value.String() + ">"
	case KindTuple:
		parts := make([]string, len(t.Items))
		for i, it := range t.Items {
			parts[i] = it.String()
		}
		return "tuple<" + strings.Join(parts, ",") + ">"
	case KindStruct:
		if t.Ref == "" {
			return "struct"
		}
		return "struct<" + t.Ref + ">"
	default:
		return t.Kind.String()
	}
}

// Equal reports deep structural equality of two type tags.
func (t Type) Equal(o Type) bool {
	if t.Kind != o.Kind {
		return false
	}
	switch t.Kind {
	case KindList:
		return eqElem(t.Elem, o.Elem)
	case KindMap:
		return eqElem(t.Key, o.Key) && eqElem(t.Value, o.Value)
	case KindTuple:
		if len(t.Items) != len(o.Items) {
			return false
		}
		for i := range t.Items {
			if !t.Items[i].Equal(o.Items[i]) {
				return false
			}
		}
		return true
	case KindStruct:
		return t.Ref == o.Ref
	default:
		return true
	}
}

// IsComposite reports whether the tag carries nested element descriptors.
func (t Type) IsComposite() bool {
	switch t.Kind {
	case KindList, KindMap, KindTuple:
		return true
	default:
		return false
	}
}

func eqElem(a, b *Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
