// Package extract derives a Mint from a live construct. The extractor never
// touches host-runtime reflection: a construct enters through one of the
// capability contracts below, implemented by a language-specific adapter.
package extract

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"mint/internal/lexicon"
	"mint/internal/mint"
	"mint/internal/registry"
)

// DefaultMaxDepth bounds data extraction recursion when the extractor is
// configured with no explicit limit.
const DefaultMaxDepth = 64

// CallableSource is the callable capability: an ordered parameter
// enumeration plus name, optional declared return type and doc text.
type CallableSource interface {
	CallableName() string
	Parameters() []ParamSpec
	// ReturnType reports the declared return type spelling; ok is false
	// when the source declares none.
	ReturnType() (spelling string, ok bool)
	Doc() string
}

// ParamSpec is the adapter-normalized view of one parameter slot.
type ParamSpec struct {
	Name         string
	DeclaredType string // "" when the source carries no type
	HasDefault   bool
	Default      any
	Kind         mint.ParamKind
}

// NamedSource is the data capability for containers with named members.
type NamedSource interface {
	// TypeName returns the caller-supplied registry name, or "" to have
	// the extractor generate one.
	TypeName() string
	// NamedMembers returns the members in declared order.
	NamedMembers() []Member
}

// Member is one named child of a NamedSource. Value is a nested construct:
// another capability implementation or a bare canonical scalar.
type Member struct {
	Name     string
	Value    any
	Optional bool
	Default  any
}

// OrderedSource is the data capability for positional containers.
type OrderedSource interface {
	OrderedMembers() []any
}

// LeafSource presents a scalar leaf. Bare canonical scalars (nil, bool,
// int64, float64, string, []byte) need no wrapper.
type LeafSource interface {
	LeafValue() any
}

// ErrorKind classifies extraction failures.
type ErrorKind uint8

const (
	// Unsupported means the construct exposes neither capability.
	Unsupported ErrorKind = iota
	// DepthExceeded means data recursion passed the configured bound.
	DepthExceeded
	// NameConflict means a struct name was already bound to another shape.
	NameConflict
)

func (k ErrorKind) String() string {
	switch k {
	case Unsupported:
		return "unsupported"
	case DepthExceeded:
		return "depth-exceeded"
	case NameConflict:
		return "name-conflict"
	default:
		return fmt.Sprintf("ErrorKind(%d)", k)
	}
}

// Error is a structured extraction failure.
type Error struct {
	Kind   ErrorKind
	Detail string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return "extract: " + e.Kind.String()
	}
	return fmt.Sprintf("extract: %s: %s", e.Kind, e.Detail)
}

// Extractor derives mints from constructs, registering every named struct
// shape it encounters in Registry. Zero-value fields pick up defaults:
// nil Hints, DefaultMaxDepth.
type Extractor struct {
	Registry *registry.Registry
	Hints    lexicon.Hints
	MaxDepth int
}

// New returns an extractor bound to reg.
func New(reg *registry.Registry) *Extractor {
	return &Extractor{Registry: reg}
}

func (x *Extractor) maxDepth() int {
	if x.MaxDepth > 0 {
		return x.MaxDepth
	}
	return DefaultMaxDepth
}

// Extract produces a Mint describing construct. Callable sources yield a
// *CallableMint, named data sources a *StructMint (registered as a side
// effect), everything else a *LeafMint. Constructs exposing no capability
// fail with Unsupported; callers may fall back to NewLeaf(mint.Callable)
// for opaque callables.
func (x *Extractor) Extract(construct any) (mint.Mint, error) {
	switch c := construct.(type) {
	case CallableSource:
		return x.extractCallable(c)
	case NamedSource:
		t, err := x.extractData(construct, 0)
		if err != nil {
			return nil, err
		}
		shape, ok := x.Registry.Resolve(t)
		if !ok {
			return nil, &Error{Kind: Unsupported, Detail: fmt.Sprintf("unresolved struct %q", t.Ref)}
		}
		return shape, nil
	case OrderedSource, LeafSource:
		t, err := x.extractData(construct, 0)
		if err != nil {
			return nil, err
		}
		return mint.NewLeaf(t), nil
	default:
		if isScalar(construct) {
			return mint.NewLeaf(lexicon.ClassifyValue(c)), nil
		}
		return nil, &Error{Kind: Unsupported, Detail: fmt.Sprintf("construct %T exposes no capability", construct)}
	}
}

func (x *Extractor) extractCallable(src CallableSource) (mint.Mint, error) {
	specs := src.Parameters()
	if specs == nil {
		return nil, &Error{Kind: Unsupported, Detail: fmt.Sprintf("callable %q exposes no parameter list", src.CallableName())}
	}
	params := make([]mint.Parameter, 0, len(specs))
	pos := 0
	for _, s := range specs {
		p := mint.Parameter{
			Name:       s.Name,
			Position:   -1,
			Type:       lexicon.Classify(s.DeclaredType, x.Hints),
			HasDefault: s.HasDefault,
			Default:    s.Default,
			Kind:       s.Kind,
		}
		// Variadic and keyword-only slots do not consume positions.
		if s.Kind == mint.ParamPositional {
			p.Position = pos
			pos++
		}
		params = append(params, p)
	}
	ret := mint.Unknown
	if spelling, ok := src.ReturnType(); ok {
		ret = lexicon.Classify(spelling, x.Hints)
	}
	cm, err := mint.NewCallable(src.CallableName(), params, ret, src.Doc())
	if err != nil {
		return nil, &Error{Kind: Unsupported, Detail: err.Error()}
	}
	return cm, nil
}

// extractData recurses depth-first over the data capability tree and
// returns the canonical tag for the node, registering struct shapes along
// the way.
func (x *Extractor) extractData(v any, depth int) (mint.Type, error) {
	if depth > x.maxDepth() {
		return mint.Type{}, &Error{Kind: DepthExceeded, Detail: fmt.Sprintf("nesting beyond %d levels", x.maxDepth())}
	}
	switch c := v.(type) {
	case NamedSource:
		return x.extractNamed(c, depth)
	case OrderedSource:
		return x.extractOrdered(c, depth)
	case LeafSource:
		return lexicon.ClassifyValue(c.LeafValue()), nil
	default:
		return lexicon.ClassifyValue(v), nil
	}
}

func (x *Extractor) extractNamed(src NamedSource, depth int) (mint.Type, error) {
	name := src.TypeName()
	if name == "" {
		name = "anon-" + uuid.NewString()
	}
	members := src.NamedMembers()
	fields := make([]mint.Field, 0, len(members))
	for _, m := range members {
		ft, err := x.extractData(m.Value, depth+1)
		if err != nil {
			return mint.Type{}, err
		}
		fields = append(fields, mint.Field{
			Name:       m.Name,
			Type:       ft,
			Required:   !m.Optional,
			HasDefault: m.Default != nil,
			Default:    m.Default,
		})
	}
	shape, err := mint.NewStruct(name, fields)
	if err != nil {
		return mint.Type{}, &Error{Kind: Unsupported, Detail: err.Error()}
	}
	if err := x.Registry.Register(name, shape); err != nil {
		var conflict *registry.ConflictError
		if errors.As(err, &conflict) {
			return mint.Type{}, &Error{Kind: NameConflict, Detail: conflict.Name}
		}
		return mint.Type{}, err
	}
	return mint.MakeRef(registry.Canonical(name)), nil
}

func (x *Extractor) extractOrdered(src OrderedSource, depth int) (mint.Type, error) {
	items := src.OrderedMembers()
	if len(items) == 0 {
		return mint.MakeList(mint.Unknown), nil
	}
	tags := make([]mint.Type, len(items))
	homogeneous := true
	for i, it := range items {
		t, err := x.extractData(it, depth+1)
		if err != nil {
			return mint.Type{}, err
		}
		tags[i] = t
		if i > 0 && !t.Equal(tags[0]) {
			homogeneous = false
		}
	}
	if homogeneous {
		return mint.MakeList(tags[0]), nil
	}
	return mint.MakeTuple(tags...), nil
}

func isScalar(v any) bool {
	switch v.(type) {
	case nil, bool, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64, string, []byte:
		return true
	default:
		return false
	}
}
