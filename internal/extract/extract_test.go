package extract

import (
	"context"
	"errors"
	"testing"

	"mint/internal/mint"
	"mint/internal/registry"
)

type fakeCallable struct {
	name   string
	params []ParamSpec
	ret    string
	hasRet bool
	doc    string
}

func (f *fakeCallable) CallableName() string       { return f.name }
func (f *fakeCallable) Parameters() []ParamSpec    { return f.params }
func (f *fakeCallable) ReturnType() (string, bool) { return f.ret, f.hasRet }
func (f *fakeCallable) Doc() string                { return f.doc }

type fakeNamed struct {
	name    string
	members []Member
}

func (f *fakeNamed) TypeName() string       { return f.name }
func (f *fakeNamed) NamedMembers() []Member { return f.members }

type fakeOrdered struct {
	items []any
}

func (f *fakeOrdered) OrderedMembers() []any { return f.items }

// selfNested reproduces a self-referential live value: every level exposes
// one more level below it, without end.
type selfNested struct{}

func (s selfNested) TypeName() string { return "" }
func (s selfNested) NamedMembers() []Member {
	return []Member{{Name: "next", Value: selfNested{}}}
}

func TestExtractCallable(t *testing.T) {
	x := New(registry.New())
	src := &fakeCallable{
		name: "resize",
		params: []ParamSpec{
			{Name: "image", DeclaredType: "bytes", Kind: mint.ParamPositional},
			{Name: "width", DeclaredType: "int", Kind: mint.ParamPositional},
			{Name: "scale", DeclaredType: "float", Kind: mint.ParamPositional, HasDefault: true, Default: float64(1)},
			{Name: "opts", DeclaredType: "map<string,any>", Kind: mint.ParamVariadicKeyword},
		},
		ret:    "bytes",
		hasRet: true,
		doc:    "resize an image",
	}
	m, err := x.Extract(src)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	cm, ok := m.(*mint.CallableMint)
	if !ok {
		t.Fatalf("Extract returned %T, want *CallableMint", m)
	}
	if cm.Name != "resize" || cm.Doc != "resize an image" {
		t.Fatalf("metadata lost: %+v", cm)
	}
	if cm.ReturnType.Kind != mint.KindBytes {
		t.Fatalf("return type = %v", cm.ReturnType)
	}
	wantPos := []int{0, 1, 2, -1}
	for i, p := range cm.Parameters {
		if p.Position != wantPos[i] {
			t.Errorf("parameter %q position = %d, want %d", p.Name, p.Position, wantPos[i])
		}
	}
	if cm.Parameters[2].Default != float64(1) || !cm.Parameters[2].HasDefault {
		t.Fatalf("default lost on %+v", cm.Parameters[2])
	}
	if cm.Parameters[3].Type.Kind != mint.KindMap {
		t.Fatalf("variadic-keyword type = %v", cm.Parameters[3].Type)
	}
}

func TestExtractCallableWithoutParameterListUnsupported(t *testing.T) {
	x := New(registry.New())
	_, err := x.Extract(&fakeCallable{name: "opaque"})
	var xerr *Error
	if !errors.As(err, &xerr) || xerr.Kind != Unsupported {
		t.Fatalf("err = %v, want Unsupported", err)
	}
	// The documented caller fallback for opaque callables.
	fallback := mint.NewLeaf(mint.Callable)
	if fallback.MintKind() != mint.KindCallable {
		t.Fatalf("fallback leaf kind = %v", fallback.MintKind())
	}
}

func TestExtractNamedDataRegistersShape(t *testing.T) {
	reg := registry.New()
	x := New(reg)
	src := &fakeNamed{
		name: "User",
		members: []Member{
			{Name: "id", Value: int64(1)},
			{Name: "name", Value: "ada", Optional: true, Default: "anon"},
			{Name: "addr", Value: &fakeNamed{
				name:    "Addr",
				members: []Member{{Name: "street", Value: "x"}},
			}},
		},
	}
	m, err := x.Extract(src)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	sm, ok := m.(*mint.StructMint)
	if !ok {
		t.Fatalf("Extract returned %T, want *StructMint", m)
	}
	if sm.Name != "User" || len(sm.Fields) != 3 {
		t.Fatalf("shape = %+v", sm)
	}
	id, _ := sm.Field("id")
	if id.Type.Kind != mint.KindInt || !id.Required {
		t.Fatalf("id field = %+v", id)
	}
	name, _ := sm.Field("name")
	if name.Required || !name.HasDefault || name.Default != "anon" {
		t.Fatalf("name field = %+v", name)
	}
	addr, _ := sm.Field("addr")
	if addr.Type.Kind != mint.KindStruct || addr.Type.Ref != "Addr" {
		t.Fatalf("addr field must hold a weak reference, got %+v", addr)
	}
	if _, ok := reg.Lookup("Addr"); !ok {
		t.Fatalf("nested shape must be registered")
	}
	if reg.Len() != 2 {
		t.Fatalf("registry holds %d entries, want 2", reg.Len())
	}
}

func TestExtractOrderedData(t *testing.T) {
	x := New(registry.New())
	m, err := x.Extract(&fakeOrdered{items: []any{int64(1), int64(2), int64(3)}})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	leaf := m.(*mint.LeafMint)
	if !leaf.Type.Equal(mint.MakeList(mint.Int)) {
		t.Fatalf("homogeneous items = %v, want list<int>", leaf.Type)
	}

	m, err = x.Extract(&fakeOrdered{items: []any{int64(1), "x"}})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	leaf = m.(*mint.LeafMint)
	if !leaf.Type.Equal(mint.MakeTuple(mint.Int, mint.String)) {
		t.Fatalf("heterogeneous items = %v, want tuple<int,string>", leaf.Type)
	}

	m, err = x.Extract(&fakeOrdered{})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	leaf = m.(*mint.LeafMint)
	if !leaf.Type.Equal(mint.MakeList(mint.Unknown)) {
		t.Fatalf("empty container = %v, want list<unknown>", leaf.Type)
	}
}

func TestExtractScalarLeaf(t *testing.T) {
	x := New(registry.New())
	m, err := x.Extract("hello")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if leaf := m.(*mint.LeafMint); leaf.Type.Kind != mint.KindString {
		t.Fatalf("leaf = %v", leaf.Type)
	}
}

func TestExtractUnsupportedConstruct(t *testing.T) {
	x := New(registry.New())
	_, err := x.Extract(struct{ X int }{})
	var xerr *Error
	if !errors.As(err, &xerr) || xerr.Kind != Unsupported {
		t.Fatalf("err = %v, want Unsupported", err)
	}
}

func TestExtractDepthBound(t *testing.T) {
	x := New(registry.New())
	x.MaxDepth = 10
	_, err := x.Extract(selfNested{})
	var xerr *Error
	if !errors.As(err, &xerr) || xerr.Kind != DepthExceeded {
		t.Fatalf("err = %v, want DepthExceeded", err)
	}
}

func TestExtractNameConflict(t *testing.T) {
	x := New(registry.New())
	first := &fakeNamed{name: "Shape", members: []Member{{Name: "a", Value: int64(1)}}}
	if _, err := x.Extract(first); err != nil {
		t.Fatalf("first extract: %v", err)
	}
	// Identical shape: idempotent.
	if _, err := x.Extract(first); err != nil {
		t.Fatalf("identical re-extract must succeed: %v", err)
	}
	conflicting := &fakeNamed{name: "Shape", members: []Member{{Name: "a", Value: "s"}}}
	_, err := x.Extract(conflicting)
	var xerr *Error
	if !errors.As(err, &xerr) || xerr.Kind != NameConflict {
		t.Fatalf("err = %v, want NameConflict", err)
	}
}

func TestExtractAll(t *testing.T) {
	x := New(registry.New())
	constructs := []any{
		"scalar",
		&fakeOrdered{items: []any{int64(1)}},
		&fakeNamed{name: "P", members: []Member{{Name: "x", Value: float64(0)}}},
	}
	mints, err := x.ExtractAll(context.Background(), constructs)
	if err != nil {
		t.Fatalf("ExtractAll: %v", err)
	}
	if len(mints) != 3 {
		t.Fatalf("got %d results", len(mints))
	}
	if mints[0].(*mint.LeafMint).Type.Kind != mint.KindString {
		t.Fatalf("result order not preserved")
	}
	if _, ok := mints[2].(*mint.StructMint); !ok {
		t.Fatalf("third result = %T", mints[2])
	}
}

func TestExtractAllPropagatesFailure(t *testing.T) {
	x := New(registry.New())
	x.MaxDepth = 4
	_, err := x.ExtractAll(context.Background(), []any{"fine", selfNested{}})
	if err == nil {
		t.Fatalf("failure must propagate")
	}
}
