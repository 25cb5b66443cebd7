package goreflect

import (
	"testing"

	"mint/internal/extract"
	"mint/internal/mint"
	"mint/internal/registry"
)

func newExtractor() *extract.Extractor {
	return extract.New(registry.New())
}

func TestFuncSignature(t *testing.T) {
	fn := func(a int, b string, rest ...float64) (int, error) { return 0, nil }
	src, err := Func("accumulate", fn)
	if err != nil {
		t.Fatalf("Func: %v", err)
	}
	m, err := newExtractor().Extract(src)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	cm, ok := m.(*mint.CallableMint)
	if !ok {
		t.Fatalf("Extract returned %T, want *CallableMint", m)
	}
	if cm.Name != "accumulate" {
		t.Fatalf("Name = %q", cm.Name)
	}
	if len(cm.Parameters) != 3 {
		t.Fatalf("parameters = %+v, want 3", cm.Parameters)
	}
	wantTypes := []mint.Kind{mint.KindInt, mint.KindString, mint.KindFloat}
	wantPos := []int{0, 1, -1}
	for i, p := range cm.Parameters {
		if p.Name != "arg"+string(rune('0'+i)) {
			t.Errorf("parameter %d named %q", i, p.Name)
		}
		if p.Type.Kind != wantTypes[i] {
			t.Errorf("parameter %d type = %s", i, p.Type)
		}
		if p.Position != wantPos[i] {
			t.Errorf("parameter %d position = %d, want %d", i, p.Position, wantPos[i])
		}
	}
	if cm.Parameters[2].Kind != mint.ParamVariadicPositional {
		t.Fatalf("final parameter kind = %s, want variadic", cm.Parameters[2].Kind)
	}
	if cm.ReturnType.Kind != mint.KindInt {
		t.Fatalf("return = %s, want int (trailing error dropped)", cm.ReturnType)
	}
}

func TestFuncNoResults(t *testing.T) {
	src, err := Func("fire", func(string) {})
	if err != nil {
		t.Fatalf("Func: %v", err)
	}
	if _, ok := src.ReturnType(); ok {
		t.Fatal("niladic result list should report no return type")
	}
}

func TestFuncRejectsNonFunction(t *testing.T) {
	if _, err := Func("nope", 42); err == nil {
		t.Fatal("Func(42) should fail")
	}
	if _, err := Func("nope", nil); err == nil {
		t.Fatal("Func(nil) should fail")
	}
}

func TestFuncSpellings(t *testing.T) {
	type pt struct{ X, Y int }
	fn := func([]byte, map[string]bool, []pt, *int, any) {}
	src, err := Func("spell", fn)
	if err != nil {
		t.Fatalf("Func: %v", err)
	}
	want := []string{"bytes", "map<string,bool>", "list<struct<pt>>", "int", "any"}
	specs := src.Parameters()
	if len(specs) != len(want) {
		t.Fatalf("specs = %+v", specs)
	}
	for i, w := range want {
		if specs[i].DeclaredType != w {
			t.Errorf("spec %d declared %q, want %q", i, specs[i].DeclaredType, w)
		}
	}
}

type address struct {
	Street string
	Zip    int
}

type user struct {
	ID     int
	Name   string
	Nick   *string
	Addr   address
	Tags   []string
	Blob   []byte
	hidden bool
}

func TestValueStruct(t *testing.T) {
	nick := "kit"
	x := newExtractor()
	m, err := x.Extract(Value("User", user{ID: 1, Name: "kit", Nick: &nick, Tags: []string{"a"}, Blob: []byte{1}}))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	sm, ok := m.(*mint.StructMint)
	if !ok {
		t.Fatalf("Extract returned %T, want *StructMint", m)
	}
	if sm.Name != "User" {
		t.Fatalf("Name = %q", sm.Name)
	}
	want := map[string]string{
		"ID":   "int",
		"Name": "string",
		"Nick": "string",
		"Addr": "struct<address>",
		"Tags": "list<string>",
		"Blob": "bytes",
	}
	if len(sm.Fields) != len(want) {
		t.Fatalf("fields = %+v (unexported fields must be skipped)", sm.Fields)
	}
	for name, tag := range want {
		f, ok := sm.Field(name)
		if !ok {
			t.Fatalf("missing field %q", name)
		}
		if f.Type.String() != tag {
			t.Errorf("field %s type = %s, want %s", name, f.Type, tag)
		}
	}
	nickField, _ := sm.Field("Nick")
	if nickField.Required {
		t.Fatal("pointer field should be optional")
	}
	idField, _ := sm.Field("ID")
	if !idField.Required {
		t.Fatal("value field should be required")
	}

	// The nested struct shape registers under its own name.
	if _, ok := x.Registry.Lookup("address"); !ok {
		t.Fatal("nested struct shape was not registered")
	}
}

func TestValueStringMapSortsKeys(t *testing.T) {
	m, err := newExtractor().Extract(Value("Cfg", map[string]any{"b": int64(1), "a": "x"}))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	sm := m.(*mint.StructMint)
	if len(sm.Fields) != 2 || sm.Fields[0].Name != "a" || sm.Fields[1].Name != "b" {
		t.Fatalf("fields = %+v, want sorted keys a, b", sm.Fields)
	}
}

func TestValueNonStringMapIsOrdered(t *testing.T) {
	m, err := newExtractor().Extract(Value("", map[int]string{1: "a", 2: "b"}))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	lm, ok := m.(*mint.LeafMint)
	if !ok || lm.Type.Kind != mint.KindList || lm.Type.Elem.Kind != mint.KindString {
		t.Fatalf("mint = %v, want leaf list<string>", m)
	}
}

func TestValueSliceShapes(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{[]int{1, 2}, "list<int>"},
		{[]any{int64(1), "x"}, "tuple<int,string>"},
		{[]string{}, "list<unknown>"},
	}
	for _, c := range cases {
		m, err := newExtractor().Extract(Value("", c.in))
		if err != nil {
			t.Fatalf("Extract(%v): %v", c.in, err)
		}
		if got := m.(*mint.LeafMint).Type.String(); got != c.want {
			t.Errorf("Value(%v) = %s, want %s", c.in, got, c.want)
		}
	}
}

func TestValueScalarPassthrough(t *testing.T) {
	m, err := newExtractor().Extract(Value("", 3.5))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got := m.(*mint.LeafMint).Type.Kind; got != mint.KindFloat {
		t.Fatalf("kind = %s, want float", got)
	}
}

func TestValueNilPointer(t *testing.T) {
	if got := Value("", (*user)(nil)); got != nil {
		t.Fatalf("Value(nil pointer) = %v, want nil", got)
	}
}
