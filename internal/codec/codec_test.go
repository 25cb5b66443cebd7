package codec

import (
	"errors"
	"strings"
	"testing"

	"mint/internal/mint"
)

func sampleCallable(t *testing.T) *mint.CallableMint {
	t.Helper()
	m, err := mint.NewCallable("resize", []mint.Parameter{
		{Name: "image", Position: 0, Type: mint.Bytes, Kind: mint.ParamPositional},
		{Name: "width", Position: 1, Type: mint.Int, Kind: mint.ParamPositional, HasDefault: true, Default: int64(640)},
		{Name: "scale", Position: 2, Type: mint.Float, Kind: mint.ParamPositional, HasDefault: true, Default: float64(1.5)},
		{Name: "rest", Type: mint.Any, Kind: mint.ParamVariadicPositional},
		{Name: "opts", Type: mint.MakeMap(mint.String, mint.Any), Kind: mint.ParamVariadicKeyword},
	}, mint.Bytes, "resize an image")
	if err != nil {
		t.Fatalf("NewCallable: %v", err)
	}
	return m
}

func sampleStruct(t *testing.T) *mint.StructMint {
	t.Helper()
	m, err := mint.NewStruct("User", []mint.Field{
		{Name: "id", Type: mint.Int, Required: true},
		{Name: "name", Type: mint.String, HasDefault: true, Default: "anon"},
		{Name: "tags", Type: mint.MakeList(mint.String), HasDefault: true, Default: []any{"a", "b"}},
		{Name: "addr", Type: mint.MakeRef("Addr")},
		{Name: "blob", Type: mint.Bytes, HasDefault: true, Default: []byte{0x1, 0x2}},
		{Name: "meta", Type: mint.MakeMap(mint.String, mint.Any), HasDefault: true,
			Default: map[string]any{"$weird": int64(1), "plain": nil}},
		{Name: "active", Type: mint.Bool, HasDefault: true, Default: false},
		{Name: "note", Type: mint.String, HasDefault: true, Default: ""},
	})
	if err != nil {
		t.Fatalf("NewStruct: %v", err)
	}
	return m
}

func TestRoundTripJSON(t *testing.T) {
	for _, m := range []mint.Mint{
		sampleCallable(t),
		sampleStruct(t),
		mint.NewLeaf(mint.MakeTuple(mint.Int, mint.MakeList(mint.String))),
	} {
		data, err := Encode(m)
		if err != nil {
			t.Fatalf("Encode: %v", err)
		}
		back, err := Decode(data)
		if err != nil {
			t.Fatalf("Decode: %v\n%s", err, data)
		}
		if !mint.Equal(m, back) {
			t.Fatalf("round trip changed the mint:\n%s", data)
		}
	}
}

func TestRoundTripBinary(t *testing.T) {
	for _, m := range []mint.Mint{
		sampleCallable(t),
		sampleStruct(t),
		mint.NewLeaf(mint.Unknown),
	} {
		data, err := EncodeBinary(m)
		if err != nil {
			t.Fatalf("EncodeBinary: %v", err)
		}
		back, err := DecodeBinary(data)
		if err != nil {
			t.Fatalf("DecodeBinary: %v", err)
		}
		if !mint.Equal(m, back) {
			t.Fatalf("binary round trip changed the mint")
		}
	}
}

func TestEncodingIsSelfDescribing(t *testing.T) {
	data, err := Encode(sampleStruct(t))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	text := string(data)
	if !strings.Contains(text, `"kind": "struct"`) {
		t.Fatalf("encoding must carry its kind tag:\n%s", text)
	}
	if !strings.Contains(text, "struct<Addr>") {
		t.Fatalf("reference names must be embedded, not registry contents:\n%s", text)
	}
}

func TestDecodeUnknownKind(t *testing.T) {
	_, err := Decode([]byte(`{"version":1,"kind":"sum"}`))
	var cerr *Error
	if !errors.As(err, &cerr) || cerr.Kind != UnknownKind {
		t.Fatalf("err = %v, want UnknownKind", err)
	}
}

func TestDecodeMissingKind(t *testing.T) {
	_, err := Decode([]byte(`{"version":1}`))
	var cerr *Error
	if !errors.As(err, &cerr) || cerr.Kind != Malformed {
		t.Fatalf("err = %v, want Malformed", err)
	}
}

func TestDecodeVersionMismatch(t *testing.T) {
	_, err := Decode([]byte(`{"version":99,"kind":"leaf","type":"int"}`))
	var cerr *Error
	if !errors.As(err, &cerr) || cerr.Kind != VersionMismatch {
		t.Fatalf("err = %v, want VersionMismatch", err)
	}
}

func TestDecodeMalformedInput(t *testing.T) {
	for _, data := range []string{
		`not json`,
		`{"version":1,"kind":"leaf","type":"frobnicate"}`,
		`{"version":1,"kind":"callable","name":"f","parameters":[{"name":"a","type":"int","kind":"sideways"}]}`,
	} {
		if _, err := Decode([]byte(data)); err == nil {
			t.Errorf("Decode(%q) should fail", data)
		}
	}
}

func TestIntDefaultSurvivesJSON(t *testing.T) {
	m, _ := mint.NewStruct("S", []mint.Field{
		{Name: "n", Type: mint.Int, HasDefault: true, Default: int64(5)},
		{Name: "f", Type: mint.Float, HasDefault: true, Default: float64(5)},
	})
	data, err := Encode(m)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	back, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	sm := back.(*mint.StructMint)
	n, _ := sm.Field("n")
	if n.Default != int64(5) {
		t.Fatalf("int default decoded as %T(%v), want int64", n.Default, n.Default)
	}
	f, _ := sm.Field("f")
	if f.Default != float64(5) {
		t.Fatalf("float default decoded as %T(%v), want float64", f.Default, f.Default)
	}
}
