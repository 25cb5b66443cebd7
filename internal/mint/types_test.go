package mint

import "testing"

func TestTypeStringRendering(t *testing.T) {
	cases := []struct {
		typ  Type
		want string
	}{
		{Int, "int"},
		{MakeList(String), "list<string>"},
		{MakeMap(String, MakeList(Float)), "map<string,list<float>>"},
		{MakeTuple(Int, String, Bool), "tuple<int,string,bool>"},
		{MakeRef("User"), "struct<User>"},
		{MakeList(MakeRef("Order.item")), "list<struct<Order.item>>"},
	}
	for _, c := range cases {
		if got := c.typ.String(); got != c.want {
			t.Errorf("String() = %q, want %q", got, c.want)
		}
	}
}

func TestParseTypeRoundTrip(t *testing.T) {
	specs := []string{
		"null", "bool", "int", "float", "string", "bytes", "any", "unknown", "callable",
		"list<int>",
		"list<list<string>>",
		"map<string,any>",
		"map<string,map<string,int>>",
		"tuple<int,string>",
		"tuple<list<int>,struct<User>>",
		"struct<User>",
		"struct<Order.item>",
	}
	for _, s := range specs {
		parsed, err := ParseType(s)
		if err != nil {
			t.Fatalf("ParseType(%q): %v", s, err)
		}
		if got := parsed.String(); got != s {
			t.Errorf("round trip %q -> %q", s, got)
		}
	}
}

func TestParseTypeRejectsMalformed(t *testing.T) {
	bad := []string{"", "list<", "list<int", "map<string>", "tuple<>", "frobnicate", "int extra", "struct<>"}
	for _, s := range bad {
		if _, err := ParseType(s); err == nil {
			t.Errorf("ParseType(%q) should fail", s)
		}
	}
}

func TestTypeEqual(t *testing.T) {
	if !MakeList(Int).Equal(MakeList(Int)) {
		t.Fatalf("identical list tags must compare equal")
	}
	if MakeList(Int).Equal(MakeList(Float)) {
		t.Fatalf("list element tags must participate in equality")
	}
	if MakeRef("A").Equal(MakeRef("B")) {
		t.Fatalf("struct references with different names must differ")
	}
	if MakeTuple(Int).Equal(MakeTuple(Int, Int)) {
		t.Fatalf("tuple arity must participate in equality")
	}
}
