package types

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestRegistryBuiltins(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "nsd.types")
	defer teardown()
	//
	reg := NewRegistry()
	for _, name := range []string{
		"boolean", "byte", "short", "int", "long",
		"ubyte", "ushort", "uint", "ulong",
		"float", "double", "char", "string",
	} {
		if reg.GetType(name) == nil {
			t.Errorf("built-in %s missing", name)
		}
		if StandardType(name) == nil {
			t.Errorf("standard type %s missing", name)
		}
	}
	if reg.GetType("nosuch") != nil {
		t.Error("unknown type found")
	}
}

func TestRegistryIsolation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "nsd.types")
	defer teardown()
	//
	r1 := NewRegistry()
	r2 := NewRegistry()
	point := mustRecord(t, "Point", Field{"x", StandardType("int")})
	if r1.PutType(point, false) != point {
		t.Fatal("registration failed")
	}
	// local registrations stay local
	if r2.GetType("Point") != nil {
		t.Error("registration leaked into a sibling registry")
	}
	if NewRegistry().GetType("Point") != nil {
		t.Error("registration leaked into the global layer")
	}
}

func TestPutTypeConflict(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "nsd.types")
	defer teardown()
	//
	reg := NewRegistry()
	first := mustRecord(t, "Point", Field{"x", StandardType("int")})
	second := mustRecord(t, "Point", Field{"x", StandardType("double")})
	if got := reg.PutType(first, false); got != first {
		t.Fatal("first registration refused")
	}
	// the conflicting prior registration is returned, no error raised
	if got := reg.PutType(second, false); got != first {
		t.Errorf("conflict returned %v, want prior type", got)
	}
	if reg.GetType("Point") != first {
		t.Error("conflicting registration overwrote the prior type")
	}
	// force wins
	if got := reg.PutType(second, true); got != second {
		t.Errorf("forced registration returned %v", got)
	}
	if reg.GetType("Point") != second {
		t.Error("forced registration did not overwrite")
	}
}

func TestPutTypeRestrictions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "nsd.types")
	defer teardown()
	//
	reg := NewRegistry()
	// built-in names can never be overridden
	fake := mustRecord(t, "int", Field{"x", StandardType("int")})
	if got := reg.PutType(fake, true); got != StandardType("int") {
		t.Errorf("built-in override returned %v", got)
	}
	// anonymous types are not registrable without force
	anon := mustRecord(t, "", Field{"x", StandardType("int")})
	if got := reg.PutType(anon, false); got != nil {
		t.Errorf("anonymous registration returned %v", got)
	}
}

func TestPutAlias(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "nsd.types")
	defer teardown()
	//
	reg := NewRegistry()
	if got := reg.PutAlias("Index", StandardType("int"), false); got == nil {
		t.Fatal("alias registration failed")
	}
	alias := reg.GetType("Index")
	if alias == nil {
		t.Fatal("alias not registered")
	}
	if Resolve(alias) != StandardType("int") {
		t.Errorf("alias resolves to %v", Resolve(alias))
	}
}

func TestPutTypeFor(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "nsd.types")
	defer teardown()
	//
	reg := NewRegistry()
	point := mustRecord(t, "Point", Field{"x", StandardType("int")})
	if got := reg.PutTypeFor("p", point, false); got != point {
		t.Fatal("association refused")
	}
	if reg.GetTypeFor("p") != point {
		t.Error("association not retrievable")
	}
	// the type itself was registered along the way
	if reg.GetType("Point") != point {
		t.Error("type not co-registered")
	}
	// an existing different association is refused without force
	other := mustRecord(t, "Other", Field{"y", StandardType("int")})
	if got := reg.PutTypeFor("p", other, false); got != point {
		t.Errorf("conflicting association returned %v", got)
	}
	if got := reg.PutTypeFor("p", other, true); got != other {
		t.Errorf("forced association returned %v", got)
	}
	// variable and type namespaces are disjoint
	if reg.GetTypeFor("Point") != nil {
		t.Error("type name leaked into the variable namespace")
	}
}

func TestVariableAndTypeNames(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "nsd.types")
	defer teardown()
	//
	reg := NewRegistry()
	reg.PutTypeFor("beta", StandardType("int"), false)
	reg.PutTypeFor("alpha", StandardType("double"), false)
	vars := reg.VariableNames()
	if len(vars) != 2 || vars[0] != "alpha" || vars[1] != "beta" {
		t.Errorf("variable names = %v", vars)
	}
	names := reg.TypeNames()
	if len(names) == 0 {
		t.Fatal("no type names")
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatalf("type names not sorted: %v", names)
		}
	}
}

func TestStandardTypeFor(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "nsd.types")
	defer teardown()
	//
	for i, pair := range []struct {
		literal string
		want    string
	}{
		{"true", "boolean"},
		{"false", "boolean"},
		{"∞", "double"},
		{"'a'", "char"},
		{"'\\n'", "char"},
		{"'ab'", "string"},
		{"\"hello\"", "string"},
		{"0b101", "int"},
		{"017", "int"},
		{"0x1F", "int"},
		{"42", "int"},
		{"2147483647", "int"},
		{"2147483648", "long"},
		{"9223372036854775807", "long"},
		{"3.14", "double"},
		{"1e10", "double"},
		{"not_a_number", "???"},
	} {
		got := StandardTypeFor(pair.literal)
		if got.Name() != pair.want {
			t.Errorf("test %d: type of %s = %s, want %s", i, pair.literal, got.Name(), pair.want)
		}
	}
}

func TestTypeAtPath(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "nsd.types")
	defer teardown()
	//
	reg := NewRegistry()
	intT := StandardType("int")
	point := mustRecord(t, "Point", Field{"x", intT}, Field{"y", intT})
	coords, _ := NewArray("Coords", point, 10)
	poly := mustRecord(t, "Poly", Field{"points", coords}, Field{"closed", StandardType("boolean")})
	reg.PutType(point, false)
	reg.PutType(coords, false)
	reg.PutType(poly, false)
	reg.PutTypeFor("shape", poly, false)
	//
	got := reg.TypeAtPath("shape", []PathStep{{Component: "points"}, {Index: true}, {Component: "x"}})
	if got != intT {
		t.Errorf("path resolved to %v", got)
	}
	got = reg.TypeAtPath("shape", []PathStep{{Component: "closed"}})
	if got != StandardType("boolean") {
		t.Errorf("path resolved to %v", got)
	}
	// unresolvable hops degrade to the dummy type
	if got = reg.TypeAtPath("shape", []PathStep{{Component: "nosuch"}}); !got.IsDummy() {
		t.Errorf("bad path resolved to %v", got)
	}
	if got = reg.TypeAtPath("unknownvar", nil); !got.IsDummy() {
		t.Errorf("unknown variable resolved to %v", got)
	}
}
