package infer

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/structogram/nsd/types"
)

func TestEnumCodesGeneric(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "nsd.infer")
	defer teardown()
	//
	et, _ := types.NewEnumNames("Color", []string{"red", "green", "blue"})
	if errs := ResolveEnumCodes(et, nil); len(errs) != 0 {
		t.Fatalf("errors: %v", errs)
	}
	for i, name := range []string{"red", "green", "blue"} {
		if code, ok := et.MemberCode(name); !ok || code != int64(i) {
			t.Errorf("%s coded %d, want %d", name, code, i)
		}
	}
}

func TestEnumCodesExplicit(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "nsd.infer")
	defer teardown()
	//
	// a, b=5, c counts 0, 5, 6
	et, _ := types.NewEnum("E", []types.EnumItem{
		{Name: "a"},
		{Name: "b", ValueText: "5"},
		{Name: "c"},
	})
	if errs := ResolveEnumCodes(et, nil); len(errs) != 0 {
		t.Fatalf("errors: %v", errs)
	}
	for i, pair := range []struct {
		name string
		code int64
	}{
		{"a", 0}, {"b", 5}, {"c", 6},
	} {
		if code, _ := et.MemberCode(pair.name); code != pair.code {
			t.Errorf("test %d: %s coded %d, want %d", i, pair.name, code, pair.code)
		}
	}
}

func TestEnumCodesExpressions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "nsd.infer")
	defer teardown()
	//
	et, _ := types.NewEnum("Flags", []types.EnumItem{
		{Name: "none", ValueText: "0"},
		{Name: "one", ValueText: "1 shl 0"},
		{Name: "two", ValueText: "1 shl 1"},
		{Name: "both", ValueText: "one + two"},
		{Name: "hex", ValueText: "0x10"},
		{Name: "neg", ValueText: "-(2 + 3)"},
	})
	if errs := ResolveEnumCodes(et, nil); len(errs) != 0 {
		t.Fatalf("errors: %v", errs)
	}
	for i, pair := range []struct {
		name string
		code int64
	}{
		{"none", 0}, {"one", 1}, {"two", 2}, {"both", 3}, {"hex", 16}, {"neg", -5},
	} {
		if code, _ := et.MemberCode(pair.name); code != pair.code {
			t.Errorf("test %d: %s coded %d, want %d", i, pair.name, code, pair.code)
		}
	}
}

func TestEnumCodesCrossEnumReference(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "nsd.infer")
	defer teardown()
	//
	reg := types.NewRegistry()
	base, _ := types.NewEnumNames("Base", []string{"lo", "hi"})
	if errs := ResolveEnumCodes(base, reg); len(errs) != 0 {
		t.Fatalf("errors: %v", errs)
	}
	reg.PutType(base, false)
	//
	derived, _ := types.NewEnum("Derived", []types.EnumItem{
		{Name: "start", ValueText: "hi + 10"},
		{Name: "next"},
	})
	if errs := ResolveEnumCodes(derived, reg); len(errs) != 0 {
		t.Fatalf("errors: %v", errs)
	}
	if code, _ := derived.MemberCode("start"); code != 11 {
		t.Errorf("start coded %d, want 11", code)
	}
	if code, _ := derived.MemberCode("next"); code != 12 {
		t.Errorf("next coded %d, want 12", code)
	}
}

func TestEnumCodesErrorPropagation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "nsd.infer")
	defer teardown()
	//
	et, _ := types.NewEnum("E", []types.EnumItem{
		{Name: "a"},
		{Name: "b", ValueText: "nowhere"},
		{Name: "c"},
		{Name: "d", ValueText: "40 + 2"},
		{Name: "e"},
	})
	errs := ResolveEnumCodes(et, nil)
	if len(errs) != 1 {
		t.Fatalf("collected %d errors, want 1", len(errs))
	}
	// a is still coded, b stays unresolved and suppresses counting for c
	if code, ok := et.MemberCode("a"); !ok || code != 0 {
		t.Errorf("a coded %d, %v", code, ok)
	}
	if _, ok := et.MemberCode("b"); ok {
		t.Error("b resolved despite the error")
	}
	if _, ok := et.MemberCode("c"); ok {
		t.Error("c counted up from an unresolved predecessor")
	}
	// an explicit value resumes coding
	if code, _ := et.MemberCode("d"); code != 42 {
		t.Errorf("d coded %d, want 42", code)
	}
	if code, _ := et.MemberCode("e"); code != 43 {
		t.Errorf("e coded %d, want 43", code)
	}
}

func TestEnumCodesDivisionByZero(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "nsd.infer")
	defer teardown()
	//
	et, _ := types.NewEnum("E", []types.EnumItem{
		{Name: "bad", ValueText: "1 div 0"},
	})
	if errs := ResolveEnumCodes(et, nil); len(errs) != 1 {
		t.Errorf("collected %d errors, want 1", len(errs))
	}
}
