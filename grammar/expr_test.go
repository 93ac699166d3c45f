package grammar

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/structogram/nsd/types"
)

func TestExpressionString(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "nsd.grammar")
	defer teardown()
	//
	for i, pair := range []struct {
		input string
		want  string
	}{
		{"a + b * c", "a+b*c"},
		{"(a + b) * c", "(a+b)*c"},
		{"a * (b + c)", "a*(b+c)"},
		{"a - b - c", "a-b-c"},
		{"a - (b - c)", "a-(b-c)"},
		{"-a + b", "-a+b"},
		{"not a or b", "not a or b"},
		{"x <- a[i+1]", "x<-a[i+1]"},
		{"p.x.y", "p.x.y"},
		{"max(a, b)", "max(a,b)"},
		{"turtle.forward(100)", "turtle.forward(100)"},
		{"{1, 2, 3}", "{1,2,3}"},
		{"Point{x: 1, y: 2}", "Point{x:1,y:2}"},
	} {
		x := parseString(t, pair.input)
		if got := x.String(); got != pair.want {
			t.Errorf("test %d: %q rendered as %q, want %q", i, pair.input, got, pair.want)
		}
	}
}

func TestExpressionReparse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "nsd.grammar")
	defer teardown()
	//
	// rendering and re-parsing yields a structurally identical tree
	for i, input := range []string{
		"a + b * c",
		"(a + b) * c",
		"f(x, -y)",
		"m[i, j] <- p.x + 1",
	} {
		first := parseString(t, input)
		second := parseString(t, first.String())
		if first.String() != second.String() {
			t.Errorf("test %d: re-parse of %q diverged: %q vs %q",
				i, input, first.String(), second.String())
		}
	}
}

func TestTranslationSpelling(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "nsd.grammar")
	defer teardown()
	//
	table := &TranslationTable{
		Spellings: map[OpKey]string{
			{Symbol: "<-", Unary: false}:  "=",
			{Symbol: "and", Unary: false}: "&&",
		},
	}
	x := parseString(t, "ok <- a and b")
	tl := NewTokenList()
	x.AppendToTokenList(tl, table, 0)
	if got := tl.String(); got != "ok=a&&b" {
		t.Errorf("rendered %q", got)
	}
}

func TestTranslationFunction(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "nsd.grammar")
	defer teardown()
	//
	table := &TranslationTable{
		Functions: map[OpKey]FunctionSpec{
			{Symbol: "div", Unary: false}: {Name: "floordiv", OperandOrder: []int{1, 0}},
		},
	}
	x := parseString(t, "a div b")
	tl := NewTokenList()
	x.AppendToTokenList(tl, table, 0)
	if got := tl.String(); got != "floordiv(b,a)" {
		t.Errorf("rendered %q", got)
	}
}

func TestTranslationPrecedence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "nsd.grammar")
	defer teardown()
	//
	// demoting '+' below '*' forces parentheses under a product
	table := &TranslationTable{
		Precedences: map[OpKey]int{
			{Symbol: "+", Unary: false}: 1,
		},
	}
	x := parseString(t, "(a + b) * c")
	tl := NewTokenList()
	x.AppendToTokenList(tl, table, 0)
	if got := tl.String(); got != "(a+b)*c" {
		t.Errorf("rendered %q", got)
	}
}

func TestSetTypeSafety(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "nsd.grammar")
	defer teardown()
	//
	x := NewLiteral("3", 0)
	x.SetType(types.StandardType("int"), true)
	x.SetType(types.Dummy(), false)
	if x.Type() != types.StandardType("int") || !x.TypeIsSafe() {
		t.Error("safe type was downgraded")
	}
}

func TestCopyCarriesTypes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "nsd.grammar")
	defer teardown()
	//
	x := parseString(t, "a + 3")
	x.Children[1].SetType(types.StandardType("int"), true)
	clone := x.Copy()
	if clone.Children[1].Type() != types.StandardType("int") || !clone.Children[1].TypeIsSafe() {
		t.Error("copy lost the cached type")
	}
	// the clone is independent
	clone.Children[0].Text = "z"
	if x.Children[0].Text != "a" {
		t.Error("copy shares children with the original")
	}
}

func TestPrecedenceLookup(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "nsd.grammar")
	defer teardown()
	//
	for i, trio := range []struct {
		sym   string
		unary bool
		prec  int
		ok    bool
	}{
		{"<-", false, 0, true},
		{"or", false, 1, true},
		{"+", false, 9, true},
		{"+", true, 11, true},
		{"not", true, 11, true},
		{"not", false, 0, false},
		{".", false, 12, true},
		{"frobnicate", false, 0, false},
	} {
		prec, ok := Precedence(trio.sym, trio.unary)
		if ok != trio.ok || (ok && prec != trio.prec) {
			t.Errorf("test %d: Precedence(%q, %v) = %d, %v", i, trio.sym, trio.unary, prec, ok)
		}
	}
}

func TestCheckArity(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "nsd.grammar")
	defer teardown()
	//
	if err := parseString(t, "a + b * -c").CheckArity(); err != nil {
		t.Errorf("valid tree rejected: %v", err)
	}
	broken := NewOperator("+", false, 0, NewVariable("a", 0))
	if err := broken.CheckArity(); err == nil {
		t.Error("binary operator with one child accepted")
	}
}
