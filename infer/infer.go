package infer

import (
	"fmt"

	"github.com/structogram/nsd/grammar"
	"github.com/structogram/nsd/types"
)

// Type infers the data type of an expression tree bottom-up, consulting the
// registry for variables, named types and record components. With cache set,
// inferred types are stored on the nodes and newly decided variable types
// are registered; a node already carrying a safe type returns it unchanged.
// Undecidable nodes yield the dummy type, never an error.
func Type(x *grammar.Expression, reg *types.Registry, cache bool) types.Type {
	t, _ := infer(x, reg, cache)
	return t
}

// infer returns the type plus a safety verdict: safe results are final and
// may be cached as such.
func infer(x *grammar.Expression, reg *types.Registry, cache bool) (types.Type, bool) {
	if x == nil {
		return types.Dummy(), false
	}
	if x.TypeIsSafe() {
		return x.Type(), true
	}
	var t types.Type = types.Dummy()
	safe := false
	switch x.Kind {
	case grammar.Literal:
		t = types.StandardTypeFor(x.Text)
		safe = !t.IsDummy()
	case grammar.Variable:
		if vt := reg.GetTypeFor(x.Text); vt != nil {
			t, safe = vt, true
		}
	case grammar.Operator:
		t, safe = inferOperator(x, reg, cache)
	case grammar.Function:
		for _, arg := range x.Children {
			infer(arg, reg, cache)
		}
		t, safe = functionResult(x.Text, x.Children, reg)
	case grammar.ArrayInit:
		t, safe = inferArrayInit(x, reg, cache)
	case grammar.RecordInit:
		t, safe = inferRecordInit(x, reg, cache)
	case grammar.Component:
		if len(x.Children) == 1 {
			t, safe = infer(x.Children[0], reg, cache)
		}
	}
	if cache {
		x.SetType(t, safe)
	}
	tracer().Debugf("inferred %v : %s", x, t.Name())
	return t, safe
}

func inferOperator(x *grammar.Expression, reg *types.Registry, cache bool) (types.Type, bool) {
	sym := x.Text
	switch {
	case sym == "<-" || sym == ":=":
		return inferAssignment(x, reg, cache)
	case sym == ".":
		return inferComponentAccess(x, reg, cache)
	case sym == "[]":
		return inferIndexAccess(x, reg, cache)
	case x.Unary:
		return inferUnary(x, reg, cache)
	case grammar.IsComparison(sym) || grammar.IsBoolOperator(sym):
		for _, c := range x.Children {
			infer(c, reg, cache)
		}
		return types.StandardType("boolean"), true
	}
	return inferArithmetic(x, reg, cache)
}

// inferAssignment types an assignment from its right-hand side. An untyped
// left-hand variable adopts the right-hand type; with caching enabled the
// adoption is recorded in the registry.
func inferAssignment(x *grammar.Expression, reg *types.Registry, cache bool) (types.Type, bool) {
	if len(x.Children) != 2 {
		return types.Dummy(), false
	}
	lhs, rhs := x.Children[0], x.Children[1]
	rt, rsafe := infer(rhs, reg, cache)
	lt, lsafe := infer(lhs, reg, cache)
	if lhs.Kind == grammar.Variable && lt.IsDummy() && !rt.IsDummy() {
		if cache {
			reg.PutTypeFor(lhs.Text, rt, false)
			lhs.SetType(rt, rsafe)
		}
		return rt, rsafe
	}
	if !lt.IsDummy() {
		return lt, lsafe
	}
	return rt, rsafe
}

// inferComponentAccess types "record.component". The component's safety is
// adopted from the record operand only when the component type carries its
// own name.
func inferComponentAccess(x *grammar.Expression, reg *types.Registry, cache bool) (types.Type, bool) {
	if len(x.Children) != 2 {
		return types.Dummy(), false
	}
	lt, lsafe := infer(x.Children[0], reg, cache)
	if x.Children[1].Kind == grammar.Function {
		// method call: the arguments get typed, the result stays undecided
		infer(x.Children[1], reg, cache)
		return types.Dummy(), false
	}
	rt, ok := types.Resolve(lt).(*types.RecordType)
	if !ok {
		return types.Dummy(), false
	}
	ct := rt.ComponentType(x.Children[1].Text)
	if ct == nil {
		return types.Dummy(), false
	}
	return ct, lsafe && !ct.IsAnonymous()
}

func inferIndexAccess(x *grammar.Expression, reg *types.Registry, cache bool) (types.Type, bool) {
	if len(x.Children) < 1 {
		return types.Dummy(), false
	}
	bt, bsafe := infer(x.Children[0], reg, cache)
	for _, idx := range x.Children[1:] {
		infer(idx, reg, cache)
	}
	if at, ok := types.Resolve(bt).(*types.ArrayType); ok {
		el := at.ElementType()
		return el, bsafe && !el.IsAnonymous()
	}
	// strings index to chars
	if st := types.Resolve(bt); !st.IsDummy() && st.Name() == "string" {
		return types.StandardType("char"), bsafe
	}
	return types.Dummy(), false
}

func inferUnary(x *grammar.Expression, reg *types.Registry, cache bool) (types.Type, bool) {
	if len(x.Children) != 1 {
		return types.Dummy(), false
	}
	ot, osafe := infer(x.Children[0], reg, cache)
	switch x.Text {
	case "not", "!":
		return types.StandardType("boolean"), true
	case "+", "-":
		if ot.IsNumeric() {
			return ot, osafe
		}
	}
	return types.Dummy(), false
}

// inferArithmetic covers the additive, multiplicative, shift and bitwise
// operators. Identical operand types win; "+" prefers string concatenation;
// the integer-flavored classes fall back to int on disagreement.
func inferArithmetic(x *grammar.Expression, reg *types.Registry, cache bool) (types.Type, bool) {
	if len(x.Children) != 2 {
		return types.Dummy(), false
	}
	lt, lsafe := infer(x.Children[0], reg, cache)
	rt, rsafe := infer(x.Children[1], reg, cache)
	if x.Text == "+" {
		if isString(lt) {
			return lt, lsafe
		}
		if isString(rt) {
			return rt, rsafe
		}
	}
	if types.Equal(lt, rt) {
		return lt, lsafe && rsafe
	}
	prec, _ := grammar.Precedence(x.Text, false)
	if prec == 10 || prec == 8 || (prec >= 3 && prec <= 5) {
		if lt.IsNumeric() || rt.IsNumeric() {
			return types.StandardType("int"), false
		}
	}
	return types.Dummy(), false
}

func isString(t types.Type) bool {
	r := types.Resolve(t)
	return !r.IsDummy() && r.Name() == "string"
}

func inferArrayInit(x *grammar.Expression, reg *types.Registry, cache bool) (types.Type, bool) {
	var elType types.Type
	agree := true
	for _, el := range x.Children {
		et, _ := infer(el, reg, cache)
		if elType == nil {
			elType = et
		} else if !types.Equal(elType, et) {
			agree = false
		}
	}
	if elType == nil || !agree {
		elType = types.Dummy()
	}
	// always a fresh anonymous type, never registered by name
	at, err := types.NewArray("", elType, len(x.Children))
	if err != nil {
		return types.Dummy(), false
	}
	return at, false
}

// inferRecordInit first tries the registry by the stated type name and falls
// back to synthesizing an anonymous record from the listed components.
// Unnamed components get positional fallback names.
func inferRecordInit(x *grammar.Expression, reg *types.Registry, cache bool) (types.Type, bool) {
	if rt := reg.GetType(x.Text); rt != nil {
		for _, c := range x.Children {
			infer(c, reg, cache)
		}
		if _, ok := types.Resolve(rt).(*types.RecordType); ok {
			return rt, true
		}
		return types.Dummy(), false
	}
	fields := make([]types.Field, 0, len(x.Children))
	for i, c := range x.Children {
		name := c.Text
		if c.Kind != grammar.Component {
			name = fmt.Sprintf("%s#%d", x.Text, i)
		}
		ct, _ := infer(c, reg, cache)
		fields = append(fields, types.Field{Name: name, Type: ct})
	}
	rt, err := types.NewRecord("", fields)
	if err != nil {
		return types.Dummy(), false
	}
	return rt, false
}

// functionResult decides call result types for the handful of built-in
// routines with fixed signatures. Unknown routines stay undecided.
func functionResult(name string, args []*grammar.Expression, reg *types.Registry) (types.Type, bool) {
	switch name {
	case "length", "pos", "strpos":
		return types.StandardType("int"), true
	case "copy", "uppercase", "lowercase", "trim", "chr":
		return types.StandardType("string"), true
	case "ord":
		return types.StandardType("int"), true
	case "sqrt", "sqr", "exp", "ln", "log", "sin", "cos", "tan", "random":
		return types.StandardType("double"), true
	case "round", "trunc", "ceil", "floor":
		return types.StandardType("int"), true
	}
	return types.Dummy(), false
}
