package infer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/structogram/nsd/grammar"
	"github.com/structogram/nsd/types"
)

// ResolveEnumCodes assigns integer codes to the members of an enumeration
// type. Members without an explicit value count up from their predecessor,
// starting at 0; explicit values are constant expressions which may refer to
// earlier siblings and to members of other registered enumerations. A member
// whose code cannot be determined keeps the unresolved sentinel, which also
// suppresses counting up for the members after it. Evaluation errors are
// collected and returned, codes are assigned best-effort.
func ResolveEnumCodes(e *types.EnumType, reg *types.Registry) []error {
	var errs []error
	var parser grammar.Parser
	prev := int64(-1)
	known := true
	for _, item := range e.Items() {
		if item.ValueText == "" {
			if known {
				prev++
				e.SetMemberCode(item.Name, prev)
			}
			continue
		}
		code, err := evalConstant(&parser, item.ValueText, e, reg)
		if err != nil {
			errs = append(errs, fmt.Errorf("enumerator %s.%s: %w", e.Name(), item.Name, err))
			known = false
			continue
		}
		e.SetMemberCode(item.Name, code)
		prev, known = code, true
	}
	return errs
}

func evalConstant(parser *grammar.Parser, text string, e *types.EnumType, reg *types.Registry) (int64, error) {
	tl := grammar.Split(text, true)
	x, err := parser.Parse(tl)
	if err != nil {
		return 0, err
	}
	if x == nil {
		return 0, fmt.Errorf("empty enumerator value")
	}
	d, err := evalNode(x, e, reg)
	if err != nil {
		return 0, err
	}
	if d.Exponent() < 0 && !d.Equal(d.Truncate(0)) {
		return 0, fmt.Errorf("enumerator value %q is not an integer", text)
	}
	return d.IntPart(), nil
}

// evalNode is a minimal constant-expression evaluator over decimals. It
// covers literals, constant references and the arithmetic operators; nothing
// else occurs in enumerator values.
func evalNode(x *grammar.Expression, e *types.EnumType, reg *types.Registry) (decimal.Decimal, error) {
	switch x.Kind {
	case grammar.Literal:
		return literalValue(x.Text)
	case grammar.Variable:
		if code, ok := constantCode(x.Text, e, reg); ok {
			return decimal.NewFromInt(code), nil
		}
		return decimal.Zero, fmt.Errorf("unresolvable constant %q", x.Text)
	case grammar.Operator:
		return evalOperator(x, e, reg)
	}
	return decimal.Zero, fmt.Errorf("not a constant expression: %v", x)
}

func evalOperator(x *grammar.Expression, e *types.EnumType, reg *types.Registry) (decimal.Decimal, error) {
	if x.Unary {
		v, err := evalNode(x.Children[0], e, reg)
		if err != nil {
			return decimal.Zero, err
		}
		switch x.Text {
		case "-":
			return v.Neg(), nil
		case "+":
			return v, nil
		}
		return decimal.Zero, fmt.Errorf("operator %q not allowed in enumerator values", x.Text)
	}
	if len(x.Children) != 2 {
		return decimal.Zero, fmt.Errorf("operator %q lacks operands", x.Text)
	}
	l, err := evalNode(x.Children[0], e, reg)
	if err != nil {
		return decimal.Zero, err
	}
	r, err := evalNode(x.Children[1], e, reg)
	if err != nil {
		return decimal.Zero, err
	}
	switch x.Text {
	case "+":
		return l.Add(r), nil
	case "-":
		return l.Sub(r), nil
	case "*":
		return l.Mul(r), nil
	case "/", "div":
		if r.IsZero() {
			return decimal.Zero, fmt.Errorf("division by zero in enumerator value")
		}
		return l.DivRound(r, 0).Truncate(0), nil
	case "mod", "%":
		if r.IsZero() {
			return decimal.Zero, fmt.Errorf("division by zero in enumerator value")
		}
		return l.Mod(r), nil
	case "shl", "<<":
		return decimal.NewFromInt(l.IntPart() << uint(r.IntPart())), nil
	case "shr", ">>":
		return decimal.NewFromInt(l.IntPart() >> uint(r.IntPart())), nil
	}
	return decimal.Zero, fmt.Errorf("operator %q not allowed in enumerator values", x.Text)
}

func literalValue(text string) (decimal.Decimal, error) {
	switch {
	case strings.HasPrefix(text, "0b"):
		n, err := strconv.ParseInt(text[2:], 2, 64)
		if err != nil {
			return decimal.Zero, err
		}
		return decimal.NewFromInt(n), nil
	case strings.HasPrefix(text, "0x"):
		n, err := strconv.ParseInt(text[2:], 16, 64)
		if err != nil {
			return decimal.Zero, err
		}
		return decimal.NewFromInt(n), nil
	case len(text) > 1 && text[0] == '0' && !strings.ContainsAny(text, ".eE"):
		n, err := strconv.ParseInt(text[1:], 8, 64)
		if err != nil {
			return decimal.Zero, err
		}
		return decimal.NewFromInt(n), nil
	case len(text) >= 3 && text[0] == '\'':
		r := []rune(strings.Trim(text, "'"))
		if len(r) == 1 {
			return decimal.NewFromInt(int64(r[0])), nil
		}
		return decimal.Zero, fmt.Errorf("not a numeric literal: %s", text)
	}
	return decimal.NewFromString(text)
}

// constantCode looks up a named constant: first among the siblings of the
// enumeration under resolution, then among the members of every registered
// enumeration type.
func constantCode(name string, e *types.EnumType, reg *types.Registry) (int64, bool) {
	if code, ok := e.MemberCode(name); ok {
		return code, true
	}
	if reg == nil {
		return 0, false
	}
	for _, tn := range reg.TypeNames() {
		other, ok := types.Resolve(reg.GetType(tn)).(*types.EnumType)
		if !ok || other == e {
			continue
		}
		if code, ok := other.MemberCode(name); ok {
			return code, true
		}
	}
	return 0, false
}
