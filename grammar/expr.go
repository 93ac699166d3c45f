package grammar

import (
	"strings"

	"github.com/structogram/nsd/types"
)

// NodeType tags the variants of an expression tree node.
type NodeType int8

const (
	Literal    NodeType = iota // numeric/string/char/bool literal
	Variable                   // identifier, possibly resolving through a registry
	Operator                   // unary, binary or access operator
	Function                   // function call, children are the arguments
	ArrayInit                  // {1, 2, 3}
	RecordInit                 // Point{x: 1, y: 2}, Text is the type name
	Component                  // name: value, only inside a RecordInit
	Parenth                    // transient parser state, never in a finished tree
)

func (nt NodeType) String() string {
	switch nt {
	case Literal:
		return "literal"
	case Variable:
		return "variable"
	case Operator:
		return "operator"
	case Function:
		return "function"
	case ArrayInit:
		return "array-init"
	case RecordInit:
		return "record-init"
	case Component:
		return "component"
	case Parenth:
		return "parenthesis"
	}
	return "<illegal node type>"
}

// Expression is a node of an expression syntax tree. Unary marks the
// one-operand form of the overloadable operators (sign, dereference,
// address-of, negation); the same symbol may exist in unary and binary form
// without collision.
//
// A node may cache its inferred type. The safe flag marks the association
// as final: re-inference will return it unchanged.
type Expression struct {
	Kind     NodeType
	Text     string
	Unary    bool
	Children []*Expression
	TokenPos int // rune position of the originating token in the source line

	dataType types.Type
	typeSafe bool
}

// NewLiteral creates a literal leaf node.
func NewLiteral(text string, pos int) *Expression {
	return &Expression{Kind: Literal, Text: text, TokenPos: pos}
}

// NewVariable creates an identifier leaf node.
func NewVariable(name string, pos int) *Expression {
	return &Expression{Kind: Variable, Text: name, TokenPos: pos}
}

// NewOperator creates an operator node over its operands.
func NewOperator(symbol string, unary bool, pos int, operands ...*Expression) *Expression {
	return &Expression{Kind: Operator, Text: symbol, Unary: unary, TokenPos: pos, Children: operands}
}

// Arity returns the number of children.
func (x *Expression) Arity() int {
	return len(x.Children)
}

// Type returns the cached inferred or declared type of this node, nil if
// none has been assigned yet.
func (x *Expression) Type() types.Type {
	return x.dataType
}

// TypeIsSafe reports whether the cached type is final.
func (x *Expression) TypeIsSafe() bool {
	return x.typeSafe
}

// SetType caches a type on this node. A safe type is never downgraded to a
// tentative one.
func (x *Expression) SetType(t types.Type, safe bool) {
	if x.typeSafe && !safe {
		return
	}
	x.dataType = t
	x.typeSafe = safe
}

// Copy clones the tree. Cached types and their safety are carried over,
// children are copied recursively.
func (x *Expression) Copy() *Expression {
	clone := &Expression{
		Kind:     x.Kind,
		Text:     x.Text,
		Unary:    x.Unary,
		TokenPos: x.TokenPos,
		dataType: x.dataType,
		typeSafe: x.typeSafe,
	}
	for _, ch := range x.Children {
		clone.Children = append(clone.Children, ch.Copy())
	}
	return clone
}

// --- Operator precedence ---------------------------------------------------

// binaryPrecedence ranks all binary operators; higher binds tighter.
// Assignment is weakest, member access and indexing bind strongest.
var binaryPrecedence = map[string]int{
	"<-": 0, ":=": 0,
	"or": 1, "||": 1,
	"and": 2, "&&": 2,
	"|": 3,
	"^": 4, "xor": 4,
	"&": 5,
	"=": 6, "==": 6, "<>": 6, "!=": 6,
	"<": 7, ">": 7, "<=": 7, ">=": 7,
	"shl": 8, "<<": 8, "shr": 8, ">>": 8, ">>>": 8,
	"+": 9, "-": 9,
	"*": 10, "/": 10, "div": 10, "mod": 10, "%": 10,
	".": 12, "[]": 12,
}

// negationPrecedence is the rank of all unary operators.
const negationPrecedence = 11

// unaryOperators lists the symbols with a one-operand form.
var unaryOperators = map[string]bool{
	"+": true, "-": true, "*": true, "&": true, "not": true, "!": true,
}

// Precedence looks up the rank of an operator. The second return value
// reports whether the symbol is an operator at all in the given form.
func Precedence(symbol string, unary bool) (int, bool) {
	if unary {
		return negationPrecedence, unaryOperators[symbol]
	}
	p, ok := binaryPrecedence[symbol]
	return p, ok
}

// IsComparison is a predicate for the relational operators.
func IsComparison(symbol string) bool {
	switch symbol {
	case "=", "==", "<>", "!=", "<", ">", "<=", ">=":
		return true
	}
	return false
}

// IsBoolOperator is a predicate for the boolean connectives and negation.
func IsBoolOperator(symbol string) bool {
	switch symbol {
	case "or", "||", "and", "&&", "xor", "not", "!":
		return true
	}
	return false
}

// --- Rendering -------------------------------------------------------------

// needsParens decides parenthesization of a subexpression of rank prec
// under a parent of rank parentPrec. Weak subexpressions under member
// access/indexing are not parenthesized here, the access renderers bracket
// them themselves.
func needsParens(prec, parentPrec int) bool {
	return prec < parentPrec && !(prec < negationPrecedence && parentPrec == 12)
}

// String renders the expression with minimal parenthesization.
func (x *Expression) String() string {
	tl := NewTokenList()
	x.AppendToTokenList(tl, nil, 0)
	return tl.String()
}

// OpKey identifies an operator form in a TranslationTable.
type OpKey struct {
	Symbol string
	Unary  bool
}

// FunctionSpec converts an operator into a function call. OperandOrder
// permutes the operands (e.g. []int{1, 0} swaps a binary operator's sides);
// nil keeps the original order.
type FunctionSpec struct {
	Name         string
	OperandOrder []int
}

// TranslationTable customizes re-serialization of expression trees for a
// target language: operator respelling, precedence overrides, and operator
// to function-call conversion. A nil table renders the canonical dialect.
type TranslationTable struct {
	Spellings   map[OpKey]string
	Precedences map[OpKey]int
	Functions   map[OpKey]FunctionSpec
}

func (tt *TranslationTable) spelling(symbol string, unary bool) string {
	if tt != nil {
		if s, ok := tt.Spellings[OpKey{symbol, unary}]; ok {
			return s
		}
	}
	return symbol
}

func (tt *TranslationTable) precedence(symbol string, unary bool) int {
	if tt != nil {
		if p, ok := tt.Precedences[OpKey{symbol, unary}]; ok {
			return p
		}
	}
	p, ok := Precedence(symbol, unary)
	if !ok {
		p = negationPrecedence
	}
	return p
}

func (tt *TranslationTable) function(symbol string, unary bool) (FunctionSpec, bool) {
	if tt == nil {
		return FunctionSpec{}, false
	}
	f, ok := tt.Functions[OpKey{symbol, unary}]
	return f, ok
}

// AppendToTokenList re-serializes the tree into a token list, using the
// translation table for target-language rendering. parentPrec is the
// precedence of the enclosing operator, 0 at the top level.
func (x *Expression) AppendToTokenList(tl *TokenList, table *TranslationTable, parentPrec int) {
	switch x.Kind {
	case Literal:
		tl.append(Token{Kind: literalKind(x.Text), Text: x.Text, Start: x.TokenPos}, "")
	case Variable:
		tl.append(Token{Kind: Ident, Text: x.Text, Start: x.TokenPos}, "")
	case Operator:
		x.appendOperator(tl, table, parentPrec)
	case Function:
		x.appendCall(tl, x.Text, x.Children, table)
	case ArrayInit:
		x.appendSequence(tl, table, "{", "}", x.Children)
	case RecordInit:
		tl.append(Token{Kind: Ident, Text: x.Text, Start: x.TokenPos}, "")
		x.appendSequence(tl, table, "{", "}", x.Children)
	case Component:
		tl.append(Token{Kind: Ident, Text: x.Text, Start: x.TokenPos}, "")
		appendSymbol(tl, ":")
		if len(x.Children) > 0 {
			x.Children[0].AppendToTokenList(tl, table, 0)
		}
	case Parenth:
		tracer().Errorf("transient parenthesis node in finished tree")
	}
	tl.ensureGaps()
}

func (x *Expression) appendOperator(tl *TokenList, table *TranslationTable, parentPrec int) {
	if fn, ok := table.function(x.Text, x.Unary); ok {
		operands := x.Children
		if fn.OperandOrder != nil {
			operands = make([]*Expression, 0, len(fn.OperandOrder))
			for _, i := range fn.OperandOrder {
				if i >= 0 && i < len(x.Children) {
					operands = append(operands, x.Children[i])
				}
			}
		}
		x.appendCall(tl, fn.Name, operands, table)
		return
	}
	prec := table.precedence(x.Text, x.Unary)
	parens := needsParens(prec, parentPrec)
	if parens {
		appendSymbol(tl, "(")
	}
	switch {
	case x.Text == "[]":
		x.Children[0].AppendToTokenList(tl, table, prec)
		appendSymbol(tl, "[")
		for i, idx := range x.Children[1:] {
			if i > 0 {
				appendSymbol(tl, ",")
			}
			idx.AppendToTokenList(tl, table, 0)
		}
		appendSymbol(tl, "]")
	case x.Text == ".":
		x.Children[0].AppendToTokenList(tl, table, prec)
		appendSymbol(tl, ".")
		x.Children[1].AppendToTokenList(tl, table, prec)
	case x.Unary || len(x.Children) == 1:
		appendSymbol(tl, table.spelling(x.Text, true))
		x.Children[0].AppendToTokenList(tl, table, prec)
	default:
		x.Children[0].AppendToTokenList(tl, table, prec)
		appendSymbol(tl, table.spelling(x.Text, false))
		// right operand of a left-associative operator parenthesizes at
		// equal rank
		x.Children[1].AppendToTokenList(tl, table, prec+1)
	}
	if parens {
		appendSymbol(tl, ")")
	}
}

func (x *Expression) appendCall(tl *TokenList, name string, args []*Expression, table *TranslationTable) {
	tl.append(Token{Kind: Ident, Text: name, Start: x.TokenPos}, "")
	appendSymbol(tl, "(")
	for i, arg := range args {
		if i > 0 {
			appendSymbol(tl, ",")
		}
		arg.AppendToTokenList(tl, table, 0)
	}
	appendSymbol(tl, ")")
}

func (x *Expression) appendSequence(tl *TokenList, table *TranslationTable, opening, closing string, items []*Expression) {
	appendSymbol(tl, opening)
	for i, item := range items {
		if i > 0 {
			appendSymbol(tl, ",")
		}
		item.AppendToTokenList(tl, table, 0)
	}
	appendSymbol(tl, closing)
}

func appendSymbol(tl *TokenList, sym string) {
	kind := Symbol
	if strings.IndexFunc(sym, isNameRune) == 0 {
		kind = Ident // word operators like "not" or "div"
	}
	tl.append(Token{Kind: kind, Text: sym}, "")
}

func literalKind(text string) TokenKind {
	if text == "" {
		return Symbol
	}
	switch text[0] {
	case '"':
		return StringLit
	case '\'':
		return CharLit
	}
	if strings.ContainsAny(text, ".eE") && !strings.HasPrefix(text, "0x") {
		return FloatLit
	}
	if text[0] >= '0' && text[0] <= '9' {
		return IntLit
	}
	return Ident // true, false, ∞
}

// CheckArity verifies the child-count invariants of a finished tree: binary
// operators have two children, unary ones a single child, components one
// value, and no transient parenthesis nodes remain. The first violation is
// returned as a syntax error.
func (x *Expression) CheckArity() error {
	switch x.Kind {
	case Literal, Variable:
		if len(x.Children) != 0 {
			return &SyntaxError{Msg: "leaf node with children", Pos: x.TokenPos, Token: x.Text}
		}
	case Operator:
		want := 2
		if x.Unary {
			want = 1
		}
		if x.Text == "[]" {
			if len(x.Children) < 1 {
				return &SyntaxError{Msg: "index operator without base", Pos: x.TokenPos, Token: x.Text}
			}
			want = len(x.Children)
		}
		if len(x.Children) != want {
			return &SyntaxError{Msg: "operator with wrong operand count", Pos: x.TokenPos, Token: x.Text}
		}
	case Component:
		if len(x.Children) != 1 {
			return &SyntaxError{Msg: "record component without value", Pos: x.TokenPos, Token: x.Text}
		}
	case Parenth:
		return &SyntaxError{Msg: "unresolved parenthesis", Pos: x.TokenPos, Token: x.Text}
	}
	for _, ch := range x.Children {
		if err := ch.CheckArity(); err != nil {
			return err
		}
	}
	return nil
}
