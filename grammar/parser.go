package grammar

import (
	"github.com/emirpasic/gods/stacks/linkedliststack"
)

// The expression parser is a classic two-stack (operator stack, operand
// stack) shunting-yard parse over a token list. Bracketed scopes — plain
// parentheses, function calls, index accesses, array and record
// initializers — are tracked as frames carrying an explicit pending-operand
// counter; children are materialized only when the scope closes.

// Parser parses expressions from token lists. It keeps no state between
// Parse calls except collected diagnostics for anomalies it recovered from.
type Parser struct {
	Diagnostics []Diagnostic
}

// opEntry is a stacked, not yet reduced operator.
type opEntry struct {
	sym       string
	unary     bool
	prec      int
	pos       int
	component bool // record component marker, swallows one value
}

// frame is an open bracketed scope on the frame stack.
type frame struct {
	kind      NodeType // Parenth, Function, ArrayInit or RecordInit
	index     bool     // '[' after a value: an index scope
	name      string   // function or record type name
	pos       int
	pending   int // comma-separated slots completed so far
	baseDepth int // operand stack depth when the scope opened
	opsDepth  int // operator stack depth when the scope opened
}

type parseRun struct {
	parser   *Parser
	tokens   *TokenList
	stop     []string
	pos      int // current token index
	operands *linkedliststack.Stack
	ops      *linkedliststack.Stack
	frames   *linkedliststack.Stack
	signPos  bool
}

// Parse consumes tokens from the front of the list while building an
// expression tree. Parsing stops at the first stop token (left unconsumed)
// or, if no stop tokens are given, at the first token that cannot extend
// the current expression. Consumed tokens are removed from the list; on a
// syntax error the list is left untouched. An empty list yields (nil, nil).
func (p *Parser) Parse(tl *TokenList, stop ...string) (*Expression, error) {
	run := &parseRun{
		parser:   p,
		tokens:   tl,
		stop:     stop,
		operands: linkedliststack.New(),
		ops:      linkedliststack.New(),
		frames:   linkedliststack.New(),
		signPos:  true,
	}
	x, err := run.parse()
	if err != nil {
		return nil, err
	}
	tl.Remove(0, run.pos)
	return x, nil
}

// ParseList parses a comma-separated sequence of expressions, consuming the
// separators, until a stop token or the end of the list.
func (p *Parser) ParseList(tl *TokenList, stop ...string) ([]*Expression, error) {
	stopWith := append([]string{","}, stop...)
	var exprs []*Expression
	for tl.Len() > 0 {
		x, err := p.Parse(tl, stopWith...)
		if err != nil {
			return exprs, err
		}
		if x == nil {
			break
		}
		exprs = append(exprs, x)
		if tl.Len() > 0 && tl.At(0).Text == "," {
			tl.Remove(0, 1)
			continue
		}
		break
	}
	return exprs, nil
}

func (r *parseRun) diag(sev Severity, msg string, pos int) {
	r.parser.Diagnostics = append(r.parser.Diagnostics, Diagnostic{Severity: sev, Msg: msg, Pos: pos})
}

func (r *parseRun) isStop(text string) bool {
	for _, s := range r.stop {
		if s == text {
			return true
		}
	}
	return false
}

func (r *parseRun) topFrame() *frame {
	if f, ok := r.frames.Peek(); ok {
		return f.(*frame)
	}
	return nil
}

func (r *parseRun) frameOpsDepth() int {
	if f := r.topFrame(); f != nil {
		return f.opsDepth
	}
	return 0
}

func (r *parseRun) pushOperand(x *Expression) {
	r.operands.Push(x)
	r.signPos = false
}

func (r *parseRun) popOperand() (*Expression, bool) {
	v, ok := r.operands.Pop()
	if !ok {
		return nil, false
	}
	return v.(*Expression), true
}

// reduceOne builds a node from the topmost stacked operator.
func (r *parseRun) reduceOne() error {
	v, _ := r.ops.Pop()
	op := v.(*opEntry)
	if op.component {
		val, ok := r.popOperand()
		if !ok {
			return &SyntaxError{Msg: "record component without value", Pos: op.pos, Token: op.sym}
		}
		comp := &Expression{Kind: Component, Text: op.sym, TokenPos: op.pos, Children: []*Expression{val}}
		r.operands.Push(comp)
		return nil
	}
	if op.unary {
		operand, ok := r.popOperand()
		if !ok {
			return &SyntaxError{Msg: "operator lacks an operand", Pos: op.pos, Token: op.sym}
		}
		r.operands.Push(NewOperator(op.sym, true, op.pos, operand))
		return nil
	}
	right, ok1 := r.popOperand()
	left, ok2 := r.popOperand()
	if !ok1 || !ok2 {
		return &SyntaxError{Msg: "operator lacks operands", Pos: op.pos, Token: op.sym}
	}
	// a dot selects a component or, as in a method call, applies a function
	if op.sym == "." && right.Kind != Variable && right.Kind != Function {
		return &SyntaxError{Msg: "dot not followed by a component name", Pos: op.pos, Token: op.sym}
	}
	r.operands.Push(NewOperator(op.sym, false, op.pos, left, right))
	return nil
}

// reduceWhile pops and reduces stacked operators of the current frame while
// cond holds.
func (r *parseRun) reduceWhile(cond func(top *opEntry) bool) error {
	floor := r.frameOpsDepth()
	for r.ops.Size() > floor {
		v, _ := r.ops.Peek()
		if !cond(v.(*opEntry)) {
			return nil
		}
		if err := r.reduceOne(); err != nil {
			return err
		}
	}
	return nil
}

// reduceAll reduces everything down to the current frame.
func (r *parseRun) reduceAll() error {
	return r.reduceWhile(func(*opEntry) bool { return true })
}

func (r *parseRun) openFrame(f *frame) {
	f.baseDepth = r.operands.Size()
	f.opsDepth = r.ops.Size()
	r.frames.Push(f)
	r.signPos = true
}

func (r *parseRun) parse() (*Expression, error) {
	for r.pos < r.tokens.Len() {
		tok := r.tokens.At(r.pos)
		if len(r.stop) > 0 && r.frames.Empty() && r.isStop(tok.Text) {
			break
		}
		done, err := r.step(tok)
		if err != nil {
			return nil, err
		}
		if done {
			break
		}
	}
	if !r.frames.Empty() {
		f := r.topFrame()
		return nil, &SyntaxError{Msg: "unclosed bracket", Pos: f.pos}
	}
	if err := r.reduceAll(); err != nil {
		return nil, err
	}
	x, ok := r.popOperand()
	if !ok {
		return nil, nil // nothing to parse
	}
	if !r.operands.Empty() {
		leftover, _ := r.popOperand()
		return nil, &SyntaxError{Msg: "two operands without an operator",
			Pos: leftover.TokenPos, Token: leftover.Text}
	}
	return x, nil
}

// step processes one token. It returns true when the parse should stop with
// the current token left unconsumed.
func (r *parseRun) step(tok Token) (bool, error) {
	switch {
	case tok.IsLiteral():
		if !r.signPos {
			return r.unexpectedOperand(tok)
		}
		r.pushOperand(NewLiteral(tok.Text, tok.Start))
		r.pos++
	case tok.Kind == Ident:
		return r.stepIdent(tok)
	case tok.Kind == Placeholder:
		return r.unexpectedOperand(tok)
	default:
		return r.stepSymbol(tok)
	}
	return false, nil
}

func (r *parseRun) stepIdent(tok Token) (bool, error) {
	if _, isOp := Precedence(tok.Text, false); isOp || tok.Text == "not" {
		return false, r.pushOperator(tok)
	}
	if !r.signPos {
		return r.unexpectedOperand(tok)
	}
	next := r.tokens.At(r.pos + 1)
	switch {
	case r.pos+1 < r.tokens.Len() && next.Text == "(":
		r.pos += 2
		r.openFrame(&frame{kind: Function, name: tok.Text, pos: tok.Start})
	case r.pos+1 < r.tokens.Len() && next.Text == "{":
		r.pos += 2
		r.openFrame(&frame{kind: RecordInit, name: tok.Text, pos: tok.Start})
	default:
		r.pushOperand(NewVariable(tok.Text, tok.Start))
		r.pos++
	}
	return false, nil
}

// pushOperator handles binary and unary operator tokens, including the word
// operators.
func (r *parseRun) pushOperator(tok Token) error {
	unary := unaryOperators[tok.Text] && (r.signPos || tok.Text == "not" || tok.Text == "!")
	prec, ok := Precedence(tok.Text, unary)
	if !ok {
		return syntaxError("unknown operator", tok)
	}
	if !unary {
		// strict left associativity; unary operators never reduce eagerly
		if err := r.reduceWhile(func(top *opEntry) bool { return top.prec >= prec }); err != nil {
			return err
		}
	}
	if tok.Text == "." {
		next := r.tokens.At(r.pos + 1)
		if r.pos+1 >= r.tokens.Len() || next.Kind != Ident {
			return syntaxError("dot not followed by an identifier", tok)
		}
	}
	r.ops.Push(&opEntry{sym: tok.Text, unary: unary, prec: prec, pos: tok.Start})
	r.signPos = true
	r.pos++
	return nil
}

func (r *parseRun) stepSymbol(tok Token) (bool, error) {
	switch tok.Text {
	case "(":
		if !r.signPos {
			return r.unexpectedOperand(tok)
		}
		r.pos++
		r.openFrame(&frame{kind: Parenth, pos: tok.Start})
	case "{":
		if !r.signPos {
			return r.unexpectedOperand(tok)
		}
		r.pos++
		r.openFrame(&frame{kind: ArrayInit, pos: tok.Start})
	case "[":
		if r.signPos {
			return false, syntaxError("index operator without a value", tok)
		}
		// an index binds like member access: reduce pending accesses first
		if err := r.reduceWhile(func(top *opEntry) bool { return top.prec >= 12 }); err != nil {
			return false, err
		}
		r.pos++
		r.openFrame(&frame{kind: Operator, index: true, pos: tok.Start})
	case ",":
		return r.stepComma(tok)
	case ":":
		return false, r.stepColon(tok)
	case ")", "}", "]":
		return r.closeFrame(tok)
	default:
		if _, isOp := Precedence(tok.Text, false); isOp || unaryOperators[tok.Text] {
			return false, r.pushOperator(tok)
		}
		return r.unexpectedOperand(tok)
	}
	return false, nil
}

func (r *parseRun) stepComma(tok Token) (bool, error) {
	f := r.topFrame()
	if f == nil {
		if len(r.stop) == 0 {
			// best-effort stop: a separator with nothing to separate
			r.diag(Warning, "separator outside any bracket", tok.Start)
			return true, nil
		}
		return false, syntaxError("misplaced separator", tok)
	}
	if err := r.reduceAll(); err != nil {
		return false, err
	}
	if r.operands.Size()-f.baseDepth != f.pending+1 {
		return false, syntaxError("separator without a preceding operand", tok)
	}
	f.pending++
	r.signPos = true
	r.pos++
	return false, nil
}

func (r *parseRun) stepColon(tok Token) error {
	f := r.topFrame()
	if f == nil || f.kind != RecordInit {
		return syntaxError("component separator outside a record initializer", tok)
	}
	if err := r.reduceAll(); err != nil {
		return err
	}
	name, ok := r.popOperand()
	if !ok || name.Kind != Variable {
		return syntaxError("component separator without a component name", tok)
	}
	// the marker swallows the upcoming value expression on reduction
	r.ops.Push(&opEntry{sym: name.Text, prec: -1, pos: name.TokenPos, component: true})
	r.signPos = true
	r.pos++
	return nil
}

func (r *parseRun) closeFrame(tok Token) (bool, error) {
	f := r.topFrame()
	if f == nil {
		if len(r.stop) == 0 {
			r.diag(Warning, "closing bracket without an opener", tok.Start)
			return true, nil
		}
		return false, syntaxError("closing bracket without an opener", tok)
	}
	if !openerMatches(f, tok.Text) {
		return false, syntaxError("mismatched closing bracket", tok)
	}
	if err := r.reduceAll(); err != nil {
		return false, err
	}
	nops := r.operands.Size() - f.baseDepth
	if f.pending > 0 && nops != f.pending+1 {
		return false, syntaxError("dangling separator", tok)
	}
	children := make([]*Expression, nops)
	for i := nops - 1; i >= 0; i-- {
		children[i], _ = r.popOperand()
	}
	r.frames.Pop()
	switch {
	case f.index:
		base, ok := r.popOperand()
		if !ok {
			return false, syntaxError("index operator without a value", tok)
		}
		r.pushOperand(NewOperator("[]", false, f.pos, append([]*Expression{base}, children...)...))
	case f.kind == Parenth:
		if nops == 0 {
			return false, syntaxError("empty parentheses", tok)
		}
		if nops > 1 {
			return false, syntaxError("comma-separated operands outside a call or initializer", tok)
		}
		// the transient parenthesis node dissolves into its content
		r.pushOperand(children[0])
	case f.kind == Function:
		r.pushOperand(&Expression{Kind: Function, Text: f.name, TokenPos: f.pos, Children: children})
	case f.kind == RecordInit:
		r.pushOperand(&Expression{Kind: RecordInit, Text: f.name, TokenPos: f.pos, Children: children})
	default:
		r.pushOperand(&Expression{Kind: ArrayInit, TokenPos: f.pos, Children: children})
	}
	r.pos++
	return false, nil
}

func openerMatches(f *frame, closer string) bool {
	switch closer {
	case ")":
		return f.kind == Parenth || f.kind == Function
	case "}":
		return f.kind == ArrayInit || f.kind == RecordInit
	case "]":
		return f.index
	}
	return false
}

// unexpectedOperand handles an operand-like token in operand-impossible
// position, or a token the parser has no rule for. Inside a bracketed
// context this is a hard error; at the top level the parse just stops.
func (r *parseRun) unexpectedOperand(tok Token) (bool, error) {
	if !r.frames.Empty() {
		return false, syntaxError("two operands without an operator", tok)
	}
	if !r.signPos || r.operands.Size() > 0 || r.ops.Size() > 0 {
		return true, nil
	}
	if len(r.stop) > 0 {
		return false, syntaxError("unexpected token", tok)
	}
	return true, nil
}
