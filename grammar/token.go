package grammar

import (
	"strings"
)

// TokenKind classifies a lexical token.
type TokenKind int8

// Token kinds produced by the lexer.
const (
	Symbol TokenKind = iota // operators and punctuation
	Ident                   // identifiers and keyword-like words
	IntLit                  // decimal, binary, octal or hex integer literal
	FloatLit                // floating point literal, possibly with exponent
	StringLit               // double-quoted literal, quotes included
	CharLit                 // single-quoted literal, quotes included
	Placeholder             // internal keyword placeholder, §NAME§
)

func (k TokenKind) String() string {
	switch k {
	case Symbol:
		return "symbol"
	case Ident:
		return "ident"
	case IntLit:
		return "int"
	case FloatLit:
		return "float"
	case StringLit:
		return "string"
	case CharLit:
		return "char"
	case Placeholder:
		return "placeholder"
	}
	return "<illegal kind>"
}

// Token is an immutable fragment of a source line. Start and End are rune
// offsets into the line the token was split from; End is exclusive.
type Token struct {
	Kind  TokenKind
	Text  string
	Start int
	End   int
}

// IsLiteral is a predicate: is this token a literal of any form?
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, StringLit, CharLit:
		return true
	}
	return false
}

// matches compares token texts, honoring the case switch for word-like
// tokens. Symbols and literals always compare case-sensitively.
func (t Token) matches(text string, matchCase bool) bool {
	if t.Text == text {
		return true
	}
	if !matchCase && t.Kind == Ident {
		return strings.EqualFold(t.Text, text)
	}
	return false
}

// TokenList is an ordered, mutable sequence of tokens split from one line of
// text. Surrounding whitespace is not tokenized but kept as padding strings,
// one per gap: paddings[i] precedes tokens[i], paddings[len(tokens)] trails
// the line. The invariant len(paddings) == len(tokens)+1 holds at all times,
// which makes reconstruction of the original text lossless.
type TokenList struct {
	tokens   []Token
	paddings []string
}

// NewTokenList creates an empty token list.
func NewTokenList() *TokenList {
	return &TokenList{paddings: []string{""}}
}

// Len returns the number of tokens (padding not counted).
func (tl *TokenList) Len() int {
	return len(tl.tokens)
}

// At returns the i'th token. Out-of-range indexes yield a zero Token.
func (tl *TokenList) At(i int) Token {
	if i < 0 || i >= len(tl.tokens) {
		return Token{}
	}
	return tl.tokens[i]
}

// TextAt returns the text of the i'th token, or "" if out of range.
func (tl *TokenList) TextAt(i int) string {
	return tl.At(i).Text
}

// Padding returns the whitespace preceding token i. i == Len() addresses the
// trailing padding.
func (tl *TokenList) Padding(i int) string {
	if i < 0 || i >= len(tl.paddings) {
		return ""
	}
	return tl.paddings[i]
}

// PaddingWidth returns the rune width of the whitespace preceding token i.
func (tl *TokenList) PaddingWidth(i int) int {
	return len([]rune(tl.Padding(i)))
}

// Newlines returns the indexes of all gaps whose padding contains a line
// break.
func (tl *TokenList) Newlines() []int {
	var positions []int
	for i, pad := range tl.paddings {
		if strings.ContainsRune(pad, '\n') {
			positions = append(positions, i)
		}
	}
	return positions
}

// append adds a token with the whitespace run collected before it.
func (tl *TokenList) append(tok Token, pad string) {
	tl.paddings[len(tl.paddings)-1] += pad
	tl.tokens = append(tl.tokens, tok)
	tl.paddings = append(tl.paddings, "")
}

// appendPadding extends the trailing padding.
func (tl *TokenList) appendPadding(pad string) {
	tl.paddings[len(tl.paddings)-1] += pad
}

// Texts returns the token texts in order, without padding.
func (tl *TokenList) Texts() []string {
	texts := make([]string, len(tl.tokens))
	for i, tok := range tl.tokens {
		texts[i] = tok.Text
	}
	return texts
}

// String reconstructs the text this list was split from, padding included.
// For a list freshly produced by Split this reproduces the input exactly.
func (tl *TokenList) String() string {
	var b strings.Builder
	for i, tok := range tl.tokens {
		b.WriteString(tl.paddings[i])
		b.WriteString(tok.Text)
	}
	b.WriteString(tl.paddings[len(tl.paddings)-1])
	return b.String()
}

// Concatenate joins all token texts with the given separator, dropping the
// padding.
func (tl *TokenList) Concatenate(separator string) string {
	return strings.Join(tl.Texts(), separator)
}

// TrimPadding collapses all whitespace metadata. Token gaps that would let
// two word-like tokens amalgamate keep a single blank, so the result still
// re-lexes to the same token sequence.
func (tl *TokenList) TrimPadding() {
	for i := range tl.paddings {
		tl.paddings[i] = ""
	}
	tl.ensureGaps()
}

// ensureGaps re-inserts a single blank wherever two adjacent tokens would
// merge into one if concatenated without padding.
func (tl *TokenList) ensureGaps() {
	for i := 1; i < len(tl.tokens); i++ {
		if tl.paddings[i] != "" {
			continue
		}
		if wouldAmalgamate(tl.tokens[i-1], tl.tokens[i]) {
			tl.paddings[i] = " "
		}
	}
}

// wouldAmalgamate checks whether the juxtaposition of two tokens would be
// re-lexed as a single token.
func wouldAmalgamate(left, right Token) bool {
	if left.Text == "" || right.Text == "" {
		return false
	}
	l := rune(left.Text[len(left.Text)-1])
	r := rune(right.Text[0])
	if isNameRune(l) && isNameRune(r) {
		return true
	}
	if left.Kind == Symbol && right.Kind == Symbol {
		// "<" followed by "=" must not become "<="
		return couldExtendSymbol(left.Text, r)
	}
	return false
}

func isNameRune(r rune) bool {
	return r == '_' || r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'
}

// Copy returns a deep copy of the list.
func (tl *TokenList) Copy() *TokenList {
	clone := &TokenList{
		tokens:   append([]Token(nil), tl.tokens...),
		paddings: append([]string(nil), tl.paddings...),
	}
	return clone
}

// Equals compares the token sequences of both lists, honoring matchCase for
// word-like tokens. Padding is not compared.
func (tl *TokenList) Equals(other *TokenList, matchCase bool) bool {
	if other == nil || len(tl.tokens) != len(other.tokens) {
		return false
	}
	for i, tok := range tl.tokens {
		if !tok.matches(other.tokens[i].Text, matchCase) {
			return false
		}
	}
	return true
}
