package grammar

import (
	"strings"
)

// The lexer is a hand-written finite-state machine over the runes of one
// line. It never fails: any character that fits no longer form is emitted as
// a single-char symbol token, correctness is deferred to the parser.

// PlaceholderSigil brackets internal keyword placeholder tokens (§NAME§).
const PlaceholderSigil = '§'

type lxstate int8

const (
	lx0 lxstate = iota // idle, start of a token
	lxBlank            // whitespace run
	lxName             // identifier
	lxInt              // decimal integer
	lxInt0             // leading zero, prefix not yet disambiguated
	lxBin              // 0b...
	lxOct              // 0 followed by octal digits
	lxHex              // 0x...
	lxSuffix           // trailing numeric suffix letters
	lxFloat            // fractional digits after '.'
	lxFloatE           // 'e' seen, expecting sign or digit
	lxFloatSE          // exponent sign seen, expecting digit
	lxFloatExp         // exponent digits
	lxString           // inside "..."
	lxChar             // inside '...'
	lxKey              // inside §...§
	lxSymbol           // operator/punctuation run
)

// lexSymbols is the table of multi-character operator symbols. Matching is
// greedy: the scanner keeps extending a symbol run while the result is still
// a prefix of a table entry and falls back to the longest completed entry
// otherwise. Single characters need no entry, they are always emittable.
var lexSymbols = []string{
	":=", "<-",
	"<=", ">=", "<>", "==", "!=",
	"<<", ">>", ">>>",
	"&&", "||",
	"..", "...",
	"++", "--",
	"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "<<=", ">>=",
	"\\\\",
}

// specialOperators maps non-ASCII comparison characters to their ASCII
// spellings. These are decoded in every mode.
var specialOperators = map[rune]string{
	'≠': "<>", // ≠
	'≤': "<=", // ≤
	'≥': ">=", // ≥
}

// couldExtendSymbol checks whether sym+r is a prefix of a known
// multi-character symbol.
func couldExtendSymbol(sym string, r rune) bool {
	probe := sym + string(r)
	for _, s := range lexSymbols {
		if strings.HasPrefix(s, probe) {
			return true
		}
	}
	return false
}

// isKnownSymbol checks for an exact table match.
func isKnownSymbol(sym string) bool {
	for _, s := range lexSymbols {
		if s == sym {
			return true
		}
	}
	return false
}

// Split lexes a line of pseudocode text into a token list. String and char
// literals are kept as single tokens if preserveStrings is set, otherwise
// their quotes and contents are lexed like ordinary characters. Whitespace
// runs are preserved as padding metadata, making the split lossless:
// TokenList.String reproduces the input (up to decoding of the non-ASCII
// comparison operators and the dropped redundant hyphen after "<-").
func Split(line string, preserveStrings bool) *TokenList {
	sc := lexScanner{runes: []rune(line), list: NewTokenList(), preserve: preserveStrings}
	sc.run()
	tracer().Debugf("split %q into %d tokens", line, sc.list.Len())
	return sc.list
}

type lexScanner struct {
	runes    []rune
	pos      int // next rune to examine
	start    int // first rune of the pending token
	state    lxstate
	list     *TokenList
	pad      strings.Builder // pending whitespace run
	esc      bool            // escape flag inside string/char literals
	preserve bool            // keep string/char literals as single tokens
}

func (sc *lexScanner) emit(kind TokenKind, end int) {
	text := string(sc.runes[sc.start:end])
	sc.list.append(Token{Kind: kind, Text: text, Start: sc.start, End: end}, sc.pad.String())
	sc.pad.Reset()
	sc.start = end
	sc.state = lx0
}

// emitText emits a token with text differing from the covered source runes
// (used for decoding the non-ASCII comparison operators).
func (sc *lexScanner) emitText(kind TokenKind, end int, text string) {
	sc.list.append(Token{Kind: kind, Text: text, Start: sc.start, End: end}, sc.pad.String())
	sc.pad.Reset()
	sc.start = end
	sc.state = lx0
}

// backtrack re-positions the scanner, emitting the token runes seen so far
// up to end and rescanning everything after it.
func (sc *lexScanner) backtrack(kind TokenKind, end int) {
	sc.emit(kind, end)
	sc.pos = end
}

func isBlank(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\n' || r == '\f'
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isHexDigit(r rune) bool {
	return isDigit(r) || r >= 'a' && r <= 'f' || r >= 'A' && r <= 'F'
}

// isSuffixRune matches integral/floating literal suffix letters.
func isSuffixRune(r rune) bool {
	switch r {
	case 'l', 'L', 'u', 'U', 'f', 'F', 'd', 'D':
		return true
	}
	return false
}

func (sc *lexScanner) peek(ahead int) rune {
	if sc.pos+ahead >= len(sc.runes) {
		return 0
	}
	return sc.runes[sc.pos+ahead]
}

func (sc *lexScanner) run() {
	for sc.pos < len(sc.runes) {
		r := sc.runes[sc.pos]
		switch sc.state {
		case lx0:
			sc.startToken(r)
		case lxBlank:
			if isBlank(r) {
				sc.pad.WriteRune(r)
				sc.pos++
				sc.start = sc.pos
			} else {
				sc.state = lx0
			}
		case lxName:
			if isNameRune(r) {
				sc.pos++
			} else {
				sc.emit(Ident, sc.pos)
			}
		case lxInt:
			sc.scanInt(r)
		case lxInt0:
			sc.scanInt0(r)
		case lxBin:
			if r == '0' || r == '1' {
				sc.pos++
			} else if sc.pos-sc.start == 2 {
				// bare "0b": back off to the plain zero
				sc.backtrack(IntLit, sc.start+1)
			} else {
				sc.emit(IntLit, sc.pos)
			}
		case lxOct:
			if r >= '0' && r <= '7' {
				sc.pos++
			} else if r == '8' || r == '9' {
				sc.state = lxInt
			} else {
				sc.scanInt(r)
			}
		case lxHex:
			if isHexDigit(r) {
				sc.pos++
			} else if sc.pos-sc.start == 2 {
				// bare "0x": back off to the plain zero
				sc.backtrack(IntLit, sc.start+1)
			} else {
				sc.emit(IntLit, sc.pos)
			}
		case lxSuffix:
			if isSuffixRune(r) {
				sc.pos++
			} else {
				sc.emit(IntLit, sc.pos)
			}
		case lxFloat:
			sc.scanFloat(r)
		case lxFloatE, lxFloatSE:
			sc.scanExponentStart(r)
		case lxFloatExp:
			if isDigit(r) {
				sc.pos++
			} else if isSuffixRune(r) {
				sc.pos++
				sc.emit(FloatLit, sc.pos)
			} else {
				sc.emit(FloatLit, sc.pos)
			}
		case lxString:
			sc.scanQuoted(r, '"', StringLit)
		case lxChar:
			sc.scanQuoted(r, '\'', CharLit)
		case lxKey:
			sc.scanKey(r)
		case lxSymbol:
			sc.scanSymbol(r)
		}
	}
	sc.finish()
}

// startToken dispatches on the first rune of a new token.
func (sc *lexScanner) startToken(r rune) {
	sc.start = sc.pos
	switch {
	case isBlank(r):
		sc.state = lxBlank
	case isNameRune(r) && !isDigit(r):
		sc.state = lxName
		sc.pos++
	case r == '0':
		sc.state = lxInt0
		sc.pos++
	case isDigit(r):
		sc.state = lxInt
		sc.pos++
	case r == '"' && sc.preserve:
		sc.state = lxString
		sc.esc = false
		sc.pos++
	case r == '\'' && sc.preserve:
		sc.state = lxChar
		sc.esc = false
		sc.pos++
	case r == PlaceholderSigil:
		sc.state = lxKey
		sc.pos++
	case r == '.' && isDigit(sc.peek(1)):
		// leading-dot float like .5
		sc.state = lxFloat
		sc.pos += 2
	default:
		if ascii, ok := specialOperators[r]; ok {
			sc.pos++
			sc.emitText(Symbol, sc.pos, ascii)
			return
		}
		sc.state = lxSymbol
		sc.pos++
	}
}

func (sc *lexScanner) scanInt(r rune) {
	switch {
	case isDigit(r):
		sc.pos++
	case r == '.' && isDigit(sc.peek(1)):
		// a digit after the dot rules out ranges like 1..9
		sc.state = lxFloat
		sc.pos += 2
	case r == 'e' || r == 'E':
		sc.state = lxFloatE
		sc.pos++
	case isSuffixRune(r):
		sc.state = lxSuffix
		sc.pos++
	default:
		sc.emit(IntLit, sc.pos)
	}
}

func (sc *lexScanner) scanInt0(r rune) {
	switch {
	case r == 'b' || r == 'B':
		sc.state = lxBin
		sc.pos++
	case r == 'x' || r == 'X':
		sc.state = lxHex
		sc.pos++
	case r >= '0' && r <= '7':
		sc.state = lxOct
		sc.pos++
	case r == '8' || r == '9':
		sc.state = lxInt
		sc.pos++
	default:
		sc.scanInt(r)
	}
}

func (sc *lexScanner) scanFloat(r rune) {
	switch {
	case isDigit(r):
		sc.pos++
	case r == 'e' || r == 'E':
		sc.state = lxFloatE
		sc.pos++
	case isSuffixRune(r):
		sc.pos++
		sc.emit(FloatLit, sc.pos)
	default:
		sc.emit(FloatLit, sc.pos)
	}
}

// scanExponentStart handles the runes directly after 'e'/'E'. A missing
// exponent digit backs off to the number before the 'e', which then re-lexes
// as an identifier start.
func (sc *lexScanner) scanExponentStart(r rune) {
	switch {
	case isDigit(r):
		sc.state = lxFloatExp
		sc.pos++
	case (r == '+' || r == '-') && sc.state == lxFloatE:
		sc.state = lxFloatSE
		sc.pos++
	default:
		end := sc.pos - 1 // before the sign, if any
		if sc.state == lxFloatSE {
			end--
		}
		kind := IntLit
		if strings.ContainsRune(string(sc.runes[sc.start:end]), '.') {
			kind = FloatLit
		}
		sc.backtrack(kind, end)
	}
}

func (sc *lexScanner) scanQuoted(r rune, quote rune, kind TokenKind) {
	switch {
	case sc.esc:
		sc.esc = false
		sc.pos++
	case r == '\\':
		sc.esc = true
		sc.pos++
	case r == quote:
		sc.pos++
		sc.emit(kind, sc.pos)
	default:
		sc.pos++
	}
}

// scanKey expects §[A-Z]+§. Anything else backs off to a single-char symbol
// for the sigil.
func (sc *lexScanner) scanKey(r rune) {
	if r >= 'A' && r <= 'Z' {
		sc.pos++
		return
	}
	if r == PlaceholderSigil && sc.pos > sc.start+1 {
		sc.pos++
		sc.emit(Placeholder, sc.pos)
		return
	}
	sc.backtrack(Symbol, sc.start+1)
}

func (sc *lexScanner) scanSymbol(r rune) {
	sym := string(sc.runes[sc.start:sc.pos])
	if couldExtendSymbol(sym, r) {
		sc.pos++
		return
	}
	// fall back to the longest completed entry
	end := sc.pos
	for end > sc.start+1 && !isKnownSymbol(string(sc.runes[sc.start:end])) {
		end--
	}
	// "<--" keeps the assignment and drops the superfluous second hyphen
	if string(sc.runes[sc.start:end]) == "<-" && end < len(sc.runes) && sc.runes[end] == '-' {
		sc.backtrack(Symbol, end)
		sc.pos++
		sc.start = sc.pos
		return
	}
	sc.backtrack(Symbol, end)
}

// finish flushes the pending token at end of input.
func (sc *lexScanner) finish() {
	end := len(sc.runes)
	switch sc.state {
	case lx0, lxBlank:
		sc.list.appendPadding(sc.pad.String())
		sc.pad.Reset()
	case lxName:
		sc.emit(Ident, end)
	case lxInt, lxInt0, lxOct, lxSuffix:
		sc.emit(IntLit, end)
	case lxBin, lxHex:
		if end-sc.start == 2 { // bare "0b"/"0x"
			sc.backtrack(IntLit, sc.start+1)
			sc.run() // rescan the dangling prefix letter
		} else {
			sc.emit(IntLit, end)
		}
	case lxFloat, lxFloatExp:
		sc.emit(FloatLit, end)
	case lxFloatE, lxFloatSE:
		sc.scanExponentStart(0)
		sc.run()
	case lxString:
		// unterminated literal, emitted as-is
		sc.emit(StringLit, end)
	case lxChar:
		sc.emit(CharLit, end)
	case lxKey:
		sc.backtrack(Symbol, sc.start+1)
		sc.run()
	case lxSymbol:
		sym := string(sc.runes[sc.start:end])
		e := end
		for e > sc.start+1 && !isKnownSymbol(sym[:e-sc.start]) {
			e--
		}
		if e < end {
			sc.backtrack(Symbol, e)
			sc.run()
		} else {
			sc.emit(Symbol, end)
		}
	}
}
