package grammar

import (
	"strings"
)

// Editing operations on token lists. All index arguments address tokens, not
// runes; ranges are half-open. Out-of-range arguments are clamped, following
// the container conventions of the rest of the package: editing never
// panics, it degrades to a no-op.

func (tl *TokenList) clamp(i int) int {
	if i < 0 {
		return 0
	}
	if i > len(tl.tokens) {
		return len(tl.tokens)
	}
	return i
}

// SubList extracts the tokens of [from, to) into a new list. Interior
// padding is carried over, the outer padding of the new list is empty.
func (tl *TokenList) SubList(from, to int) *TokenList {
	from, to = tl.clamp(from), tl.clamp(to)
	if from >= to {
		return NewTokenList()
	}
	sub := &TokenList{
		tokens:   append([]Token(nil), tl.tokens[from:to]...),
		paddings: make([]string, 0, to-from+1),
	}
	sub.paddings = append(sub.paddings, "")
	sub.paddings = append(sub.paddings, tl.paddings[from+1:to]...)
	sub.paddings = append(sub.paddings, "")
	return sub
}

// Remove deletes the tokens of [from, to). The padding before the removed
// range and the padding after it are joined at the seam; a blank is inserted
// if the now-adjacent tokens would amalgamate.
func (tl *TokenList) Remove(from, to int) {
	from, to = tl.clamp(from), tl.clamp(to)
	if from >= to {
		return
	}
	seam := tl.paddings[from] + tl.paddings[to]
	tl.tokens = append(tl.tokens[:from], tl.tokens[to:]...)
	tl.paddings = append(tl.paddings[:from], tl.paddings[to:]...)
	tl.paddings[from] = seam
	tl.ensureGaps()
}

// InsertAt inserts all tokens of other at token index i. The padding at the
// insertion gap stays in front of the inserted tokens; other's interior
// padding is carried over.
func (tl *TokenList) InsertAt(i int, other *TokenList) {
	i = tl.clamp(i)
	if other == nil || other.Len() == 0 {
		return
	}
	toks := append([]Token(nil), other.tokens...)
	pads := append([]string(nil), other.paddings[1:]...) // drop other's lead
	tl.tokens = append(tl.tokens[:i], append(toks, tl.tokens[i:]...)...)
	rest := append([]string(nil), tl.paddings[i+1:]...)
	tl.paddings = append(tl.paddings[:i+1], append(pads, rest...)...)
	tl.ensureGaps()
}

// IndexOf finds the first token at or after position from whose text matches
// text. Returns -1 if there is none.
func (tl *TokenList) IndexOf(text string, from int, matchCase bool) int {
	for i := tl.clamp(from); i < len(tl.tokens); i++ {
		if tl.tokens[i].matches(text, matchCase) {
			return i
		}
	}
	return -1
}

// LastIndexOf finds the last token at or before position from whose text
// matches text. Returns -1 if there is none.
func (tl *TokenList) LastIndexOf(text string, from int, matchCase bool) int {
	if from >= len(tl.tokens) {
		from = len(tl.tokens) - 1
	}
	for i := from; i >= 0; i-- {
		if tl.tokens[i].matches(text, matchCase) {
			return i
		}
	}
	return -1
}

// matchesAt checks whether seq occurs at token position i.
func (tl *TokenList) matchesAt(seq *TokenList, i int, matchCase bool) bool {
	if i+seq.Len() > len(tl.tokens) {
		return false
	}
	for j, tok := range seq.tokens {
		if !tl.tokens[i+j].matches(tok.Text, matchCase) {
			return false
		}
	}
	return true
}

// IndexOfSeq finds the first occurrence of the token sequence seq at or
// after position from. Returns -1 if there is none. An empty seq never
// matches.
func (tl *TokenList) IndexOfSeq(seq *TokenList, from int, matchCase bool) int {
	if seq == nil || seq.Len() == 0 {
		return -1
	}
	for i := tl.clamp(from); i+seq.Len() <= len(tl.tokens); i++ {
		if tl.matchesAt(seq, i, matchCase) {
			return i
		}
	}
	return -1
}

// LastIndexOfSeq finds the last occurrence of seq starting at or before
// position from.
func (tl *TokenList) LastIndexOfSeq(seq *TokenList, from int, matchCase bool) int {
	if seq == nil || seq.Len() == 0 {
		return -1
	}
	if from > len(tl.tokens)-seq.Len() {
		from = len(tl.tokens) - seq.Len()
	}
	for i := from; i >= 0; i-- {
		if tl.matchesAt(seq, i, matchCase) {
			return i
		}
	}
	return -1
}

// StartsWith checks whether the list begins with the token sequence seq.
func (tl *TokenList) StartsWith(seq *TokenList, matchCase bool) bool {
	return seq != nil && seq.Len() > 0 && tl.matchesAt(seq, 0, matchCase)
}

// EndsWith checks whether the list ends with the token sequence seq.
func (tl *TokenList) EndsWith(seq *TokenList, matchCase bool) bool {
	return seq != nil && seq.Len() > 0 && tl.matchesAt(seq, tl.Len()-seq.Len(), matchCase)
}

// ReplaceAll replaces every token whose text matches old by a token with
// text new, keeping kind and padding. Returns the number of replacements.
func (tl *TokenList) ReplaceAll(old, new string, matchCase bool) int {
	count := 0
	for i := range tl.tokens {
		if tl.tokens[i].matches(old, matchCase) {
			tl.tokens[i].Text = new
			count++
		}
	}
	if count > 0 {
		tl.ensureGaps()
	}
	return count
}

// ReplaceAllSeq replaces every occurrence of the token sequence oldSeq by
// the tokens of newSeq. Returns the number of replacements.
func (tl *TokenList) ReplaceAllSeq(oldSeq, newSeq *TokenList, matchCase bool) int {
	count := 0
	pos := 0
	for {
		i := tl.IndexOfSeq(oldSeq, pos, matchCase)
		if i < 0 {
			break
		}
		tl.Remove(i, i+oldSeq.Len())
		if newSeq != nil && newSeq.Len() > 0 {
			tl.InsertAt(i, newSeq)
			pos = i + newSeq.Len()
		} else {
			pos = i
		}
		count++
	}
	return count
}

// EndsWithBackslash reports a trailing line-continuation token.
func (tl *TokenList) EndsWithBackslash() bool {
	return tl.Len() > 0 && tl.tokens[tl.Len()-1].Text == "\\"
}

// BreakAtLength wraps the reconstructed text into lines of at most max
// characters, breaking only at token boundaries and marking soft breaks
// with a backslash continuation. A single token longer than max stays
// unbroken on its own line.
func (tl *TokenList) BreakAtLength(max int) string {
	if max <= 0 || tl.Len() == 0 {
		return tl.String()
	}
	var b strings.Builder
	lineLen := 0
	for i, tok := range tl.tokens {
		pad := tl.paddings[i]
		width := len([]rune(pad)) + len([]rune(tok.Text))
		if lineLen > 0 && lineLen+width+1 > max {
			b.WriteString("\\\n")
			lineLen = 0
			pad = ""
			width = len([]rune(tok.Text))
		}
		b.WriteString(pad)
		b.WriteString(tok.Text)
		lineLen += width
	}
	b.WriteString(tl.paddings[len(tl.paddings)-1])
	return b.String()
}
