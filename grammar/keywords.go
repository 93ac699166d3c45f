package grammar

import (
	"sort"
	"strings"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/structogram/nsd"
)

// The keyword service maintains the configurable marker words of the
// pseudocode dialect. Each slot names a structural position (loop
// introducer, step marker, input prefix, ...) and carries user-chosen text,
// possibly empty. Downstream components never match on the text itself but
// on tokenized forms or on internal placeholder tokens.

// keywordSlots lists all slots in canonical order.
var keywordSlots = []string{
	"preAlt", "postAlt",
	"preCase", "postCase",
	"preFor", "postFor", "stepFor",
	"preForIn", "postForIn",
	"preWhile", "postWhile",
	"preRepeat", "postRepeat",
	"preLeave", "preReturn", "preExit", "preThrow",
	"input", "output",
}

// keywordDefaults holds the factory settings. Slots not listed default to
// empty text.
var keywordDefaults = map[string]string{
	"preFor":    "for",
	"postFor":   "to",
	"stepFor":   "by",
	"preForIn":  "foreach",
	"postForIn": "in",
	"preWhile":  "while",
	"preRepeat": "until",
	"preLeave":  "leave",
	"preReturn": "return",
	"preExit":   "exit",
	"preThrow":  "throw",
	"input":     "INPUT",
	"output":    "OUTPUT",
}

var keywords = initKeywords()

// splitKeywords caches the tokenized form of each non-empty slot. It is
// rebuilt lazily after any slot change.
var splitKeywords map[string]*TokenList

func initKeywords() map[string]string {
	m := make(map[string]string, len(keywordSlots))
	for _, slot := range keywordSlots {
		m[slot] = keywordDefaults[slot]
	}
	return m
}

// KeywordSlots returns all slot names in canonical order.
func KeywordSlots() []string {
	return append([]string(nil), keywordSlots...)
}

// Keyword returns the current text of a slot, or "" for unknown slots.
func Keyword(slot string) string {
	return keywords[slot]
}

// SetKeyword changes the text of a slot and invalidates the tokenized
// cache. Unknown slots are ignored.
func SetKeyword(slot, text string) {
	if _, ok := keywords[slot]; !ok {
		tracer().Errorf("unknown keyword slot %q", slot)
		return
	}
	keywords[slot] = strings.TrimSpace(text)
	splitKeywords = nil
}

// ResetKeywords restores all factory settings.
func ResetKeywords() {
	keywords = initKeywords()
	splitKeywords = nil
}

// SplitKeyword returns the cached tokenized form of a slot's text, or nil
// for empty slots. An empty preForIn slot falls back to preFor.
func SplitKeyword(slot string) *TokenList {
	if splitKeywords == nil {
		splitKeywords = make(map[string]*TokenList, len(keywords))
		for s, text := range keywords {
			if text == "" {
				continue
			}
			kw := Split(text, false)
			kw.TrimPadding()
			splitKeywords[s] = kw
		}
	}
	if kw, ok := splitKeywords[slot]; ok {
		return kw
	}
	if slot == "preForIn" {
		return SplitKeyword("preFor")
	}
	return nil
}

// decoratorsByLength returns the non-empty slots, longest tokenized form
// first, so that markers sharing a prefix are matched greedily.
func decoratorsByLength() []string {
	var slots []string
	for _, slot := range keywordSlots {
		if SplitKeyword(slot) != nil && keywords[slot] != "" {
			slots = append(slots, slot)
		}
	}
	sort.SliceStable(slots, func(i, j int) bool {
		return SplitKeyword(slots[i]).Len() > SplitKeyword(slots[j]).Len()
	})
	return slots
}

// RemoveDecorators deletes every occurrence of any configured keyword's
// token sequence from the list. Matching honors the application-wide case
// switch; longer markers win over shorter ones. Returns the number of
// removed occurrences.
func RemoveDecorators(tl *TokenList) int {
	matchCase := !nsd.IgnoreCase()
	count := 0
	for _, slot := range decoratorsByLength() {
		kw := SplitKeyword(slot)
		for {
			i := tl.IndexOfSeq(kw, 0, matchCase)
			if i < 0 {
				break
			}
			tl.Remove(i, i+kw.Len())
			count++
		}
	}
	return count
}

// placeholderFor builds the internal placeholder token for a slot, e.g.
// §PREFOR§ for preFor.
func placeholderFor(slot string) Token {
	text := string(PlaceholderSigil) + strings.ToUpper(slot) + string(PlaceholderSigil)
	return Token{Kind: Placeholder, Text: text}
}

// slotForPlaceholder resolves a placeholder token back to its slot name, or
// "".
func slotForPlaceholder(tok Token) string {
	if tok.Kind != Placeholder {
		return ""
	}
	name := strings.Trim(tok.Text, string(PlaceholderSigil))
	for _, slot := range keywordSlots {
		if strings.ToUpper(slot) == name {
			return slot
		}
	}
	return ""
}

// EncodeKeywords replaces every occurrence of a configured keyword's token
// sequence by its single internal placeholder token, so downstream
// components can match keywords positionally without depending on the
// user-chosen text.
func EncodeKeywords(tl *TokenList) {
	matchCase := !nsd.IgnoreCase()
	for _, slot := range decoratorsByLength() {
		kw := SplitKeyword(slot)
		repl := NewTokenList()
		repl.append(placeholderFor(slot), "")
		tl.ReplaceAllSeq(kw, repl, matchCase)
	}
}

// DecodeKeywords is the inverse of EncodeKeywords: every placeholder token
// is replaced by the current tokenized keyword text of its slot.
func DecodeKeywords(tl *TokenList) {
	for i := 0; i < tl.Len(); i++ {
		slot := slotForPlaceholder(tl.At(i))
		if slot == "" {
			continue
		}
		kw := SplitKeyword(slot)
		tl.Remove(i, i+1)
		if kw != nil {
			tl.InsertAt(i, kw)
			i += kw.Len() - 1
		} else {
			i--
		}
	}
}

// LoadKeywords reads all slots from a configuration tree, using keys of the
// form parser.preFor. Absent keys keep their current value.
func LoadKeywords(k *koanf.Koanf) {
	if k == nil {
		return
	}
	for _, slot := range keywordSlots {
		key := "parser." + slot
		if k.Exists(key) {
			SetKeyword(slot, k.String(key))
		}
	}
}

// StoreKeywords merges all slots into a configuration tree under parser.*.
// Persisting the tree is the configuration layer's business.
func StoreKeywords(k *koanf.Koanf) error {
	if k == nil {
		return nil
	}
	m := make(map[string]interface{}, len(keywordSlots))
	for _, slot := range keywordSlots {
		m["parser."+slot] = keywords[slot]
	}
	return k.Load(confmap.Provider(m, "."), nil)
}
