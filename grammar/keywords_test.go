package grammar

import (
	"testing"

	"github.com/knadh/koanf"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestKeywordDefaults(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "nsd.grammar")
	defer teardown()
	defer ResetKeywords()
	//
	for _, pair := range []struct{ slot, text string }{
		{"preFor", "for"},
		{"postFor", "to"},
		{"stepFor", "by"},
		{"preWhile", "while"},
		{"input", "INPUT"},
		{"preAlt", ""},
	} {
		if got := Keyword(pair.slot); got != pair.text {
			t.Errorf("keyword %s = %q, want %q", pair.slot, got, pair.text)
		}
	}
}

func TestSetKeyword(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "nsd.grammar")
	defer teardown()
	defer ResetKeywords()
	//
	SetKeyword("preWhile", "solange")
	if got := Keyword("preWhile"); got != "solange" {
		t.Errorf("keyword preWhile = %q", got)
	}
	kw := SplitKeyword("preWhile")
	if kw == nil || kw.Len() != 1 || kw.TextAt(0) != "solange" {
		t.Errorf("split keyword = %v", kw.Texts())
	}
	// unknown slots are ignored
	SetKeyword("noSuchSlot", "x")
	if Keyword("noSuchSlot") != "" {
		t.Error("unknown slot accepted")
	}
}

func TestSplitKeywordForInFallback(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "nsd.grammar")
	defer teardown()
	defer ResetKeywords()
	//
	SetKeyword("preForIn", "")
	kw := SplitKeyword("preForIn")
	if kw == nil || kw.TextAt(0) != "for" {
		t.Errorf("preForIn fallback = %v", kw.Texts())
	}
}

func TestRemoveDecorators(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "nsd.grammar")
	defer teardown()
	defer ResetKeywords()
	//
	tl := Split("for i <- 1 to 10 by 2", true)
	if n := RemoveDecorators(tl); n != 3 {
		t.Errorf("removed %d markers, want 3", n)
	}
	want := []string{"i", "<-", "1", "10", "2"}
	if got := tl.Texts(); !equalStrings(got, want) {
		t.Errorf("tokens = %v, want %v", got, want)
	}
}

func TestRemoveDecoratorsCaseBlind(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "nsd.grammar")
	defer teardown()
	defer ResetKeywords()
	//
	tl := Split("WHILE a < b", true)
	if n := RemoveDecorators(tl); n != 1 {
		t.Errorf("removed %d markers, want 1", n)
	}
	want := []string{"a", "<", "b"}
	if got := tl.Texts(); !equalStrings(got, want) {
		t.Errorf("tokens = %v, want %v", got, want)
	}
}

func TestEncodeDecodeKeywords(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "nsd.grammar")
	defer teardown()
	defer ResetKeywords()
	//
	tl := Split("for i <- 1 to 10", true)
	EncodeKeywords(tl)
	want := []string{"§PREFOR§", "i", "<-", "1", "§POSTFOR§", "10"}
	if got := tl.Texts(); !equalStrings(got, want) {
		t.Errorf("encoded tokens = %v, want %v", got, want)
	}
	DecodeKeywords(tl)
	want = []string{"for", "i", "<-", "1", "to", "10"}
	if got := tl.Texts(); !equalStrings(got, want) {
		t.Errorf("decoded tokens = %v, want %v", got, want)
	}
}

func TestKeywordsRoundTripThroughPlaceholders(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "nsd.grammar")
	defer teardown()
	defer ResetKeywords()
	//
	// re-lexing an encoded list keeps the placeholder tokens intact
	tl := Split("while a < b", true)
	EncodeKeywords(tl)
	relexed := Split(tl.String(), true)
	if !tl.Equals(relexed, true) {
		t.Errorf("placeholder round trip: %v vs %v", tl.Texts(), relexed.Texts())
	}
}

func TestLoadStoreKeywords(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "nsd.grammar")
	defer teardown()
	defer ResetKeywords()
	//
	k := koanf.New(".")
	SetKeyword("preFor", "fuer")
	if err := StoreKeywords(k); err != nil {
		t.Fatalf("store failed: %v", err)
	}
	ResetKeywords()
	if Keyword("preFor") != "for" {
		t.Fatal("reset failed")
	}
	LoadKeywords(k)
	if got := Keyword("preFor"); got != "fuer" {
		t.Errorf("loaded keyword preFor = %q", got)
	}
}
