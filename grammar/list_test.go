package grammar

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestSubList(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "nsd.grammar")
	defer teardown()
	//
	tl := Split("a + b * c", true)
	sub := tl.SubList(2, 5)
	want := []string{"b", "*", "c"}
	if got := sub.Texts(); !equalStrings(got, want) {
		t.Errorf("sublist = %v, want %v", got, want)
	}
	if sub.String() != "b * c" {
		t.Errorf("sublist text = %q", sub.String())
	}
	// the source list is untouched
	if tl.Len() != 5 {
		t.Errorf("source list length changed to %d", tl.Len())
	}
}

func TestRemove(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "nsd.grammar")
	defer teardown()
	//
	tl := Split("a + b * c", true)
	tl.Remove(1, 4)
	want := []string{"a", "c"}
	if got := tl.Texts(); !equalStrings(got, want) {
		t.Errorf("tokens = %v, want %v", got, want)
	}
	// out-of-range indices are clamped, not fatal
	tl.Remove(5, 99)
	if tl.Len() != 2 {
		t.Errorf("clamped removal changed length to %d", tl.Len())
	}
}

func TestInsertAt(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "nsd.grammar")
	defer teardown()
	//
	tl := Split("a c", true)
	ins := Split("+ b", true)
	ins.TrimPadding()
	tl.InsertAt(1, ins)
	want := []string{"a", "+", "b", "c"}
	if got := tl.Texts(); !equalStrings(got, want) {
		t.Errorf("tokens = %v, want %v", got, want)
	}
}

func TestIndexOf(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "nsd.grammar")
	defer teardown()
	//
	tl := Split("a + b + c", true)
	if i := tl.IndexOf("+", 0, true); i != 1 {
		t.Errorf("IndexOf = %d, want 1", i)
	}
	if i := tl.IndexOf("+", 2, true); i != 3 {
		t.Errorf("IndexOf from 2 = %d, want 3", i)
	}
	if i := tl.LastIndexOf("+", tl.Len()-1, true); i != 3 {
		t.Errorf("LastIndexOf = %d, want 3", i)
	}
	if i := tl.IndexOf("missing", 0, true); i != -1 {
		t.Errorf("IndexOf missing = %d, want -1", i)
	}
	// case-blind matching applies to identifiers only
	if i := tl.IndexOf("B", 0, false); i != 2 {
		t.Errorf("case-blind IndexOf = %d, want 2", i)
	}
	if i := tl.IndexOf("B", 0, true); i != -1 {
		t.Errorf("case-strict IndexOf = %d, want -1", i)
	}
}

func TestIndexOfSeq(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "nsd.grammar")
	defer teardown()
	//
	tl := Split("for i <- 1 to 10", true)
	seq := Split("<- 1", true)
	seq.TrimPadding()
	if i := tl.IndexOfSeq(seq, 0, true); i != 2 {
		t.Errorf("IndexOfSeq = %d, want 2", i)
	}
	if !tl.StartsWith(Split("for", true), false) {
		t.Error("StartsWith failed")
	}
	if !tl.EndsWith(Split("to 10", true), false) {
		t.Error("EndsWith failed")
	}
}

func TestReplaceAll(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "nsd.grammar")
	defer teardown()
	//
	tl := Split("x + x * y", true)
	if n := tl.ReplaceAll("x", "z", true); n != 2 {
		t.Errorf("replaced %d occurrences, want 2", n)
	}
	if tl.String() != "z + z * y" {
		t.Errorf("result = %q", tl.String())
	}
}

func TestReplaceAllSeq(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "nsd.grammar")
	defer teardown()
	//
	tl := Split("a <- a + 1", true)
	oldSeq := Split("a + 1", true)
	oldSeq.TrimPadding()
	newSeq := Split("succ(a)", true)
	newSeq.TrimPadding()
	if n := tl.ReplaceAllSeq(oldSeq, newSeq, true); n != 1 {
		t.Errorf("replaced %d sequences, want 1", n)
	}
	want := []string{"a", "<-", "succ", "(", "a", ")"}
	if got := tl.Texts(); !equalStrings(got, want) {
		t.Errorf("tokens = %v, want %v", got, want)
	}
}

func TestEnsureGapsOnRemoval(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "nsd.grammar")
	defer teardown()
	//
	// removing the operator must not amalgamate the adjacent names
	tl := Split("ab+cd", true)
	tl.Remove(1, 2)
	if tl.String() != "ab cd" {
		t.Errorf("result = %q, want %q", tl.String(), "ab cd")
	}
}

func TestBreakAtLength(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "nsd.grammar")
	defer teardown()
	//
	tl := Split("alpha beta gamma delta", true)
	broken := tl.BreakAtLength(12)
	second := Split(broken, true)
	// soft breaks add backslash-newline pairs but no content
	var texts []string
	for i := 0; i < second.Len(); i++ {
		if second.TextAt(i) != "\\" {
			texts = append(texts, second.TextAt(i))
		}
	}
	if !equalStrings(texts, tl.Texts()) {
		t.Errorf("broken tokens = %v, want %v", texts, tl.Texts())
	}
}

func TestEndsWithBackslash(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "nsd.grammar")
	defer teardown()
	//
	if !Split("a + \\", true).EndsWithBackslash() {
		t.Error("continuation line not recognized")
	}
	if Split("a + b", true).EndsWithBackslash() {
		t.Error("plain line misread as continuation")
	}
}
