package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/structogram/nsd/grammar"
	"github.com/structogram/nsd/nsd/ui/termui"
	"github.com/structogram/nsd/types"
	"golang.org/x/text/width"
)

type Formatter struct {
	termui.DefaultFormatter
}

func (f Formatter) Format(item interface{}, w io.Writer) (bool, error) {
	tracer().Debugf("cli.Format called for item %T", item)
	switch t := item.(type) {
	case *grammar.TokenList:
		item = tokenTable(t)
	case types.Type:
		item = t.Description(true)
	}
	return f.DefaultFormatter.Format(item, w)
}

// --- Property tables for various types -------------------------------------

func tokenTable(tl *grammar.TokenList) table.Writer {
	tw := table.NewWriter()
	tw.SetTitle("%d tokens", tl.Len())
	tw.AppendHeader(table.Row{"#", "kind", "text", "span"})
	for i := 0; i < tl.Len(); i++ {
		tok := tl.At(i)
		tw.AppendRow(table.Row{
			i,
			tok.Kind.String(),
			displayText(tok.Text),
			fmt.Sprintf("%d..%d", tok.Start, tok.End),
		})
	}
	tw.SetStyle(table.StyleLight)
	return tw
}

func typesTable(reg *types.Registry) table.Writer {
	tw := table.NewWriter()
	tw.AppendHeader(table.Row{"name", "description"})
	for _, name := range reg.TypeNames() {
		t := reg.GetType(name)
		if t == nil {
			continue
		}
		tw.AppendRow(table.Row{name, t.Description(true)})
	}
	tw.SetStyle(table.StyleLight)
	return tw
}

func varsTable(reg *types.Registry) table.Writer {
	tw := table.NewWriter()
	tw.AppendHeader(table.Row{"variable", "type"})
	for _, name := range reg.VariableNames() {
		t := reg.GetTypeFor(name)
		if t == nil {
			continue
		}
		tw.AppendRow(table.Row{name, t.Description(false)})
	}
	tw.SetStyle(table.StyleLight)
	return tw
}

func keywordsTable() table.Writer {
	tw := table.NewWriter()
	tw.AppendHeader(table.Row{"slot", "text"})
	for _, slot := range grammar.KeywordSlots() {
		tw.AppendRow(table.Row{slot, grammar.Keyword(slot)})
	}
	tw.SetStyle(table.StyleLight)
	return tw
}

// exprTable renders an expression tree as an indented table, one node per
// row.
func exprTable(x *grammar.Expression) table.Writer {
	tw := table.NewWriter()
	tw.SetTitle(displayText(x.String()))
	tw.AppendHeader(table.Row{"node", "kind", "type"})
	appendExprRows(tw, x, 0)
	tw.SetStyle(table.StyleLight)
	return tw
}

func appendExprRows(tw table.Writer, x *grammar.Expression, depth int) {
	tn := "?"
	if t := x.Type(); t != nil {
		tn = t.Name()
	}
	tw.AppendRow(table.Row{
		strings.Repeat("  ", depth) + displayText(x.Text),
		x.Kind.String(),
		tn,
	})
	for _, c := range x.Children {
		appendExprRows(tw, c, depth+1)
	}
}

// displayText narrows fullwidth characters so table columns stay aligned in
// the terminal.
func displayText(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianFullwidth, width.EastAsianWide:
			b.WriteString(width.Narrow.String(string(r)))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
