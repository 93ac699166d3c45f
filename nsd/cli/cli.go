// Package cli implements the nsd command line interface.
//
// License
//
// Governed by a 3-Clause BSD license. License file may be found in the root
// folder of this module.
//
// Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>
//
package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"github.com/spf13/cobra"
	"github.com/structogram/nsd"
	"github.com/structogram/nsd/grammar"
	"github.com/structogram/nsd/infer"
	"github.com/structogram/nsd/nsd/ui/termui"
	"github.com/structogram/nsd/types"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "nsd",
	Short: "An analyzer for structogram pseudocode lines",
	Long: `Welcome to NSD V0.1 (experimental)

NSD analyzes single lines of loosely-typed pseudocode, as used in
Nassi-Shneiderman structograms: it splits lines into tokens, parses
expressions and assignments into trees, and infers data types for every
sub-expression through a shared type registry.

NSD runs in interactive mode, prompting for user input in a terminal REPL.

`,
	Run: runNsdCmd,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called exactly once by nsd.main().
func Execute() {
	if rootCmd.Execute() != nil {
		nsd.Exit(2)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)
	// persistent flags which will be global for the application
	rootCmd.PersistentFlags().BoolP("interactive", "i", false, "Force run in interactive mode")
	rootCmd.PersistentFlags().String("logfile", "stderr", "URL of log output location")
	rootCmd.PersistentFlags().Bool("casesensitive", false, "Match keywords case-sensitively")
}

func runNsdCmd(cmd *cobra.Command, args []string) {
	tracing.Infof("nsd analyzer called")
	if cs, err := cmd.PersistentFlags().GetBool("casesensitive"); err == nil {
		nsd.SetIgnoreCase(!cs)
	}
	acmd := &analyzerCmd{registry: types.NewRegistry()}
	acmd.REPL = termui.NewREPL("nsd", "0.1 experimental", analyzerCommands())
	acmd.Interpreter = acmd
	acmd.Prompt(true)
}

// analyzerCommands describes the interpreter's statements for the REPL's
// completion and help display.
func analyzerCommands() []termui.Command {
	return []termui.Command{
		{Name: "lex", Help: "split a pseudocode line into tokens"},
		{Name: "parse", Help: "parse an expression and print its tree"},
		{Name: "infer", Help: "parse and infer the type of an expression (default)"},
		{Name: "type", Help: "describe a registered type"},
		{Name: "types", Help: "list all registered types"},
		{Name: "vars", Help: "list all variable/type associations"},
		{Name: "keywords", Help: "list the configured parser keywords"},
		{Name: "keyword", Args: grammar.KeywordSlots(),
			Help: "reconfigure a parser keyword slot"},
	}
}

type analyzerCmd struct {
	*termui.REPL
	registry *types.Registry
	parser   grammar.Parser
}

func (acmd *analyzerCmd) InterpretCommand(command string) {
	command = strings.Trim(command, "\x00")
	stdout, stderr := acmd.Outputs()
	cmd, rest := splitCommand(command)
	var err error
	switch cmd {
	case "lex":
		err = acmd.lex(rest, stdout)
	case "parse":
		err = acmd.parse(rest, stdout)
	case "infer":
		err = acmd.infer(rest, stdout)
	case "type":
		err = acmd.describeType(rest, stdout)
	case "types":
		err = format(typesTable(acmd.registry), stdout)
	case "vars":
		err = format(varsTable(acmd.registry), stdout)
	case "keywords":
		err = format(keywordsTable(), stdout)
	case "keyword":
		err = acmd.setKeyword(rest, stdout)
	default:
		err = acmd.infer(command, stdout)
	}
	if err != nil {
		fmt.Fprintf(stderr, "interpreter error: %s\n", err.Error())
	}
}

func splitCommand(line string) (string, string) {
	words := strings.SplitN(line, " ", 2)
	if len(words) == 1 {
		return words[0], ""
	}
	return words[0], strings.TrimSpace(words[1])
}

func format(item interface{}, w io.Writer) error {
	_, err := Formatter{}.Format(item, w)
	return err
}

func (acmd *analyzerCmd) lex(line string, w io.Writer) error {
	tl := grammar.Split(line, true)
	grammar.RemoveDecorators(tl)
	return format(tokenTable(tl), w)
}

func (acmd *analyzerCmd) parse(line string, w io.Writer) error {
	x, err := acmd.parseLine(line)
	if err != nil {
		return err
	}
	if x == nil {
		return format("(empty expression)", w)
	}
	return format(exprTable(x), w)
}

func (acmd *analyzerCmd) infer(line string, w io.Writer) error {
	x, err := acmd.parseLine(line)
	if err != nil {
		return err
	}
	if x == nil {
		return format("(empty expression)", w)
	}
	t := infer.Type(x, acmd.registry, true)
	return format(fmt.Sprintf("%s : %s", x.String(), t.Description(true)), w)
}

func (acmd *analyzerCmd) parseLine(line string) (*grammar.Expression, error) {
	tl := grammar.Split(line, true)
	grammar.RemoveDecorators(tl)
	x, err := acmd.parser.Parse(tl)
	if err != nil {
		return nil, err
	}
	for _, d := range acmd.parser.Diagnostics {
		tracer().Infof("parser diagnostic: %s", d.Msg)
	}
	acmd.parser.Diagnostics = acmd.parser.Diagnostics[:0]
	return x, nil
}

func (acmd *analyzerCmd) describeType(name string, w io.Writer) error {
	if name == "" {
		return fmt.Errorf("usage: type <name>")
	}
	t := acmd.registry.GetType(name)
	if t == nil {
		if t = acmd.registry.GetTypeFor(name); t == nil {
			return fmt.Errorf("no type or variable %q registered", name)
		}
	}
	return format(t.Description(true), w)
}

func (acmd *analyzerCmd) setKeyword(rest string, w io.Writer) error {
	slot, text := splitCommand(rest)
	if slot == "" || text == "" {
		return fmt.Errorf("usage: keyword <slot> <text>")
	}
	known := false
	for _, s := range grammar.KeywordSlots() {
		if s == slot {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("unknown keyword slot %q", slot)
	}
	grammar.SetKeyword(slot, text)
	if nsd.Configuration != nil {
		if err := grammar.StoreKeywords(nsd.Configuration); err != nil {
			return err
		}
	}
	return format(fmt.Sprintf("keyword %s = %q", slot, text), w)
}
