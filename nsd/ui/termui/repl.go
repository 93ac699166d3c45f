package termui

// The interactive front end of the line analyzer. Statements are read with
// readline; a line ending in a backslash continues on the next line, the
// same soft break structogram elements use.

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	prtxt "github.com/jedib0t/go-pretty/v6/text"
	"github.com/structogram/nsd"
	"github.com/structogram/nsd/grammar"
)

var welcomeMessage = "Welcome to %s [V%s]"
var stdprompt = prtxt.FgGreen.Sprintf("%%s> ")
var contprompt = prtxt.FgGreen.Sprintf("%%s… ")
var editmode = "emacs"

// Command describes one statement the interpreter understands. The
// descriptions feed tab completion and the help display.
type Command struct {
	Name string
	Args []string // static completions for the first argument
	Help string
}

// CommandInterpreter executes complete analyzer statements. The REPL
// delegates every line that is not one of its own administrative commands.
type CommandInterpreter interface {
	InterpretCommand(string)
}

// REPL is the readline-backed read-eval-print loop of the analyzer.
type REPL struct {
	Interpreter CommandInterpreter
	readline    *readline.Instance
	toolname    string
	version     string
	prompt      string
	commands    []Command
}

// NewREPL creates a REPL for an interpreter tool. The given commands are
// offered for completion, in addition to the administrative ones (help,
// bye, mode, setprompt).
func NewREPL(toolname, version string, commands []Command) *REPL {
	repl := &REPL{
		toolname: toolname,
		version:  version,
		prompt:   fmt.Sprintf(stdprompt, toolname),
		commands: commands,
	}
	repl.readline = newReadline(toolname, repl.prompt, completerFor(commands))
	return repl
}

func newReadline(toolname, prompt string, completer readline.AutoCompleter) *readline.Instance {
	histfile := fmt.Sprintf("%s/%s-repl-history.tmp", os.TempDir(), toolname)
	rl, err := readline.NewEx(&readline.Config{
		Prompt:              prompt,
		HistoryFile:         histfile,
		AutoComplete:        completer,
		InterruptPrompt:     "^C",
		EOFPrompt:           "exit",
		HistorySearchFold:   true,
		FuncFilterInputRune: filterReplInput,
	})
	if err != nil {
		panic(err)
	}
	return rl
}

// completerFor builds the completion tree from the interpreter's commands
// plus the administrative ones.
func completerFor(commands []Command) readline.AutoCompleter {
	items := make([]readline.PrefixCompleterInterface, 0, len(commands)+4)
	for _, cmd := range commands {
		args := make([]readline.PrefixCompleterInterface, 0, len(cmd.Args))
		for _, a := range cmd.Args {
			args = append(args, readline.PcItem(a))
		}
		items = append(items, readline.PcItem(cmd.Name, args...))
	}
	items = append(items,
		readline.PcItem("help"),
		readline.PcItem("bye"),
		readline.PcItem("mode",
			readline.PcItem("vi"),
			readline.PcItem("emacs"),
		),
		readline.PcItem("setprompt"),
	)
	return readline.NewPrefixCompleter(items...)
}

// displayCommands prints a help message with the interpreter's commands and
// the administrative ones.
func (repl *REPL) displayCommands(out io.Writer) {
	io.WriteString(out, fmt.Sprintf(welcomeMessage, repl.toolname, repl.version))
	io.WriteString(out, "\n\nThe following commands are available:\n\n")
	for _, cmd := range repl.commands {
		io.WriteString(out, fmt.Sprintf("  %-18s : %s\n", cmd.Name, cmd.Help))
	}
	io.WriteString(out, `
  help               : print this message
  bye                : quit application
  mode [mode]        : display or set current editing mode
  setprompt [prompt] : set current prompt [to default]

A trailing backslash continues a statement on the next line.
`)
}

// Outputs returns stdout and stderr of this REPL.
func (repl *REPL) Outputs() (io.Writer, io.Writer) {
	return repl.readline.Stdout(), repl.readline.Stderr()
}

// Prompt enters the REPL and executes statements until bye or EOF.
func (repl *REPL) Prompt(exitOnBye bool) {
	defer repl.readline.Close()
	io.WriteString(repl.readline.Stderr(),
		fmt.Sprintf(welcomeMessage+"\n", repl.toolname, repl.version))
	for {
		line, err := repl.readStatement()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				break
			}
			continue
		} else if err == io.EOF {
			break
		}
		words := strings.Fields(line)
		command := ""
		if len(words) > 0 {
			command = words[0]
		}
		if doExit := repl.executeCommand(command, words, line); doExit {
			break
		}
	}
	if exitOnBye {
		nsd.Exit(0)
	}
}

// readStatement reads one complete statement, joining lines as long as the
// pending input ends in a backslash continuation.
func (repl *REPL) readStatement() (string, error) {
	line, err := repl.readline.Readline()
	if err != nil {
		return line, err
	}
	line = strings.TrimSpace(line)
	for needsContinuation(line) {
		repl.readline.SetPrompt(fmt.Sprintf(contprompt, repl.toolname))
		cont, err := repl.readline.Readline()
		if err != nil {
			break
		}
		line = joinContinuation(line, cont)
	}
	repl.readline.SetPrompt(repl.prompt)
	return line, nil
}

// needsContinuation checks whether a statement's token list ends in a
// backslash continuation.
func needsContinuation(line string) bool {
	return grammar.Split(line, true).EndsWithBackslash()
}

// joinContinuation appends a continuation line to a statement, dropping the
// trailing backslash.
func joinContinuation(line, cont string) string {
	return strings.TrimSpace(strings.TrimSuffix(line, "\\")) + " " + strings.TrimSpace(cont)
}

// executeCommand runs one administrative command or hands the statement to
// the interpreter. It returns true when the REPL should terminate.
func (repl *REPL) executeCommand(cmd string, args []string, line string) bool {
	switch cmd {
	case "":
		// do nothing
	case "help":
		repl.displayCommands(repl.readline.Stderr())
	case "bye":
		println("> goodbye!")
		return true
	case "mode":
		if len(args) > 1 {
			switch args[1] {
			case "vi":
				repl.readline.SetVimMode(true)
				editmode = "vi"
				return false
			case "emacs":
				repl.readline.SetVimMode(false)
				editmode = "emacs"
				return false
			}
		}
		io.WriteString(repl.readline.Stderr(),
			fmt.Sprintf("> current input mode: %s\n", editmode))
	case "setprompt":
		repl.prompt = fmt.Sprintf(stdprompt, repl.toolname)
		if len(line) > 10 {
			repl.prompt = line[10:] + " "
		}
		repl.readline.SetPrompt(repl.prompt)
	default:
		trace().Debugf("call interpreter on: '%s'", line)
		if repl.Interpreter != nil {
			repl.Interpreter.InterpretCommand(line)
		}
	}
	return false
}

// Input filter for the REPL. Blocks ctrl-z.
func filterReplInput(r rune) (rune, bool) {
	switch r {
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}
