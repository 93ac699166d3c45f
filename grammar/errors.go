package grammar

import (
	"fmt"
)

// SyntaxError reports a malformed construct in one line of pseudocode. Pos
// is the rune offset of the offending token within the line, Token its text.
type SyntaxError struct {
	Msg   string
	Pos   int
	Token string
	Cause error
}

func (e *SyntaxError) Error() string {
	if e.Token != "" {
		return fmt.Sprintf("%s at %d near %q", e.Msg, e.Pos, e.Token)
	}
	return fmt.Sprintf("%s at %d", e.Msg, e.Pos)
}

func (e *SyntaxError) Unwrap() error {
	return e.Cause
}

func syntaxError(msg string, tok Token) *SyntaxError {
	return &SyntaxError{Msg: msg, Pos: tok.Start, Token: tok.Text}
}

// Severity grades a diagnostic.
type Severity int8

const (
	Info Severity = iota
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	}
	return "<illegal severity>"
}

// Diagnostic is a structural anomaly that did not abort the analysis. The
// parser collects these for constructs it recovers from, so interactive
// callers can report them without losing the partial result.
type Diagnostic struct {
	Severity Severity
	Msg      string
	Pos      int
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s (at %d)", d.Severity, d.Msg, d.Pos)
}
