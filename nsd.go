// Package nsd is the expression and type analysis core of a structogram
// (Nassi-Shneiderman diagram) pseudocode tool.
//
// License
//
// Governed by a 3-Clause BSD license. License file may be found in the root
// folder of this module.
//
package nsd

import (
	"context"
	"io"
	"os"
	"unicode"

	"github.com/knadh/koanf"
)

// Configuration holds global configuration values. We use koanf.
var Configuration *koanf.Koanf

// Tracefile is the file we write our log output, if not nil.
var Tracefile io.WriteCloser

// SignalContext is a global context for terminating the application by an
// interrupt signal.
var SignalContext context.Context

// Exit exits the application. It gracefully shuts down all resources.
func Exit(errcode int) {
	if Tracefile != nil {
		Tracefile.Close()
	}
	os.Exit(errcode)
}

// ignoreCase is the application-wide switch for keyword and identifier
// matching. The dialect is case-tolerant by default.
var ignoreCase = true

// SetIgnoreCase switches case-tolerant matching of keywords and identifiers
// on or off.
func SetIgnoreCase(ignore bool) {
	ignoreCase = ignore
}

// IgnoreCase reflects the application-wide case switch.
func IgnoreCase() bool {
	return ignoreCase
}

// IsIdentifier checks name against identifier syntax: a letter or underscore,
// followed by letters, digits or underscores. With asciiOnly set, letters are
// restricted to the ASCII range (required for type names, which travel
// through description strings).
func IsIdentifier(name string, asciiOnly bool) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		var isLetter bool
		if asciiOnly {
			isLetter = r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'
		} else {
			isLetter = unicode.IsLetter(r)
		}
		if i == 0 {
			if !isLetter && r != '_' {
				return false
			}
		} else if !isLetter && r != '_' && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
