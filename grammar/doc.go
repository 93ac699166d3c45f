// Package grammar implements lexical and expression-level analysis of
// structogram pseudocode lines: a finite-state lexer producing lossless
// token lists, the configurable keyword service, and a shunting-yard
// expression parser building expression trees.
//
// License
//
// Governed by a 3-Clause BSD license. License file may be found in the root
// folder of this module.
//
package grammar

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'nsd.grammar'.
func tracer() tracing.Trace {
	return tracing.Select("nsd.grammar")
}
