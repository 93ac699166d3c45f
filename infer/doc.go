// Package infer implements bottom-up type inference over expression trees.
//
// Inference never fails: undecidable nodes degrade to the unknown-type
// sentinel and the walk proceeds with partial information. Results may be
// cached on the nodes; a cached type marked safe is final and
// short-circuits re-inference.
//
// License
//
// Governed by a 3-Clause BSD license. License file may be found in the root
// folder of this module.
//
package infer

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'nsd.infer'.
func tracer() tracing.Trace {
	return tracing.Select("nsd.infer")
}
