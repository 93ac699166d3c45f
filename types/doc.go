// Package types implements the structural data type model of the pseudocode
// dialect: primitive, array, record, enumeration and synonym types, their
// canonical self-descriptions, and the two-layer type registry shared by all
// analysis contexts.
//
// License
//
// Governed by a 3-Clause BSD license. License file may be found in the root
// folder of this module.
//
package types

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'nsd.types'.
func tracer() tracing.Trace {
	return tracing.Select("nsd.types")
}
