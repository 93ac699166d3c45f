package cli

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'nsd.cli'
func tracer() tracing.Trace {
	return tracing.Select("nsd.cli")
}
