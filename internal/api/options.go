package api

import (
	gomip "github.com/nextmv-io/go-mip"
)

// Options holds the CLI-configurable knobs, read the way every template in
// this stack reads them: a struct of json-tagged fields with usage/default
// tags that run.CLI turns into flags and environment variables.
type Options struct {
	Solve gomip.SolveOptions `json:"solve,omitempty" usage:"solver configuration (duration, gap, verbosity)"`
}
