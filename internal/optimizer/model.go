package optimizer

import (
	gomip "github.com/nextmv-io/go-mip"
)

// variables holds every decision variable keyed by candidate, plus the
// per-worker load-balancing auxiliaries built in objective.go.
type variables struct {
	presence  map[string]gomip.Bool
	splitUnit map[string]gomip.Int
	start     map[string]gomip.Int
	end       map[string]gomip.Int
	duration  map[string]gomip.Int
	excess    map[int]gomip.Int // keyed by worker index
}

// newVariables declares one presence/splitUnit/start/end/duration variable
// set per candidate (spec §4.3). Bounds come straight from the candidate's
// precomputed MaxUnits and the worker's normalized shift window.
func newVariables(m gomip.Model, candidates []Candidate, workers []workerInfo) variables {
	v := variables{
		presence:  make(map[string]gomip.Bool, len(candidates)),
		splitUnit: make(map[string]gomip.Int, len(candidates)),
		start:     make(map[string]gomip.Int, len(candidates)),
		end:       make(map[string]gomip.Int, len(candidates)),
		duration:  make(map[string]gomip.Int, len(candidates)),
		excess:    make(map[int]gomip.Int, len(workers)),
	}

	for _, c := range candidates {
		w := workers[c.WorkerIdx]
		k := c.key()
		v.presence[k] = m.NewBool()
		v.splitUnit[k] = m.NewInt(0, c.MaxUnits)
		v.start[k] = m.NewInt(w.Window.Start, w.Window.End)
		v.end[k] = m.NewInt(w.Window.Start, w.Window.End)
		v.duration[k] = m.NewInt(0, w.Window.End-w.Window.Start)
	}

	return v
}
