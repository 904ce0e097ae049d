package optimizer

import (
	"math"

	gomip "github.com/nextmv-io/go-mip"

	"github.com/nextshift/workforce-scheduler/internal/schedule"
)

// loadTarget is the per-worker load (in split units) above which the
// load-balancing term starts penalizing a worker's assignment total
// (spec §4.4).
const loadTarget = 500

// addObjective builds spec §4.4's three-term weighted objective:
//
//   - priority term:     sum 1000 * task.priority * splitUnits
//   - quality term:      sum round(500 * candidate.quality) * splitUnits
//   - load-balance term: sum -2 * excess_w
//
// where excess_w is a per-worker auxiliary bounded below by both 0 and
// (load_w - loadTarget), the same max(0, x) equality trick as
// order-fulfillment-gosdk's billableWeight = max(weight, dimensionalWeight):
// two one-directional constraints pin excess_w to exactly max(0, load_w -
// loadTarget) at the optimum, since the objective always prefers a smaller
// excess_w and the constraints forbid it from going any lower.
func addObjective(m gomip.Model, v variables, candidates []Candidate, tasks []schedule.Task, workers []workerInfo, byWorker map[int][]int) {
	priorityByTask := make(map[string]int, len(tasks))
	for _, t := range tasks {
		priorityByTask[t.ID] = t.Priority
	}

	obj := m.Objective()
	obj.SetMaximize()

	for _, c := range candidates {
		k := c.key()
		priority := float64(priorityByTask[c.TaskID])
		qualityWeight := math.Round(500 * c.Quality)

		obj.NewTerm(1000*priority, v.splitUnit[k])
		obj.NewTerm(qualityWeight, v.splitUnit[k])
	}

	for wi := range workers {
		maxLoad := 0
		for _, idx := range byWorker[wi] {
			maxLoad += candidates[idx].MaxUnits
		}

		excess := m.NewInt(0, maxLoad)
		v.excess[wi] = excess

		// excess_w >= load_w - loadTarget, i.e. load_w - excess_w <= loadTarget.
		bound := m.NewConstraint(gomip.LessThanOrEqual, loadTarget)
		for _, idx := range byWorker[wi] {
			bound.NewTerm(1, v.splitUnit[candidates[idx].key()])
		}
		bound.NewTerm(-1, excess)

		obj.NewTerm(-2, excess)
	}
}
