package optimizer

import (
	gomip "github.com/nextmv-io/go-mip"

	"github.com/nextshift/workforce-scheduler/internal/schedule"
)

// addPresenceLinkage posts, for every candidate, the pair of constraints
// jointly equivalent to spec §4.3's "splitUnits > 0 <=> presence = 1":
// splitUnits <= maxUnits*presence and splitUnits >= presence.
func addPresenceLinkage(m gomip.Model, v variables, candidates []Candidate) {
	for _, c := range candidates {
		k := c.key()

		upper := m.NewConstraint(gomip.LessThanOrEqual, 0)
		upper.NewTerm(1, v.splitUnit[k])
		upper.NewTerm(-float64(c.MaxUnits), v.presence[k])

		lower := m.NewConstraint(gomip.GreaterThanOrEqual, 0)
		lower.NewTerm(1, v.splitUnit[k])
		lower.NewTerm(-1, v.presence[k])
	}
}

// addDurationLinkage posts the integer-ceiling-division and end=start+
// duration constraints of spec §4.3: duration = ceil(60*splitUnits/prod).
// Since productivity is a constant per candidate this stays linear:
//
//	60*splitUnits <= duration*prod
//	duration*prod <= 60*splitUnits + prod - 1
func addDurationLinkage(m gomip.Model, v variables, candidates []Candidate) {
	for _, c := range candidates {
		k := c.key()
		prod := float64(c.Productivity)

		lower := m.NewConstraint(gomip.LessThanOrEqual, 0)
		lower.NewTerm(60, v.splitUnit[k])
		lower.NewTerm(-prod, v.duration[k])

		upper := m.NewConstraint(gomip.LessThanOrEqual, prod-1)
		upper.NewTerm(prod, v.duration[k])
		upper.NewTerm(-60, v.splitUnit[k])

		endEq := m.NewConstraint(gomip.Equal, 0)
		endEq.NewTerm(1, v.end[k])
		endEq.NewTerm(-1, v.start[k])
		endEq.NewTerm(-1, v.duration[k])
	}
}

// addCapacityConstraints posts spec §4.3's per-task capacity constraint:
// sum of split units assigned to a task across all candidate workers must
// not exceed the task's total demand. Tasks with no candidates are skipped
// entirely (spec §4.3 edge case) since they contribute no terms to sum.
func addCapacityConstraints(m gomip.Model, v variables, candidates []Candidate, tasks []schedule.Task, byTask map[int][]int) {
	for ti, task := range tasks {
		idxs := byTask[ti]
		if len(idxs) == 0 {
			continue
		}
		capacity := m.NewConstraint(gomip.LessThanOrEqual, float64(task.Units))
		for _, idx := range idxs {
			capacity.NewTerm(1, v.splitUnit[candidates[idx].key()])
		}
	}
}

// addNoOverlapConstraints posts the pairwise disjunctive-scheduling
// linearization of spec §4.3's per-worker no-overlap constraint: for every
// pair of candidates sharing a worker, either one ends before the other
// starts, or at least one of the two is not present. M is the worker's own
// shift window width, the tightest safe bound since both start/end already
// live inside [S_w, E_w).
//
// Each direction requires three indicator bits to all read 1 before it
// binds (order/not-order, presence_i, presence_j). Folding "X >= Y -
// M*(1-b1) - M*(1-b2) - M*(1-b3)" down to terms-on-the-left-constant-on-
// the-right form gives asymmetric right-hand sides (-3M vs -2M) because
// one of the three bits is substituted as (1-order) rather than order
// itself; both reduce to the same three-bit-AND semantics.
func addNoOverlapConstraints(m gomip.Model, v variables, candidates []Candidate, workers []workerInfo, byWorker map[int][]int) {
	for wi, idxs := range byWorker {
		bigM := float64(workers[wi].Window.End - workers[wi].Window.Start)
		for i := 0; i < len(idxs); i++ {
			ci := candidates[idxs[i]]
			ki := ci.key()
			for j := i + 1; j < len(idxs); j++ {
				cj := candidates[idxs[j]]
				kj := cj.key()

				order := m.NewBool()

				// start[j] - end[i] - M*order - M*presence_i - M*presence_j >= -3M
				firstThenSecond := m.NewConstraint(gomip.GreaterThanOrEqual, -3*bigM)
				firstThenSecond.NewTerm(1, v.start[kj])
				firstThenSecond.NewTerm(-1, v.end[ki])
				firstThenSecond.NewTerm(-bigM, order)
				firstThenSecond.NewTerm(-bigM, v.presence[ki])
				firstThenSecond.NewTerm(-bigM, v.presence[kj])

				// start[i] - end[j] + M*order - M*presence_i - M*presence_j >= -2M
				secondThenFirst := m.NewConstraint(gomip.GreaterThanOrEqual, -2*bigM)
				secondThenFirst.NewTerm(1, v.start[ki])
				secondThenFirst.NewTerm(-1, v.end[kj])
				secondThenFirst.NewTerm(bigM, order)
				secondThenFirst.NewTerm(-bigM, v.presence[ki])
				secondThenFirst.NewTerm(-bigM, v.presence[kj])
			}
		}
	}
}

// addDependencyConstraints posts spec §4.3's conditionally-enforced
// dependency precedence: for dep -> t and every pair of candidates
// (t, w1), (dep, w2), start[t,w1] >= end[dep,w2] once both are present.
//
// The dependency's candidate and the dependent's candidate can sit on
// different workers, so the slack has to cover the widest gap any
// worker pair could produce, not just the dependent candidate's own
// window width: dependencyBigM is the spread between the latest window
// end and the earliest window start across every worker.
func addDependencyConstraints(m gomip.Model, v variables, candidates []Candidate, tasks []schedule.Task, workers []workerInfo, byTask map[int][]int) {
	taskIdxByID := make(map[string]int, len(tasks))
	for i, t := range tasks {
		taskIdxByID[t.ID] = i
	}

	bigM := dependencyBigM(workers)

	for ti, task := range tasks {
		for _, depID := range task.Dependencies {
			depIdx, ok := taskIdxByID[depID]
			if !ok {
				continue // validated earlier; defensive only
			}
			for _, tIdx := range byTask[ti] {
				ct := candidates[tIdx]
				for _, dIdx := range byTask[depIdx] {
					cd := candidates[dIdx]

					// start[t] - end[dep] - M*presence_t - M*presence_dep >= -2M
					con := m.NewConstraint(gomip.GreaterThanOrEqual, -2*bigM)
					con.NewTerm(1, v.start[ct.key()])
					con.NewTerm(-1, v.end[cd.key()])
					con.NewTerm(-bigM, v.presence[ct.key()])
					con.NewTerm(-bigM, v.presence[cd.key()])
				}
			}
		}
	}
}

// dependencyBigM bounds start[t] - end[dep] across every possible pair of
// workers: the dependency's candidate can sit on a worker whose window
// ends later than the dependent candidate's own worker window, so a
// per-worker bound is not safe here the way it is for no-overlap and
// break, which only ever relate variables living on the same worker.
func dependencyBigM(workers []workerInfo) float64 {
	minStart, maxEnd := workers[0].Window.Start, workers[0].Window.End
	for _, w := range workers[1:] {
		if w.Window.Start < minStart {
			minStart = w.Window.Start
		}
		if w.Window.End > maxEnd {
			maxEnd = w.Window.End
		}
	}
	return float64(maxEnd - minStart)
}

// addBreakConstraints posts spec §4.3's break disjunction: conditional on
// presence, every candidate interval on a worker must end at/before the
// worker's fixed break start, or start at/after the worker's fixed break
// end.
func addBreakConstraints(m gomip.Model, v variables, candidates []Candidate, workers []workerInfo, byWorker map[int][]int) {
	for wi, idxs := range byWorker {
		info := workers[wi]
		bigM := float64(info.Window.End - info.Window.Start)
		breakStart := float64(info.BreakStart)
		breakEnd := float64(info.BreakEnd)
		afterM := breakAfterBigM(info)

		for _, idx := range idxs {
			c := candidates[idx]
			k := c.key()
			before := m.NewBool()

			// end <= breakStart + M*(1-before) + M*(1-presence)
			beforeCon := m.NewConstraint(gomip.LessThanOrEqual, breakStart+2*bigM)
			beforeCon.NewTerm(1, v.end[k])
			beforeCon.NewTerm(bigM, before)
			beforeCon.NewTerm(bigM, v.presence[k])

			// start + M*before - M*presence >= breakEnd - M
			afterCon := m.NewConstraint(gomip.GreaterThanOrEqual, breakEnd-afterM)
			afterCon.NewTerm(1, v.start[k])
			afterCon.NewTerm(afterM, before)
			afterCon.NewTerm(-afterM, v.presence[k])
		}
	}
}

// breakAfterBigM bounds the afterCon relaxation. It needs enough slack to
// cover breakEnd - Window.Start (the fixed break offset plus its own
// duration), which on a short shift can exceed the shift's own window
// width; the window width alone is not a safe bound the way it is for
// beforeCon, whose relaxation only ever needs to cover Window.End -
// breakStart.
func breakAfterBigM(info workerInfo) float64 {
	windowWidth := float64(info.Window.End - info.Window.Start)
	needed := float64(info.BreakEnd - info.Window.Start)
	if needed > windowWidth {
		return needed
	}
	return windowWidth
}
