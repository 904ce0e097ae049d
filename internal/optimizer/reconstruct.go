package optimizer

import (
	"math"

	gomip "github.com/nextmv-io/go-mip"

	"github.com/nextshift/workforce-scheduler/internal/schedule"
	"github.com/nextshift/workforce-scheduler/internal/timeutil"
)

// presenceThreshold is the cutoff above which a solver-returned Bool value
// is treated as true; mirrors knapsack-gosdk's own "> 0.9" convention for
// reading back binary decision variables from a continuous-relaxation-
// tolerant solver.
const presenceThreshold = 0.9

// reconstruct reads the solved variable values back into the candidate
// assignments spec §4.6 describes (the per-task shortfall is computed
// separately by unassignedDemand), and synthesizes
// exactly one break Assignment per worker regardless of whether that
// worker was actually assigned any task interval.
func reconstruct(
	sol gomip.Solution,
	req schedule.Request,
	candidates []Candidate,
	v variables,
	workers []workerInfo,
) []schedule.Assignment {
	taskByID := make(map[string]schedule.Task, len(req.Tasks))
	for _, t := range req.Tasks {
		taskByID[t.ID] = t
	}

	var assignments []schedule.Assignment

	for _, c := range candidates {
		k := c.key()
		if sol.Value(v.presence[k]) <= presenceThreshold {
			continue
		}
		units := int(math.Round(sol.Value(v.splitUnit[k])))
		if units <= 0 {
			continue
		}

		startMin := int(math.Round(sol.Value(v.start[k])))
		endMin := int(math.Round(sol.Value(v.end[k])))
		info := workers[c.WorkerIdx]
		task := taskByID[c.TaskID]

		startTime, err := timeutil.Reconstruct(req.Date, startMin, info.Window, info.RawStart, info.RawEnd)
		if err != nil {
			continue // validated shift strings upstream; defensive only
		}
		endTime, err := timeutil.Reconstruct(req.Date, endMin, info.Window, info.RawStart, info.RawEnd)
		if err != nil {
			continue
		}

		assignments = append(assignments, schedule.Assignment{
			WorkerID: c.WorkerID,
			TaskID:   c.TaskID,
			TaskName: task.Name,
			TaskType: task.Type,
			Start:    timeutil.FormatISO(startTime),
			End:      timeutil.FormatISO(endTime),
			Units:    units,
			IsBreak:  false,
		})
	}

	for _, info := range workers {
		breakStartTime, err := timeutil.Reconstruct(req.Date, info.BreakStart, info.Window, info.RawStart, info.RawEnd)
		if err != nil {
			continue
		}
		breakEndTime, err := timeutil.Reconstruct(req.Date, info.BreakEnd, info.Window, info.RawStart, info.RawEnd)
		if err != nil {
			continue
		}
		assignments = append(assignments, schedule.Assignment{
			WorkerID: info.Worker.ID,
			TaskID:   "0",
			TaskName: "break",
			TaskType: "break",
			Start:    timeutil.FormatISO(breakStartTime),
			End:      timeutil.FormatISO(breakEndTime),
			Units:    0,
			IsBreak:  true,
		})
	}

	return assignments
}

// unassignedDemand computes, per task, the units of demand spec §4.6 says
// were not covered by any emitted Assignment. Tasks with zero total demand
// never appear, whether or not they had candidates.
func unassignedDemand(sol gomip.Solution, req schedule.Request, candidates []Candidate, v variables, byTask map[int][]int) []schedule.UnassignedDemand {
	var out []schedule.UnassignedDemand

	for ti, task := range req.Tasks {
		if task.Units == 0 {
			continue
		}
		covered := 0
		for _, idx := range byTask[ti] {
			c := candidates[idx]
			if sol.Value(v.presence[c.key()]) <= presenceThreshold {
				continue
			}
			covered += int(math.Round(sol.Value(v.splitUnit[c.key()])))
		}
		remaining := task.Units - covered
		if remaining <= 0 {
			continue
		}
		out = append(out, schedule.UnassignedDemand{
			TaskID:         task.ID,
			RemainingUnits: remaining,
		})
	}

	return out
}

// fullDemandUnassigned builds the unassigned list for a request that never
// reaches a usable solution (model trivial, proven infeasible, or timed
// out with no incumbent): every task with nonzero demand is reported as
// fully unassigned (spec §4.5, §7).
func fullDemandUnassigned(tasks []schedule.Task) []schedule.UnassignedDemand {
	var out []schedule.UnassignedDemand
	for _, t := range tasks {
		if t.Units == 0 {
			continue
		}
		out = append(out, schedule.UnassignedDemand{
			TaskID:         t.ID,
			RemainingUnits: t.Units,
		})
	}
	return out
}
