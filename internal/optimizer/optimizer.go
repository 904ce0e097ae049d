// Package optimizer builds and solves the MIP model that assigns workers
// to tasks for a single operating day (spec §4), and reconstructs the
// solver's variable values back into a schedule.Result.
package optimizer

import (
	"fmt"
	"io"
	"time"

	gomip "github.com/nextmv-io/go-mip"

	"github.com/nextshift/workforce-scheduler/internal/diagnostics"
	"github.com/nextshift/workforce-scheduler/internal/schedule"
)

// Optimize validates req, builds the candidate set and MIP model, solves
// it, and reconstructs a schedule.Result. Diagnostic lines are written to
// logOut as the solve progresses (spec §4.7).
//
// Any panic raised while building or solving the model is recovered and
// reported as a schedule.InternalFault: the caller never sees a raw panic
// cross the package boundary, only an opaque fault ID, with the underlying
// cause logged to logOut alongside it.
func Optimize(req schedule.Request, solveOpts gomip.SolveOptions, logOut io.Writer) (result schedule.Result, err error) {
	logger := diagnostics.New(logOut)

	defer func() {
		if r := recover(); r != nil {
			faultErr := schedule.NewInternalFault(fmt.Errorf("panic: %v", r))
			logger.Fault(faultErr.FaultID, fmt.Errorf("panic: %v", r))
			result = schedule.Result{}
			err = faultErr
		}
	}()

	if verr := req.Validate(); verr != nil {
		return schedule.Result{}, verr
	}

	workers, werr := buildWorkerInfo(req.Workers)
	if werr != nil {
		faultErr := schedule.NewInternalFault(werr)
		logger.Fault(faultErr.FaultID, werr)
		return schedule.Result{}, faultErr
	}

	candidates, byTask, byWorker := buildCandidates(req, workers, logger)
	if len(candidates) == 0 {
		return schedule.Result{Unassigned: fullDemandUnassigned(req.Tasks)},
			schedule.NewModelTrivial("no worker is eligible for any task in this request")
	}

	m := gomip.NewModel()
	v := newVariables(m, candidates, workers)

	addPresenceLinkage(m, v, candidates)
	addDurationLinkage(m, v, candidates)
	addCapacityConstraints(m, v, candidates, req.Tasks, byTask)
	addNoOverlapConstraints(m, v, candidates, workers, byWorker)
	addDependencyConstraints(m, v, candidates, req.Tasks, workers, byTask)
	addBreakConstraints(m, v, candidates, workers, byWorker)
	addObjective(m, v, candidates, req.Tasks, workers, byWorker)

	sol, serr := solve(m, solveOpts)
	if serr != nil {
		faultErr := schedule.NewInternalFault(serr)
		logger.Fault(faultErr.FaultID, serr)
		return schedule.Result{}, faultErr
	}

	if classifyErr := classifySolution(sol, effectiveDuration(solveOpts)); classifyErr != nil {
		logger.SolveStatus(classifyErr.Kind.String(), sol.RunTime())
		return schedule.Result{Unassigned: fullDemandUnassigned(req.Tasks)}, classifyErr
	}

	logger.SolveStatus("solved", sol.RunTime())

	assignments := reconstruct(sol, req, candidates, v, workers)
	unassigned := unassignedDemand(sol, req, candidates, v, byTask)

	logger.PostSolve(buildSummary(req, assignments, unassigned, candidates, sol))

	return schedule.Result{
		Assignments: assignments,
		Unassigned:  unassigned,
		Objective:   sol.ObjectiveValue(),
		Optimal:     sol.IsOptimal(),
	}, nil
}

func effectiveDuration(opts gomip.SolveOptions) time.Duration {
	if opts.Duration <= 0 {
		return defaultSolveDuration
	}
	return opts.Duration
}

// buildSummary aggregates the post-solve statistics block (spec §4.7).
func buildSummary(req schedule.Request, assignments []schedule.Assignment, unassigned []schedule.UnassignedDemand, candidates []Candidate, sol gomip.Solution) diagnostics.Summary {
	unassignedByTask := make(map[string]int, len(unassigned))
	for _, u := range unassigned {
		unassignedByTask[u.TaskID] = u.RemainingUnits
	}

	qualityByPair := make(map[string]float64, len(candidates))
	for _, c := range candidates {
		qualityByPair[c.key()] = c.Quality
	}

	assignedByTask := make(map[string]int)
	utilization := make(map[string]int)
	var qualitySum float64
	var qualityCount int

	for _, a := range assignments {
		if a.IsBreak {
			continue
		}
		assignedByTask[a.TaskID] += a.Units
		utilization[a.WorkerID] += a.Units
		if q, ok := qualityByPair[a.TaskID+"\x00"+a.WorkerID]; ok {
			qualitySum += q
			qualityCount++
		}
	}

	var fullyAssigned, partial, noneAssigned int
	for _, t := range req.Tasks {
		if t.Units == 0 {
			continue
		}
		remaining := unassignedByTask[t.ID]
		assigned := assignedByTask[t.ID]
		switch {
		case remaining == 0 && assigned > 0:
			fullyAssigned++
		case assigned > 0:
			partial++
		default:
			noneAssigned++
		}
	}

	avgQuality := 0.0
	if qualityCount > 0 {
		avgQuality = qualitySum / float64(qualityCount)
	}

	return diagnostics.Summary{
		Objective:          sol.ObjectiveValue(),
		WallTime:           sol.RunTime(),
		TasksFullyAssigned: fullyAssigned,
		TasksPartial:       partial,
		TasksUnassigned:    noneAssigned,
		WorkerUtilization:  utilization,
		AverageQuality:     avgQuality,
	}
}
