package optimizer

import (
	"time"

	"github.com/nextmv-io/go-highs"
	gomip "github.com/nextmv-io/go-mip"

	"github.com/nextshift/workforce-scheduler/internal/schedule"
)

// defaultSolveDuration is the solve time budget applied when the caller
// does not override options.Solve.Duration (spec §4.5).
const defaultSolveDuration = 30 * time.Second

// solve runs the HiGHS solver against m with the given options, filling in
// a default duration when the caller left one unset.
func solve(m gomip.Model, opts gomip.SolveOptions) (gomip.Solution, error) {
	if opts.Duration <= 0 {
		opts.Duration = defaultSolveDuration
	}

	solver := highs.NewSolver(m)
	return solver.Solve(opts)
}

// classifySolution maps a HiGHS solution onto spec §4.5's outcome taxonomy.
// A nil error return means the caller should proceed to reconstruction; a
// non-nil *schedule.Error return means the caller should stop and surface
// it directly.
//
// mip.Solution exposes no direct "infeasible" vs "ran out of time with zero
// incumbent" distinction, so the two are told apart by wall time: a solve
// that consumed effectively all of its requested budget and still produced
// no values is a timeout, not a proof of infeasibility.
func classifySolution(sol gomip.Solution, requested time.Duration) *schedule.Error {
	if sol != nil && sol.HasValues() {
		return nil
	}
	if sol != nil && requested > 0 && sol.RunTime() >= requested-time.Second {
		return schedule.NewSolverTimeoutNoIncumbent(requested)
	}
	return schedule.NewSolverInfeasible("solver proved the request has no feasible assignment")
}
