package optimizer

import (
	"testing"

	gomip "github.com/nextmv-io/go-mip"

	"github.com/nextshift/workforce-scheduler/internal/schedule"
)

// buildTestModel assembles a tiny two-candidate, one-worker model and
// returns everything the constraint builders need, exercising the same
// wiring optimizer.Optimize uses.
func buildTestModel(t *testing.T) (gomip.Model, variables, []Candidate, []schedule.Task, []workerInfo, map[int][]int, map[int][]int) {
	t.Helper()

	tasks := []schedule.Task{
		{ID: "t1", SkillID: 1, Priority: 5, Units: 4},
		{ID: "t2", SkillID: 1, Priority: 5, Units: 4, Dependencies: []string{"t1"}},
	}
	workers, err := buildWorkerInfo([]schedule.Worker{
		{ID: "w1", Skills: []int{1}, Productivity: map[int]int{1: 2}, SkillLevels: map[int]int{1: 2},
			ShiftStart: "08:00", ShiftEnd: "16:00", BreakMinutes: 30},
	})
	if err != nil {
		t.Fatalf("buildWorkerInfo: %v", err)
	}

	req := schedule.Request{Tasks: tasks, Workers: []schedule.Worker{workers[0].Worker}}
	candidates, byTask, byWorker := buildCandidates(req, workers, testLogger())
	if len(candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(candidates))
	}

	m := gomip.NewModel()
	v := newVariables(m, candidates, workers)
	return m, v, candidates, tasks, workers, byTask, byWorker
}

func TestAddPresenceLinkageDoesNotPanic(t *testing.T) {
	m, v, candidates, _, _, _, _ := buildTestModel(t)
	addPresenceLinkage(m, v, candidates)
}

func TestAddDurationLinkageDoesNotPanic(t *testing.T) {
	m, v, candidates, _, _, _, _ := buildTestModel(t)
	addDurationLinkage(m, v, candidates)
}

func TestAddCapacityConstraintsSkipsCandidatelessTasks(t *testing.T) {
	m, v, candidates, tasks, _, byTask, _ := buildTestModel(t)
	tasks = append(tasks, schedule.Task{ID: "t3", SkillID: 99, Priority: 5, Units: 1})
	addCapacityConstraints(m, v, candidates, tasks, byTask)
}

func TestAddNoOverlapConstraintsDoesNotPanic(t *testing.T) {
	m, v, candidates, _, workers, _, byWorker := buildTestModel(t)
	addNoOverlapConstraints(m, v, candidates, workers, byWorker)
}

func TestAddDependencyConstraintsDoesNotPanic(t *testing.T) {
	m, v, candidates, tasks, workers, byTask, _ := buildTestModel(t)
	addDependencyConstraints(m, v, candidates, tasks, workers, byTask)
}

func TestAddBreakConstraintsDoesNotPanic(t *testing.T) {
	m, v, candidates, _, workers, _, byWorker := buildTestModel(t)
	addBreakConstraints(m, v, candidates, workers, byWorker)
}

func TestAddObjectiveDoesNotPanic(t *testing.T) {
	m, v, candidates, tasks, workers, _, byWorker := buildTestModel(t)
	addObjective(m, v, candidates, tasks, workers, byWorker)
}

// TestDependencyBigMCoversCrossWorkerWindows guards against a too-small
// big-M: a dependency's candidate can sit on a worker whose window runs
// much later than the dependent candidate's own worker, and the slack
// must be wide enough to relax the constraint in that case too.
func TestDependencyBigMCoversCrossWorkerWindows(t *testing.T) {
	tasks := []schedule.Task{
		{ID: "dep", SkillID: 1, Priority: 5, Units: 4},
		{ID: "t", SkillID: 1, Priority: 5, Units: 4, Dependencies: []string{"dep"}},
	}
	workers, err := buildWorkerInfo([]schedule.Worker{
		{ID: "wA", Skills: []int{1}, Productivity: map[int]int{1: 2}, SkillLevels: map[int]int{1: 2},
			ShiftStart: "08:00", ShiftEnd: "20:00", BreakMinutes: 30},
		{ID: "wB", Skills: []int{1}, Productivity: map[int]int{1: 2}, SkillLevels: map[int]int{1: 2},
			ShiftStart: "08:00", ShiftEnd: "12:00", BreakMinutes: 30},
	})
	if err != nil {
		t.Fatalf("buildWorkerInfo: %v", err)
	}

	req := schedule.Request{
		Tasks:   tasks,
		Workers: []schedule.Worker{workers[0].Worker, workers[1].Worker},
	}
	candidates, byTask, _ := buildCandidates(req, workers, testLogger())

	got := dependencyBigM(workers)
	want := float64(workers[0].Window.End - workers[1].Window.Start)
	if got < want {
		t.Fatalf("dependencyBigM = %v, want >= %v (worker wA's window end minus worker wB's window start)", got, want)
	}

	m := gomip.NewModel()
	v := newVariables(m, candidates, workers)
	addDependencyConstraints(m, v, candidates, tasks, workers, byTask)
}

// TestBreakAfterBigMCoversShortShifts guards against a too-small afterCon
// big-M on a short shift, where the fixed break offset plus the break's
// own duration can run past the shift's own window width.
func TestBreakAfterBigMCoversShortShifts(t *testing.T) {
	workers, err := buildWorkerInfo([]schedule.Worker{
		{ID: "w1", Skills: []int{1}, ShiftStart: "08:00", ShiftEnd: "13:00", BreakMinutes: 90},
	})
	if err != nil {
		t.Fatalf("buildWorkerInfo: %v", err)
	}
	info := workers[0]

	windowWidth := float64(info.Window.End - info.Window.Start)
	needed := float64(info.BreakEnd - info.Window.Start)
	if needed <= windowWidth {
		t.Fatalf("test fixture does not exercise the short-shift case: needed=%v windowWidth=%v", needed, windowWidth)
	}

	got := breakAfterBigM(info)
	if got < needed {
		t.Errorf("breakAfterBigM = %v, want >= %v (breakEnd - window start)", got, needed)
	}
}
