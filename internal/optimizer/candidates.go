package optimizer

import (
	"math"

	"github.com/nextshift/workforce-scheduler/internal/diagnostics"
	"github.com/nextshift/workforce-scheduler/internal/eligibility"
	"github.com/nextshift/workforce-scheduler/internal/schedule"
	"github.com/nextshift/workforce-scheduler/internal/timeutil"
)

// workerInfo is the precomputed per-worker shift arithmetic shared by every
// candidate referencing that worker.
type workerInfo struct {
	Worker      schedule.Worker
	RawStart    int
	RawEnd      int
	Window      timeutil.ShiftWindow
	BreakStart  int
	BreakEnd    int
	Available   int
}

func buildWorkerInfo(workers []schedule.Worker) ([]workerInfo, error) {
	infos := make([]workerInfo, len(workers))
	for i, w := range workers {
		rawStart, err := timeutil.ParseClock(w.ShiftStart)
		if err != nil {
			return nil, err
		}
		rawEnd, err := timeutil.ParseClock(w.ShiftEnd)
		if err != nil {
			return nil, err
		}
		window := timeutil.NormalizeShift(rawStart, rawEnd)
		breakStart, breakEnd := timeutil.BreakWindow(window, w.BreakMinutes)
		infos[i] = workerInfo{
			Worker:     w,
			RawStart:   rawStart,
			RawEnd:     rawEnd,
			Window:     window,
			BreakStart: breakStart,
			BreakEnd:   breakEnd,
			Available:  timeutil.AvailableMinutes(window, w.BreakMinutes),
		}
	}
	return infos, nil
}

// Candidate is a sparse (task, worker) pair eligible to carry positive
// work, indexed rather than pointer-linked per spec §9's "Design Notes".
type Candidate struct {
	TaskIdx      int
	WorkerIdx    int
	TaskID       string
	WorkerID     string
	SkillID      int
	Productivity int
	SkillLevel   int
	Degraded     bool
	Quality      float64
	MaxUnits     int
}

// key uniquely identifies a candidate for use as a map/variable key.
func (c Candidate) key() string {
	return c.TaskID + "\x00" + c.WorkerID
}

// buildCandidates implements spec §4.2/§4.3's candidate construction,
// logging every rejection and every task-level skill summary along the way
// (spec §4.7).
func buildCandidates(
	req schedule.Request,
	workers []workerInfo,
	logger *diagnostics.Logger,
) (candidates []Candidate, byTask map[int][]int, byWorker map[int][]int) {
	byTask = make(map[int][]int, len(req.Tasks))
	byWorker = make(map[int][]int, len(workers))
	warnedMissingProductivity := make(map[string]bool)
	warnedMissingLevel := make(map[string]bool)

	for ti, task := range req.Tasks {
		minLevel := eligibility.MinimumSkillLevel(task.Priority)
		haveSkill := 0
		qualified := 0

		for wi, info := range workers {
			w := info.Worker
			if !w.HasSkill(task.SkillID) {
				continue
			}
			haveSkill++

			skillLevel, levelOK := w.SkillLevelFor(task.SkillID)
			if !levelOK && !warnedMissingLevel[w.ID] {
				logger.DefaultedSkillLevel(w.ID, task.SkillID)
				warnedMissingLevel[w.ID] = true
			}

			verdict := eligibility.Evaluate(task.Priority, skillLevel)
			if !verdict.Eligible {
				logger.CandidateRejected(task.ID, w.ID, verdict.Rejection)
				continue
			}
			if verdict.Degraded {
				logger.DegradedAdmission(task.ID, w.ID, skillLevel, minLevel)
			}

			productivity, prodOK := w.ProductivityFor(task.SkillID)
			if !prodOK && !warnedMissingProductivity[w.ID] {
				logger.DefaultedProductivity(w.ID, task.SkillID)
				warnedMissingProductivity[w.ID] = true
			}

			maxUnits := int(math.Floor(float64(productivity) * (float64(info.Available) / 60.0)))
			if maxUnits <= 0 {
				logger.CandidateRejected(task.ID, w.ID, "insufficient available minutes")
				continue
			}
			if maxUnits > task.Units {
				maxUnits = task.Units
			}

			qualified++
			quality := eligibility.Score(skillLevel, productivity, verdict.Degraded, minLevel)

			idx := len(candidates)
			candidates = append(candidates, Candidate{
				TaskIdx:      ti,
				WorkerIdx:    wi,
				TaskID:       task.ID,
				WorkerID:     w.ID,
				SkillID:      task.SkillID,
				Productivity: productivity,
				SkillLevel:   skillLevel,
				Degraded:     verdict.Degraded,
				Quality:      quality,
				MaxUnits:     maxUnits,
			})
			byTask[ti] = append(byTask[ti], idx)
			byWorker[wi] = append(byWorker[wi], idx)
		}

		switch {
		case haveSkill == 0:
			logger.TaskNoSkill(task.ID, task.Name)
		case qualified == 0:
			logger.TaskSkillButUnqualified(task.ID, task.Name, haveSkill, minLevel)
		default:
			logger.TaskQualified(task.ID, task.Name, qualified, haveSkill)
		}
	}

	return candidates, byTask, byWorker
}
