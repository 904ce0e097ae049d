package api

import (
	"github.com/nextshift/workforce-scheduler/internal/schedule"
)

// ToRequest converts the wire-shape Request into the internal domain model.
func ToRequest(r Request) schedule.Request {
	tasks := make([]schedule.Task, len(r.Tasks))
	for i, t := range r.Tasks {
		tasks[i] = schedule.Task{
			ID:           t.ID,
			Name:         t.Name,
			SkillID:      t.SkillID,
			Priority:     t.Priority,
			Units:        t.Units,
			Dependencies: t.Dependencies,
			Type:         t.Type,
		}
	}

	workers := make([]schedule.Worker, len(r.Workers))
	for i, w := range r.Workers {
		workers[i] = schedule.Worker{
			ID:           w.ID,
			Name:         w.Name,
			Skills:       w.Skills,
			Productivity: w.Productivity,
			SkillLevels:  w.SkillLevels,
			ShiftStart:   w.ShiftStart,
			ShiftEnd:     w.ShiftEnd,
			BreakMinutes: w.BreakMinutes,
		}
	}

	return schedule.Request{
		Date:    r.Date,
		Tasks:   tasks,
		Workers: workers,
	}
}

// FromResult converts an internal schedule.Result into the wire-shape
// Response.
func FromResult(res schedule.Result) Response {
	assignments := make([]AssignmentOutput, len(res.Assignments))
	for i, a := range res.Assignments {
		assignments[i] = AssignmentOutput{
			WorkerID: a.WorkerID,
			TaskID:   a.TaskID,
			TaskName: a.TaskName,
			TaskType: a.TaskType,
			Start:    a.Start,
			End:      a.End,
			Units:    a.Units,
			IsBreak:  a.IsBreak,
		}
	}

	unassigned := make([]UnassignedTaskOutput, len(res.Unassigned))
	for i, u := range res.Unassigned {
		unassigned[i] = UnassignedTaskOutput{
			TaskID:         u.TaskID,
			RemainingUnits: u.RemainingUnits,
		}
	}

	return Response{
		Assignments: assignments,
		Unassigned:  unassigned,
		Objective:   res.Objective,
		Optimal:     res.Optimal,
	}
}
