// Package api holds the wire-shape request/response types read from and
// written to input.json/output.json, and the translation between those
// types and the internal/schedule domain model.
package api

// Request is the top-level shape of input.json.
type Request struct {
	Date    string         `json:"date"`
	Tasks   []TaskInput    `json:"tasks"`
	Workers []WorkerInput  `json:"workers"`
}

// TaskInput is a single task entry on the wire.
type TaskInput struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	SkillID      int      `json:"skill_id"`
	Priority     int      `json:"priority"`
	Units        int      `json:"units"`
	Dependencies []string `json:"dependencies,omitempty"`
	Type         string   `json:"type,omitempty"`
}

// WorkerInput is a single worker entry on the wire.
type WorkerInput struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Skills       []int          `json:"skills"`
	Productivity map[int]int    `json:"productivity,omitempty"`
	SkillLevels  map[int]int    `json:"skill_levels,omitempty"`
	ShiftStart   string         `json:"shift_start"`
	ShiftEnd     string         `json:"shift_end"`
	BreakMinutes int            `json:"break_minutes"`
}

// Response is the top-level shape of the scheduler's solution payload.
type Response struct {
	Assignments []AssignmentOutput     `json:"assignments"`
	Unassigned  []UnassignedTaskOutput `json:"unassigned_tasks,omitempty"`
	Objective   float64                `json:"objective"`
	Optimal     bool                   `json:"optimal"`
}

// AssignmentOutput is a single placed work interval (or break) on the wire.
type AssignmentOutput struct {
	WorkerID string `json:"worker_id"`
	TaskID   string `json:"task_id"`
	TaskName string `json:"task_name,omitempty"`
	TaskType string `json:"task_type,omitempty"`
	Start    string `json:"start"`
	End      string `json:"end"`
	Units    int    `json:"units"`
	IsBreak  bool   `json:"is_break,omitempty"`
}

// UnassignedTaskOutput is leftover demand the solve could not cover.
type UnassignedTaskOutput struct {
	TaskID         string `json:"id"`
	RemainingUnits int    `json:"remaining_units"`
}
