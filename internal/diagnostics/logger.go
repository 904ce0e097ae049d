// Package diagnostics emits the structured before/during/after-solve lines
// an operator needs to explain why any task ended up unassigned (spec
// §4.7). It is a thin wrapper over the standard library log package — see
// SPEC_FULL.md's AMBIENT STACK note on why no third-party logging library
// is used here.
package diagnostics

import (
	"io"
	"log"
	"time"
)

// Logger emits the scheduler's diagnostic lines.
type Logger struct {
	l *log.Logger
}

// New builds a Logger writing to out, with no extra prefix; every line
// carries the standard log date and time stamp (log.LstdFlags).
func New(out io.Writer) *Logger {
	return &Logger{l: log.New(out, "", log.LstdFlags)}
}

// TaskNoSkill logs the "no worker has required skill" case.
func (lg *Logger) TaskNoSkill(taskID, taskName string) {
	lg.l.Printf("task %s (%q): no worker has required skill", taskID, taskName)
}

// TaskSkillButUnqualified logs the "N workers have the skill, 0 meet
// minimum level M" case.
func (lg *Logger) TaskSkillButUnqualified(taskID, taskName string, haveSkill, minLevel int) {
	lg.l.Printf("task %s (%q): %d workers have the skill, 0 meet minimum level %d",
		taskID, taskName, haveSkill, minLevel)
}

// TaskQualified logs the "N of M workers qualify" positive case.
func (lg *Logger) TaskQualified(taskID, taskName string, qualified, haveSkill int) {
	lg.l.Printf("task %s (%q): %d of %d workers qualify", taskID, taskName, qualified, haveSkill)
}

// CandidateRejected logs why a specific (worker, task) pair did not become
// a candidate.
func (lg *Logger) CandidateRejected(taskID, workerID, reason string) {
	lg.l.Printf("candidate rejected: task %s, worker %s: %s", taskID, workerID, reason)
}

// DegradedAdmission logs a below-minimum-level worker admitted as a
// degraded candidate.
func (lg *Logger) DegradedAdmission(taskID, workerID string, workerLevel, minLevel int) {
	lg.l.Printf("degraded admission: task %s, worker %s: level %d below minimum %d",
		taskID, workerID, workerLevel, minLevel)
}

// DefaultedProductivity logs a missing-productivity warning (defaults to 1).
func (lg *Logger) DefaultedProductivity(workerID string, skillID int) {
	lg.l.Printf("worker %s: productivity for skill %d not specified, defaulting to 1", workerID, skillID)
}

// DefaultedSkillLevel logs a missing-skill-level warning (defaults to 1).
func (lg *Logger) DefaultedSkillLevel(workerID string, skillID int) {
	lg.l.Printf("worker %s: skill level for skill %d not specified, defaulting to 1", workerID, skillID)
}

// SolveStatus logs the raw solver status before results are reconstructed.
func (lg *Logger) SolveStatus(status string, wallTime time.Duration) {
	lg.l.Printf("solve finished: status=%s wall_time=%s", status, wallTime)
}

// Summary is the post-solve aggregate statistics block (spec §4.7).
type Summary struct {
	Objective          float64
	WallTime           time.Duration
	TasksFullyAssigned int
	TasksPartial       int
	TasksUnassigned    int
	WorkerUtilization  map[string]int
	AverageQuality     float64
}

// PostSolve logs the post-solve summary block.
func (lg *Logger) PostSolve(s Summary) {
	lg.l.Printf("objective=%.2f wall_time=%s tasks_fully_assigned=%d tasks_partial=%d tasks_unassigned=%d average_quality=%.3f",
		s.Objective, s.WallTime, s.TasksFullyAssigned, s.TasksPartial, s.TasksUnassigned, s.AverageQuality)
	for workerID, units := range s.WorkerUtilization {
		lg.l.Printf("worker %s utilization: %d units", workerID, units)
	}
}

// Fault logs the full detail behind an opaque InternalFault identifier.
func (lg *Logger) Fault(faultID string, cause error) {
	lg.l.Printf("internal fault %s: %v", faultID, cause)
}
