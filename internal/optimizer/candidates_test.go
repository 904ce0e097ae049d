package optimizer

import (
	"bytes"
	"testing"

	"github.com/nextshift/workforce-scheduler/internal/diagnostics"
	"github.com/nextshift/workforce-scheduler/internal/schedule"
)

func testLogger() *diagnostics.Logger {
	return diagnostics.New(&bytes.Buffer{})
}

func TestBuildCandidatesSkipsUnskilledWorkers(t *testing.T) {
	req := schedule.Request{
		Tasks: []schedule.Task{
			{ID: "t1", SkillID: 1, Priority: 5, Units: 4},
		},
		Workers: []schedule.Worker{
			{ID: "w1", Skills: []int{2}, ShiftStart: "08:00", ShiftEnd: "16:00"},
		},
	}
	workers, err := buildWorkerInfo(req.Workers)
	if err != nil {
		t.Fatalf("buildWorkerInfo: %v", err)
	}
	candidates, byTask, _ := buildCandidates(req, workers, testLogger())
	if len(candidates) != 0 {
		t.Fatalf("expected no candidates, got %d", len(candidates))
	}
	if len(byTask[0]) != 0 {
		t.Fatalf("expected no candidates indexed for task 0")
	}
}

func TestBuildCandidatesAdmitsQualifiedWorker(t *testing.T) {
	req := schedule.Request{
		Tasks: []schedule.Task{
			{ID: "t1", SkillID: 1, Priority: 5, Units: 4},
		},
		Workers: []schedule.Worker{
			{
				ID: "w1", Skills: []int{1},
				Productivity: map[int]int{1: 2},
				SkillLevels:  map[int]int{1: 2},
				ShiftStart:   "08:00", ShiftEnd: "16:00",
				BreakMinutes: 30,
			},
		},
	}
	workers, err := buildWorkerInfo(req.Workers)
	if err != nil {
		t.Fatalf("buildWorkerInfo: %v", err)
	}
	candidates, byTask, byWorker := buildCandidates(req, workers, testLogger())
	if len(candidates) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(candidates))
	}
	c := candidates[0]
	if c.TaskID != "t1" || c.WorkerID != "w1" {
		t.Fatalf("unexpected candidate: %+v", c)
	}
	if c.Degraded {
		t.Error("expected non-degraded candidate")
	}
	if len(byTask[0]) != 1 || len(byWorker[0]) != 1 {
		t.Error("expected candidate indexed under both task and worker")
	}
}

func TestBuildCandidatesDegradedAdmissionForHighPriority(t *testing.T) {
	req := schedule.Request{
		Tasks: []schedule.Task{
			{ID: "t1", SkillID: 1, Priority: 9, Units: 4}, // minLevel=3
		},
		Workers: []schedule.Worker{
			{
				ID: "w1", Skills: []int{1},
				Productivity: map[int]int{1: 2},
				SkillLevels:  map[int]int{1: 1}, // below minimum, but priority>=8
				ShiftStart:   "08:00", ShiftEnd: "16:00",
			},
		},
	}
	workers, err := buildWorkerInfo(req.Workers)
	if err != nil {
		t.Fatalf("buildWorkerInfo: %v", err)
	}
	candidates, _, _ := buildCandidates(req, workers, testLogger())
	if len(candidates) != 1 {
		t.Fatalf("expected 1 degraded candidate, got %d", len(candidates))
	}
	if !candidates[0].Degraded {
		t.Error("expected candidate to be marked degraded")
	}
}

func TestBuildCandidatesRejectsInsufficientLowPriority(t *testing.T) {
	req := schedule.Request{
		Tasks: []schedule.Task{
			{ID: "t1", SkillID: 1, Priority: 7, Units: 4}, // minLevel=2, priority<8 so no degraded admission
		},
		Workers: []schedule.Worker{
			{
				ID: "w1", Skills: []int{1},
				SkillLevels: map[int]int{1: 1},
				ShiftStart:  "08:00", ShiftEnd: "16:00",
			},
		},
	}
	workers, err := buildWorkerInfo(req.Workers)
	if err != nil {
		t.Fatalf("buildWorkerInfo: %v", err)
	}
	candidates, _, _ := buildCandidates(req, workers, testLogger())
	if len(candidates) != 0 {
		t.Fatalf("expected 0 candidates, got %d", len(candidates))
	}
}

func TestBuildWorkerInfoComputesAvailability(t *testing.T) {
	workers := []schedule.Worker{
		{ID: "w1", ShiftStart: "08:00", ShiftEnd: "16:00", BreakMinutes: 30},
	}
	infos, err := buildWorkerInfo(workers)
	if err != nil {
		t.Fatalf("buildWorkerInfo: %v", err)
	}
	if infos[0].Available != (8*60 - 30) {
		t.Errorf("Available = %d, want %d", infos[0].Available, 8*60-30)
	}
}

func TestBuildWorkerInfoRejectsMalformedShift(t *testing.T) {
	workers := []schedule.Worker{{ID: "w1", ShiftStart: "bad", ShiftEnd: "16:00"}}
	if _, err := buildWorkerInfo(workers); err == nil {
		t.Error("expected error for malformed shift_start")
	}
}
