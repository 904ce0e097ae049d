package schedule

import (
	"fmt"
	"strings"
)

// Validate runs every BadInput check from spec §7 in one pass and returns an
// aggregate error naming every violation found, not just the first — useful
// to a caller fixing a malformed request without round-tripping once per
// mistake.
func (r Request) Validate() *Error {
	var problems []string

	if len(r.Tasks) == 0 {
		problems = append(problems, "tasks list is empty")
	}
	if len(r.Workers) == 0 {
		problems = append(problems, "workers list is empty")
	}

	taskIDs := make(map[string]bool, len(r.Tasks))
	for _, t := range r.Tasks {
		if t.ID == "" {
			problems = append(problems, "task has empty id")
			continue
		}
		if taskIDs[t.ID] {
			problems = append(problems, fmt.Sprintf("duplicate task id %q", t.ID))
		}
		taskIDs[t.ID] = true
		if t.Units < 0 {
			problems = append(problems, fmt.Sprintf("task %q has negative units", t.ID))
		}
		if t.Priority < 1 || t.Priority > 10 {
			problems = append(problems, fmt.Sprintf("task %q priority %d out of range [1,10]", t.ID, t.Priority))
		}
	}
	for _, t := range r.Tasks {
		for _, dep := range t.Dependencies {
			if !taskIDs[dep] {
				problems = append(problems, fmt.Sprintf("task %q depends on unknown task %q", t.ID, dep))
			}
		}
	}

	workerIDs := make(map[string]bool, len(r.Workers))
	for _, w := range r.Workers {
		if w.ID == "" {
			problems = append(problems, "worker has empty id")
			continue
		}
		if workerIDs[w.ID] {
			problems = append(problems, fmt.Sprintf("duplicate worker id %q", w.ID))
		}
		workerIDs[w.ID] = true
		if w.BreakMinutes < 0 {
			problems = append(problems, fmt.Sprintf("worker %q has negative break_minutes", w.ID))
		}
		if _, err := parseClockOrErr(w.ShiftStart); err != nil {
			problems = append(problems, fmt.Sprintf("worker %q shift_start: %v", w.ID, err))
		}
		if _, err := parseClockOrErr(w.ShiftEnd); err != nil {
			problems = append(problems, fmt.Sprintf("worker %q shift_end: %v", w.ID, err))
		}
	}

	if len(problems) == 0 {
		if cyc := findCycle(r.Tasks); cyc != "" {
			problems = append(problems, fmt.Sprintf("cyclic task dependency involving %q", cyc))
		}
	}

	if len(problems) == 0 {
		return nil
	}
	return NewBadInput("%s", strings.Join(problems, "; "))
}

// parseClockOrErr is a minimal standalone HH:MM validator so this package
// does not need to import internal/timeutil just to validate shape; the
// full parse (and the minutes-since-midnight value) happens in timeutil.
func parseClockOrErr(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("invalid HH:MM value %q", s)
	}
	h := int(s[0]-'0')*10 + int(s[1]-'0')
	m := int(s[3]-'0')*10 + int(s[4]-'0')
	if s[0] < '0' || s[0] > '9' || s[1] < '0' || s[1] > '9' || s[3] < '0' || s[3] > '9' || s[4] < '0' || s[4] > '9' {
		return 0, fmt.Errorf("invalid HH:MM value %q", s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid HH:MM value %q", s)
	}
	return h*60 + m, nil
}

// findCycle returns a task ID participating in a dependency cycle, or "" if
// the dependency graph is a DAG. Iterative Kahn's-algorithm style
// topological sort — no recursion, so it cannot stack-overflow on
// adversarial input.
func findCycle(tasks []Task) string {
	indegree := make(map[string]int, len(tasks))
	dependents := make(map[string][]string, len(tasks))
	for _, t := range tasks {
		if _, ok := indegree[t.ID]; !ok {
			indegree[t.ID] = 0
		}
		for _, dep := range t.Dependencies {
			indegree[t.ID]++
			dependents[dep] = append(dependents[dep], t.ID)
		}
	}

	queue := make([]string, 0, len(tasks))
	for _, t := range tasks {
		if indegree[t.ID] == 0 {
			queue = append(queue, t.ID)
		}
	}

	visited := 0
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		visited++
		for _, next := range dependents[id] {
			indegree[next]--
			if indegree[next] == 0 {
				queue = append(queue, next)
			}
		}
	}

	if visited == len(tasks) {
		return ""
	}
	for _, t := range tasks {
		if indegree[t.ID] > 0 {
			return t.ID
		}
	}
	return ""
}
