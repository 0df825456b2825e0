package task

import (
	"fmt"
	"slices"
	"strings"

	"github.com/wagiedev/mcp-taskmanager-go/internal/errors"
)

// Priority ranks a task.
type Priority string

const (
	// PriorityLow marks a task that can wait.
	PriorityLow Priority = "low"
	// PriorityMedium is the default priority.
	PriorityMedium Priority = "medium"
	// PriorityHigh marks an urgent task.
	PriorityHigh Priority = "high"
)

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// ParsePriority converts a user supplied string into a Priority.
// Matching ignores case and surrounding whitespace; empty input yields PriorityMedium.
func ParsePriority(s string) (Priority, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return PriorityMedium, nil
	}

	p := Priority(s)
	if !p.Valid() {
		return "", fmt.Errorf("invalid priority %q: want low, medium or high", s)
	}

	return p, nil
}

// Task is a single entry of the task document.
type Task struct {
	ID        int      `json:"id"`
	Title     string   `json:"title"`
	Priority  Priority `json:"priority"`
	Completed bool     `json:"completed"`
}

// NextID returns the id the next added task receives: one more than the
// largest id present, or 1 for an empty list.
func NextID(tasks []Task) int {
	maxID := 0
	for _, t := range tasks {
		maxID = max(maxID, t.ID)
	}

	return maxID + 1
}

// Add appends a new open task and returns the updated list and the new task.
func Add(tasks []Task, title string, priority Priority) ([]Task, Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, Task{}, fmt.Errorf("task title required")
	}

	if !priority.Valid() {
		return nil, Task{}, fmt.Errorf("invalid priority %q", priority)
	}

	added := Task{
		ID:       NextID(tasks),
		Title:    title,
		Priority: priority,
	}

	out := make([]Task, 0, len(tasks)+1)
	out = append(out, tasks...)
	out = append(out, added)

	return out, added, nil
}

// Complete marks the task with the given id as completed.
// Completing an already completed task leaves the list unchanged.
func Complete(tasks []Task, id int) ([]Task, error) {
	i := slices.IndexFunc(tasks, func(t Task) bool { return t.ID == id })
	if i < 0 {
		return nil, &errors.TaskNotFoundError{ID: id}
	}

	out := slices.Clone(tasks)
	out[i].Completed = true

	return out, nil
}

// Delete removes the task with the given id regardless of its state.
func Delete(tasks []Task, id int) ([]Task, error) {
	i := slices.IndexFunc(tasks, func(t Task) bool { return t.ID == id })
	if i < 0 {
		return nil, &errors.TaskNotFoundError{ID: id}
	}

	return slices.Delete(slices.Clone(tasks), i, i+1), nil
}
