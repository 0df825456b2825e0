package task

import (
	"encoding/json"
	"strings"

	"github.com/wagiedev/mcp-taskmanager-go/internal/errors"
)

// wireTask is the on-disk shape. Documents written by earlier versions of
// the demo carry "description" instead of "title".
type wireTask struct {
	ID          int      `json:"id"`
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Priority    Priority `json:"priority"`
	Completed   bool     `json:"completed"`
}

// Decode parses a task document. Blank input is an empty list.
func Decode(text string) ([]Task, error) {
	if strings.TrimSpace(text) == "" {
		return []Task{}, nil
	}

	var wire []wireTask
	if err := json.Unmarshal([]byte(text), &wire); err != nil {
		return nil, &errors.DocumentDecodeError{RawData: text, Err: err}
	}

	tasks := make([]Task, 0, len(wire))
	for _, w := range wire {
		title := w.Title
		if title == "" {
			title = w.Description
		}

		tasks = append(tasks, Task{
			ID:        w.ID,
			Title:     title,
			Priority:  w.Priority,
			Completed: w.Completed,
		})
	}

	return tasks, nil
}

// Encode renders the full task list as an indented JSON array.
func Encode(tasks []Task) (string, error) {
	if tasks == nil {
		tasks = []Task{}
	}

	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return "", err
	}

	return string(data), nil
}
