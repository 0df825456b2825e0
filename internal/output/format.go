// Package output provides formatters for the task manager's console output.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/wagiedev/mcp-taskmanager-go/internal/session"
	"github.com/wagiedev/mcp-taskmanager-go/internal/task"
)

const (
	// HeaderRule frames section headers.
	HeaderRule = "======================================================================"
	// ListRule frames the task list.
	ListRule = "------------------------------------------------------------"
	// NoTasks is printed instead of an empty list.
	NoTasks = "No tasks yet!"
)

// FormatHeader prints a framed section header preceded by a blank line.
func FormatHeader(w io.Writer, text string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, HeaderRule)
	fmt.Fprintf(w, "  %s\n", text)
	fmt.Fprintln(w, HeaderRule)
}

// FormatTasks prints the task list.
// Format per task: "{[x]|[ ]} [{ID}] {PRIORITY MARKER} {TITLE}\n"
func FormatTasks(w io.Writer, tasks []task.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, NoTasks)

		return
	}

	fmt.Fprintln(w, ListRule)

	for _, t := range tasks {
		FormatTask(w, t)
	}

	fmt.Fprintln(w, ListRule)
}

// FormatTask prints a single task line.
func FormatTask(w io.Writer, t task.Task) {
	fmt.Fprintf(w, "%s [%d] %s %s\n", StatusMarker(t.Completed), t.ID, PriorityMarker(t.Priority), normalizeTitle(t.Title))
}

// StatusMarker renders the completion flag.
func StatusMarker(completed bool) string {
	if completed {
		return "[x]"
	}

	return "[ ]"
}

// PriorityMarker renders a priority. Unknown priorities get a neutral marker.
func PriorityMarker(p task.Priority) string {
	switch p {
	case task.PriorityHigh:
		return "(high)"
	case task.PriorityMedium:
		return "(medium)"
	case task.PriorityLow:
		return "(low)"
	default:
		return "(?)"
	}
}

// FormatTools prints one line per tool: "  - {NAME}: {DESCRIPTION}\n"
func FormatTools(w io.Writer, tools []session.ToolDescriptor) {
	for _, tool := range tools {
		description := strings.TrimSpace(tool.Description)
		if i := strings.IndexByte(description, '\n'); i >= 0 {
			description = strings.TrimSpace(description[:i])
		}

		fmt.Fprintf(w, "  - %s: %s\n", tool.Name, description)
	}
}

// FormatAdded reports a newly added task.
func FormatAdded(w io.Writer, t task.Task) {
	fmt.Fprintf(w, "Task added: %s (priority: %s)\n", normalizeTitle(t.Title), t.Priority)
}

// FormatCompleted reports a completed task.
func FormatCompleted(w io.Writer, id int) {
	fmt.Fprintf(w, "Task %d marked as complete\n", id)
}

// FormatDeleted reports a deleted task.
func FormatDeleted(w io.Writer, id int) {
	fmt.Fprintf(w, "Task %d deleted\n", id)
}

// normalizeTitle keeps a task on one line.
// Empty or whitespace-only titles become "(untitled)".
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}

	return title
}
