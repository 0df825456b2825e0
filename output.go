package taskmanager

import (
	"io"

	"github.com/wagiedev/mcp-taskmanager-go/internal/output"
)

// FormatTasks prints the task list, or "No tasks yet!" when it is empty.
func FormatTasks(w io.Writer, tasks []Task) {
	output.FormatTasks(w, tasks)
}

// FormatTools prints one "  - name: description" line per tool.
func FormatTools(w io.Writer, tools []ToolDescriptor) {
	output.FormatTools(w, tools)
}

// FormatHeader prints a framed section header.
func FormatHeader(w io.Writer, text string) {
	output.FormatHeader(w, text)
}

// FormatAdded reports a newly added task.
func FormatAdded(w io.Writer, t Task) {
	output.FormatAdded(w, t)
}

// FormatCompleted reports a completed task.
func FormatCompleted(w io.Writer, id int) {
	output.FormatCompleted(w, id)
}

// FormatDeleted reports a deleted task.
func FormatDeleted(w io.Writer, id int) {
	output.FormatDeleted(w, id)
}
