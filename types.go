package taskmanager

import (
	"github.com/wagiedev/mcp-taskmanager-go/internal/mcp"
	"github.com/wagiedev/mcp-taskmanager-go/internal/task"
)

// Task is one entry of the task document.
type Task = task.Task

// Priority ranks a task.
type Priority = task.Priority

// Task priorities.
const (
	PriorityLow    = task.PriorityLow
	PriorityMedium = task.PriorityMedium
	PriorityHigh   = task.PriorityHigh
)

// ParsePriority validates a priority name. An empty string means medium.
func ParsePriority(s string) (Priority, error) {
	return task.ParsePriority(s)
}

// AddTask returns a copy of tasks with a new incomplete task appended.
// The new id is one more than the largest existing id, or 1.
func AddTask(tasks []Task, title string, priority Priority) ([]Task, Task, error) {
	return task.Add(tasks, title, priority)
}

// CompleteTask marks the task completed. Completing a completed task is a
// no-op. Returns TaskNotFoundError for an unknown id.
func CompleteTask(tasks []Task, id int) ([]Task, error) {
	return task.Complete(tasks, id)
}

// DeleteTask removes the task. Returns TaskNotFoundError for an unknown id.
func DeleteTask(tasks []Task, id int) ([]Task, error) {
	return task.Delete(tasks, id)
}

// FileSystem is the storage served by the built-in filesystem tool server.
type FileSystem = mcp.FileSystem

// MemoryFS is an in-memory FileSystem.
type MemoryFS = mcp.MemoryFS

// DirFS is a FileSystem confined to one directory tree.
type DirFS = mcp.DirFS

// NewMemoryFS creates an empty in-memory file system.
func NewMemoryFS() *MemoryFS {
	return mcp.NewMemoryFS()
}

// NewDirFS serves the directory tree rooted at dir. Close it when done.
func NewDirFS(dir string) (*DirFS, error) {
	return mcp.NewDirFS(dir)
}

// Default tool names of the filesystem server.
const (
	ToolReadFile      = mcp.ToolReadFile
	ToolWriteFile     = mcp.ToolWriteFile
	ToolListDirectory = mcp.ToolListDirectory
)
