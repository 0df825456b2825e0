package taskmanager

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"

	"github.com/wagiedev/mcp-taskmanager-go/internal/task"
)

// TaskStore reads and writes the task document exclusively through the
// session's filesystem tools. It never touches local files.
type TaskStore struct {
	session Session
	log     *slog.Logger

	readTool  string
	writeTool string
	listTool  string
}

// NewTaskStore creates a store over session. Only the logger and tool name
// options apply.
func NewTaskStore(session Session, opts ...Option) *TaskStore {
	options := applyOptions(opts)
	read, write, list := options.ToolNames()

	return &TaskStore{
		session:   session,
		log:       loggerFrom(options).With("component", "task_store", "session_id", session.ID()),
		readTool:  read,
		writeTool: write,
		listTool:  list,
	}
}

// Load reads the task document at path.
//
// A document the server reports as missing, or an empty one, yields an empty
// list. Malformed JSON yields DocumentDecodeError. Any other failure is
// returned as is.
func (s *TaskStore) Load(ctx context.Context, path string) ([]Task, error) {
	res, err := s.session.CallTool(ctx, s.readTool, map[string]any{"path": path})
	if err != nil {
		if remote, ok := stderrors.AsType[*RemoteToolError](err); ok && remote.NotFound() {
			s.log.Debug("Task document not found, starting empty", "path", path)

			return []Task{}, nil
		}

		return nil, err
	}

	text, _ := res.FirstText()

	tasks, err := task.Decode(text)
	if err != nil {
		return nil, err
	}

	s.log.Debug("Loaded tasks", "path", path, "count", len(tasks))

	return tasks, nil
}

// Save replaces the task document at path with tasks.
func (s *TaskStore) Save(ctx context.Context, path string, tasks []Task) error {
	content, err := task.Encode(tasks)
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}

	if _, err := s.session.CallTool(ctx, s.writeTool, map[string]any{
		"path":    path,
		"content": content,
	}); err != nil {
		return err
	}

	s.log.Debug("Saved tasks", "path", path, "count", len(tasks))

	return nil
}

// ListDirectory returns the server's listing of dir as text.
func (s *TaskStore) ListDirectory(ctx context.Context, dir string) (string, error) {
	res, err := s.session.CallTool(ctx, s.listTool, map[string]any{"path": dir})
	if err != nil {
		return "", err
	}

	text, _ := res.FirstText()

	return text, nil
}
