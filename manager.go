package taskmanager

import (
	"context"
	"log/slog"
	"path"
)

// TaskManager runs read-modify-write task operations against one document.
// Every operation reads the document, applies the change and, when the
// change succeeded, writes the whole document back. The last writer wins.
type TaskManager struct {
	session Session
	store   *TaskStore
	path    string
	log     *slog.Logger
}

// NewTaskManager creates a task manager over a started session.
func NewTaskManager(session Session, opts ...Option) *TaskManager {
	options := applyOptions(opts)

	return &TaskManager{
		session: session,
		store:   NewTaskStore(session, opts...),
		path:    options.DocumentPath(),
		log:     loggerFrom(options).With("component", "task_manager", "session_id", session.ID()),
	}
}

// Path returns the task document path.
func (m *TaskManager) Path() string {
	return m.path
}

// Store returns the underlying task store.
func (m *TaskManager) Store() *TaskStore {
	return m.store
}

// Tools lists the tools the server advertises.
func (m *TaskManager) Tools(ctx context.Context) ([]ToolDescriptor, error) {
	return m.session.ListTools(ctx)
}

// Tasks returns the current task list.
func (m *TaskManager) Tasks(ctx context.Context) ([]Task, error) {
	return m.store.Load(ctx, m.path)
}

// Add appends a new task and persists the document.
func (m *TaskManager) Add(ctx context.Context, title string, priority Priority) (Task, error) {
	tasks, err := m.store.Load(ctx, m.path)
	if err != nil {
		return Task{}, err
	}

	tasks, added, err := AddTask(tasks, title, priority)
	if err != nil {
		return Task{}, err
	}

	if err := m.store.Save(ctx, m.path, tasks); err != nil {
		return Task{}, err
	}

	m.log.Info("Task added", "id", added.ID, "priority", added.Priority)

	return added, nil
}

// Complete marks a task completed and persists the document.
// Returns TaskNotFoundError for an unknown id; nothing is written then.
func (m *TaskManager) Complete(ctx context.Context, id int) error {
	tasks, err := m.store.Load(ctx, m.path)
	if err != nil {
		return err
	}

	tasks, err = CompleteTask(tasks, id)
	if err != nil {
		return err
	}

	if err := m.store.Save(ctx, m.path, tasks); err != nil {
		return err
	}

	m.log.Info("Task completed", "id", id)

	return nil
}

// Delete removes a task and persists the document.
// Returns TaskNotFoundError for an unknown id; nothing is written then.
func (m *TaskManager) Delete(ctx context.Context, id int) error {
	tasks, err := m.store.Load(ctx, m.path)
	if err != nil {
		return err
	}

	tasks, err = DeleteTask(tasks, id)
	if err != nil {
		return err
	}

	if err := m.store.Save(ctx, m.path, tasks); err != nil {
		return err
	}

	m.log.Info("Task deleted", "id", id)

	return nil
}

// ListDirectory returns the server's listing of the directory holding the
// task document.
func (m *TaskManager) ListDirectory(ctx context.Context) (string, error) {
	return m.store.ListDirectory(ctx, path.Dir(m.path))
}
