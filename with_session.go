package taskmanager

import (
	"context"
	"fmt"
)

// WithSession manages session lifecycle with automatic cleanup.
//
// It starts the session, runs fn and closes the session on every exit path.
// If fn returns an error, it is returned to the caller. If Close fails, a
// warning is logged but does not override fn's error.
//
// Example usage:
//
//	err := taskmanager.WithSession(ctx, taskmanager.NewSubprocessSession(),
//	    func(s taskmanager.Session) error {
//	        m := taskmanager.NewTaskManager(s)
//	        _, err := m.Add(ctx, "Learn MCP", taskmanager.PriorityHigh)
//	        return err
//	    },
//	    taskmanager.WithLogger(log),
//	)
func WithSession(ctx context.Context, session Session, fn func(Session) error, opts ...Option) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	log := loggerFrom(applyOptions(opts))

	if err := session.Start(ctx); err != nil {
		_ = session.Close()

		return fmt.Errorf("failed to start session: %w", err)
	}

	defer func() {
		if closeErr := session.Close(); closeErr != nil {
			log.Warn("failed to close session", "session_id", session.ID(), "error", closeErr)
		}
	}()

	return fn(session)
}
