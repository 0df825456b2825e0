package taskmanager_test

import (
	"context"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	taskmanager "github.com/wagiedev/mcp-taskmanager-go"
)

// brokenTransport refuses to open.
type brokenTransport struct{}

func (brokenTransport) Open(context.Context) (mcp.Transport, error) {
	return nil, errors.New("server unavailable")
}

func (brokenTransport) Close() error { return nil }

func TestWithSession_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := taskmanager.WithSession(ctx, taskmanager.NewInMemorySession(), func(taskmanager.Session) error {
		t.Error("callback should not be called with cancelled context")

		return nil
	})
	require.ErrorIs(t, err, context.Canceled)
}

func TestWithSession_ClosesAfterCallback(t *testing.T) {
	var kept taskmanager.Session

	err := taskmanager.WithSession(context.Background(), taskmanager.NewInMemorySession(),
		func(s taskmanager.Session) error {
			kept = s

			_, err := s.ListTools(context.Background())

			return err
		})
	require.NoError(t, err)

	_, err = kept.ListTools(context.Background())
	require.ErrorIs(t, err, taskmanager.ErrSessionClosed)
}

func TestWithSession_CallbackError(t *testing.T) {
	sentinel := errors.New("boom")

	var kept taskmanager.Session

	err := taskmanager.WithSession(context.Background(), taskmanager.NewInMemorySession(),
		func(s taskmanager.Session) error {
			kept = s

			return sentinel
		})
	require.ErrorIs(t, err, sentinel)

	_, err = kept.CallTool(context.Background(), taskmanager.ToolReadFile, map[string]any{"path": "x"})
	require.ErrorIs(t, err, taskmanager.ErrSessionClosed)
}

func TestWithSession_StartFailure(t *testing.T) {
	s := taskmanager.NewSubprocessSession(taskmanager.WithTransport(brokenTransport{}))

	err := taskmanager.WithSession(context.Background(), s, func(taskmanager.Session) error {
		t.Error("callback should not be called when start fails")

		return nil
	})

	var connErr *taskmanager.ConnectionError
	require.ErrorAs(t, err, &connErr)
}

func TestSession_ListToolsBeforeStart(t *testing.T) {
	s := taskmanager.NewSubprocessSession(taskmanager.WithCommand("definitely-not-an-mcp-server-binary"))

	_, err := s.ListTools(context.Background())

	var connErr *taskmanager.ConnectionError
	require.ErrorAs(t, err, &connErr)
	require.ErrorIs(t, err, taskmanager.ErrSessionNotConnected)
}

func TestSession_MissingCommand(t *testing.T) {
	s := taskmanager.NewSubprocessSession(taskmanager.WithCommand("definitely-not-an-mcp-server-binary"))

	err := s.Start(context.Background())

	var connErr *taskmanager.ConnectionError
	require.ErrorAs(t, err, &connErr)

	var notFound *taskmanager.CommandNotFoundError
	require.ErrorAs(t, err, &notFound)
	require.Equal(t, "definitely-not-an-mcp-server-binary", notFound.Command)
}
