package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConnectionError(t *testing.T) {
	root := errors.New("handshake failed")
	err := &ConnectionError{Err: root}

	require.Equal(t, "failed to connect to MCP server: handshake failed", err.Error())
	require.ErrorIs(t, err, root)
	require.True(t, err.IsTaskManagerError())
}

func TestConnectionError_WrapsNotConnected(t *testing.T) {
	err := &ConnectionError{Err: ErrSessionNotConnected}

	require.ErrorIs(t, err, ErrSessionNotConnected)
}

func TestTransportError(t *testing.T) {
	root := errors.New("broken pipe")
	err := &TransportError{Op: "tools/call", Err: root}

	require.Equal(t, "MCP transport failed during tools/call: broken pipe", err.Error())
	require.ErrorIs(t, err, root)
	require.True(t, err.IsTaskManagerError())
}

func TestRemoteToolError(t *testing.T) {
	err := &RemoteToolError{
		Tool:    "read_file",
		Code:    CodeNotFound,
		Message: "ENOENT: no such file or directory",
	}

	require.Equal(t, `tool "read_file" failed (not_found): ENOENT: no such file or directory`, err.Error())
	require.True(t, err.NotFound())
	require.NoError(t, err.Unwrap())
	require.True(t, err.IsTaskManagerError())

	other := &RemoteToolError{Tool: "write_file", Code: CodeAccessDenied, Message: "denied"}
	require.False(t, other.NotFound())
}

func TestToolNotFoundError(t *testing.T) {
	err := &ToolNotFoundError{Name: "delete_file", Available: []string{"read_file", "write_file"}}

	require.Equal(t,
		`tool "delete_file" not advertised by server (available: read_file, write_file)`,
		err.Error(),
	)
	require.True(t, err.IsTaskManagerError())
}

func TestTaskNotFoundError(t *testing.T) {
	err := &TaskNotFoundError{ID: 7}

	require.Equal(t, "task 7 not found", err.Error())
	require.True(t, err.IsTaskManagerError())
}

func TestCommandNotFoundError(t *testing.T) {
	err := &CommandNotFoundError{Command: "npx", SearchedPaths: []string{"$PATH", "/usr/local/bin/npx"}}

	require.Equal(t, `MCP server command "npx" not found in: [$PATH /usr/local/bin/npx]`, err.Error())
	require.True(t, err.IsTaskManagerError())
}

func TestDocumentDecodeError(t *testing.T) {
	root := errors.New("unexpected end of JSON input")
	err := &DocumentDecodeError{RawData: `[{"id":`, Err: root}

	require.Equal(t, "failed to decode task document: unexpected end of JSON input", err.Error())
	require.ErrorIs(t, err, root)
	require.True(t, err.IsTaskManagerError())
}

func TestErrorsAsType(t *testing.T) {
	wrapped := errors.Join(errors.New("context"), &RemoteToolError{Tool: "read_file", Code: CodeNotFound})

	remote, ok := errors.AsType[*RemoteToolError](wrapped)
	require.True(t, ok)
	require.Equal(t, "read_file", remote.Tool)
}
