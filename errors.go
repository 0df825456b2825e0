package taskmanager

import "github.com/wagiedev/mcp-taskmanager-go/internal/errors"

// Re-export error types from internal package

// TaskManagerError is the base interface for all task manager errors.
type TaskManagerError = errors.TaskManagerError

// ConnectionError indicates the session could not be established.
type ConnectionError = errors.ConnectionError

// TransportError indicates the channel to the server broke mid-session.
type TransportError = errors.TransportError

// RemoteToolError indicates the server reported a tool call as failed.
type RemoteToolError = errors.RemoteToolError

// ToolNotFoundError indicates a call to a tool the server does not advertise.
type ToolNotFoundError = errors.ToolNotFoundError

// TaskNotFoundError indicates an operation on an unknown task id.
type TaskNotFoundError = errors.TaskNotFoundError

// CommandNotFoundError indicates the server command could not be located.
type CommandNotFoundError = errors.CommandNotFoundError

// DocumentDecodeError indicates the task document is not valid JSON.
type DocumentDecodeError = errors.DocumentDecodeError

// ErrorCode classifies a failure reported by a remote tool.
type ErrorCode = errors.ErrorCode

// Remote tool error codes.
const (
	CodeNotFound         = errors.CodeNotFound
	CodeAccessDenied     = errors.CodeAccessDenied
	CodeInvalidArguments = errors.CodeInvalidArguments
	CodeProtocol         = errors.CodeProtocol
	CodeUnknown          = errors.CodeUnknown
)

// Re-export sentinel errors from internal package.
var (
	// ErrSessionNotConnected indicates an operation was issued before Start.
	ErrSessionNotConnected = errors.ErrSessionNotConnected

	// ErrSessionAlreadyStarted indicates Start was called twice.
	ErrSessionAlreadyStarted = errors.ErrSessionAlreadyStarted

	// ErrSessionClosed indicates the session has been closed and cannot be reused.
	ErrSessionClosed = errors.ErrSessionClosed
)
