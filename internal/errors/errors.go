package errors

import (
	"errors"
	"fmt"
	"strings"
)

// TaskManagerError is the base interface for all task manager errors.
type TaskManagerError interface {
	error
	IsTaskManagerError() bool
}

// Compile-time verification that all error types implement TaskManagerError.
var (
	_ TaskManagerError = (*ConnectionError)(nil)
	_ TaskManagerError = (*TransportError)(nil)
	_ TaskManagerError = (*RemoteToolError)(nil)
	_ TaskManagerError = (*ToolNotFoundError)(nil)
	_ TaskManagerError = (*TaskNotFoundError)(nil)
	_ TaskManagerError = (*CommandNotFoundError)(nil)
	_ TaskManagerError = (*DocumentDecodeError)(nil)
)

// Sentinel errors for commonly checked conditions.
var (
	// ErrSessionNotConnected indicates an operation was issued before Start.
	ErrSessionNotConnected = errors.New("session not connected")

	// ErrSessionAlreadyStarted indicates Start was called twice.
	ErrSessionAlreadyStarted = errors.New("session already started")

	// ErrSessionClosed indicates the session has been closed and cannot be reused.
	ErrSessionClosed = errors.New("session closed: sessions are single-use, create a new one")
)

// ErrorCode classifies a failure reported by a remote tool.
type ErrorCode string

const (
	// CodeNotFound means the addressed resource does not exist.
	CodeNotFound ErrorCode = "not_found"
	// CodeAccessDenied means the server refused access to the resource.
	CodeAccessDenied ErrorCode = "access_denied"
	// CodeInvalidArguments means the tool rejected its arguments.
	CodeInvalidArguments ErrorCode = "invalid_arguments"
	// CodeProtocol means the server answered the call with a JSON-RPC error.
	CodeProtocol ErrorCode = "protocol"
	// CodeUnknown is used when nothing more specific could be determined.
	CodeUnknown ErrorCode = "unknown"
)

// ConnectionError indicates the session could not be established.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("failed to connect to MCP server: %v", e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// IsTaskManagerError implements TaskManagerError.
func (e *ConnectionError) IsTaskManagerError() bool { return true }

// TransportError indicates the channel to the server broke mid-session.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("MCP transport failed during %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsTaskManagerError implements TaskManagerError.
func (e *TransportError) IsTaskManagerError() bool { return true }

// RemoteToolError indicates the server executed a tool call and reported failure.
type RemoteToolError struct {
	Tool    string
	Code    ErrorCode
	Message string
	Err     error
}

func (e *RemoteToolError) Error() string {
	return fmt.Sprintf("tool %q failed (%s): %s", e.Tool, e.Code, e.Message)
}

func (e *RemoteToolError) Unwrap() error {
	return e.Err
}

// NotFound reports whether the server signalled a missing resource.
func (e *RemoteToolError) NotFound() bool {
	return e.Code == CodeNotFound
}

// IsTaskManagerError implements TaskManagerError.
func (e *RemoteToolError) IsTaskManagerError() bool { return true }

// ToolNotFoundError indicates a call to a tool the server does not advertise.
type ToolNotFoundError struct {
	Name      string
	Available []string
}

func (e *ToolNotFoundError) Error() string {
	return fmt.Sprintf("tool %q not advertised by server (available: %s)",
		e.Name, strings.Join(e.Available, ", "))
}

// IsTaskManagerError implements TaskManagerError.
func (e *ToolNotFoundError) IsTaskManagerError() bool { return true }

// TaskNotFoundError indicates an operation on an unknown task id.
type TaskNotFoundError struct {
	ID int
}

func (e *TaskNotFoundError) Error() string {
	return fmt.Sprintf("task %d not found", e.ID)
}

// IsTaskManagerError implements TaskManagerError.
func (e *TaskNotFoundError) IsTaskManagerError() bool { return true }

// CommandNotFoundError indicates the server command could not be located.
type CommandNotFoundError struct {
	Command       string
	SearchedPaths []string
}

func (e *CommandNotFoundError) Error() string {
	return fmt.Sprintf("MCP server command %q not found in: %v", e.Command, e.SearchedPaths)
}

// IsTaskManagerError implements TaskManagerError.
func (e *CommandNotFoundError) IsTaskManagerError() bool { return true }

// DocumentDecodeError indicates the task document returned by the read tool
// is not valid JSON. The raw text is preserved.
type DocumentDecodeError struct {
	RawData string
	Err     error
}

func (e *DocumentDecodeError) Error() string {
	return fmt.Sprintf("failed to decode task document: %v", e.Err)
}

func (e *DocumentDecodeError) Unwrap() error {
	return e.Err
}

// IsTaskManagerError implements TaskManagerError.
func (e *DocumentDecodeError) IsTaskManagerError() bool { return true }
