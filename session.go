package taskmanager

import (
	"context"

	"github.com/wagiedev/mcp-taskmanager-go/internal/session"
	"github.com/wagiedev/mcp-taskmanager-go/internal/subprocess"
)

// Session is a single-use connection to an MCP tool server.
//
// Both the subprocess and the in-memory variant implement it, so task logic
// written against Session runs unchanged on either.
type Session interface {
	// Start opens the transport and performs the initialize handshake.
	// Returns ConnectionError on failure.
	Start(ctx context.Context) error

	// ListTools returns every tool the server advertises.
	// Before Start it returns ConnectionError without touching the transport.
	ListTools(ctx context.Context) ([]ToolDescriptor, error)

	// CallTool invokes a tool. Server-reported failures are RemoteToolError,
	// a broken channel is TransportError.
	CallTool(ctx context.Context, name string, args map[string]any) (*ToolCallResult, error)

	// ServerInfo returns the server identity, or nil before Start.
	ServerInfo() *ServerInfo

	// ID returns the session identifier attached to log lines.
	ID() string

	// Close releases the session. Safe to call more than once; every
	// operation afterwards fails with ErrSessionClosed.
	Close() error
}

// Compile-time check that the internal session implements Session.
var _ Session = (*session.Session)(nil)

// ToolDescriptor describes a tool advertised by the server.
type ToolDescriptor = session.ToolDescriptor

// ToolCallResult is the outcome of a successful tool call.
type ToolCallResult = session.ToolCallResult

// ContentBlock is one content item of a tool result.
type ContentBlock = session.ContentBlock

// ServerInfo identifies the connected server.
type ServerInfo = session.ServerInfo

// NewSubprocessSession creates a session that launches the configured server
// command and talks to it over stdio. The process starts on Start.
func NewSubprocessSession(opts ...Option) Session {
	options := applyOptions(opts)

	transport := options.Transport
	if transport == nil {
		transport = subprocess.NewTransport(loggerFrom(options), options)
	}

	return session.New(options, transport)
}

// NewInMemorySession creates a session whose peer is the built-in filesystem
// tool server, connected in process. Without WithFileSystem the server
// starts from an empty in-memory file system.
func NewInMemorySession(opts ...Option) Session {
	options := applyOptions(opts)

	transport := options.Transport
	if transport == nil {
		transport = session.NewMemoryTransport(loggerFrom(options), options.FileSystem)
	}

	return session.New(options, transport)
}
