// Package config provides configuration types for the MCP task manager.
package config

import (
	"log/slog"
	"time"

	"github.com/wagiedev/mcp-taskmanager-go/internal/mcp"
)

const (
	// DefaultInitializeTimeout bounds the MCP initialize handshake.
	DefaultInitializeTimeout = 60 * time.Second

	// DefaultTasksPath is where the task document lives on the server side.
	// The reference filesystem server is launched with /tmp as its only
	// allowed directory.
	DefaultTasksPath = "/tmp/tasks.json"

	// DefaultClientName is the implementation name sent during initialize.
	DefaultClientName = "mcp-taskmanager-go"

	// DefaultClientVersion is the implementation version sent during initialize.
	DefaultClientVersion = "1.0.0"
)

// DefaultServerCommand and DefaultServerArgs launch the reference Node
// filesystem server with /tmp as the allowed directory.
var (
	DefaultServerCommand = "npx"
	DefaultServerArgs    = []string{"-y", "@modelcontextprotocol/server-filesystem", "/tmp"}
)

// Options configures sessions, the task store and the task manager.
type Options struct {
	// Logger is the slog logger for debug output.
	// If nil, logging is disabled (silent operation).
	Logger *slog.Logger

	// Command is the server executable for subprocess sessions.
	// If empty, DefaultServerCommand is used.
	Command string

	// Args are the arguments passed to Command.
	// If nil and Command is empty, DefaultServerArgs are used.
	Args []string

	// Env provides additional environment variables for the server process.
	Env map[string]string

	// Cwd sets the working directory for the server process.
	Cwd string

	// Stderr receives each line the server process writes to stderr.
	Stderr func(string)

	// ClientName and ClientVersion identify this client during initialize.
	ClientName    string
	ClientVersion string

	// InitializeTimeout bounds the handshake.
	// If nil, defaults to DefaultInitializeTimeout.
	InitializeTimeout *time.Duration

	// CheckTools rejects calls to tools absent from the last listed catalog
	// before anything is sent to the server.
	CheckTools bool

	// TasksPath is the document path handed to the read and write tools.
	TasksPath string

	// ReadTool, WriteTool and ListTool override the filesystem tool names.
	ReadTool  string
	WriteTool string
	ListTool  string

	// FileSystem backs the in-memory session's server.
	// If nil, a fresh MemoryFS is used.
	FileSystem mcp.FileSystem

	// Transport allows injecting a custom transport factory.
	// If nil, the session variant decides.
	Transport Transport `json:"-"`
}

// ServerCommand returns the command and arguments used to launch the server.
func (o *Options) ServerCommand() (string, []string) {
	if o.Command == "" {
		return DefaultServerCommand, DefaultServerArgs
	}

	return o.Command, o.Args
}

// InitTimeout returns the configured handshake timeout.
func (o *Options) InitTimeout() time.Duration {
	if o.InitializeTimeout == nil || *o.InitializeTimeout <= 0 {
		return DefaultInitializeTimeout
	}

	return *o.InitializeTimeout
}

// ClientInfo returns the name and version sent during initialize.
func (o *Options) ClientInfo() (string, string) {
	name, version := o.ClientName, o.ClientVersion
	if name == "" {
		name = DefaultClientName
	}

	if version == "" {
		version = DefaultClientVersion
	}

	return name, version
}

// DocumentPath returns the task document path.
func (o *Options) DocumentPath() string {
	if o.TasksPath == "" {
		return DefaultTasksPath
	}

	return o.TasksPath
}

// ToolNames returns the read, write and list tool names.
func (o *Options) ToolNames() (read, write, list string) {
	read, write, list = mcp.ToolReadFile, mcp.ToolWriteFile, mcp.ToolListDirectory

	if o.ReadTool != "" {
		read = o.ReadTool
	}

	if o.WriteTool != "" {
		write = o.WriteTool
	}

	if o.ListTool != "" {
		list = o.ListTool
	}

	return read, write, list
}
