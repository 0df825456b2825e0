package taskmanager

import (
	"log/slog"
	"time"

	"github.com/wagiedev/mcp-taskmanager-go/internal/config"
)

// Options configures sessions, the task store and the task manager.
type Options = config.Options

// Transport produces the MCP transport a session connects over.
// Inject a custom one with WithTransport.
type Transport = config.Transport

// ConfigFile is the YAML configuration read by LoadConfig.
type ConfigFile = config.File

// Option configures Options using the functional options pattern.
type Option func(*Options)

// applyOptions applies functional options to an Options struct.
func applyOptions(opts []Option) *Options {
	options := &Options{}
	for _, opt := range opts {
		opt(options)
	}

	return options
}

// loggerFrom returns the configured logger or a no-op logger.
func loggerFrom(options *Options) *slog.Logger {
	if options.Logger == nil {
		return NopLogger()
	}

	return options.Logger
}

// ===== Basic Configuration =====

// WithLogger sets the logger for debug output.
// If not set, logging is disabled (silent operation).
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithClientInfo sets the implementation name and version sent during initialize.
func WithClientInfo(name, version string) Option {
	return func(o *Options) {
		o.ClientName = name
		o.ClientVersion = version
	}
}

// WithInitializeTimeout bounds the initialize handshake.
// Defaults to 60 seconds.
func WithInitializeTimeout(timeout time.Duration) Option {
	return func(o *Options) {
		o.InitializeTimeout = &timeout
	}
}

// WithToolCheck rejects calls to tools missing from the last ListTools
// result with ToolNotFoundError, before anything is sent.
func WithToolCheck(enabled bool) Option {
	return func(o *Options) {
		o.CheckTools = enabled
	}
}

// ===== Server Process =====

// WithCommand sets the server executable and its arguments.
// Defaults to the reference filesystem server launched through npx with
// /tmp as the allowed directory.
func WithCommand(command string, args ...string) Option {
	return func(o *Options) {
		o.Command = command
		o.Args = args
	}
}

// WithEnv provides additional environment variables for the server process.
func WithEnv(env map[string]string) Option {
	return func(o *Options) {
		o.Env = env
	}
}

// WithCwd sets the working directory for the server process.
func WithCwd(cwd string) Option {
	return func(o *Options) {
		o.Cwd = cwd
	}
}

// WithStderr sets a callback invoked for each line the server writes to stderr.
func WithStderr(handler func(string)) Option {
	return func(o *Options) {
		o.Stderr = handler
	}
}

// ===== Storage =====

// WithTasksPath sets the path of the task document on the server side.
// Defaults to /tmp/tasks.json.
func WithTasksPath(path string) Option {
	return func(o *Options) {
		o.TasksPath = path
	}
}

// WithToolNames overrides the read, write and list tool names.
// Empty names keep the defaults.
func WithToolNames(read, write, list string) Option {
	return func(o *Options) {
		o.ReadTool = read
		o.WriteTool = write
		o.ListTool = list
	}
}

// WithFileSystem sets the storage behind the in-memory session's server.
func WithFileSystem(fsys FileSystem) Option {
	return func(o *Options) {
		o.FileSystem = fsys
	}
}

// WithTransport injects a custom transport factory for testing or
// alternative server placements.
func WithTransport(transport Transport) Option {
	return func(o *Options) {
		o.Transport = transport
	}
}

// ===== Configuration Files =====

// LoadConfig reads a YAML configuration file.
func LoadConfig(path string) (*ConfigFile, error) {
	return config.LoadFile(path)
}

// WithConfig applies a loaded configuration file. Options given after it
// override the file.
func WithConfig(file *ConfigFile) Option {
	return func(o *Options) {
		if file != nil {
			file.Apply(o)
		}
	}
}
