package session

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/oklog/ulid/v2"

	"github.com/wagiedev/mcp-taskmanager-go/internal/config"
	"github.com/wagiedev/mcp-taskmanager-go/internal/errors"
)

// stderrReporter is implemented by transports that capture server stderr.
type stderrReporter interface {
	Stderr() string
}

// Session is a single-use connection to an MCP tool server.
type Session struct {
	id        string
	log       *slog.Logger
	options   *config.Options
	transport config.Transport

	// Lifecycle management
	mu        sync.Mutex
	client    *mcp.ClientSession
	server    *ServerInfo
	catalog   map[string]ToolDescriptor
	connected bool
	closed    bool
	closeOnce sync.Once
	closeErr  error
}

// New creates a session over transport. Nothing is opened until Start.
func New(options *config.Options, transport config.Transport) *Session {
	if options == nil {
		options = &config.Options{}
	}

	log := options.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	id := ulid.Make().String()

	return &Session{
		id:        id,
		log:       log.With("component", "session", "session_id", id),
		options:   options,
		transport: transport,
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// ServerInfo returns the identity the server reported during initialize,
// or nil before Start.
func (s *Session) ServerInfo() *ServerInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.server
}

// Start opens the transport and performs the initialize handshake.
//
// Returns ConnectionError if the server cannot be reached or the handshake
// fails, ErrSessionAlreadyStarted on a second call and ErrSessionClosed after
// Close.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return errors.ErrSessionClosed
	}

	if s.connected {
		return errors.ErrSessionAlreadyStarted
	}

	ctx, cancel := context.WithTimeout(ctx, s.options.InitTimeout())
	defer cancel()

	s.log.Info("Starting session")

	transport, err := s.transport.Open(ctx)
	if err != nil {
		_ = s.transport.Close()

		return &errors.ConnectionError{Err: fmt.Errorf("open transport: %w", err)}
	}

	name, version := s.options.ClientInfo()
	client := mcp.NewClient(&mcp.Implementation{Name: name, Version: version}, nil)

	cs, err := client.Connect(ctx, transport, nil)
	if err != nil {
		_ = s.transport.Close()

		return &errors.ConnectionError{Err: s.withStderr(fmt.Errorf("initialize: %w", err))}
	}

	s.client = cs
	s.server = &ServerInfo{}

	if res := cs.InitializeResult(); res != nil {
		s.server.ProtocolVersion = res.ProtocolVersion
		if res.ServerInfo != nil {
			s.server.Name = res.ServerInfo.Name
			s.server.Version = res.ServerInfo.Version
		}
	}

	s.connected = true
	s.log.Info("Session started",
		"server", s.server.Name,
		"server_version", s.server.Version,
		"protocol_version", s.server.ProtocolVersion,
	)

	return nil
}

// withStderr appends captured server stderr to err, when there is any.
func (s *Session) withStderr(err error) error {
	reporter, ok := s.transport.(stderrReporter)
	if !ok {
		return err
	}

	stderr := strings.TrimSpace(reporter.Stderr())
	if stderr == "" {
		return err
	}

	return fmt.Errorf("%w\nserver stderr:\n%s", err, stderr)
}

// active returns the client session or the lifecycle error that forbids use.
func (s *Session) active() (*mcp.ClientSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, errors.ErrSessionClosed
	}

	if !s.connected {
		return nil, &errors.ConnectionError{Err: errors.ErrSessionNotConnected}
	}

	return s.client, nil
}

// ListTools returns every tool the server advertises, following pagination.
// The result becomes the catalog consulted by CallTool's local check.
func (s *Session) ListTools(ctx context.Context) ([]ToolDescriptor, error) {
	cs, err := s.active()
	if err != nil {
		return nil, err
	}

	tools := make([]ToolDescriptor, 0, 8)

	for tool, err := range cs.Tools(ctx, nil) {
		if err != nil {
			if isRPCError(err) || !isTransportFailure(err) {
				return nil, fmt.Errorf("list tools: %w", err)
			}

			return nil, &errors.TransportError{Op: "tools/list", Err: err}
		}

		tools = append(tools, describeTool(tool))
	}

	catalog := make(map[string]ToolDescriptor, len(tools))
	for _, tool := range tools {
		catalog[tool.Name] = tool
	}

	s.mu.Lock()
	s.catalog = catalog
	s.mu.Unlock()

	s.log.Debug("Listed tools", "count", len(tools))

	return tools, nil
}

// checkTool enforces the optional local catalog check. Before the first
// ListTools there is nothing to check against and every name passes.
func (s *Session) checkTool(name string) error {
	if !s.options.CheckTools {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.catalog == nil {
		return nil
	}

	if _, ok := s.catalog[name]; ok {
		return nil
	}

	return &errors.ToolNotFoundError{
		Name:      name,
		Available: slices.Sorted(maps.Keys(s.catalog)),
	}
}

// CallTool invokes a tool and returns its result.
//
// A result flagged isError and a JSON-RPC error reply both become
// RemoteToolError. A broken channel becomes TransportError.
func (s *Session) CallTool(ctx context.Context, name string, args map[string]any) (*ToolCallResult, error) {
	cs, err := s.active()
	if err != nil {
		return nil, err
	}

	if err := s.checkTool(name); err != nil {
		return nil, err
	}

	if args == nil {
		args = map[string]any{}
	}

	s.log.Debug("Calling tool", "tool", name)

	res, err := cs.CallTool(ctx, &mcp.CallToolParams{Name: name, Arguments: args})
	if err != nil {
		if !isRPCError(err) && isTransportFailure(err) {
			s.log.Warn("Transport failed during tool call", "tool", name, "error", err)

			return nil, &errors.TransportError{Op: "tools/call " + name, Err: s.withStderr(err)}
		}

		return nil, &errors.RemoteToolError{
			Tool:    name,
			Code:    errors.CodeProtocol,
			Message: err.Error(),
			Err:     err,
		}
	}

	result := convertResult(res)
	if result.IsError {
		message, _ := result.FirstText()
		code := classifyToolError(result)

		s.log.Debug("Tool reported an error", "tool", name, "code", code, "message", message)

		return nil, &errors.RemoteToolError{Tool: name, Code: code, Message: message}
	}

	return result, nil
}

// Close releases the client session and the transport. It is safe to call
// more than once and before Start.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		wasConnected := s.connected
		s.connected = false
		cs := s.client
		s.client = nil
		s.mu.Unlock()

		if !wasConnected {
			return
		}

		s.log.Info("Closing session")

		var errs []error

		if cs != nil {
			switch err := cs.Close(); {
			case err == nil:
			case isTransportFailure(err):
				s.log.Debug("Connection already down at close", "error", err)
			default:
				errs = append(errs, fmt.Errorf("close client session: %w", err))
			}
		}

		if err := s.transport.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close transport: %w", err))
		}

		s.closeErr = stderrors.Join(errs...)

		s.log.Info("Session closed")
	})

	return s.closeErr
}
