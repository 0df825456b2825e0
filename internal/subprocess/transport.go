package subprocess

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wagiedev/mcp-taskmanager-go/internal/config"
)

// maxStderrBufferSize caps the retained stderr. Lines keep flowing to the
// callback after the cap; only the buffer stops growing.
const maxStderrBufferSize = 1024 * 1024 // 1MB

// Transport launches the configured server command.
type Transport struct {
	log     *slog.Logger
	options *config.Options
	stderr  *lineWriter

	mu  sync.Mutex
	cmd *exec.Cmd
}

// Compile-time verification that Transport implements config.Transport.
var _ config.Transport = (*Transport)(nil)

// NewTransport creates a subprocess transport. Command discovery is deferred
// to Open.
func NewTransport(log *slog.Logger, options *config.Options) *Transport {
	log = log.With("component", "subprocess_transport")

	return &Transport{
		log:     log,
		options: options,
		stderr:  newLineWriter(log, options.Stderr),
	}
}

// Open resolves the command and returns an SDK command transport for it.
// The process itself is started by the SDK when the client connects.
func (t *Transport) Open(_ context.Context) (mcp.Transport, error) {
	command, args := t.options.ServerCommand()

	path, err := FindCommand(t.log, command)
	if err != nil {
		return nil, err
	}

	cwd := t.options.Cwd
	if cwd == "" {
		cwd, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	//nolint:gosec // G204: launching a configured server command is the point
	cmd := exec.Command(path, args...)
	cmd.Dir = cwd
	cmd.Env = BuildEnvironment(t.options.Env)
	cmd.Stderr = t.stderr

	t.mu.Lock()
	t.cmd = cmd
	t.mu.Unlock()

	t.log.Info("Prepared MCP server subprocess", "command", path, "args", args, "cwd", cwd)

	return &mcp.CommandTransport{Command: cmd}, nil
}

// Close flushes any partial stderr line. The SDK terminates the process
// when the client session closes.
func (t *Transport) Close() error {
	t.stderr.Flush()

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cmd != nil && t.cmd.ProcessState != nil {
		t.log.Debug("MCP server subprocess exited", "state", t.cmd.ProcessState.String())
	}

	return nil
}

// Stderr returns what the server wrote to stderr so far.
func (t *Transport) Stderr() string {
	return t.stderr.String()
}

// lineWriter splits a byte stream into lines, hands each to a callback and
// the logger, and keeps a bounded copy for error reports.
type lineWriter struct {
	log      *slog.Logger
	callback func(string)

	mu      sync.Mutex
	partial []byte
	buffer  strings.Builder
}

func newLineWriter(log *slog.Logger, callback func(string)) *lineWriter {
	return &lineWriter{log: log, callback: callback}
}

// Write implements io.Writer.
func (w *lineWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.partial = append(w.partial, p...)

	for {
		i := bytes.IndexByte(w.partial, '\n')
		if i < 0 {
			break
		}

		w.emit(strings.TrimRight(string(w.partial[:i]), "\r"))
		w.partial = w.partial[i+1:]
	}

	return len(p), nil
}

// Flush emits a trailing line that was not newline terminated.
func (w *lineWriter) Flush() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.partial) > 0 {
		w.emit(string(w.partial))
		w.partial = nil
	}
}

// String returns the retained stderr text.
func (w *lineWriter) String() string {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.buffer.String()
}

// emit must be called with w.mu held.
func (w *lineWriter) emit(line string) {
	if w.buffer.Len() < maxStderrBufferSize {
		if w.buffer.Len() > 0 {
			w.buffer.WriteByte('\n')
		}

		w.buffer.WriteString(line)
	}

	w.log.Debug("MCP server stderr", "line", line)

	if w.callback != nil {
		w.callback(line)
	}
}
