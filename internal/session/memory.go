package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/sync/errgroup"

	"github.com/wagiedev/mcp-taskmanager-go/internal/config"
	fsserver "github.com/wagiedev/mcp-taskmanager-go/internal/mcp"
)

// MemoryTransport runs the filesystem tool server in process and connects
// to it through the SDK's in-memory transport pair.
type MemoryTransport struct {
	log  *slog.Logger
	fsys fsserver.FileSystem

	mu     sync.Mutex
	server *mcp.ServerSession
	eg     *errgroup.Group
}

// Compile-time verification that MemoryTransport implements config.Transport.
var _ config.Transport = (*MemoryTransport)(nil)

// NewMemoryTransport creates an in-memory transport serving fsys.
// A nil fsys gets a fresh MemoryFS.
func NewMemoryTransport(log *slog.Logger, fsys fsserver.FileSystem) *MemoryTransport {
	if fsys == nil {
		fsys = fsserver.NewMemoryFS()
	}

	return &MemoryTransport{
		log:  log.With("component", "memory_transport"),
		fsys: fsys,
	}
}

// Open connects the server end and returns the client end.
func (t *MemoryTransport) Open(ctx context.Context) (mcp.Transport, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.server != nil {
		return nil, fmt.Errorf("in-memory server already running")
	}

	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	ss, err := fsserver.NewFilesystemServer(t.fsys, t.log).Connect(ctx, serverTransport, nil)
	if err != nil {
		return nil, fmt.Errorf("connect in-memory server: %w", err)
	}

	t.server = ss
	t.eg = &errgroup.Group{}
	t.eg.Go(ss.Wait)

	t.log.Debug("In-memory filesystem server running")

	return clientTransport, nil
}

// Close shuts the server session down and waits for it to finish.
func (t *MemoryTransport) Close() error {
	t.mu.Lock()
	server, eg := t.server, t.eg
	t.server, t.eg = nil, nil
	t.mu.Unlock()

	if server == nil {
		return nil
	}

	_ = server.Close()

	if err := eg.Wait(); err != nil {
		// Wait reports the closed connection.
		t.log.Debug("In-memory server stopped", "error", err)
	}

	return nil
}
