package config

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Transport produces the MCP transport a session connects over.
// Implement this to provide custom transports for testing or alternative
// server placements.
//
// The defaults are the subprocess transport, which launches the server
// command, and the in-memory transport, which runs the filesystem server in
// process.
type Transport interface {
	// Open prepares the server side and returns the client end of the channel.
	// It is called once, by Session.Start.
	Open(ctx context.Context) (mcp.Transport, error)

	// Close releases whatever Open acquired. It runs after the client
	// session has been closed and must be safe to call when Open failed
	// or was never called.
	Close() error
}
