// Package session implements the MCP client session the task manager runs on.
//
// A Session owns one connection to a tool server: it opens a transport
// (a subprocess or an in-process server), performs the initialize handshake
// through the official MCP SDK, lists tools, and carries tool calls. It adds
// the lifecycle rules the SDK leaves to callers: nothing may be issued before
// Start or after Close, Close is idempotent, and every failure is mapped onto
// the error taxonomy in internal/errors.
//
// Example usage:
//
//	s := session.New(options, session.NewMemoryTransport(log, fsys))
//	if err := s.Start(ctx); err != nil {
//	    return err
//	}
//	defer s.Close()
//
//	res, err := s.CallTool(ctx, "read_file", map[string]any{"path": "tasks.json"})
package session
