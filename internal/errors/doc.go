// Package errors defines error types for the MCP task manager.
//
// The types separate failures by where they happened: establishing the
// session, the transport underneath it, the remote tool, or the local task
// model. All error types support unwrapping and can be checked using
// errors.Is, errors.As, and errors.AsType.
package errors
