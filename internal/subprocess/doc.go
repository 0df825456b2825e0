// Package subprocess provides the transport that launches an MCP server as a
// child process and speaks to it over stdin/stdout.
//
// Framing and the process lifecycle after launch belong to the MCP SDK's
// CommandTransport; this package resolves the command, prepares its
// environment and working directory, and collects what the server writes to
// stderr so failures can be reported with the server's own explanation.
package subprocess
