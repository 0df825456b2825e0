// Package mcp implements the filesystem tool server the task manager talks to
// when no external server is involved.
//
// The server is built on the official MCP SDK and exposes read_file,
// write_file and list_directory over a FileSystem, either an in-memory map or
// a directory confined through os.Root. The same server backs the in-memory
// session and the stdio filesystem_server example, so both variants of the
// task manager see identical tool behavior, including the structured
// not_found code on failed reads.
package mcp
