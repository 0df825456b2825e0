package mcp

import (
	"context"
	stderrors "errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wagiedev/mcp-taskmanager-go/internal/errors"
)

const (
	// ServerName is the implementation name advertised during initialize.
	ServerName = "taskmanager-filesystem"
	// ServerVersion is the implementation version advertised during initialize.
	ServerVersion = "1.0.0"

	// ToolReadFile reads a file and returns its text.
	ToolReadFile = "read_file"
	// ToolWriteFile replaces a file's content.
	ToolWriteFile = "write_file"
	// ToolListDirectory lists the entries of a directory.
	ToolListDirectory = "list_directory"
)

// NewFilesystemRegistry registers the filesystem tools over fsys.
func NewFilesystemRegistry(fsys FileSystem, log *slog.Logger) *Registry {
	log = log.With("component", "filesystem_server")

	registry := NewRegistry(ServerName, ServerVersion)

	registry.AddTool(
		NewTool(ToolReadFile, "Read the complete contents of a file as text.",
			StringSchema("path")),
		func(_ context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args, err := ParseArguments(req)
			if err != nil {
				return CodedErrorResult(errors.CodeInvalidArguments, err.Error()), nil
			}

			p, err := stringArg(args, "path")
			if err != nil {
				return CodedErrorResult(errors.CodeInvalidArguments, err.Error()), nil
			}

			content, err := fsys.ReadFile(p)
			if err != nil {
				log.Debug("read_file failed", "path", p, "error", err)

				return fsErrorResult("open", p, err), nil
			}

			log.Debug("read_file", "path", p, "bytes", len(content))

			return TextResult(content), nil
		},
	)

	registry.AddTool(
		NewTool(ToolWriteFile, "Create a new file or completely overwrite an existing file.",
			StringSchema("path", "content")),
		func(_ context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args, err := ParseArguments(req)
			if err != nil {
				return CodedErrorResult(errors.CodeInvalidArguments, err.Error()), nil
			}

			p, err := stringArg(args, "path")
			if err != nil {
				return CodedErrorResult(errors.CodeInvalidArguments, err.Error()), nil
			}

			content, err := stringArg(args, "content")
			if err != nil {
				return CodedErrorResult(errors.CodeInvalidArguments, err.Error()), nil
			}

			if err := fsys.WriteFile(p, content); err != nil {
				log.Debug("write_file failed", "path", p, "error", err)

				return fsErrorResult("write", p, err), nil
			}

			log.Debug("write_file", "path", p, "bytes", len(content))

			return TextResult("Successfully wrote to " + p), nil
		},
	)

	registry.AddTool(
		NewTool(ToolListDirectory, "List files and directories in a path. Entries are prefixed with [FILE] or [DIR].",
			StringSchema("path")),
		func(_ context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args, err := ParseArguments(req)
			if err != nil {
				return CodedErrorResult(errors.CodeInvalidArguments, err.Error()), nil
			}

			p, err := stringArg(args, "path")
			if err != nil {
				return CodedErrorResult(errors.CodeInvalidArguments, err.Error()), nil
			}

			entries, err := fsys.ListDirectory(p)
			if err != nil {
				return fsErrorResult("scandir", p, err), nil
			}

			return TextResult(FormatEntries(entries)), nil
		},
	)

	return registry
}

// NewFilesystemServer builds an SDK server exposing the filesystem tools.
func NewFilesystemServer(fsys FileSystem, log *slog.Logger) *mcp.Server {
	return NewFilesystemRegistry(fsys, log).Server()
}

// FormatEntries renders a listing one entry per line.
func FormatEntries(entries []Entry) string {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		kind := "[FILE]"
		if e.Dir {
			kind = "[DIR]"
		}

		lines = append(lines, kind+" "+e.Name)
	}

	return strings.Join(lines, "\n")
}

// fsErrorResult maps a file system error onto a coded tool error. The text
// follows the wording of the reference Node filesystem server.
func fsErrorResult(op, p string, err error) *mcp.CallToolResult {
	switch {
	case stderrors.Is(err, fs.ErrNotExist):
		return CodedErrorResult(errors.CodeNotFound,
			fmt.Sprintf("Error: ENOENT: no such file or directory, %s '%s'", op, p))
	case stderrors.Is(err, ErrAccessDenied), stderrors.Is(err, fs.ErrPermission):
		return CodedErrorResult(errors.CodeAccessDenied,
			"Error: Access denied - path outside allowed directories: "+p)
	default:
		return CodedErrorResult(errors.CodeUnknown, "Error: "+err.Error())
	}
}
