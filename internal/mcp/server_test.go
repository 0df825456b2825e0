package mcp

import (
	"context"
	"io"
	"io/fs"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"testing"

	mcpgo "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"github.com/wagiedev/mcp-taskmanager-go/internal/errors"
)

func nopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// connect serves fsys over an in-memory transport pair and returns the client end.
func connect(t *testing.T, fsys FileSystem) *mcpgo.ClientSession {
	t.Helper()

	ctx := context.Background()
	serverTransport, clientTransport := mcpgo.NewInMemoryTransports()

	serverSession, err := NewFilesystemServer(fsys, nopLogger()).Connect(ctx, serverTransport, nil)
	require.NoError(t, err)

	client := mcpgo.NewClient(&mcpgo.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)

	clientSession, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = clientSession.Close()
		_ = serverSession.Wait()
	})

	return clientSession
}

func callText(t *testing.T, cs *mcpgo.ClientSession, name string, args map[string]any) *mcpgo.CallToolResult {
	t.Helper()

	res, err := cs.CallTool(context.Background(), &mcpgo.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	require.NotEmpty(t, res.Content)

	return res
}

func firstText(t *testing.T, res *mcpgo.CallToolResult) string {
	t.Helper()

	text, ok := res.Content[0].(*mcpgo.TextContent)
	require.True(t, ok, "expected text content, got %T", res.Content[0])

	return text.Text
}

func TestRegistryMetadata(t *testing.T) {
	registry := NewFilesystemRegistry(NewMemoryFS(), nopLogger())

	require.Equal(t, ServerName, registry.name)
	require.Equal(t, ServerVersion, registry.version)
	require.ElementsMatch(t, []string{ToolListDirectory, ToolReadFile, ToolWriteFile}, slices.Collect(maps.Keys(registry.tools)))
}

func TestRegistryAddTool_Replaces(t *testing.T) {
	registry := NewRegistry("demo", "1.0.0")
	schema := StringSchema("text")

	registry.AddTool(NewTool("echo", "first", schema), nil)
	registry.AddTool(NewTool("echo", "second", schema), nil)

	require.Len(t, registry.tools, 1)
	require.Equal(t, "second", registry.tools["echo"].tool.Description)
}

func TestFilesystemServer_ListTools(t *testing.T) {
	cs := connect(t, NewMemoryFS())

	res, err := cs.ListTools(context.Background(), &mcpgo.ListToolsParams{})
	require.NoError(t, err)

	names := make([]string, 0, len(res.Tools))
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
		require.NotEmpty(t, tool.Description)
	}

	require.ElementsMatch(t, []string{ToolReadFile, ToolWriteFile, ToolListDirectory}, names)
}

func TestFilesystemServer_WriteThenRead(t *testing.T) {
	cs := connect(t, NewMemoryFS())

	written := callText(t, cs, ToolWriteFile, map[string]any{"path": "/tmp/tasks.json", "content": "[]"})
	require.False(t, written.IsError)
	require.Equal(t, "Successfully wrote to /tmp/tasks.json", firstText(t, written))

	read := callText(t, cs, ToolReadFile, map[string]any{"path": "/tmp/tasks.json"})
	require.False(t, read.IsError)
	require.Equal(t, "[]", firstText(t, read))
}

func TestFilesystemServer_ReadMissingIsCodedNotFound(t *testing.T) {
	cs := connect(t, NewMemoryFS())

	res := callText(t, cs, ToolReadFile, map[string]any{"path": "missing.json"})
	require.True(t, res.IsError)
	require.Contains(t, firstText(t, res), "ENOENT")

	structured, ok := res.StructuredContent.(map[string]any)
	require.True(t, ok, "expected structured content map, got %T", res.StructuredContent)
	require.Equal(t, string(errors.CodeNotFound), structured["code"])
}

func TestFilesystemServer_MissingArgument(t *testing.T) {
	cs := connect(t, NewMemoryFS())

	res := callText(t, cs, ToolWriteFile, map[string]any{"path": "a.json"})
	require.True(t, res.IsError)
	require.Contains(t, firstText(t, res), `"content"`)

	structured, ok := res.StructuredContent.(map[string]any)
	require.True(t, ok)
	require.Equal(t, string(errors.CodeInvalidArguments), structured["code"])
}

func TestFilesystemServer_ListDirectory(t *testing.T) {
	fsys := NewMemoryFS()
	require.NoError(t, fsys.WriteFile("/tmp/tasks.json", "[]"))
	require.NoError(t, fsys.WriteFile("/tmp/notes/today.txt", "hi"))

	cs := connect(t, fsys)

	res := callText(t, cs, ToolListDirectory, map[string]any{"path": "/tmp"})
	require.False(t, res.IsError)
	require.Equal(t, "[DIR] notes\n[FILE] tasks.json", firstText(t, res))
}

func TestMemoryFS(t *testing.T) {
	fsys := NewMemoryFS()

	_, err := fsys.ReadFile("nope")
	require.ErrorIs(t, err, fs.ErrNotExist)

	require.NoError(t, fsys.WriteFile("dir/../a.txt", "one"))

	got, err := fsys.ReadFile("a.txt")
	require.NoError(t, err)
	require.Equal(t, "one", got)

	entries, err := fsys.ListDirectory(".")
	require.NoError(t, err)
	require.Equal(t, []Entry{{Name: "a.txt"}}, entries)

	_, err = fsys.ListDirectory("/missing")
	require.ErrorIs(t, err, fs.ErrNotExist)
}

func TestDirFS(t *testing.T) {
	dir := t.TempDir()

	fsys, err := NewDirFS(dir)
	require.NoError(t, err)

	t.Cleanup(func() { _ = fsys.Close() })

	abs := filepath.Join(fsys.Dir(), "tasks.json")
	require.NoError(t, fsys.WriteFile(abs, `[{"id":1}]`))

	onDisk, err := os.ReadFile(filepath.Join(dir, "tasks.json"))
	require.NoError(t, err)
	require.Equal(t, `[{"id":1}]`, string(onDisk))

	got, err := fsys.ReadFile("tasks.json")
	require.NoError(t, err)
	require.Equal(t, `[{"id":1}]`, got)

	_, err = fsys.ReadFile("missing.json")
	require.ErrorIs(t, err, fs.ErrNotExist)

	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	entries, err := fsys.ListDirectory(fsys.Dir())
	require.NoError(t, err)
	require.Equal(t, []Entry{{Name: "sub", Dir: true}, {Name: "tasks.json"}}, entries)
}

func TestDirFS_RejectsEscapes(t *testing.T) {
	fsys, err := NewDirFS(t.TempDir())
	require.NoError(t, err)

	t.Cleanup(func() { _ = fsys.Close() })

	_, err = fsys.ReadFile("../outside.json")
	require.ErrorIs(t, err, ErrAccessDenied)

	err = fsys.WriteFile("/etc/passwd", "x")
	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestFsErrorResult(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code errors.ErrorCode
	}{
		{name: "not exist", err: &fs.PathError{Op: "open", Path: "a", Err: fs.ErrNotExist}, code: errors.CodeNotFound},
		{name: "denied", err: ErrAccessDenied, code: errors.CodeAccessDenied},
		{name: "permission", err: fs.ErrPermission, code: errors.CodeAccessDenied},
		{name: "other", err: fs.ErrClosed, code: errors.CodeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := fsErrorResult("open", "a", tt.err)

			require.True(t, res.IsError)
			require.Equal(t, map[string]any{"code": string(tt.code)}, res.StructuredContent)
		})
	}
}

func TestStringSchema(t *testing.T) {
	schema := StringSchema("path", "content")

	require.Equal(t, "object", schema.Type)
	require.Equal(t, []string{"content", "path"}, schema.Required)
	require.Equal(t, "string", schema.Properties["path"].Type)
	require.Equal(t, "string", schema.Properties["content"].Type)
}

func TestResultHelpers(t *testing.T) {
	textResult := TextResult("ok")
	require.False(t, textResult.IsError)
	require.Len(t, textResult.Content, 1)

	errorResult := ErrorResult("failed")
	require.True(t, errorResult.IsError)
	require.Nil(t, errorResult.StructuredContent)

	coded := CodedErrorResult(errors.CodeNotFound, "gone")
	require.True(t, coded.IsError)
	require.Equal(t, map[string]any{"code": "not_found"}, coded.StructuredContent)
}

func TestParseArguments(t *testing.T) {
	t.Run("nil request and empty args return empty map", func(t *testing.T) {
		args, err := ParseArguments(nil)
		require.NoError(t, err)
		require.Empty(t, args)

		args, err = ParseArguments(&mcpgo.CallToolRequest{Params: &mcpgo.CallToolParamsRaw{}})
		require.NoError(t, err)
		require.Empty(t, args)
	})

	t.Run("valid arguments are parsed", func(t *testing.T) {
		req := &mcpgo.CallToolRequest{
			Params: &mcpgo.CallToolParamsRaw{
				Arguments: []byte(`{"path":"/tmp/tasks.json","content":"[]"}`),
			},
		}

		args, err := ParseArguments(req)
		require.NoError(t, err)
		require.Equal(t, "/tmp/tasks.json", args["path"])
	})

	t.Run("invalid json is an error", func(t *testing.T) {
		req := &mcpgo.CallToolRequest{
			Params: &mcpgo.CallToolParamsRaw{Arguments: []byte(`{`)},
		}

		_, err := ParseArguments(req)
		require.Error(t, err)
	})
}

func TestStringArg(t *testing.T) {
	_, err := stringArg(map[string]any{}, "path")
	require.ErrorContains(t, err, "missing")

	_, err = stringArg(map[string]any{"path": 3.0}, "path")
	require.ErrorContains(t, err, "must be a string")

	got, err := stringArg(map[string]any{"path": "a"}, "path")
	require.NoError(t, err)
	require.Equal(t, "a", got)
}
