package session

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"github.com/wagiedev/mcp-taskmanager-go/internal/config"
	"github.com/wagiedev/mcp-taskmanager-go/internal/errors"
	fsserver "github.com/wagiedev/mcp-taskmanager-go/internal/mcp"
	"github.com/wagiedev/mcp-taskmanager-go/internal/subprocess"
)

const (
	// helperRootEnv turns the test binary into a filesystem server rooted
	// at the named directory.
	helperRootEnv = "TASKMANAGER_HELPER_ROOT"
	// helperCrashEnv makes the helper server exit inside read_file.
	helperCrashEnv = "TASKMANAGER_HELPER_CRASH"
)

func TestMain(m *testing.M) {
	if root := os.Getenv(helperRootEnv); root != "" {
		os.Exit(runHelperServer(root))
	}

	os.Exit(m.Run())
}

func runHelperServer(root string) int {
	fsys, err := fsserver.NewDirFS(root)
	if err != nil {
		return 2
	}
	defer fsys.Close()

	var served fsserver.FileSystem = fsys
	if os.Getenv(helperCrashEnv) != "" {
		served = crashingFS{fsys}
	}

	server := fsserver.NewFilesystemServer(served, nopLogger())
	_ = server.Run(context.Background(), &mcp.StdioTransport{})

	return 0
}

// crashingFS kills the process on read, simulating a server that dies mid-call.
type crashingFS struct {
	fsserver.FileSystem
}

func (crashingFS) ReadFile(string) (string, error) {
	os.Exit(3)

	return "", nil
}

func helperOptions(t *testing.T, root string, extraEnv map[string]string) *config.Options {
	t.Helper()

	env := map[string]string{helperRootEnv: root}
	for k, v := range extraEnv {
		env[k] = v
	}

	timeout := 30 * time.Second

	return &config.Options{
		Logger:            nopLogger(),
		Command:           os.Args[0],
		Args:              []string{"-test.run=^$"},
		Env:               env,
		InitializeTimeout: &timeout,
	}
}

func TestSubprocessSession(t *testing.T) {
	root := t.TempDir()
	options := helperOptions(t, root, nil)

	s := New(options, subprocess.NewTransport(nopLogger(), options))
	ctx := context.Background()

	require.NoError(t, s.Start(ctx))

	t.Cleanup(func() { _ = s.Close() })

	require.Equal(t, fsserver.ServerName, s.ServerInfo().Name)

	tools, err := s.ListTools(ctx)
	require.NoError(t, err)
	require.Len(t, tools, 3)

	path := filepath.Join(root, "tasks.json")

	_, err = s.CallTool(ctx, fsserver.ToolReadFile, map[string]any{"path": path})

	remote, ok := stderrors.AsType[*errors.RemoteToolError](err)
	require.True(t, ok, "expected RemoteToolError, got %T", err)
	require.True(t, remote.NotFound())

	_, err = s.CallTool(ctx, fsserver.ToolWriteFile, map[string]any{"path": path, "content": "[]"})
	require.NoError(t, err)

	onDisk, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "[]", string(onDisk))

	res, err := s.CallTool(ctx, fsserver.ToolReadFile, map[string]any{"path": path})
	require.NoError(t, err)

	text, _ := res.FirstText()
	require.Equal(t, "[]", text)

	_, err = s.CallTool(ctx, fsserver.ToolReadFile, map[string]any{"path": "/etc/passwd"})

	remote, ok = stderrors.AsType[*errors.RemoteToolError](err)
	require.True(t, ok, "expected RemoteToolError, got %T", err)
	require.Equal(t, errors.CodeAccessDenied, remote.Code)
}

func TestSubprocessSession_ServerDies(t *testing.T) {
	options := helperOptions(t, t.TempDir(), map[string]string{helperCrashEnv: "1"})

	s := New(options, subprocess.NewTransport(nopLogger(), options))
	require.NoError(t, s.Start(context.Background()))

	t.Cleanup(func() { _ = s.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := s.CallTool(ctx, fsserver.ToolReadFile, map[string]any{"path": "tasks.json"})

	_, ok := stderrors.AsType[*errors.TransportError](err)
	require.True(t, ok, "expected TransportError, got %T: %v", err, err)
}

func TestSubprocessSession_CommandNotFound(t *testing.T) {
	options := &config.Options{Command: "definitely-not-an-mcp-server-binary"}

	s := New(options, subprocess.NewTransport(nopLogger(), options))

	err := s.Start(context.Background())

	_, ok := stderrors.AsType[*errors.ConnectionError](err)
	require.True(t, ok, "expected ConnectionError, got %T", err)

	_, ok = stderrors.AsType[*errors.CommandNotFoundError](err)
	require.True(t, ok, "expected wrapped CommandNotFoundError")
}
