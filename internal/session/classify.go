package session

import (
	"context"
	stderrors "errors"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/jsonrpc"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wagiedev/mcp-taskmanager-go/internal/errors"
)

// Substrings that identify a failure class in free-form error text, for
// servers that do not send a structured code.
var (
	notFoundMarkers     = []string{"enoent", "no such file", "not found", "does not exist"}
	accessDeniedMarkers = []string{"access denied", "eacces", "permission denied", "outside allowed"}
	invalidArgMarkers   = []string{"invalid arguments", "missing required argument"}
	transportMarkers    = []string{"connection closed", "client is closing", "broken pipe", "closed pipe"}
)

// classifyToolError picks the code for a result the server flagged as an error.
// A structured {"code": "..."} wins over text matching.
func classifyToolError(result *ToolCallResult) errors.ErrorCode {
	if m, ok := result.Structured.(map[string]any); ok {
		if code, ok := m["code"].(string); ok && code != "" {
			return errors.ErrorCode(code)
		}
	}

	var text strings.Builder
	for _, block := range result.Content {
		text.WriteString(strings.ToLower(block.Text))
		text.WriteByte('\n')
	}

	switch lower := text.String(); {
	case containsAny(lower, accessDeniedMarkers):
		return errors.CodeAccessDenied
	case containsAny(lower, notFoundMarkers):
		return errors.CodeNotFound
	case containsAny(lower, invalidArgMarkers):
		return errors.CodeInvalidArguments
	default:
		return errors.CodeUnknown
	}
}

// isRPCError reports whether the server answered with a JSON-RPC error.
// Such a reply proves the channel works, whatever the message says.
func isRPCError(err error) bool {
	_, ok := stderrors.AsType[*jsonrpc.Error](err)

	return ok
}

// isTransportFailure reports whether err means the channel is gone rather
// than that the server answered with an error.
func isTransportFailure(err error) bool {
	switch {
	case stderrors.Is(err, mcp.ErrConnectionClosed),
		stderrors.Is(err, io.EOF),
		stderrors.Is(err, io.ErrUnexpectedEOF),
		stderrors.Is(err, io.ErrClosedPipe),
		stderrors.Is(err, os.ErrClosed),
		stderrors.Is(err, context.Canceled),
		stderrors.Is(err, context.DeadlineExceeded):
		return true
	}

	if _, ok := stderrors.AsType[*exec.ExitError](err); ok {
		return true
	}

	return containsAny(strings.ToLower(err.Error()), transportMarkers)
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}

	return false
}
