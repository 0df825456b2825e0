package mcp

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wagiedev/mcp-taskmanager-go/internal/errors"
)

// Registry collects tools and their handlers before they are installed into
// an SDK server. It lets the tool set be inspected without a live session.
type Registry struct {
	name    string
	version string
	mu      sync.RWMutex
	tools   map[string]*registeredTool
}

// registeredTool holds tool metadata and handler.
type registeredTool struct {
	tool    *mcp.Tool
	handler mcp.ToolHandler
}

// NewRegistry creates an empty registry for a server with the given identity.
func NewRegistry(name, version string) *Registry {
	return &Registry{
		name:    name,
		version: version,
		tools:   make(map[string]*registeredTool, 4),
	}
}

// AddTool registers a tool. A later registration under the same name wins.
func (r *Registry) AddTool(tool *mcp.Tool, handler mcp.ToolHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tools[tool.Name] = &registeredTool{
		tool:    tool,
		handler: handler,
	}
}

// Server builds an SDK server advertising every registered tool.
func (r *Registry) Server() *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    r.name,
		Version: r.version,
	}, nil)

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, name := range slices.Sorted(maps.Keys(r.tools)) {
		t := r.tools[name]
		server.AddTool(t.tool, t.handler)
	}

	return server
}

// StringSchema creates an object schema whose properties are all required
// strings, which covers every filesystem tool argument.
func StringSchema(names ...string) *jsonschema.Schema {
	properties := make(map[string]*jsonschema.Schema, len(names))
	for _, name := range names {
		properties[name] = &jsonschema.Schema{Type: "string"}
	}

	required := slices.Clone(names)
	slices.Sort(required)

	return &jsonschema.Schema{
		Type:       "object",
		Properties: properties,
		Required:   required,
	}
}

// NewTool creates an mcp.Tool with the given parameters.
func NewTool(name, description string, inputSchema *jsonschema.Schema) *mcp.Tool {
	return &mcp.Tool{
		Name:        name,
		Description: description,
		InputSchema: inputSchema,
	}
}

// TextResult creates a CallToolResult with text content.
func TextResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

// ErrorResult creates a CallToolResult indicating an error.
func ErrorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: message},
		},
		IsError: true,
	}
}

// CodedErrorResult is ErrorResult plus structured content carrying a
// machine-readable error code, so clients need not parse the message.
func CodedErrorResult(code errors.ErrorCode, message string) *mcp.CallToolResult {
	result := ErrorResult(message)
	result.StructuredContent = map[string]any{"code": string(code)}

	return result
}

// ParseArguments unmarshals CallToolRequest arguments into a map.
func ParseArguments(req *mcp.CallToolRequest) (map[string]any, error) {
	if req == nil || req.Params == nil {
		return make(map[string]any), nil
	}

	if len(req.Params.Arguments) == 0 {
		return make(map[string]any), nil
	}

	var args map[string]any
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return nil, fmt.Errorf("failed to unmarshal arguments: %w", err)
	}

	return args, nil
}

// stringArg extracts a required string argument.
func stringArg(args map[string]any, key string) (string, error) {
	raw, ok := args[key]
	if !ok {
		return "", fmt.Errorf("missing required argument %q", key)
	}

	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("argument %q must be a string, got %T", key, raw)
	}

	return s, nil
}
