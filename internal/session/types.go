package session

import (
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ToolDescriptor describes a tool advertised by the server.
type ToolDescriptor struct {
	Name        string
	Title       string
	Description string
	InputSchema map[string]any
}

// ContentBlock is one content item of a tool result. Text holds the payload
// of text blocks, the name of resource links and the text of embedded
// resources; binary payloads are not retained.
type ContentBlock struct {
	Type     string
	Text     string
	MIMEType string
	URI      string
}

// ToolCallResult is the outcome of a successful tool call.
type ToolCallResult struct {
	Content    []ContentBlock
	Structured any
	IsError    bool
}

// FirstText returns the text of the first text block.
func (r *ToolCallResult) FirstText() (string, bool) {
	if r == nil {
		return "", false
	}

	for _, block := range r.Content {
		if block.Type == "text" {
			return block.Text, true
		}
	}

	return "", false
}

// ServerInfo identifies the connected server.
type ServerInfo struct {
	Name            string
	Version         string
	ProtocolVersion string
}

// describeTool converts an SDK tool into a ToolDescriptor. The input schema
// arrives as whatever the SDK decoded; it is normalized to a plain map.
func describeTool(tool *mcp.Tool) ToolDescriptor {
	desc := ToolDescriptor{
		Name:        tool.Name,
		Title:       tool.Title,
		Description: tool.Description,
	}

	if tool.InputSchema != nil {
		data, err := json.Marshal(tool.InputSchema)
		if err == nil {
			var schema map[string]any
			if json.Unmarshal(data, &schema) == nil {
				desc.InputSchema = schema
			}
		}
	}

	return desc
}

// convertResult converts an SDK tool result.
func convertResult(result *mcp.CallToolResult) *ToolCallResult {
	if result == nil {
		return &ToolCallResult{Content: []ContentBlock{}}
	}

	content := make([]ContentBlock, 0, len(result.Content))
	for _, c := range result.Content {
		switch v := c.(type) {
		case *mcp.TextContent:
			content = append(content, ContentBlock{Type: "text", Text: v.Text})
		case *mcp.ImageContent:
			content = append(content, ContentBlock{Type: "image", MIMEType: v.MIMEType})
		case *mcp.AudioContent:
			content = append(content, ContentBlock{Type: "audio", MIMEType: v.MIMEType})
		case *mcp.ResourceLink:
			content = append(content, ContentBlock{Type: "resource_link", Text: v.Name, URI: v.URI})
		case *mcp.EmbeddedResource:
			if v.Resource != nil {
				content = append(content, ContentBlock{
					Type:     "resource",
					Text:     v.Resource.Text,
					MIMEType: v.Resource.MIMEType,
					URI:      v.Resource.URI,
				})
			}
		}
	}

	return &ToolCallResult{
		Content:    content,
		Structured: result.StructuredContent,
		IsError:    result.IsError,
	}
}
