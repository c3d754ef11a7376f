package types

import (
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// MCPToolDefinition is an alias to the SDK Tool type.
type MCPToolDefinition = mcp.Tool

// MCPToolCallResult is the uniform envelope every tool returns: the raw
// vendor JSON as text content, with IsError flagging failures.
type MCPToolCallResult struct {
	Content []MCPContent `json:"content"`
	IsError bool         `json:"isError,omitempty"`
}

// MCPContent is a single content item in the result envelope.
type MCPContent struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// NewToolCallResult wraps a JSON payload in the success envelope.
func NewToolCallResult(payload json.RawMessage) *MCPToolCallResult {
	return &MCPToolCallResult{
		Content: []MCPContent{{Type: "text", Text: string(payload)}},
	}
}

// NewToolCallError wraps an error message in the failure envelope.
func NewToolCallError(msg string) *MCPToolCallResult {
	return &MCPToolCallResult{
		Content: []MCPContent{{Type: "text", Text: msg}},
		IsError: true,
	}
}

// SDKResult converts the envelope into the SDK's result type for the
// stdio/HTTP MCP transports.
func (r *MCPToolCallResult) SDKResult() *mcp.CallToolResult {
	out := &mcp.CallToolResult{IsError: r.IsError}
	for _, c := range r.Content {
		out.Content = append(out.Content, &mcp.TextContent{Text: c.Text})
	}
	return out
}

// APIError is the structured error object returned at the REST boundary.
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// APIErrorBody is the top-level REST error payload.
type APIErrorBody struct {
	Error APIError `json:"error"`
}

// NewAPIErrorBody builds the REST error payload for err using the taxonomy
// code mapping.
func NewAPIErrorBody(err error) APIErrorBody {
	return APIErrorBody{Error: APIError{Code: ErrorCode(err), Message: err.Error()}}
}
