// mcp.go defines types for MCP tool registration by extensions.
//
// Separated from extension.go because not every extension exposes tools;
// some only provide CLI commands.

package extension

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// MCPTool pairs an MCP tool definition with its handler.
type MCPTool struct {
	Tool    mcp.Tool
	Handler MCPHandler
}

// MCPHandler processes MCP tool requests. extCtx carries the netlist
// service; ctx carries cancellation from the client.
type MCPHandler func(ctx context.Context, extCtx Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)
