// tools_util.go provides helpers for MCP tool parameter extraction.
//
// Extraction is permissive: a missing or mistyped optional parameter falls
// back to its default instead of failing the call. LLMs often omit optional
// parameters or pass "true" as a string.

package mcp

import (
	"github.com/jpl-au/quilter/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
)

// getString returns a string parameter, or def when missing.
func getString(req mcp.CallToolRequest, name, def string) string {
	if v, err := req.RequireString(name); err == nil {
		return v
	}
	return def
}

// getBool returns a boolean parameter, or def when missing or not a JSON
// boolean.
func getBool(req mcp.CallToolRequest, name string, def bool) bool {
	args, ok := req.Params.Arguments.(map[string]any)
	if !ok {
		return def
	}
	if v, ok := args[name].(bool); ok {
		return v
	}
	return def
}

// jsonResult serialises v as indented JSON in a text result. Marshal
// failures become tool errors.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := store.MarshalJSON(v)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
