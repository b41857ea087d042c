// tools_init.go implements the MCP tool for initialising a workspace.
//
// This tool works without an existing store, allowing LLMs to bootstrap a
// workspace. Other storage tools require it first.

package mcp

import (
	"context"
	"log/slog"

	"github.com/jpl-au/quilter/internal/config"
	"github.com/jpl-au/quilter/internal/document"
	"github.com/jpl-au/quilter/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
)

// initStore handles quilter_init tool calls.
func (h *handlers) initStore(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if h.svc != nil {
		return mcp.NewToolResultError("store already initialised"), nil
	}
	if h.cfg != nil && h.cfg.Backend() == config.BackendMongo {
		return mcp.NewToolResultError("store.backend is mongo; nothing to initialise"), nil
	}

	local := getBool(req, "local", false)

	err := document.Init(false, h.db, local, h.dir)

	log.Event("mcp:init", "init").Author(getString(req, "author", "mcp")).Detail("local", local).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	svc, err := document.New(h.db, h.dir)
	if err != nil {
		return mcp.NewToolResultError("init succeeded but failed to open store: " + err.Error()), nil
	}
	svc.SetStrict(h.strict)
	h.setService(svc)

	slog.Info("store initialised", "local", local)

	if local {
		return mcp.NewToolResultText("store initialised (local - gitignored)"), nil
	}
	return mcp.NewToolResultText("store initialised"), nil
}
