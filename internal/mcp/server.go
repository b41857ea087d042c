// Package mcp implements the Model Context Protocol server, exposing netlist
// validation and storage to LLMs over stdio.
package mcp

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/jpl-au/quilter/extension"
	"github.com/jpl-au/quilter/internal/config"
	"github.com/jpl-au/quilter/internal/document"
	"github.com/jpl-au/quilter/internal/log"
	"github.com/jpl-au/quilter/internal/repo"
	"github.com/jpl-au/quilter/internal/service"
	"github.com/jpl-au/quilter/internal/version"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ErrNotInitialised is returned by tools when no workspace exists yet.
// The LLM should call quilter_init first.
const ErrNotInitialised = "store not initialised - call quilter_init first"

// Serve starts the MCP server over stdio.
//
// The server starts even when no SQLite workspace exists, so an LLM can
// call quilter_init instead of failing with an opaque error. Validation
// never needs a store.
func Serve(db, dir string, strict bool) error {
	// stdout is reserved for JSON-RPC messages.
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	h := &handlers{db: db, dir: dir, cfg: cfg, strict: strict}

	svc, err := document.New(db, dir)
	if err != nil && !errors.Is(err, repo.ErrNotInitialised) {
		slog.Error("failed to open store", "error", err)
		return err
	}
	if err == nil {
		svc.SetStrict(strict)
		h.setService(svc)
		defer svc.Close()
	} else {
		slog.Info("quilter not initialised, starting without a store - call quilter_init to create one")
	}

	s := newServer(h)
	slog.Info("quilter MCP server ready", "version", version.Short(), "transport", "stdio")

	err = server.ServeStdio(s)
	if errors.Is(err, context.Canceled) {
		slog.Info("server stopped")
		return nil
	}
	return err
}

// handlers provides MCP request handlers with access to the netlist
// service. svc is nil until a store exists.
type handlers struct {
	db     string
	dir    string
	cfg    *config.Config
	strict bool
	svc    service.Service
	extCtx extension.Context
}

// setService installs svc and the extension context built around it.
func (h *handlers) setService(svc *document.Service) {
	h.svc = svc
	h.extCtx = extension.NewContext(svc, h.cfg)
	svc.SetExtensionContext(h.extCtx)
	log.SetProject(svc.Location())
}

// requireInit returns an error result if no store is open.
func (h *handlers) requireInit() *mcp.CallToolResult {
	if h.svc == nil {
		return mcp.NewToolResultError(ErrNotInitialised)
	}
	return nil
}

// newServer builds the MCP server with core tools, resources and every
// tool contributed by extensions.
func newServer(h *handlers) *server.MCPServer {
	s := server.NewMCPServer(
		"quilter",
		version.Short(),
		server.WithResourceCapabilities(true, false),
		server.WithToolCapabilities(true),
	)
	registerResources(s, h)
	registerTools(s, h)
	registerExtensionTools(s, h)
	return s
}

// registerResources adds URI-based access to stored netlists.
func registerResources(s *server.MCPServer, h *handlers) {
	s.AddResourceTemplate(
		mcp.NewResourceTemplate(
			"quilter://netlists/{email}/{filename}",
			"Netlist",
			mcp.WithTemplateDescription("Read a stored netlist document as uploaded"),
			mcp.WithTemplateMIMEType("application/json"),
		),
		h.readNetlist,
	)
}

// registerTools exposes core netlist operations.
func registerTools(s *server.MCPServer, h *handlers) {
	s.AddTool(
		mcp.NewTool("quilter_init",
			mcp.WithDescription("Initialise a quilter workspace in the current directory. Call this first if other tools return 'store not initialised'."),
			mcp.WithBoolean("local", mcp.Description("If true, the database is gitignored")),
		),
		h.initStore,
	)

	s.AddTool(
		mcp.NewTool("quilter_validate",
			mcp.WithDescription("Validate a netlist JSON document without storing it. Returns {valid, errors}."),
			mcp.WithString("content", mcp.Required(), mcp.Description("Netlist JSON text")),
			mcp.WithBoolean("strict", mcp.Description("Also report component ids declared more than once")),
		),
		h.validateNetlist,
	)

	s.AddTool(
		mcp.NewTool("quilter_upload",
			mcp.WithDescription("Validate and store a netlist for a user. Netlists with problems are stored flagged invalid; invalid JSON and duplicate filenames are rejected."),
			mcp.WithString("email", mcp.Required(), mcp.Description("Owner email")),
			mcp.WithString("filename", mcp.Required(), mcp.Description("Filename to store under")),
			mcp.WithString("content", mcp.Required(), mcp.Description("Netlist JSON text")),
		),
		h.uploadNetlist,
	)

	s.AddTool(
		mcp.NewTool("quilter_list",
			mcp.WithDescription("List a user's stored netlists, or every user's when email is empty"),
			mcp.WithString("email", mcp.Description("Owner email (empty for all users)")),
			mcp.WithBoolean("invalid_only", mcp.Description("Only netlists that failed validation")),
			mcp.WithString("sort", mcp.Description("Sort by 'name' or 'time'")),
		),
		h.listNetlists,
	)

	s.AddTool(
		mcp.NewTool("quilter_get",
			mcp.WithDescription("Read a stored netlist with its validation result"),
			mcp.WithString("email", mcp.Required(), mcp.Description("Owner email")),
			mcp.WithString("filename", mcp.Required(), mcp.Description("Stored filename")),
		),
		h.getNetlist,
	)

	s.AddTool(
		mcp.NewTool("quilter_delete",
			mcp.WithDescription("Permanently delete one stored netlist"),
			mcp.WithString("email", mcp.Required(), mcp.Description("Owner email")),
			mcp.WithString("filename", mcp.Required(), mcp.Description("Stored filename")),
		),
		h.deleteNetlist,
	)

	s.AddTool(
		mcp.NewTool("quilter_guide",
			mcp.WithDescription("Get help content for quilter commands and the netlist format"),
			mcp.WithString("topic", mcp.Description("Guide topic (e.g., 'netlist', 'upload') or empty for the index")),
		),
		h.getGuide,
	)
}

// registerExtensionTools adds the tools extensions contribute. Their
// handlers receive the extension context; until a store exists they get
// the not-initialised error.
func registerExtensionTools(s *server.MCPServer, h *handlers) {
	for _, ext := range extension.All() {
		for _, t := range ext.MCPTools() {
			handler := t.Handler
			s.AddTool(t.Tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				if result := h.requireInit(); result != nil {
					return result, nil
				}
				return handler(ctx, h.extCtx, req)
			})
		}
	}
}
