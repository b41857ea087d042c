// tools_netlists.go implements the MCP tools over stored netlists.
//
// Tools delegate to the same packages as the CLI (ls, the service) so an
// LLM sees the same ordering and rules as a terminal user. Failures come
// back as tool error results the LLM can read and act on, never as
// protocol errors.

package mcp

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/jpl-au/quilter/internal/log"
	"github.com/jpl-au/quilter/internal/ls"
	"github.com/jpl-au/quilter/internal/netlist"
	"github.com/jpl-au/quilter/internal/service"
	"github.com/mark3labs/mcp-go/mcp"
)

// validateNetlist handles quilter_validate. Works without a store.
func (h *handlers) validateNetlist(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError("content is required"), nil //nolint:nilerr
	}
	strict := getBool(req, "strict", h.strict)

	report := netlist.Check(content, netlist.Options{Strict: strict})

	log.Event("mcp:validate", "validate").
		Author(getString(req, "author", "mcp")).
		Outcome(report.Valid, len(report.Errors)).
		Detail("strict", strict).
		Write(nil)

	return jsonResult(report)
}

// uploadNetlist handles quilter_upload. Rejections (invalid JSON, duplicate
// filename) return the upload result as an error result so the LLM sees the
// same message and diagnostics the web client does.
func (h *handlers) uploadNetlist(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if result := h.requireInit(); result != nil {
		return result, nil
	}
	email, filename, errResult := requireKey(req)
	if errResult != nil {
		return errResult, nil
	}
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError("content is required"), nil //nolint:nilerr
	}

	l := log.Event("mcp:upload", "upload").Author(getString(req, "author", "mcp")).Netlist(email, filename)

	res, err := h.svc.Upload(ctx, email, filename, []byte(content))
	switch {
	case errors.Is(err, service.ErrInvalidJSON), errors.Is(err, service.ErrDuplicate):
		l.Detail("message", res.Message).Write(err)
		result, jerr := jsonResult(res)
		if result != nil {
			result.IsError = true
		}
		return result, jerr
	case err != nil:
		l.Write(err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	l.Outcome(res.Valid, len(res.Errors)).Write(nil)
	return jsonResult(res)
}

// listNetlists handles quilter_list.
func (h *handlers) listNetlists(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if result := h.requireInit(); result != nil {
		return result, nil
	}

	email := getString(req, "email", "")
	opts := ls.Options{
		User:        email,
		AllUsers:    email == "",
		InvalidOnly: getBool(req, "invalid_only", false),
	}
	sortBy := getString(req, "sort", "")
	if sortBy != "" && sortBy != string(ls.SortName) && sortBy != string(ls.SortTime) {
		return mcp.NewToolResultError(fmt.Sprintf("invalid sort field %q: must be 'name' or 'time'", sortBy)), nil
	}
	opts.Sort = ls.SortField(sortBy)

	var err error
	l := log.Event("mcp:list", "list").Author(getString(req, "author", "mcp")).Detail("email", email)
	defer func() { l.Write(err) }()

	result, err := ls.Run(ctx, io.Discard, h.svc, opts)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	l.Detail("count", result.Count())

	return jsonResult(map[string]any{"netlists": result.ToJSON()})
}

// getNetlist handles quilter_get.
func (h *handlers) getNetlist(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if result := h.requireInit(); result != nil {
		return result, nil
	}
	email, filename, errResult := requireKey(req)
	if errResult != nil {
		return errResult, nil
	}

	n, err := h.svc.Get(ctx, email, filename)
	log.Event("mcp:get", "read").Author(getString(req, "author", "mcp")).Netlist(email, filename).Write(err)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(n.ToJSON())
}

// deleteNetlist handles quilter_delete.
func (h *handlers) deleteNetlist(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if result := h.requireInit(); result != nil {
		return result, nil
	}
	email, filename, errResult := requireKey(req)
	if errResult != nil {
		return errResult, nil
	}

	err := h.svc.Delete(ctx, email, filename)
	log.Event("mcp:delete", "delete").Author(getString(req, "author", "mcp")).Netlist(email, filename).Write(err)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]string{"message": "Netlist deleted"})
}

// requireKey extracts the email and filename every per-netlist tool needs.
func requireKey(req mcp.CallToolRequest) (string, string, *mcp.CallToolResult) {
	email, err := req.RequireString("email")
	if err != nil || email == "" {
		return "", "", mcp.NewToolResultError("email is required")
	}
	filename, err := req.RequireString("filename")
	if err != nil || filename == "" {
		return "", "", mcp.NewToolResultError("filename is required")
	}
	return email, filename, nil
}
