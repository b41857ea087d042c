// resources.go implements MCP resource handlers for netlist access.
//
// Resources give read-only access by URI so a client can load a netlist
// into context without a tool call. The content is returned as uploaded.

package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

var (
	// ErrInvalidURI indicates a malformed resource URI.
	ErrInvalidURI = errors.New("invalid URI")
)

const netlistURIPrefix = "quilter://netlists/"

// readNetlist handles quilter://netlists/{email}/{filename} requests.
func (h *handlers) readNetlist(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	if h.svc == nil {
		return nil, errors.New(ErrNotInitialised)
	}

	email, filename, err := parseNetlistURI(req.Params.URI)
	if err != nil {
		return nil, err
	}

	n, err := h.svc.Get(ctx, email, filename)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     n.Content,
		},
	}, nil
}

// parseNetlistURI extracts the owner and filename. Both segments may be
// percent-encoded.
func parseNetlistURI(uri string) (email, filename string, err error) {
	rest, ok := strings.CutPrefix(uri, netlistURIPrefix)
	if !ok {
		return "", "", fmt.Errorf("%w: %s", ErrInvalidURI, uri)
	}
	e, f, ok := strings.Cut(rest, "/")
	if !ok || e == "" || f == "" || strings.Contains(f, "/") {
		return "", "", fmt.Errorf("%w: expected %s{email}/{filename}, got %s", ErrInvalidURI, netlistURIPrefix, uri)
	}
	if email, err = url.PathUnescape(e); err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrInvalidURI, err)
	}
	if filename, err = url.PathUnescape(f); err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrInvalidURI, err)
	}
	return email, filename, nil
}
