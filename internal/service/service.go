// Package service defines the netlist operations shared by the CLI, the
// HTTP server and the MCP server. Callers depend on this interface rather
// than on document.Service so they can be tested against fakes.
package service

import (
	"context"

	"github.com/jpl-au/quilter/internal/diff"
	"github.com/jpl-au/quilter/internal/store"
)

// Messages reported in UploadResult.Message. Web clients match on these.
const (
	MsgUploadSuccessful  = "Upload successful"
	MsgUploadFailed      = "Upload failed"
	MsgInvalidJSON       = "Invalid JSON"
	MsgDuplicateFilename = "Duplicate filename"
)

// UploadResult describes what happened to an uploaded file.
//
// Content echoes the uploaded text so clients can display it next to the
// diagnostics. It is empty for duplicates, which are rejected before the
// content is looked at.
type UploadResult struct {
	Filename string   `json:"filename"`
	Message  string   `json:"message"`
	Content  string   `json:"content,omitempty"`
	Errors   []string `json:"errors"`

	// Valid is true when the document validated cleanly.
	Valid bool `json:"-"`
	// Stored is true when the document was persisted.
	Stored bool `json:"-"`
}

// Service defines all netlist operations.
//
// Obtain one with document.New and always defer Close.
//
//	svc, err := document.New("")
//	if err != nil {
//	    return err
//	}
//	defer svc.Close()
//	res, err := svc.Upload(ctx, "alice@example.com", "divider.json", data)
type Service interface {
	// Close releases the backend connection.
	Close() error

	// Upload validates content and stores it under (user, filename).
	//
	// The error is ErrDecode for bytes that are not UTF-8, ErrInvalidJSON
	// when the content does not parse, and ErrDuplicate when the user already
	// holds a file of that name. In the last two cases the result is still
	// returned and nothing is stored. A netlist that parses but has
	// diagnostics is stored with Valid false and no error.
	Upload(ctx context.Context, user, filename string, content []byte) (*UploadResult, error)

	// Get returns a stored netlist, or store.ErrNotFound.
	Get(ctx context.Context, user, filename string) (*store.Netlist, error)

	// Exists reports whether the user holds a file of that name.
	Exists(ctx context.Context, user, filename string) (bool, error)

	// List returns a user's netlists ordered by filename.
	List(ctx context.Context, user string) ([]store.Netlist, error)

	// Users returns every user holding at least one netlist.
	Users(ctx context.Context) ([]string, error)

	// Count returns how many netlists a user holds. Empty user counts all.
	Count(ctx context.Context, user string) (int64, error)

	// Delete permanently removes exactly (user, filename), or returns
	// store.ErrNotFound.
	Delete(ctx context.Context, user, filename string) error

	// Diff compares a stored netlist with another of the user's netlists or
	// with local file content. Both sides are compared in indented form so
	// formatting differences do not show up as changes.
	Diff(ctx context.Context, user, filename string, opts diff.Options) (diff.Result, error)

	// Backend names the active store backend ("sqlite" or "mongo").
	Backend() string
}
