// read.go implements read-only netlist operations.

package document

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jpl-au/quilter/internal/diff"
	"github.com/jpl-au/quilter/internal/netlist"
	"github.com/jpl-au/quilter/internal/store"
)

// Get returns a stored netlist.
func (s *Service) Get(ctx context.Context, user, filename string) (*store.Netlist, error) {
	user, filename, err := s.key(user, filename)
	if err != nil {
		return nil, err
	}
	return s.store.Get(ctx, user, filename)
}

// Exists reports whether the user holds a file of that name.
func (s *Service) Exists(ctx context.Context, user, filename string) (bool, error) {
	user, filename, err := s.key(user, filename)
	if err != nil {
		return false, err
	}
	return s.store.Exists(ctx, user, filename)
}

// List returns a user's netlists ordered by filename.
func (s *Service) List(ctx context.Context, user string) ([]store.Netlist, error) {
	return s.store.ListByUser(ctx, user)
}

// Users returns every user holding at least one netlist.
func (s *Service) Users(ctx context.Context) ([]string, error) {
	return s.store.Users(ctx)
}

// Count returns how many netlists a user holds. Empty user counts all.
func (s *Service) Count(ctx context.Context, user string) (int64, error) {
	return s.store.Count(ctx, user)
}

// Diff compares a stored netlist with another stored netlist or a file.
func (s *Service) Diff(ctx context.Context, user, filename string, opts diff.Options) (diff.Result, error) {
	n, err := s.Get(ctx, user, filename)
	if err != nil {
		return diff.Result{}, fmt.Errorf("reading %s: %w", filename, err)
	}
	oldLabel := user + "/" + filename

	switch {
	case opts.Other != "":
		other, err := s.Get(ctx, user, opts.Other)
		if err != nil {
			return diff.Result{}, fmt.Errorf("reading %s: %w", opts.Other, err)
		}
		return diff.Compute(indent(n.Content), indent(other.Content), oldLabel, user+"/"+opts.Other), nil
	case opts.FileContent != "":
		label := opts.FileLabel
		if label == "" {
			label = "(file)"
		}
		return diff.Compute(indent(n.Content), indent(opts.FileContent), oldLabel, label), nil
	default:
		return diff.Result{}, fmt.Errorf("nothing to compare %s with", filename)
	}
}

// indent re-formats JSON content with two-space indentation and sorted
// keys. Numbers keep their original text. Content that does not parse is
// returned unchanged.
func indent(content string) string {
	v, err := netlist.Decode(content)
	if err != nil {
		return content
	}
	var b strings.Builder
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return content
	}
	return b.String()
}
