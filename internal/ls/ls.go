// Package ls lists stored netlists with sorting and filtering.
package ls

import (
	"context"
	"io"
	"sort"

	"github.com/jpl-au/quilter/internal/format"
	"github.com/jpl-au/quilter/internal/service"
	"github.com/jpl-au/quilter/internal/store"
)

// SortField specifies how to sort results.
type SortField string

const (
	SortNone SortField = ""
	SortName SortField = "name"
	SortTime SortField = "time" // newest first
)

// Options configures a list operation.
type Options struct {
	User        string    // Owner to list (ignored with AllUsers)
	AllUsers    bool      // List every owner's netlists, grouped by owner
	InvalidOnly bool      // Only netlists that failed validation
	Long        bool      // Long format with diagnostics count and size
	Sort        SortField // Sort field (name, time)
	Reverse     bool      // Reverse sort order
}

// Result contains the outcome of a list operation.
type Result struct {
	Netlists []store.Netlist
}

// Count returns the number of netlists in the result.
func (r Result) Count() int {
	return len(r.Netlists)
}

// ToJSON converts the result to the API representation.
func (r Result) ToJSON() []store.NetlistJSON {
	out := make([]store.NetlistJSON, len(r.Netlists))
	for i := range r.Netlists {
		out[i] = r.Netlists[i].ToJSON()
	}
	return out
}

// Run lists netlists and writes formatted output to w.
func Run(ctx context.Context, w io.Writer, svc service.Service, opts Options) (Result, error) {
	var result Result

	users := []string{opts.User}
	if opts.AllUsers {
		var err error
		users, err = svc.Users(ctx)
		if err != nil {
			return result, err
		}
	}

	var netlists []store.Netlist
	for _, u := range users {
		list, err := svc.List(ctx, u)
		if err != nil {
			return result, err
		}
		netlists = append(netlists, list...)
	}

	if opts.InvalidOnly {
		filtered := netlists[:0]
		for _, n := range netlists {
			if !n.Valid {
				filtered = append(filtered, n)
			}
		}
		netlists = filtered
	}

	// Ties break on owner then filename so output is stable across runs.
	less := func(a, b store.Netlist) bool {
		if a.User != b.User {
			return a.User < b.User
		}
		return a.Filename < b.Filename
	}
	switch opts.Sort {
	case SortName:
		sort.SliceStable(netlists, func(i, j int) bool {
			if opts.Reverse {
				return less(netlists[j], netlists[i])
			}
			return less(netlists[i], netlists[j])
		})
	case SortTime:
		sort.SliceStable(netlists, func(i, j int) bool {
			a, b := netlists[i], netlists[j]
			if a.CreatedAt == b.CreatedAt {
				if opts.Reverse {
					return less(b, a)
				}
				return less(a, b)
			}
			if opts.Reverse {
				return a.CreatedAt < b.CreatedAt
			}
			return a.CreatedAt > b.CreatedAt
		})
	}

	result.Netlists = netlists

	switch {
	case opts.AllUsers:
		return result, format.Tree(w, netlists)
	case opts.Long:
		return result, format.Long(w, netlists)
	default:
		return result, format.List(w, netlists)
	}
}
