// Package format renders netlists and validation diagnostics for the
// terminal. Commands decide what to show; this package decides how.
package format

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/jpl-au/quilter/internal/store"
)

// humanSize formats a byte count as human-readable (e.g., "1.2K", "3.4M").
func humanSize(bytes int64) string {
	const (
		_        = iota
		KB int64 = 1 << (10 * iota)
		MB
		GB
	)
	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.1fG", float64(bytes)/float64(GB))
	case bytes >= MB:
		return fmt.Sprintf("%.1fM", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.1fK", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%dB", bytes)
	}
}

func status(n store.Netlist) string {
	if n.Valid {
		return "valid"
	}
	return "invalid"
}

// List prints one netlist per line: key, status, filename.
func List(w io.Writer, netlists []store.Netlist) error {
	for _, n := range netlists {
		fmt.Fprintf(w, "%s  %-7s  %s\n", n.Key, status(n), n.Filename)
	}
	return nil
}

// Long prints netlists as a table with diagnostic counts, size and upload
// time. Fixed-width columns come first; the filename is last.
func Long(w io.Writer, netlists []store.Netlist) error {
	if len(netlists) == 0 {
		return nil
	}

	fmt.Fprintf(w, "%-8s  %-7s  %6s  %6s  %-16s  %s\n", "KEY", "STATUS", "ERRORS", "SIZE", "UPLOADED", "FILENAME")
	for _, n := range netlists {
		uploaded := time.Unix(n.CreatedAt, 0).Format("2006-01-02 15:04")
		fmt.Fprintf(w, "%-8s  %-7s  %6d  %6s  %-16s  %s\n",
			n.Key, status(n), len(n.Errors), humanSize(int64(len(n.Content))), uploaded, n.Filename)
	}
	return nil
}

// Tree prints netlists grouped by owner.
func Tree(w io.Writer, netlists []store.Netlist) error {
	byUser := make(map[string][]store.Netlist)
	for _, n := range netlists {
		byUser[n.User] = append(byUser[n.User], n)
	}
	users := make([]string, 0, len(byUser))
	for u := range byUser {
		users = append(users, u)
	}
	sort.Strings(users)

	for _, u := range users {
		fmt.Fprintf(w, "%s/\n", u)
		files := byUser[u]
		for i, n := range files {
			connector := "├── "
			if i == len(files)-1 {
				connector = "└── "
			}
			suffix := ""
			if !n.Valid {
				suffix = " [invalid]"
			}
			fmt.Fprintf(w, "%s%s%s\n", connector, n.Filename, suffix)
		}
	}
	return nil
}

// Diagnostics prints the validation outcome for one named input.
//
//	divider.json: ok
//	broken.json: 2 problems
//	  - Net 'VCC' references unknown component 'R9'
//	  - ...
func Diagnostics(w io.Writer, name string, errs []string) error {
	switch len(errs) {
	case 0:
		fmt.Fprintf(w, "%s: ok\n", name)
		return nil
	case 1:
		fmt.Fprintf(w, "%s: 1 problem\n", name)
	default:
		fmt.Fprintf(w, "%s: %d problems\n", name, len(errs))
	}
	for _, e := range errs {
		fmt.Fprintf(w, "  - %s\n", e)
	}
	return nil
}
