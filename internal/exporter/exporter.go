// Package exporter writes stored netlists back to the filesystem.
package exporter

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jpl-au/quilter/internal/progress"
	"github.com/jpl-au/quilter/internal/service"
	"github.com/jpl-au/quilter/internal/store"
)

// Options configures an export operation.
type Options struct {
	Filenames []string // Export only these files (empty = all of the user's netlists)
	Force     bool     // Overwrite existing files
}

// Result contains the outcome of an export operation.
type Result struct {
	Exported int      // Number of files exported
	Paths    []string // Filesystem paths that were written
}

// Run writes the user's netlists into dst, one file per netlist named by
// its stored filename. dst is created if needed. Content is written exactly
// as uploaded.
func Run(ctx context.Context, w io.Writer, svc service.Service, user, dst string, opts Options) (Result, error) {
	var result Result

	netlists, err := collect(ctx, svc, user, opts.Filenames)
	if err != nil {
		return result, err
	}
	if len(netlists) == 0 {
		return result, fmt.Errorf("no netlists found for %s", user)
	}

	if err := os.MkdirAll(dst, 0755); err != nil {
		return result, fmt.Errorf("creating destination directory: %w", err)
	}

	// Stored filenames are validated but os.Root keeps every write inside
	// dst regardless.
	root, err := os.OpenRoot(dst)
	if err != nil {
		return result, fmt.Errorf("opening destination root: %w", err)
	}
	defer root.Close()

	prog := progress.New("Exporting", len(netlists))
	defer prog.Done()

	for _, n := range netlists {
		if err := writeFileInRoot(root, n.Filename, n.Content, opts.Force); err != nil {
			return result, err
		}

		prog.Increment()
		prog.Print()
		outPath := filepath.Join(dst, n.Filename)
		result.Paths = append(result.Paths, outPath)
		result.Exported++
		fmt.Fprintf(w, "Exported: %s -> %s\n", n.Filename, outPath)
	}

	return result, nil
}

// collect loads the requested netlists, or all of the user's when none are
// named.
func collect(ctx context.Context, svc service.Service, user string, filenames []string) ([]store.Netlist, error) {
	if len(filenames) == 0 {
		return svc.List(ctx, user)
	}
	out := make([]store.Netlist, 0, len(filenames))
	for _, f := range filenames {
		n, err := svc.Get(ctx, user, f)
		if err != nil {
			return nil, fmt.Errorf("getting %s: %w", f, err)
		}
		out = append(out, *n)
	}
	return out, nil
}

// writeFileInRoot writes content to a file within an os.Root, safely preventing
// path traversal attacks.
func writeFileInRoot(root *os.Root, name, content string, force bool) error {
	if !force {
		if _, err := root.Stat(name); err == nil {
			return fmt.Errorf("file exists: %s (use --force to overwrite)", name)
		}
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	f, err := root.OpenFile(name, flags, 0644)
	if err != nil {
		return fmt.Errorf("creating file %s: %w", name, err)
	}
	defer f.Close()

	_, err = f.WriteString(content)
	return err
}
