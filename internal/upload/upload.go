// Package upload sends netlist files from the filesystem to the service.
package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/jpl-au/quilter/internal/progress"
	"github.com/jpl-au/quilter/internal/service"
)

// Options configures an upload operation.
type Options struct {
	Name   string // Store a single file under this name instead of its base name
	Hidden bool   // Include hidden files/directories
}

// Result contains the outcome of an upload operation.
type Result struct {
	Uploads  []service.UploadResult
	Stored   int // Persisted, valid or not
	Invalid  int // Persisted with diagnostics
	Rejected int // Not persisted: invalid JSON or duplicate filename
}

// Run uploads src for user. src is a single file (any extension) or a
// directory, which is scanned recursively for *.json files. Files are
// stored under their base name.
//
// Invalid JSON and duplicate filenames are reported per file and do not
// stop a directory upload. Any other error does.
func Run(ctx context.Context, w io.Writer, svc service.Service, user, src string, opts Options) (Result, error) {
	var result Result

	info, err := os.Stat(src)
	if err != nil {
		return result, err
	}

	if !info.IsDir() {
		content, err := os.ReadFile(src)
		if err != nil {
			return result, fmt.Errorf("reading %s: %w", src, err)
		}
		name := opts.Name
		if name == "" {
			name = filepath.Base(src)
		}
		err = send(ctx, w, svc, user, name, content, &result)
		return result, err
	}

	if opts.Name != "" {
		return result, errors.New("--name applies to a single file, not a directory")
	}

	// os.Root keeps reads inside src even when it contains symlinks.
	root, err := os.OpenRoot(src)
	if err != nil {
		return result, fmt.Errorf("opening source root: %w", err)
	}
	defer root.Close()

	files, err := scanRoot(root, "", opts.Hidden)
	if err != nil {
		return result, fmt.Errorf("scanning %s: %w", src, err)
	}
	if len(files) == 0 {
		return result, nil
	}
	slices.Sort(files)

	prog := progress.New("Uploading", len(files))
	defer prog.Done()

	for _, rel := range files {
		content, err := readFileInRoot(root, rel)
		if err != nil {
			return result, fmt.Errorf("reading %s: %w", rel, err)
		}
		if err := send(ctx, w, svc, user, filepath.Base(rel), content, &result); err != nil {
			return result, err
		}
		prog.Increment()
		prog.Print()
	}

	return result, nil
}

// send uploads one file and records the outcome.
func send(ctx context.Context, w io.Writer, svc service.Service, user, name string, content []byte, result *Result) error {
	res, err := svc.Upload(ctx, user, name, content)
	switch {
	case errors.Is(err, service.ErrInvalidJSON), errors.Is(err, service.ErrDuplicate):
		result.Rejected++
	case err != nil:
		return err
	default:
		result.Stored++
		if !res.Valid {
			result.Invalid++
		}
	}

	result.Uploads = append(result.Uploads, *res)
	fmt.Fprintf(w, "%s: %s\n", res.Filename, res.Message)
	for _, e := range res.Errors {
		fmt.Fprintf(w, "  - %s\n", e)
	}
	return nil
}

// Failed reports whether any file was rejected or stored invalid.
func (r Result) Failed() bool {
	return r.Rejected > 0 || r.Invalid > 0
}

// scanRoot recursively finds all JSON files within an os.Root.
// Returns relative paths from the root.
func scanRoot(root *os.Root, dir string, includeHidden bool) ([]string, error) {
	var files []string

	path := dir
	if path == "" {
		path = "."
	}

	f, err := root.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	entries, err := f.ReadDir(-1)
	if err != nil {
		return nil, err
	}

	for _, entry := range entries {
		name := entry.Name()

		if !includeHidden && strings.HasPrefix(name, ".") {
			continue
		}

		rel := name
		if dir != "" {
			rel = filepath.Join(dir, name)
		}

		if entry.IsDir() {
			subfiles, err := scanRoot(root, rel, includeHidden)
			if err != nil {
				return nil, err
			}
			files = append(files, subfiles...)
		} else if strings.EqualFold(filepath.Ext(name), ".json") {
			files = append(files, rel)
		}
	}

	return files, nil
}

// readFileInRoot reads a file's content within an os.Root.
func readFileInRoot(root *os.Root, name string) ([]byte, error) {
	f, err := root.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
