// Package check validates netlist files from disk or stdin without storing
// them.
package check

import (
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/jpl-au/quilter/internal/format"
	"github.com/jpl-au/quilter/internal/netlist"
	"github.com/jpl-au/quilter/internal/service"
)

// Stdin is the name reported for input read from standard input.
const Stdin = "<stdin>"

// Options configures a check.
type Options struct {
	Strict bool // Report duplicate component ids
}

// File is the outcome for one input.
type File struct {
	Filename string   `json:"filename"`
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
}

// Result contains the outcome of a check.
type Result struct {
	Files []File
}

// Invalid returns how many inputs had problems.
func (r Result) Invalid() int {
	n := 0
	for _, f := range r.Files {
		if !f.Valid {
			n++
		}
	}
	return n
}

// Run validates each path, or stdin when paths is empty or a path is "-",
// and writes one diagnostics block per input to w. An unreadable input
// stops the run; problems inside a document do not.
func Run(w io.Writer, stdin io.Reader, paths []string, opts Options) (Result, error) {
	var result Result
	if len(paths) == 0 {
		paths = []string{"-"}
	}

	for _, p := range paths {
		name, content, err := read(stdin, p)
		if err != nil {
			return result, err
		}
		if !utf8.Valid(content) {
			return result, fmt.Errorf("%s: %w", name, service.ErrDecode)
		}

		report := netlist.Check(string(content), netlist.Options{Strict: opts.Strict})
		result.Files = append(result.Files, File{Filename: name, Valid: report.Valid, Errors: report.Errors})
		if err := format.Diagnostics(w, name, report.Errors); err != nil {
			return result, err
		}
	}
	return result, nil
}

func read(stdin io.Reader, path string) (string, []byte, error) {
	if path == "-" {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return Stdin, nil, fmt.Errorf("reading stdin: %w", err)
		}
		return Stdin, b, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return path, nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return path, b, nil
}
