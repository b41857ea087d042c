// Package cat prints a stored netlist, optionally re-indented or followed
// by its validation diagnostics.
package cat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jpl-au/quilter/internal/format"
	"github.com/jpl-au/quilter/internal/service"
	"github.com/jpl-au/quilter/internal/store"
)

// Options configures a cat operation.
type Options struct {
	Pretty bool // Re-indent the document with two spaces
	Errors bool // Print the stored diagnostics instead of the document
}

// Result contains the outcome of a cat operation.
type Result struct {
	Netlist *store.Netlist
}

// Run reads a netlist and writes it to w.
func Run(ctx context.Context, w io.Writer, svc service.Service, user, filename string, opts Options) (Result, error) {
	var result Result

	n, err := svc.Get(ctx, user, filename)
	if err != nil {
		return result, err
	}
	result.Netlist = n

	if opts.Errors {
		return result, format.Diagnostics(w, n.Filename, n.Errors)
	}

	content := n.Content
	if opts.Pretty {
		var b bytes.Buffer
		if err := json.Indent(&b, []byte(content), "", "  "); err == nil {
			content = b.String()
		}
	}

	fmt.Fprint(w, content)
	if !strings.HasSuffix(content, "\n") {
		fmt.Fprintln(w)
	}
	return result, nil
}
