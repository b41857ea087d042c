// Package progress reports how far a bulk upload or export has got. Output
// goes to stderr so stdout stays clean for piping, and nothing is drawn
// unless stderr is a terminal.
package progress

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// minItems is the minimum number of files before progress is shown.
const minItems = 5

// Progress tracks and displays operation progress.
type Progress struct {
	w       io.Writer
	label   string
	total   int
	current int
	isTTY   bool
	width   int // length of the last line drawn
}

// New creates a progress reporter that writes to stderr.
// If total is less than minItems, progress updates are suppressed.
func New(label string, total int) *Progress {
	return &Progress{
		w:     os.Stderr,
		label: label,
		total: total,
		isTTY: term.IsTerminal(int(os.Stderr.Fd())),
	}
}

// Increment advances the progress counter by one.
func (p *Progress) Increment() {
	p.current++
}

// Print redraws the progress line in place.
func (p *Progress) Print() {
	if !p.visible() {
		return
	}
	pct := 0
	if p.total > 0 {
		pct = (p.current * 100) / p.total
	}
	line := fmt.Sprintf("%s... %d/%d (%d%%)", p.label, p.current, p.total, pct)
	p.width = len(line)
	fmt.Fprintf(p.w, "\r%s", line)
}

// Done clears the progress line to make way for final output.
func (p *Progress) Done() {
	if !p.visible() || p.width == 0 {
		return
	}
	fmt.Fprintf(p.w, "\r%s\r", strings.Repeat(" ", p.width))
}

func (p *Progress) visible() bool {
	return p.isTTY && p.total >= minItems
}
