package diff

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const before = `{
  "components": [
    {"id": "R1", "type": "resistor", "value": "1k", "pins": {"1": "VCC", "2": "OUT"}}
  ],
  "nets": []
}
`

const after = `{
  "components": [
    {"id": "R1", "type": "resistor", "value": "2k2", "pins": {"1": "VCC", "2": "OUT"}}
  ],
  "nets": []
}
`

func TestCompute(t *testing.T) {
	r := Compute(before, after, "alice/a.json", "alice/b.json")

	assert.Equal(t, "alice/a.json", r.Old)
	assert.Equal(t, "alice/b.json", r.New)
	assert.True(t, r.Changed())
	assert.Contains(t, r.Diff, `-     {"id": "R1", "type": "resistor", "value": "1k"`)
	assert.Contains(t, r.Diff, `+     {"id": "R1", "type": "resistor", "value": "2k2"`)
	assert.Contains(t, r.Diff, `    "nets": []`)
}

func TestComputeIdentical(t *testing.T) {
	r := Compute(before, before, "a", "b")
	assert.False(t, r.Changed())
	assert.NotContains(t, r.Diff, "- ")
}

func TestCollapseContext(t *testing.T) {
	var lines []string
	for range 10 {
		lines = append(lines, "same")
	}
	old := strings.Join(lines, "\n") + "\nold\n"
	cur := strings.Join(lines, "\n") + "\nnew\n"

	r := Compute(old, cur, "a", "b")
	assert.Contains(t, r.Diff, "  ...\n")
	assert.Equal(t, 6, strings.Count(r.Diff, "  same\n"))
}

func TestFormat(t *testing.T) {
	r := Result{Old: "a", New: "b", Diff: "- x\n+ y\n  z\n"}

	assert.Equal(t, "--- a\n+++ b\n- x\n+ y\n  z\n", r.Format(false))

	coloured := r.Format(true)
	assert.Contains(t, coloured, "\033[31m- x\033[0m")
	assert.Contains(t, coloured, "\033[32m+ y\033[0m")
	assert.Contains(t, coloured, "  z\n")
}
