package check_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jpl-au/quilter/internal/check"
	"github.com/jpl-au/quilter/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	good = `{"components": [], "nets": []}`
	bad  = `{"components": [], "nets": [{"id": "N1", "nodes": ["R1.1"]}]}`
)

func TestRun_Files(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.json")
	b := filepath.Join(dir, "b.json")
	require.NoError(t, os.WriteFile(a, []byte(good), 0644))
	require.NoError(t, os.WriteFile(b, []byte(bad), 0644))

	var buf bytes.Buffer
	result, err := check.Run(&buf, nil, []string{a, b}, check.Options{})
	require.NoError(t, err)

	require.Len(t, result.Files, 2)
	assert.True(t, result.Files[0].Valid)
	assert.NotNil(t, result.Files[0].Errors)
	assert.Equal(t, 1, result.Invalid())
	assert.Equal(t, a+": ok\n"+b+": 1 problem\n  - Net 'N1' references unknown component 'R1'\n", buf.String())
}

func TestRun_Stdin(t *testing.T) {
	var buf bytes.Buffer
	result, err := check.Run(&buf, strings.NewReader("[]"), nil, check.Options{})
	require.NoError(t, err)

	require.Len(t, result.Files, 1)
	assert.Equal(t, check.Stdin, result.Files[0].Filename)
	assert.Equal(t, []string{"Top-level JSON must be an object"}, result.Files[0].Errors)
}

func TestRun_Strict(t *testing.T) {
	dup := `{"components": [
		{"id": "R1", "type": "r", "value": "1", "pins": {}},
		{"id": "R1", "type": "r", "value": "2", "pins": {}}
	], "nets": []}`

	var buf bytes.Buffer
	result, err := check.Run(&buf, strings.NewReader(dup), []string{"-"}, check.Options{})
	require.NoError(t, err)
	assert.Zero(t, result.Invalid())

	result, err = check.Run(&buf, strings.NewReader(dup), []string{"-"}, check.Options{Strict: true})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Invalid())
}

func TestRun_Errors(t *testing.T) {
	var buf bytes.Buffer
	_, err := check.Run(&buf, nil, []string{filepath.Join(t.TempDir(), "missing.json")}, check.Options{})
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = check.Run(&buf, strings.NewReader("\xff"), nil, check.Options{})
	assert.ErrorIs(t, err, service.ErrDecode)
}
