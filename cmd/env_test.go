// The cmd/ package holds CLI integration tests that exercise the full
// stack: command parsing -> extension -> service -> store -> SQLite.
//
// Each test runs the real binary in a fresh directory with HOME pointed at
// a temp dir, so neither global config nor the audit log leak between tests.

package cmd

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	binaryPath string
	buildOnce  sync.Once
	buildErr   error
)

// Netlists shared by the CLI tests.
const (
	goodNetlist = `{
  "components": [
    {"id": "R1", "type": "resistor", "value": "10k", "pins": {"1": "VIN", "2": "VOUT"}},
    {"id": "R2", "type": "resistor", "value": "10k", "pins": {"1": "VOUT", "2": "GND"}}
  ],
  "nets": [
    {"id": "VIN", "nodes": ["R1.1"]},
    {"id": "VOUT", "nodes": ["R1.2", "R2.1"]},
    {"id": "GND", "nodes": ["R2.2"]}
  ]
}`
	badNetlist = `{"components": [], "nets": [{"id": "N1", "nodes": ["R1.1"]}]}`
	badMessage = "Net 'N1' references unknown component 'R1'"
)

// buildBinary compiles the quilter binary once for all tests.
func buildBinary(t *testing.T) string {
	t.Helper()

	buildOnce.Do(func() {
		tmpDir, err := os.MkdirTemp("", "quilter-test-bin-*")
		if err != nil {
			buildErr = err
			return
		}

		binaryName := "quilter"
		if os.PathSeparator == '\\' {
			binaryName = "quilter.exe"
		}
		binaryPath = filepath.Join(tmpDir, binaryName)

		// Project root is the parent of cmd/
		projectRoot := filepath.Dir(mustGetwd())

		cmd := exec.Command("go", "build", "-o", binaryPath, ".")
		cmd.Dir = projectRoot
		if out, err := cmd.CombinedOutput(); err != nil {
			buildErr = &buildError{err: err, output: string(out)}
			return
		}
	})

	if buildErr != nil {
		t.Fatalf("failed to build binary: %v", buildErr)
	}
	return binaryPath
}

type buildError struct {
	err    error
	output string
}

func (e *buildError) Error() string {
	return e.err.Error() + "\n" + e.output
}

func mustGetwd() string {
	dir, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	return dir
}

// testEnv holds test environment state.
type testEnv struct {
	t      *testing.T
	dir    string
	home   string
	binary string
}

// newBareEnv creates a temporary directory without a workspace.
func newBareEnv(t *testing.T) *testEnv {
	t.Helper()
	return &testEnv{
		t:      t,
		dir:    t.TempDir(),
		home:   t.TempDir(),
		binary: buildBinary(t),
	}
}

// newTestEnv creates a temporary directory with an initialised workspace
// and alice@example.com as the local user.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := newBareEnv(t)
	env.run("init")
	env.run("config", "user.email", "alice@example.com", "--local")
	return env
}

func (e *testEnv) command(args ...string) *exec.Cmd {
	cmd := exec.Command(e.binary, args...)
	cmd.Dir = e.dir
	cmd.Env = append(os.Environ(),
		"HOME="+e.home,
		"USERPROFILE="+e.home,
		"QUILTER_USER=",
		"QUILTER_DB=",
		"QUILTER_DIR=",
		"QUILTER_ADDR=",
		"FRONTEND_ORIGIN=",
		"MONGO_URL=",
	)
	return cmd
}

// run executes quilter with the given args and returns combined output.
func (e *testEnv) run(args ...string) string {
	e.t.Helper()
	out, err := e.runErr(args...)
	if err != nil {
		e.t.Fatalf("quilter %v failed: %v\noutput: %s", args, err, out)
	}
	return out
}

// runErr executes quilter and returns output and any error.
func (e *testEnv) runErr(args ...string) (string, error) {
	e.t.Helper()
	out, err := e.command(args...).CombinedOutput()
	return string(out), err
}

// runStdinErr executes quilter with stdin input.
func (e *testEnv) runStdinErr(input string, args ...string) (string, error) {
	e.t.Helper()
	cmd := e.command(args...)
	cmd.Stdin = strings.NewReader(input)
	out, err := cmd.CombinedOutput()
	return string(out), err
}

// stdout executes quilter and returns stdout only, for JSON parsing.
func (e *testEnv) stdout(args ...string) string {
	e.t.Helper()
	out, err := e.command(args...).Output()
	if err != nil && exitCode(err) != 2 {
		e.t.Fatalf("quilter %v failed: %v\noutput: %s", args, err, out)
	}
	return string(out)
}

// write creates a file relative to the test directory and returns its path.
func (e *testEnv) write(name, content string) string {
	e.t.Helper()
	p := filepath.Join(e.dir, name)
	require.NoError(e.t, os.MkdirAll(filepath.Dir(p), 0755))
	require.NoError(e.t, os.WriteFile(p, []byte(content), 0644))
	return p
}

// contains checks if output contains expected string.
func (e *testEnv) contains(output, expected string) {
	e.t.Helper()
	assert.Contains(e.t, output, expected)
}

// exitCode returns the process exit code carried by err, or -1.
func exitCode(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}
