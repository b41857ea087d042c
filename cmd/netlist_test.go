package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpload(t *testing.T) {
	env := newTestEnv(t)
	env.write("divider.json", goodNetlist)
	env.write("broken.json", badNetlist)

	out := env.run("upload", "divider.json")
	env.contains(out, "divider.json: Upload successful")

	// Stored despite diagnostics, but the exit code says so.
	out, err := env.runErr("upload", "broken.json")
	assert.Equal(t, 2, exitCode(err))
	env.contains(out, badMessage)

	out, err = env.runErr("upload", "divider.json")
	assert.Equal(t, 2, exitCode(err))
	env.contains(out, "Duplicate filename")

	out = env.run("upload", "divider.json", "--name", "divider-v2.json")
	env.contains(out, "divider-v2.json: Upload successful")

	out = env.run("ls")
	env.contains(out, "divider.json")
	env.contains(out, "divider-v2.json")
	env.contains(out, "broken.json")
}

func TestUpload_InvalidJSON(t *testing.T) {
	env := newTestEnv(t)
	env.write("notes.json", "{not json")

	out, err := env.runErr("upload", "notes.json")
	assert.Equal(t, 2, exitCode(err))
	env.contains(out, "Invalid JSON")

	out = env.run("ls")
	assert.NotContains(t, out, "notes.json")
}

func TestUpload_Directory(t *testing.T) {
	env := newTestEnv(t)
	env.write("boards/a.json", goodNetlist)
	env.write("boards/nested/b.json", goodNetlist)
	env.write("boards/readme.txt", "not a netlist")
	env.write("boards/.cache/c.json", goodNetlist)

	env.run("upload", "boards")

	out := env.run("ls")
	env.contains(out, "a.json")
	env.contains(out, "b.json")
	assert.NotContains(t, out, "readme.txt")
	assert.NotContains(t, out, "c.json")
}

func TestUpload_RequiresUser(t *testing.T) {
	env := newBareEnv(t)
	env.run("init")
	env.write("a.json", goodNetlist)

	out, err := env.runErr("upload", "a.json")
	assert.Error(t, err)
	env.contains(out, "user not configured")

	env.run("upload", "a.json", "--user", "bob@example.com")
}

func TestLs(t *testing.T) {
	env := newTestEnv(t)
	env.write("a.json", goodNetlist)
	env.write("b.json", badNetlist)
	env.run("upload", "a.json")
	_, _ = env.runErr("upload", "b.json")
	env.run("upload", "a.json", "--user", "bob@example.com")

	out := env.run("ls", "--invalid-only")
	env.contains(out, "b.json")
	assert.NotContains(t, out, "a.json")

	out = env.run("ls", "-l")
	env.contains(out, "STATUS")
	env.contains(out, "invalid")

	out = env.run("ls", "--all")
	env.contains(out, "alice@example.com/")
	env.contains(out, "bob@example.com/")

	_, err := env.runErr("ls", "--sort", "size")
	assert.Error(t, err)

	var list []struct {
		Email    string   `json:"email"`
		Filename string   `json:"filename"`
		Valid    bool     `json:"valid"`
		Errors   []string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal([]byte(env.stdout("ls", "-o", "json", "-s", "name")), &list))
	require.Len(t, list, 2)
	assert.Equal(t, "a.json", list[0].Filename)
	assert.Equal(t, "alice@example.com", list[0].Email)
	assert.Equal(t, []string{badMessage}, list[1].Errors)
}

func TestCat(t *testing.T) {
	env := newTestEnv(t)
	env.write("b.json", badNetlist)
	_, _ = env.runErr("upload", "b.json")

	out := env.run("cat", "b.json")
	assert.Equal(t, badNetlist+"\n", out)

	out = env.run("cat", "b.json", "--errors")
	env.contains(out, badMessage)

	out = env.run("cat", "b.json", "--pretty")
	env.contains(out, "\n  \"components\": []")

	_, err := env.runErr("cat", "missing.json")
	assert.Error(t, err)
}

func TestRm(t *testing.T) {
	env := newTestEnv(t)
	env.write("a.json", goodNetlist)
	env.run("upload", "a.json")
	env.run("upload", "a.json", "--user", "bob@example.com")

	out := env.run("rm", "a.json")
	env.contains(out, "Deleted a.json")

	// Bob's file of the same name is untouched.
	out = env.run("ls", "--user", "bob@example.com")
	env.contains(out, "a.json")

	_, err := env.runErr("rm", "a.json")
	assert.Error(t, err)

	// The name is free again.
	env.run("upload", "a.json")
}

func TestDiff(t *testing.T) {
	env := newTestEnv(t)
	env.write("a.json", goodNetlist)
	env.write("b.json", badNetlist)
	env.run("upload", "a.json")
	_, _ = env.runErr("upload", "b.json")

	out := env.run("diff", "a.json", "b.json")
	env.contains(out, "--- alice@example.com/a.json")
	env.contains(out, "+++ alice@example.com/b.json")
	env.contains(out, "\n- ")

	// Same document, different formatting.
	env.write("compact.json", `{"nets":[{"id":"VIN","nodes":["R1.1"]},{"id":"VOUT","nodes":["R1.2","R2.1"]},{"id":"GND","nodes":["R2.2"]}],"components":[{"id":"R1","type":"resistor","value":"10k","pins":{"1":"VIN","2":"VOUT"}},{"id":"R2","type":"resistor","value":"10k","pins":{"1":"VOUT","2":"GND"}}]}`)
	out = env.run("diff", "a.json", "--file", "compact.json")
	assert.NotContains(t, out, "\n- ")
	assert.NotContains(t, out, "\n+ ")

	_, err := env.runErr("diff", "a.json")
	assert.Error(t, err)
}

func TestExport(t *testing.T) {
	env := newTestEnv(t)
	env.write("a.json", goodNetlist)
	env.write("b.json", badNetlist)
	env.run("upload", "a.json")
	_, _ = env.runErr("upload", "b.json")

	out := env.run("export", "out")
	env.contains(out, "Exported: a.json")

	b, err := os.ReadFile(filepath.Join(env.dir, "out", "b.json"))
	require.NoError(t, err)
	assert.Equal(t, badNetlist, string(b))

	out, err = env.runErr("export", "out", "a.json")
	assert.Error(t, err)
	env.contains(out, "--force")

	env.run("export", "out", "a.json", "--force")
}
