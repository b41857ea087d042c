package log

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// useTempDB points the logger at a fresh database for the test.
func useTempDB(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	orig := dbPathFunc
	dbPathFunc = func() string {
		return filepath.Join(dir, "log", "test.db")
	}
	t.Cleanup(func() {
		Close()
		dbPathFunc = orig
	})
}

func queryLast(t *testing.T, cols string, dest ...any) {
	t.Helper()
	db, err := sql.Open("sqlite", DBPath())
	require.NoError(t, err)
	defer db.Close()
	err = db.QueryRow("SELECT " + cols + " FROM log ORDER BY id DESC LIMIT 1").Scan(dest...)
	require.NoError(t, err)
}

func TestOpenCreatesDB(t *testing.T) {
	useTempDB(t)

	require.NoError(t, Open())
	assert.FileExists(t, DBPath())

	// Idempotent.
	require.NoError(t, Open())
}

func TestUploadEntry(t *testing.T) {
	useTempDB(t)
	require.NoError(t, Open())
	SetProject("/work/board/.quilter")

	Event("netlist:upload", "upload").
		Author("alice@example.com").
		Netlist("alice@example.com", "divider.json").
		Outcome(false, 2).
		Write(nil)

	var source, author, owner, filename string
	var valid, diagnostics, success int
	queryLast(t, "source, author, owner, filename, valid, diagnostics, success",
		&source, &author, &owner, &filename, &valid, &diagnostics, &success)

	assert.Equal(t, "netlist:upload", source)
	assert.Equal(t, "alice@example.com", author)
	assert.Equal(t, "alice@example.com", owner)
	assert.Equal(t, "divider.json", filename)
	assert.Equal(t, 0, valid)
	assert.Equal(t, 2, diagnostics)
	assert.Equal(t, 1, success)
}

func TestFailedEntry(t *testing.T) {
	useTempDB(t)
	require.NoError(t, Open())

	Event("netlist:rm", "delete").
		Netlist("bob", "missing.json").
		Write(errors.New("netlist not found"))

	var success int
	var msg string
	var valid sql.NullInt64
	queryLast(t, "success, error, valid", &success, &msg, &valid)

	assert.Equal(t, 0, success)
	assert.Equal(t, "netlist not found", msg)
	assert.False(t, valid.Valid, "valid is NULL when nothing was validated")
}

func TestDetail(t *testing.T) {
	useTempDB(t)
	require.NoError(t, Open())

	Event("netlist:ls", "list").
		Detail("count", 42).
		Detail("user", "carol").
		Write(nil)

	var detail string
	queryLast(t, "detail", &detail)
	assert.Contains(t, detail, `"count":42`)
	assert.Contains(t, detail, "carol")
}

func TestLogWithoutLogger(t *testing.T) {
	Close()
	assert.NotPanics(t, func() {
		Log(Entry{Source: "test:cmd", Action: "test", Success: true})
	})
}

func TestHash(t *testing.T) {
	h1 := hash("/home/user/board/.quilter")
	h2 := hash("/home/user/board/.quilter")
	h3 := hash("/home/user/other/.quilter")

	assert.Equal(t, h1, h2)
	assert.NotEqual(t, h1, h3)
	assert.Len(t, h1, 16)
}

func TestDefaultDBPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".quilter", "log", "quilter-log.db"), defaultDBPath())
}
