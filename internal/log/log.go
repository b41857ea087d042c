// Package log records an audit trail of quilter operations. Every CLI
// command, HTTP request that changes state, and MCP tool call writes one
// entry to ~/.quilter/log/quilter-log.db.
//
// Entries are built fluently and written with the operation's error:
//
//	log.Event("netlist:upload", "upload").
//		Author(cmd.User()).
//		Netlist(user, filename).
//		Outcome(res.Valid, len(res.Errors)).
//		Write(err)
//
// Sources are "{extension}:{command}" for the CLI, "http:{route}" for the
// server and "mcp:{tool}" for MCP tools.
package log

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

var (
	global *Logger
	mu     sync.Mutex
)

// Entry is a single audit record.
type Entry struct {
	Source   string // e.g. "netlist:upload", "http:delete", "mcp:quilter_validate"
	Author   string // who performed the action
	Action   string // validate, upload, list, read, delete, diff
	Owner    string // netlist owner (email)
	Filename string // netlist filename

	// Validation outcome, set when the operation validated a document.
	Valid       *bool
	Diagnostics int

	Start int64 // unix time when Event was called
	End   int64 // unix time when Write was called

	Success bool
	Error   string
	Detail  map[string]any
}

// Builder constructs an Entry. Create with [Event] and finish with
// [Builder.Write].
type Builder struct {
	entry Entry
}

// Event starts an entry for an operation.
func Event(source, action string) *Builder {
	return &Builder{
		entry: Entry{
			Source: source,
			Action: action,
			Start:  time.Now().Unix(),
		},
	}
}

// Author sets who performed the operation. MCP tools use "mcp" and the
// HTTP server uses the request's email parameter.
func (b *Builder) Author(author string) *Builder {
	b.entry.Author = author
	return b
}

// Netlist sets the stored netlist the operation targets.
func (b *Builder) Netlist(owner, filename string) *Builder {
	b.entry.Owner = owner
	b.entry.Filename = filename
	return b
}

// Outcome records the result of validating a document.
func (b *Builder) Outcome(valid bool, diagnostics int) *Builder {
	b.entry.Valid = &valid
	b.entry.Diagnostics = diagnostics
	return b
}

// Detail adds a key-value pair for data that has no dedicated field.
func (b *Builder) Detail(key string, value any) *Builder {
	if b.entry.Detail == nil {
		b.entry.Detail = make(map[string]any)
	}
	b.entry.Detail[key] = value
	return b
}

// Write stores the entry, marking it failed when err is non-nil.
func (b *Builder) Write(err error) {
	b.entry.End = time.Now().Unix()
	b.entry.Success = err == nil
	if err != nil {
		b.entry.Error = err.Error()
	}
	Log(b.entry)
}

// Open initialises the global logger. Safe to call multiple times.
// Callers may ignore the error; logging is best-effort.
func Open() error {
	mu.Lock()
	defer mu.Unlock()

	if global != nil {
		return nil
	}

	p := dbPath()
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", p+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return err
	}

	if err := migrate(db); err != nil {
		db.Close()
		return err
	}

	global = &Logger{db: db}
	return nil
}

// SetProject tags subsequent entries with the workspace they came from.
// dir should be the absolute path of the .quilter directory.
func SetProject(dir string) {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.project = hash(dir)
	}
}

// Log writes an entry. It is a no-op until Open succeeds.
func Log(e Entry) {
	mu.Lock()
	l := global
	mu.Unlock()

	if l == nil {
		return
	}
	l.log(e)
}

// Close closes the global logger.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.db.Close()
		global = nil
	}
}
