// log_storage.go persists audit entries to SQLite.
//
// Design: Write failures are reported on stderr and otherwise ignored, so an
// upload succeeds even when the audit log cannot record it. The project
// column is a hash of the workspace path rather than the path itself.

package log

import (
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/crypto/blake2b"
	_ "modernc.org/sqlite"
)

// Logger writes audit log entries to a SQLite database.
type Logger struct {
	db      *sql.DB
	project string
}

func (l *Logger) log(e Entry) {
	var detail *string
	if len(e.Detail) > 0 {
		if b, err := json.Marshal(e.Detail); err == nil {
			s := string(b)
			detail = &s
		}
	}

	var valid *int
	if e.Valid != nil {
		v := boolInt(*e.Valid)
		valid = &v
	}

	_, err := l.db.Exec(`
		INSERT INTO log (start, end, project, source, author, action, owner, filename,
		                 valid, diagnostics, success, error, detail)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Start, e.End, l.project, e.Source, nilIfEmpty(e.Author), e.Action,
		nilIfEmpty(e.Owner), nilIfEmpty(e.Filename),
		valid, e.Diagnostics,
		boolInt(e.Success), nilIfEmpty(e.Error), detail,
	)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "quilter: audit log write failed: %v\n", err)
	}
}

// dbPathFunc returns the database path. Tests point it at a temp dir.
var dbPathFunc = defaultDBPath

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".quilter", "log", "quilter-log.db")
	}
	return filepath.Join(home, ".quilter", "log", "quilter-log.db")
}

func dbPath() string {
	return dbPathFunc()
}

// DBPath returns the path to the log database.
func DBPath() string {
	return dbPath()
}

// hash returns a 16 hex char BLAKE2b-64 digest of s.
func hash(s string) string {
	h, err := blake2b.New(8, nil)
	if err != nil {
		panic("blake2b.New failed: " + err.Error())
	}
	h.Write([]byte(s))
	return hex.EncodeToString(h.Sum(nil))
}

func migrate(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS log (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			start       INTEGER NOT NULL,
			end         INTEGER NOT NULL,
			project     TEXT NOT NULL,
			source      TEXT NOT NULL,
			author      TEXT,
			action      TEXT NOT NULL,
			owner       TEXT,
			filename    TEXT,
			valid       INTEGER,
			diagnostics INTEGER NOT NULL DEFAULT 0,
			success     INTEGER NOT NULL,
			error       TEXT,
			detail      TEXT
		);
		CREATE INDEX IF NOT EXISTS idx_log_start ON log(start);
		CREATE INDEX IF NOT EXISTS idx_log_owner ON log(owner, filename);
		CREATE INDEX IF NOT EXISTS idx_log_source ON log(source);
	`)
	return err
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
