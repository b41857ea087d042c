// sqlite_ops.go provides SQLite connection management and low-level operations.
//
// Separated to isolate SQLite-specific concerns (pragmas, driver registration)
// from the netlist queries in netlists.go.
//
// Design: WAL mode with a 5-second busy timeout. Uploads arrive concurrently
// from HTTP handlers and must queue on the write lock rather than fail.

package store

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/base32"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	// Register sqlite driver
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using SQLite with WAL mode for concurrent access.
type SQLiteStore struct {
	db *sql.DB
}

// Compile-time interface compliance check.
var _ Store = (*SQLiteStore)(nil)

// Open opens the SQLite database file at `path` and returns a configured
// SQLiteStore. The caller should call Close on the returned store.
//
// The pragma configuration balances durability, performance, and concurrency
// for concurrent HTTP uploads against a single database file.
func Open(path string) (*SQLiteStore, error) {
	// busy_timeout goes in the DSN so every pooled connection gets it, not
	// just the one the PRAGMA below happens to run on.
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}

	// WAL mode: Allows concurrent readers while writing, so listing netlists
	// does not block behind an upload. Creates -wal and -shm files alongside
	// the database.
	if _, err := db.Exec(`PRAGMA journal_mode=WAL`); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	// Synchronous NORMAL: safe against corruption in WAL mode. An OS crash
	// can lose the last upload, which the user can repeat.
	if _, err := db.Exec(`PRAGMA synchronous=NORMAL`); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting synchronous mode: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Init creates tables and indexes if they don't exist. Safe to call multiple
// times; uses IF NOT EXISTS to avoid errors on existing databases.
func (s *SQLiteStore) Init() error {
	return execSchema(s.db)
}

// Close releases the database connection. Call before program exit to ensure
// all pending writes are flushed.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// scanner abstracts sql.Row and sql.Rows, enabling a single scan function
// to handle both single-row and multi-row queries.
type scanner interface {
	Scan(dest ...any) error
}

// netlistColumns is the column list scanNetlist expects, in order.
const netlistColumns = `id, key, email, filename, content, valid, errors, created_at`

// scanNetlist extracts a Netlist from a database row, decoding the stored
// diagnostics list.
func scanNetlist(sc scanner) (Netlist, error) {
	var n Netlist
	var valid int
	var errs string

	err := sc.Scan(&n.ID, &n.Key, &n.User, &n.Filename, &n.Content, &valid, &errs, &n.CreatedAt)
	if err != nil {
		return n, err
	}

	n.Valid = valid != 0
	if err := json.Unmarshal([]byte(errs), &n.Errors); err != nil {
		return n, fmt.Errorf("decode errors for %s/%s: %w", n.User, n.Filename, err)
	}
	return n, nil
}

// scanOne converts sql.ErrNoRows to ErrNotFound for consistent error handling.
func (s *SQLiteStore) scanOne(row *sql.Row) (*Netlist, error) {
	n, err := scanNetlist(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan netlist: %w", err)
	}
	return &n, nil
}

// scanAll iterates over query results, collecting netlists into a slice.
func (s *SQLiteStore) scanAll(rows *sql.Rows) ([]Netlist, error) {
	var out []Netlist
	for rows.Next() {
		n, err := scanNetlist(rows)
		if err != nil {
			return nil, fmt.Errorf("scan netlist: %w", err)
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// Tx executes fn within a database transaction. The transaction is rolled
// back if fn returns an error and committed otherwise.
//
//	err := s.Tx(ctx, func(tx *sql.Tx) error {
//	    if _, err := tx.ExecContext(ctx, `DELETE ...`); err != nil {
//	        return err // triggers rollback
//	    }
//	    return nil // triggers commit
//	})
func (s *SQLiteStore) Tx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }() // no-op after commit

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// genID creates a unique 8-character identifier using crypto/rand.
func genID() (string, error) {
	b := make([]byte, 5) // 5 bytes = 8 base32 chars
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}
	return strings.ToLower(base32.StdEncoding.EncodeToString(b)), nil
}
