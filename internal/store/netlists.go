// netlists.go implements netlist reads and writes for the SQLite store.
//
// Design: Keys are validated here as well as in the service layer, so
// anything with direct store access (tests, the MCP server) gets the same
// guarantees. Uniqueness of (email, filename) is the table's UNIQUE
// constraint; a violation is translated to ErrAlreadyExists.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jpl-au/quilter/internal/validate"
)

// Insert stores a new netlist. The (user, filename) pair must be unused.
func (s *SQLiteStore) Insert(ctx context.Context, n *Netlist, opts InsertOptions) error {
	if err := prepare(n, opts); err != nil {
		return err
	}

	errs, err := json.Marshal(n.Errors)
	if err != nil {
		return fmt.Errorf("encode errors: %w", err)
	}

	valid := 0
	if n.Valid {
		valid = 1
	}

	return s.Tx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `INSERT INTO netlists (key, email, filename, content, valid, errors, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			n.Key, n.User, n.Filename, n.Content, valid, string(errs), n.CreatedAt)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%s/%s: %w", n.User, n.Filename, ErrAlreadyExists)
			}
			return fmt.Errorf("insert netlist: %w", err)
		}
		if id, err := res.LastInsertId(); err == nil {
			n.ID = id
		}
		return nil
	})
}

// Delete removes the netlist stored under exactly (user, filename).
func (s *SQLiteStore) Delete(ctx context.Context, user, filename string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM netlists WHERE email = ? AND filename = ?`, user, filename)
	if err != nil {
		return fmt.Errorf("delete %s/%s: %w", user, filename, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete %s/%s: %w", user, filename, err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// Get returns the netlist stored under (user, filename).
func (s *SQLiteStore) Get(ctx context.Context, user, filename string) (*Netlist, error) {
	query := `SELECT ` + netlistColumns + ` FROM netlists WHERE email = ? AND filename = ?`
	return s.scanOne(s.db.QueryRowContext(ctx, query, user, filename))
}

// Exists uses SELECT 1 ... LIMIT 1 since only presence matters.
func (s *SQLiteStore) Exists(ctx context.Context, user, filename string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM netlists WHERE email = ? AND filename = ? LIMIT 1`,
		user, filename).Scan(&n)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check exists %s/%s: %w", user, filename, err)
	}
	return true, nil
}

// ListByUser returns a user's netlists ordered by filename.
func (s *SQLiteStore) ListByUser(ctx context.Context, user string) ([]Netlist, error) {
	query := `SELECT ` + netlistColumns + ` FROM netlists WHERE email = ? ORDER BY filename`
	rows, err := s.db.QueryContext(ctx, query, user)
	if err != nil {
		return nil, fmt.Errorf("list netlists for %s: %w", user, err)
	}
	defer rows.Close()

	return s.scanAll(rows)
}

// Users returns every owner holding at least one netlist, sorted.
func (s *SQLiteStore) Users(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT email FROM netlists ORDER BY email`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []string
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// Count returns the number of netlists a user holds, or all netlists when
// user is empty.
func (s *SQLiteStore) Count(ctx context.Context, user string) (int64, error) {
	query := `SELECT COUNT(*) FROM netlists`
	var args []any
	if user != "" {
		query += ` WHERE email = ?`
		args = append(args, user)
	}

	var count int64
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&count)
	return count, err
}

// prepare validates the record's key and content and fills in generated
// fields. Shared by every backend.
func prepare(n *Netlist, opts InsertOptions) error {
	user, err := validate.User(n.User, opts.MaxName)
	if err != nil {
		return err
	}
	filename, err := validate.Filename(n.Filename, opts.MaxName)
	if err != nil {
		return err
	}
	if err := validate.Content(n.Content, opts.MaxContent); err != nil {
		return err
	}
	n.User, n.Filename = user, filename

	if n.Key == "" {
		key, err := genID()
		if err != nil {
			return err
		}
		n.Key = key
	}
	if n.CreatedAt == 0 {
		n.CreatedAt = time.Now().Unix()
	}
	if n.Errors == nil {
		n.Errors = []string{}
	}
	return nil
}

// isUniqueViolation reports whether err is a SQLite UNIQUE constraint failure.
func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
