// Package repo creates and locates quilter workspaces.
//
// A workspace is a .quilter directory holding one or more SQLite netlist
// databases (quilter.db, quilter-<name>.db). Commands find it by walking up
// from the working directory, the same way git finds .git.
package repo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jpl-au/quilter/internal/store"
)

const (
	// Dir is the workspace directory name.
	Dir = ".quilter"
	// DBFile is the default database filename.
	DBFile = "quilter.db"
)

// ErrNotInitialised is returned when no workspace is found.
var ErrNotInitialised = errors.New("quilter not initialised (run 'quilter init')")

// DBFileName maps a database name to its file: "" is quilter.db, "lab" is
// quilter-lab.db, and names ending in ".db" are used as given.
func DBFileName(name string) string {
	if name == "" {
		return DBFile
	}
	if strings.HasSuffix(name, ".db") {
		return name
	}
	return "quilter-" + name + ".db"
}

// Init creates a workspace in dir (or the working directory) with a fresh
// database. An existing database is only replaced when force is set. local
// adds the database to .quilter/.gitignore.
func Init(force bool, db string, local bool, dir string) error {
	if dir == "" {
		dir = "."
	}
	qDir := filepath.Join(dir, Dir)
	dbPath := filepath.Join(qDir, DBFileName(db))

	if _, err := os.Stat(dbPath); err == nil {
		if !force {
			return fmt.Errorf("database %s already exists (use --force to reinitialise)", DBFileName(db))
		}
		if err := os.Remove(dbPath); err != nil {
			return fmt.Errorf("remove database: %w", err)
		}
	}

	if err := os.MkdirAll(qDir, 0755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	s, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer s.Close()

	if err := s.Init(); err != nil {
		return fmt.Errorf("init store: %w", err)
	}

	// Written once; later inits keep any local database markers.
	gitignore := filepath.Join(qDir, ".gitignore")
	if _, err := os.Stat(gitignore); os.IsNotExist(err) {
		s := `# quilter - local config and SQLite side files
config.yaml
*.db-wal
*.db-shm
`
		if err := os.WriteFile(gitignore, []byte(s), 0644); err != nil {
			return fmt.Errorf("write gitignore: %w", err)
		}
	}

	if local {
		if err := IgnoreDB(db, qDir); err != nil {
			return fmt.Errorf("ignore database: %w", err)
		}
	}

	return nil
}

// Discover walks up from the working directory looking for the named
// database and returns its full path.
func Discover(db string) (string, error) {
	dbFile := DBFileName(db)
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	for {
		dbPath := filepath.Join(dir, Dir, dbFile)
		if _, err := os.Stat(dbPath); err == nil {
			return dbPath, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotInitialised
		}
		dir = parent
	}
}

// Locate returns the database path inside dir/.quilter when dir is set, or
// discovers it from the working directory otherwise.
func Locate(db, dir string) (string, error) {
	if dir == "" {
		return Discover(db)
	}
	dbPath := filepath.Join(dir, Dir, DBFileName(db))
	if _, err := os.Stat(dbPath); err != nil {
		return "", fmt.Errorf("%s: %w", dbPath, ErrNotInitialised)
	}
	return dbPath, nil
}

// DiscoverDir finds the nearest .quilter directory.
func DiscoverDir() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	for {
		qDir := filepath.Join(dir, Dir)
		if info, err := os.Stat(qDir); err == nil && info.IsDir() {
			return qDir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotInitialised
		}
		dir = parent
	}
}
