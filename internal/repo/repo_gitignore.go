// repo_gitignore.go marks databases as local by listing them in
// .quilter/.gitignore. Existing content and formatting are preserved.

package repo

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
)

const localDBHeader = "# Local databases (not committed)"

func parseGitignore(path string) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(string(content), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return lines, nil
}

// IgnoreDB adds a database to the gitignore. An empty dir discovers the
// workspace from the working directory.
func IgnoreDB(name, dir string) error {
	if dir == "" {
		var err error
		dir, err = DiscoverDir()
		if err != nil {
			return err
		}
	}

	dbFile := DBFileName(name)
	gitignore := filepath.Join(dir, ".gitignore")

	lines, err := parseGitignore(gitignore)
	if err != nil {
		return err
	}
	if slices.Contains(lines, dbFile) {
		return nil
	}

	content, err := os.ReadFile(gitignore)
	if err != nil {
		return err
	}
	s := string(content)
	if !slices.Contains(lines, localDBHeader) {
		s += "\n" + localDBHeader + "\n"
	}
	s += dbFile + "\n"

	return os.WriteFile(gitignore, []byte(s), 0644)
}

// IsIgnored reports whether a database is listed in the gitignore.
func IsIgnored(name, dir string) (bool, error) {
	if dir == "" {
		var err error
		dir, err = DiscoverDir()
		if err != nil {
			return false, err
		}
	}

	lines, err := parseGitignore(filepath.Join(dir, ".gitignore"))
	if err != nil {
		return false, err
	}
	return slices.Contains(lines, DBFileName(name)), nil
}
