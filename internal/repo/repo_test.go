package repo_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jpl-au/quilter/internal/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDBFileName(t *testing.T) {
	assert.Equal(t, "quilter.db", repo.DBFileName(""))
	assert.Equal(t, "quilter-lab.db", repo.DBFileName("lab"))
	assert.Equal(t, "custom.db", repo.DBFileName("custom.db"))
}

func TestInitAndDiscover(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, repo.Init(false, "", false, root))
	assert.FileExists(t, filepath.Join(root, ".quilter", "quilter.db"))
	assert.FileExists(t, filepath.Join(root, ".quilter", ".gitignore"))

	sub := filepath.Join(root, "boards", "rev-b")
	require.NoError(t, os.MkdirAll(sub, 0755))
	t.Chdir(sub)

	p, err := repo.Discover("")
	require.NoError(t, err)
	want, err := filepath.EvalSymlinks(filepath.Join(root, ".quilter", "quilter.db"))
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(p)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = repo.Discover("other")
	assert.ErrorIs(t, err, repo.ErrNotInitialised)
}

func TestInitExistingNeedsForce(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, repo.Init(false, "", false, root))

	err := repo.Init(false, "", false, root)
	assert.ErrorContains(t, err, "already exists")

	require.NoError(t, repo.Init(true, "", false, root))
}

func TestInitLocal(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, ".quilter")

	require.NoError(t, repo.Init(false, "lab", true, root))
	ignored, err := repo.IsIgnored("lab", dir)
	require.NoError(t, err)
	assert.True(t, ignored)

	require.NoError(t, repo.Init(false, "", false, root))
	ignored, err = repo.IsIgnored("", dir)
	require.NoError(t, err)
	assert.False(t, ignored)

	// Marking twice does not duplicate the entry.
	require.NoError(t, repo.IgnoreDB("lab", dir))
	b, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(b), "quilter-lab.db\n"))
}

func TestLocate(t *testing.T) {
	root := t.TempDir()

	_, err := repo.Locate("", root)
	assert.ErrorIs(t, err, repo.ErrNotInitialised)

	require.NoError(t, repo.Init(false, "lab", false, root))
	p, err := repo.Locate("lab", root)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, ".quilter", "quilter-lab.db"), p)
}
