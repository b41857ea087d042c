package rm_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/jpl-au/quilter/internal/document"
	"github.com/jpl-au/quilter/internal/rm"
	"github.com/jpl-au/quilter/internal/service"
	"github.com/jpl-au/quilter/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupService creates a service over a temporary SQLite database.
func setupService(t *testing.T) service.Service {
	t.Helper()

	s, err := store.Open(filepath.Join(t.TempDir(), "rm.db"))
	require.NoError(t, err)
	require.NoError(t, s.Init())

	svc := document.NewWithStore(s, nil)
	t.Cleanup(func() { svc.Close() })
	return svc
}

const doc = `{"components": [], "nets": []}`

func TestRun_DeletesExactKey(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	for _, u := range []string{"alice", "bob"} {
		_, err := svc.Upload(ctx, u, "a.json", []byte(doc))
		require.NoError(t, err)
	}

	var buf bytes.Buffer
	result, err := rm.Run(ctx, &buf, svc, "alice", []string{"a.json"})
	require.NoError(t, err)

	assert.Equal(t, []string{"a.json"}, result.Deleted)
	assert.Equal(t, "Deleted a.json\n", buf.String())

	exists, err := svc.Exists(ctx, "bob", "a.json")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRun_StopsAtMissing(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	_, err := svc.Upload(ctx, "alice", "a.json", []byte(doc))
	require.NoError(t, err)

	var buf bytes.Buffer
	result, err := rm.Run(ctx, &buf, svc, "alice", []string{"a.json", "missing.json"})
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.Equal(t, []string{"a.json"}, result.Deleted)
}
