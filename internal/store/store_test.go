package store_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/jpl-au/quilter/internal/store"
	"github.com/jpl-au/quilter/internal/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupStore creates a temporary SQLite store for testing.
// Returns the store and a cleanup function.
func setupStore(t *testing.T) (*store.SQLiteStore, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "quilter-store-test-*")
	require.NoError(t, err)

	dbPath := filepath.Join(tmpDir, "test.db")
	s, err := store.Open(dbPath)
	require.NoError(t, err)

	require.NoError(t, s.Init())

	cleanup := func() {
		s.Close()
		os.RemoveAll(tmpDir)
	}

	return s, cleanup
}

const doc = `{"components": [], "nets": []}`

func netlist(user, filename string, errs ...string) *store.Netlist {
	return &store.Netlist{
		User:     user,
		Filename: filename,
		Content:  doc,
		Valid:    len(errs) == 0,
		Errors:   errs,
	}
}

// --- Basic CRUD Tests ---

func TestStore_InsertAndGet(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	n := netlist("alice@example.com", "divider.json", "Net 'N1' references unknown component 'R9'")
	require.NoError(t, s.Insert(ctx, n, store.InsertOptions{}))
	assert.NotEmpty(t, n.Key)
	assert.NotZero(t, n.CreatedAt)
	assert.NotZero(t, n.ID)

	got, err := s.Get(ctx, "alice@example.com", "divider.json")
	require.NoError(t, err)

	assert.Equal(t, n.Key, got.Key)
	assert.Equal(t, doc, got.Content)
	assert.False(t, got.Valid)
	assert.Equal(t, []string{"Net 'N1' references unknown component 'R9'"}, got.Errors)
}

func TestStore_ValidHasEmptyErrors(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, s.Insert(ctx, netlist("bob", "ok.json"), store.InsertOptions{}))

	got, err := s.Get(ctx, "bob", "ok.json")
	require.NoError(t, err)
	assert.True(t, got.Valid)
	assert.NotNil(t, got.Errors)
	assert.Empty(t, got.Errors)
}

func TestStore_Duplicate(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, s.Insert(ctx, netlist("alice", "a.json"), store.InsertOptions{}))

	err := s.Insert(ctx, netlist("alice", "a.json"), store.InsertOptions{})
	assert.ErrorIs(t, err, store.ErrAlreadyExists)

	// Same filename for a different user is a different key.
	require.NoError(t, s.Insert(ctx, netlist("bob", "a.json"), store.InsertOptions{}))
}

func TestStore_ConcurrentDuplicate(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	const writers = 8
	var wg sync.WaitGroup
	errs := make([]error, writers)
	for i := range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = s.Insert(ctx, netlist("alice", "race.json"), store.InsertOptions{})
		}()
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, store.ErrAlreadyExists)
	}
	assert.Equal(t, 1, succeeded)
}

func TestStore_NotFound(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	_, err := s.Get(ctx, "nobody", "missing.json")
	assert.ErrorIs(t, err, store.ErrNotFound)

	err = s.Delete(ctx, "nobody", "missing.json")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestStore_DeleteExactKey(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, s.Insert(ctx, netlist("alice", "a.json"), store.InsertOptions{}))
	require.NoError(t, s.Insert(ctx, netlist("alice", "b.json"), store.InsertOptions{}))
	require.NoError(t, s.Insert(ctx, netlist("bob", "a.json"), store.InsertOptions{}))

	require.NoError(t, s.Delete(ctx, "alice", "a.json"))

	exists, err := s.Exists(ctx, "alice", "a.json")
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = s.Exists(ctx, "alice", "b.json")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = s.Exists(ctx, "bob", "a.json")
	require.NoError(t, err)
	assert.True(t, exists)

	// Delete is permanent; the name can be reused.
	require.NoError(t, s.Insert(ctx, netlist("alice", "a.json"), store.InsertOptions{}))
}

// --- List Tests ---

func TestStore_ListByUser(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, s.Insert(ctx, netlist("alice", "zeta.json"), store.InsertOptions{}))
	require.NoError(t, s.Insert(ctx, netlist("alice", "alpha.json", "bad"), store.InsertOptions{}))
	require.NoError(t, s.Insert(ctx, netlist("bob", "beta.json"), store.InsertOptions{}))

	list, err := s.ListByUser(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "alpha.json", list[0].Filename)
	assert.Equal(t, "zeta.json", list[1].Filename)
	assert.False(t, list[0].Valid)

	list, err = s.ListByUser(ctx, "carol")
	require.NoError(t, err)
	assert.Empty(t, list)

	users, err := s.Users(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob"}, users)

	count, err := s.Count(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	count, err = s.Count(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

// --- Validation Tests ---

func TestStore_InsertValidation(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	err := s.Insert(ctx, netlist("", "a.json"), store.InsertOptions{})
	assert.ErrorIs(t, err, validate.ErrInvalidName)

	err = s.Insert(ctx, netlist("alice", "../a.json"), store.InsertOptions{})
	assert.ErrorIs(t, err, validate.ErrInvalidName)

	err = s.Insert(ctx, netlist("alice", "long-name.json"), store.InsertOptions{MaxName: 4})
	assert.ErrorIs(t, err, validate.ErrNameTooLong)

	err = s.Insert(ctx, netlist("alice", "a.json"), store.InsertOptions{MaxContent: 4})
	assert.ErrorIs(t, err, validate.ErrContentTooLarge)

	count, err := s.Count(ctx, "")
	require.NoError(t, err)
	assert.Zero(t, count)
}

// --- JSON Tests ---

func TestNetlist_ToJSON(t *testing.T) {
	n := netlist("alice", "a.json")
	n.Key = "abcd1234"
	n.CreatedAt = 0

	b, err := json.Marshal(n.ToJSON())
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"key": "abcd1234",
		"email": "alice",
		"filename": "a.json",
		"netlist": {"components": [], "nets": []},
		"valid": true,
		"errors": [],
		"created_at": "1970-01-01T00:00:00Z"
	}`, string(b))

	n.Content = "not json"
	j := n.ToJSON()
	assert.Equal(t, `"not json"`, string(j.Netlist))
}

func TestStore_Checkpoint(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()

	require.NoError(t, s.Insert(context.Background(), netlist("alice", "a.json"), store.InsertOptions{}))
	assert.NoError(t, s.Checkpoint(context.Background()))
}
