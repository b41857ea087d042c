package ls_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/jpl-au/quilter/internal/document"
	"github.com/jpl-au/quilter/internal/ls"
	"github.com/jpl-au/quilter/internal/service"
	"github.com/jpl-au/quilter/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupService(t *testing.T) service.Service {
	t.Helper()

	s, err := store.Open(filepath.Join(t.TempDir(), "ls.db"))
	require.NoError(t, err)
	require.NoError(t, s.Init())

	svc := document.NewWithStore(s, nil)
	t.Cleanup(func() { svc.Close() })
	return svc
}

const (
	good = `{"components": [], "nets": []}`
	bad  = `{"components": [], "nets": [{"id": "N1", "nodes": ["R1.1"]}]}`
)

func seed(t *testing.T, svc service.Service) {
	t.Helper()
	ctx := context.Background()
	uploads := []struct{ user, name, content string }{
		{"alice", "b.json", good},
		{"alice", "a.json", bad},
		{"bob", "c.json", good},
	}
	for _, u := range uploads {
		_, err := svc.Upload(ctx, u.user, u.name, []byte(u.content))
		require.NoError(t, err)
	}
}

func TestRun_User(t *testing.T) {
	svc := setupService(t)
	seed(t, svc)

	var buf bytes.Buffer
	result, err := ls.Run(context.Background(), &buf, svc, ls.Options{User: "alice"})
	require.NoError(t, err)

	require.Equal(t, 2, result.Count())
	assert.Equal(t, "a.json", result.Netlists[0].Filename)
	assert.Contains(t, buf.String(), "invalid  a.json")
	assert.Contains(t, buf.String(), "valid    b.json")
}

func TestRun_InvalidOnly(t *testing.T) {
	svc := setupService(t)
	seed(t, svc)

	var buf bytes.Buffer
	result, err := ls.Run(context.Background(), &buf, svc, ls.Options{User: "alice", InvalidOnly: true})
	require.NoError(t, err)
	require.Equal(t, 1, result.Count())
	assert.Equal(t, "a.json", result.Netlists[0].Filename)
}

func TestRun_SortReverse(t *testing.T) {
	svc := setupService(t)
	seed(t, svc)

	var buf bytes.Buffer
	result, err := ls.Run(context.Background(), &buf, svc, ls.Options{User: "alice", Sort: ls.SortName, Reverse: true})
	require.NoError(t, err)
	assert.Equal(t, "b.json", result.Netlists[0].Filename)
	assert.Equal(t, "a.json", result.Netlists[1].Filename)
}

func TestRun_AllUsers(t *testing.T) {
	svc := setupService(t)
	seed(t, svc)

	var buf bytes.Buffer
	result, err := ls.Run(context.Background(), &buf, svc, ls.Options{AllUsers: true})
	require.NoError(t, err)
	assert.Equal(t, 3, result.Count())
	assert.Equal(t, "alice/\n├── a.json [invalid]\n└── b.json\nbob/\n└── c.json\n", buf.String())

	j := result.ToJSON()
	require.Len(t, j, 3)
	assert.Equal(t, "alice", j[0].Email)
}

func TestRun_Empty(t *testing.T) {
	svc := setupService(t)

	var buf bytes.Buffer
	result, err := ls.Run(context.Background(), &buf, svc, ls.Options{User: "nobody", Long: true})
	require.NoError(t, err)
	assert.Zero(t, result.Count())
	assert.Empty(t, buf.String())
	assert.NotNil(t, result.ToJSON())
}
