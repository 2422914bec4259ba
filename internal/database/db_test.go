package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/flavor-house/internal/docstore"
)

func TestDriverName(t *testing.T) {
	for in, want := range map[string]string{"mysql": "mysql", "postgres": "pgx", "pgx": "pgx", "sqlite": "sqlite3"} {
		got, err := DriverName(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := DriverName("oracle")
	assert.Error(t, err)
}

func TestOpen_SQLite(t *testing.T) {
	db, err := Open("sqlite", filepath.Join(t.TempDir(), "flavor.db"))
	require.NoError(t, err)
	defer db.Close()
	assert.Equal(t, 1, db.Stats().MaxOpenConnections)
}

func TestOpenStore(t *testing.T) {
	ctx := context.Background()

	mem, db, err := OpenStore(ctx, "memory", "")
	require.NoError(t, err)
	assert.Nil(t, db)
	assert.IsType(t, &docstore.MemoryStore{}, mem)

	store, db, err := OpenStore(ctx, "sqlite", filepath.Join(t.TempDir(), "flavor.db"))
	require.NoError(t, err)
	defer db.Close()
	doc, err := store.Collection("dishes").Add(ctx, map[string]any{"name": "Pho"})
	require.NoError(t, err)
	got, err := store.Collection("dishes").Get(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pho", got.Data["name"])

	_, _, err = OpenStore(ctx, "oracle", "")
	assert.Error(t, err)
}
