package docstore

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openSQLite(t *testing.T) *SQLStore {
	t.Helper()
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "docs.db"))
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	s, err := NewSQLStore(db, "sqlite3")
	require.NoError(t, err)
	require.NoError(t, s.EnsureSchema(context.Background()))
	return s
}

func backends(t *testing.T) map[string]Store {
	return map[string]Store{
		"memory": NewMemoryStore(),
		"sqlite": openSQLite(t),
	}
}

func TestCollection_AddAssignsIDAndTimestamp(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			c := s.Collection("dishes")

			d, err := c.Add(ctx, map[string]any{"name": "Pho", "price": 65000})
			require.NoError(t, err)
			assert.NotEmpty(t, d.ID)
			assert.False(t, d.CreatedAt.IsZero())
			assert.Equal(t, float64(65000), d.Data["price"])

			got, err := c.Get(ctx, d.ID)
			require.NoError(t, err)
			assert.Equal(t, "Pho", got.Data["name"])
			assert.Equal(t, float64(65000), got.Data["price"])
		})
	}
}

func TestCollection_ListOrdering(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			c := s.Collection("reservations")
			for _, date := range []string{"2026-10-20", "2026-12-01", "2026-11-05"} {
				_, err := c.Add(ctx, map[string]any{"date": date})
				require.NoError(t, err)
			}

			desc, err := c.List(ctx, OrderBy{Field: "date", Desc: true})
			require.NoError(t, err)
			require.Len(t, desc, 3)
			assert.Equal(t, "2026-12-01", desc[0].Data["date"])
			assert.Equal(t, "2026-11-05", desc[1].Data["date"])
			assert.Equal(t, "2026-10-20", desc[2].Data["date"])

			asc, err := c.List(ctx, OrderBy{Field: "date"})
			require.NoError(t, err)
			assert.Equal(t, "2026-10-20", asc[0].Data["date"])
		})
	}
}

func TestCollection_ListIsScopedToCollection(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			_, err := s.Collection("dishes").Add(ctx, map[string]any{"name": "Bun Cha"})
			require.NoError(t, err)

			cats, err := s.Collection("categories").List(ctx, OrderBy{Field: DocumentID})
			require.NoError(t, err)
			assert.Empty(t, cats)
		})
	}
}

func TestCollection_UpdateMergesAndDeletesFields(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			c := s.Collection("reservations")
			d, err := c.Add(ctx, map[string]any{"name": "An", "status": "processing", "tableNumber": "A1"})
			require.NoError(t, err)

			require.NoError(t, c.Update(ctx, d.ID, map[string]any{"status": "accepted", "tableNumber": DeleteField}))

			got, err := c.Get(ctx, d.ID)
			require.NoError(t, err)
			assert.Equal(t, "An", got.Data["name"])
			assert.Equal(t, "accepted", got.Data["status"])
			_, has := got.Data["tableNumber"]
			assert.False(t, has, "tableNumber should be removed")
		})
	}
}

func TestCollection_UpdateMissing(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			err := s.Collection("dishes").Update(context.Background(), "nope", map[string]any{"name": "x"})
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestCollection_DeleteIsIdempotent(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			c := s.Collection("dishes")
			d, err := c.Add(ctx, map[string]any{"name": "Goi Cuon"})
			require.NoError(t, err)

			require.NoError(t, c.Delete(ctx, d.ID))
			require.NoError(t, c.Delete(ctx, d.ID))
			require.NoError(t, c.Delete(ctx, "never-existed"))

			_, err = c.Get(ctx, d.ID)
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestCollection_RejectsBadOrderField(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Collection("dishes").List(context.Background(), OrderBy{Field: "name'; DROP"})
			assert.ErrorIs(t, err, ErrInvalidField)
		})
	}
}

func TestAddIgnoresDeleteMarker(t *testing.T) {
	s := NewMemoryStore()
	d, err := s.Collection("x").Add(context.Background(), map[string]any{"a": 1, "b": DeleteField})
	require.NoError(t, err)
	_, has := d.Data["b"]
	assert.False(t, has)
}

func TestRebind(t *testing.T) {
	pg := dialects["postgres"]
	assert.Equal(t, "a = $1 AND b = $2", pg.rebind("a = ? AND b = ?"))
	my := dialects["mysql"]
	assert.Equal(t, "a = ?", my.rebind("a = ?"))
}

func TestDialectFor(t *testing.T) {
	for _, driver := range []string{"mysql", "pgx", "postgres", "sqlite3"} {
		_, err := dialectFor(driver)
		assert.NoError(t, err, driver)
	}
	_, err := dialectFor("oracle")
	assert.Error(t, err)
}
