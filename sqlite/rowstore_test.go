package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/fwojciec/harvest"
	"github.com/fwojciec/harvest/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sqlite.DB {
	t.Helper()

	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRowStore(t *testing.T) {
	t.Parallel()

	t.Run("commit persists the run and its rows in order", func(t *testing.T) {
		t.Parallel()

		// Given a store with saved rows
		ctx := context.Background()
		db := openTestDB(t)
		store := sqlite.NewRowStore(db, 2)
		rows := []harvest.Row{
			{URL: "https://a.example.com", Title: "A", Paragraph: "p1"},
			{URL: "https://a.example.com", Title: "A", Paragraph: "p2"},
			{URL: "https://b.example.com", Title: "", Paragraph: "p3"},
		}
		for i := range rows {
			require.NoError(t, store.Save(ctx, &rows[i]))
		}

		// When I commit
		require.NoError(t, store.Commit())

		// Then the rows come back in save order
		got, err := db.FindRows(ctx, store.RunID())
		require.NoError(t, err)
		assert.Equal(t, rows, got)

		// And the run is recorded with counts
		run, err := db.FindRun(ctx, store.RunID())
		require.NoError(t, err)
		assert.Equal(t, 2, run.URLCount)
		assert.Equal(t, 3, run.RowCount)
		assert.False(t, run.StartedAt.IsZero())
	})

	t.Run("commit without rows records an empty run", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		db := openTestDB(t)
		store := sqlite.NewRowStore(db, 4)

		require.NoError(t, store.Commit())

		run, err := db.FindRun(ctx, store.RunID())
		require.NoError(t, err)
		assert.Equal(t, 4, run.URLCount)
		assert.Zero(t, run.RowCount)
	})

	t.Run("abort discards the run", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		db := openTestDB(t)
		store := sqlite.NewRowStore(db, 1)
		require.NoError(t, store.Save(ctx, &harvest.Row{URL: "https://a.example.com", Paragraph: "p"}))
		runID := store.RunID()
		require.NotEmpty(t, runID)

		require.NoError(t, store.Abort())

		_, err := db.FindRun(ctx, runID)
		assert.Equal(t, harvest.ENOTFOUND, harvest.ErrorCode(err))
		var count int
		require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM run_rows").Scan(&count))
		assert.Zero(t, count)
	})

	t.Run("abort before save is a no-op", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewRowStore(openTestDB(t), 1)

		assert.NoError(t, store.Abort())
		assert.Empty(t, store.RunID())
	})

	t.Run("stores paragraph hash", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		db := openTestDB(t)
		store := sqlite.NewRowStore(db, 1)
		require.NoError(t, store.Save(ctx, &harvest.Row{URL: "https://a.example.com", Paragraph: "same text"}))
		require.NoError(t, store.Commit())

		var hash string
		require.NoError(t, db.QueryRowContext(ctx, "SELECT paragraph_hash FROM run_rows").Scan(&hash))
		assert.Equal(t, sqlite.HashParagraph("same text"), hash)
		assert.Len(t, hash, 16)
	})

	t.Run("separate runs share one database file", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		db := sqlite.NewDB(filepath.Join(t.TempDir(), "harvest.db"))
		require.NoError(t, db.Open())
		defer db.Close()

		first := sqlite.NewRowStore(db, 1)
		require.NoError(t, first.Save(ctx, &harvest.Row{URL: "u1", Paragraph: "a"}))
		require.NoError(t, first.Commit())

		second := sqlite.NewRowStore(db, 1)
		require.NoError(t, second.Save(ctx, &harvest.Row{URL: "u2", Paragraph: "b"}))
		require.NoError(t, second.Commit())

		assert.NotEqual(t, first.RunID(), second.RunID())
		rows, err := db.FindRows(ctx, second.RunID())
		require.NoError(t, err)
		assert.Equal(t, []harvest.Row{{URL: "u2", Paragraph: "b"}}, rows)
	})
}

func TestDB_FindRun_NotFound(t *testing.T) {
	t.Parallel()

	_, err := openTestDB(t).FindRun(context.Background(), "missing")

	assert.Equal(t, harvest.ENOTFOUND, harvest.ErrorCode(err))
}

func TestHashParagraph(t *testing.T) {
	t.Parallel()

	assert.Equal(t, sqlite.HashParagraph("x"), sqlite.HashParagraph("x"))
	assert.NotEqual(t, sqlite.HashParagraph("x"), sqlite.HashParagraph("y"))

	// Zero-padded big-endian hex of the 64-bit digest.
	assert.Equal(t, "ef46db3751d8e999", sqlite.HashParagraph(""))
	assert.Len(t, sqlite.HashParagraph("x"), 16)
}
