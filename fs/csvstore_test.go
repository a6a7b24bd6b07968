package fs_test

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/harvest"
	"github.com/fwojciec/harvest/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Story: Atomic CSV Output
// The store writes to a temp file and only exposes it on commit

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

func TestCSVStore_SaveWritesToTempFile(t *testing.T) {
	t.Parallel()

	// Given a store targeting a file
	path := filepath.Join(t.TempDir(), "out.csv")
	store := fs.NewCSVStore(path)

	// When I save a row
	err := store.Save(context.Background(), &harvest.Row{URL: "https://example.com", Title: "A", Paragraph: "p1"})

	// Then no error occurs
	require.NoError(t, err)

	// And the temp file exists
	_, err = os.Stat(path + ".tmp")
	require.NoError(t, err, "temp file should exist before commit")

	// And the final file does not exist yet
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "final file should not exist until commit")
}

func TestCSVStore_CommitWritesHeaderAndRows(t *testing.T) {
	t.Parallel()

	// Given a store with saved rows
	path := filepath.Join(t.TempDir(), "out.csv")
	store := fs.NewCSVStore(path)
	rows := []harvest.Row{
		{URL: "https://example.com", Title: "A", Paragraph: "p1"},
		{URL: "https://example.com", Title: "", Paragraph: "with, comma and \"quotes\""},
	}
	for i := range rows {
		require.NoError(t, store.Save(context.Background(), &rows[i]))
	}

	// When I commit
	err := store.Commit()

	// Then the final file holds the header followed by the rows
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"url", "title", "paragraph"},
		{"https://example.com", "A", "p1"},
		{"https://example.com", "", "with, comma and \"quotes\""},
	}, readCSV(t, path))

	// And the temp file is gone
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file should be removed after commit")
}

func TestCSVStore_CommitWithoutRowsWritesHeaderOnly(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "empty.csv")
	store := fs.NewCSVStore(path)

	require.NoError(t, store.Commit())

	assert.Equal(t, [][]string{{"url", "title", "paragraph"}}, readCSV(t, path))
}

func TestCSVStore_CommitReplacesExistingFile(t *testing.T) {
	t.Parallel()

	// Given an existing output file
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, os.WriteFile(path, []byte("old content\n"), 0644))
	store := fs.NewCSVStore(path)
	require.NoError(t, store.Save(context.Background(), &harvest.Row{URL: "u", Title: "t", Paragraph: "p"}))

	// When I commit
	require.NoError(t, store.Commit())

	// Then the old content is replaced
	assert.Equal(t, [][]string{{"url", "title", "paragraph"}, {"u", "t", "p"}}, readCSV(t, path))
}

func TestCSVStore_AbortRemovesTempFile(t *testing.T) {
	t.Parallel()

	// Given a store with saved rows
	path := filepath.Join(t.TempDir(), "out.csv")
	store := fs.NewCSVStore(path)
	require.NoError(t, store.Save(context.Background(), &harvest.Row{URL: "u"}))

	// When I abort
	err := store.Abort()

	// Then no error occurs and nothing is left behind
	require.NoError(t, err)
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file should be removed after abort")
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "final file should not exist after abort")
}

func TestCSVStore_AbortWithoutSaveIsNoop(t *testing.T) {
	t.Parallel()

	store := fs.NewCSVStore(filepath.Join(t.TempDir(), "out.csv"))

	assert.NoError(t, store.Abort())
}

func TestCSVStore_SaveRespectsCancelledContext(t *testing.T) {
	t.Parallel()

	store := fs.NewCSVStore(filepath.Join(t.TempDir(), "out.csv"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := store.Save(ctx, &harvest.Row{URL: "u"})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestCSVPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "results.csv", fs.CSVPath("results"))
	assert.Equal(t, "results.csv", fs.CSVPath("results.csv"))
	assert.Equal(t, "results.tsv", fs.CSVPath("results.tsv"))
	assert.Equal(t, filepath.Join("dir", "out.csv"), fs.CSVPath(filepath.Join("dir", "out")))
}
