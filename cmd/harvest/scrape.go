package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/harvest"
	"github.com/fwojciec/harvest/crawl"
	"github.com/fwojciec/harvest/fs"
	"github.com/fwojciec/harvest/sqlite"
)

// progressURLWidth caps the URL shown on the progress line.
const progressURLWidth = 60

// Validate checks flag values before Run.
func (c *CLI) Validate() error {
	if c.Concurrency < 1 {
		return fmt.Errorf("--concurrency must be at least 1")
	}
	if c.Attempts < 1 {
		return fmt.Errorf("--attempts must be at least 1")
	}
	return nil
}

// Run scrapes the URLs and writes the rows to the output file.
func (c *CLI) Run(deps *Dependencies) error {
	urls := append(append([]string{}, c.URLs...), c.Args...)
	if len(urls) == 0 {
		prompted, err := PromptURLs(deps.Stdin, deps.Stdout)
		if err != nil {
			return err
		}
		urls = prompted
	}
	if len(urls) == 0 {
		fmt.Fprintln(deps.Stdout, "No URLs provided. Exiting.")
		return harvest.Errorf(harvest.EINVALID, "no URLs provided")
	}

	start := time.Now()

	progress := func(p harvest.Progress) {
		fmt.Fprintf(deps.Stdout, "\r[%d/%d] %-*s", p.Completed, p.Total, progressURLWidth, crawl.TruncateURL(p.URL, progressURLWidth))
	}

	outcome, err := deps.Pipeline.Run(deps.Ctx, urls, progress)
	fmt.Fprintln(deps.Stdout)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", harvest.ErrorMessage(err))
		return err
	}

	store, closeStore, path, err := openStore(c.Output, len(urls))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}
	defer closeStore()

	if err := saveRows(deps.Ctx, store, outcome.Rows); err != nil {
		fmt.Fprintf(deps.Stderr, "error: failed to save rows: %v\n", err)
		return err
	}

	succeeded := len(urls) - len(outcome.Failures)
	fmt.Fprintf(deps.Stdout, "Saved %d rows from %d of %d URLs to %s\n", len(outcome.Rows), succeeded, len(urls), path)
	if len(outcome.Failures) > 0 {
		fmt.Fprintf(deps.Stdout, "Skipped %d URLs (%s)\n", len(outcome.Failures), crawl.FormatFailureCounts(outcome.Failures))
	}
	if c.Verbose && len(outcome.Failures) > 0 {
		WriteFailureReport(deps.Stderr, outcome.Failures)
	}

	deps.Logger.Info("finished",
		"urls", len(urls),
		"rows", len(outcome.Rows),
		"failed", len(outcome.Failures),
		"elapsed", time.Since(start).Round(time.Millisecond),
	)

	return nil
}

// saveRows writes rows to store and commits, aborting on any error.
func saveRows(ctx context.Context, store harvest.RowStore, rows []harvest.Row) error {
	for i := range rows {
		if err := store.Save(ctx, &rows[i]); err != nil {
			_ = store.Abort()
			return err
		}
	}
	if err := store.Commit(); err != nil {
		_ = store.Abort()
		return err
	}
	return nil
}

// openStore picks a sink by file extension: SQLite for .db, .sqlite and
// .sqlite3, CSV otherwise. It returns the store, a close function and the
// resolved output path.
func openStore(output string, urlCount int) (harvest.RowStore, func() error, string, error) {
	switch strings.ToLower(filepath.Ext(output)) {
	case ".db", ".sqlite", ".sqlite3":
		db := sqlite.NewDB(output)
		if err := db.Open(); err != nil {
			return nil, nil, "", fmt.Errorf("failed to open database at %q: %w", output, err)
		}
		return sqlite.NewRowStore(db, urlCount), db.Close, output, nil
	default:
		store := fs.NewCSVStore(fs.CSVPath(output))
		return store, func() error { return nil }, store.Path(), nil
	}
}
