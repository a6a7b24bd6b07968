// Package fs provides file-based storage for harvested rows.
package fs

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/harvest"
)

// DefaultOutput is the output file used when none is given.
const DefaultOutput = "scraped_data.csv"

// Ensure CSVStore implements harvest.RowStore at compile time.
var _ harvest.RowStore = (*CSVStore)(nil)

// CSVStore implements harvest.RowStore with atomic update semantics.
// Rows are written to path.tmp and renamed onto path on Commit, so a
// failed run never leaves a half-written file behind.
//
// CSVStore is not safe for concurrent use.
type CSVStore struct {
	path string
	file *os.File
	w    *csv.Writer
}

// NewCSVStore creates a new CSVStore writing to path.
func NewCSVStore(path string) *CSVStore {
	return &CSVStore{path: path}
}

// CSVPath appends ".csv" to name when it has no extension.
func CSVPath(name string) string {
	if filepath.Ext(name) == "" {
		return name + ".csv"
	}
	return name
}

// Path returns the final output path.
func (s *CSVStore) Path() string {
	return s.path
}

func (s *CSVStore) tempPath() string {
	return s.path + ".tmp"
}

// open creates the temp file and writes the header on first use.
func (s *CSVStore) open() error {
	if s.w != nil {
		return nil
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	f, err := os.Create(s.tempPath())
	if err != nil {
		return err
	}
	s.file = f
	s.w = csv.NewWriter(f)
	return s.w.Write(harvest.RowHeader)
}

func (s *CSVStore) Save(ctx context.Context, row *harvest.Row) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.open(); err != nil {
		return err
	}
	return s.w.Write(row.Record())
}

// Commit flushes pending rows and moves the file into place. Committing
// without any saved rows produces a header-only file.
func (s *CSVStore) Commit() error {
	if err := s.open(); err != nil {
		return err
	}

	s.w.Flush()
	if err := s.w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", s.tempPath(), err)
	}
	if err := s.file.Close(); err != nil {
		return err
	}
	s.file, s.w = nil, nil

	return os.Rename(s.tempPath(), s.path)
}

func (s *CSVStore) Abort() error {
	if s.file != nil {
		_ = s.file.Close()
		s.file, s.w = nil, nil
	}
	if err := os.Remove(s.tempPath()); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
