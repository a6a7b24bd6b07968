package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/fwojciec/harvest"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ harvest.RowStore = (*RowStore)(nil)

// Run describes one recorded harvest run.
type Run struct {
	ID        string
	StartedAt time.Time
	URLCount  int
	RowCount  int
}

// RowStore implements harvest.RowStore using SQLite. All rows of a run are
// written in one transaction that Commit makes visible and Abort rolls back.
//
// The DB holds a single connection, so other queries on it block until the
// store is committed or aborted.
type RowStore struct {
	db       *DB
	urlCount int

	tx       *sql.Tx
	runID    string
	position int
}

// NewRowStore creates a RowStore for a run over urlCount input URLs.
func NewRowStore(db *DB, urlCount int) *RowStore {
	return &RowStore{db: db, urlCount: urlCount}
}

// RunID returns the id of the run, or "" before the first Save or Commit.
func (s *RowStore) RunID() string {
	return s.runID
}

// begin opens the run transaction on first use.
func (s *RowStore) begin(ctx context.Context) error {
	if s.tx != nil {
		return nil
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("begin run: %w", err)
	}

	id := uuid.New().String()
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO runs (id, started_at, url_count)
		VALUES (?, ?, ?)
	`, id, time.Now().UTC().Format(time.RFC3339), s.urlCount); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("create run: %w", err)
	}

	s.tx = tx
	s.runID = id
	return nil
}

// Save inserts row at the next position of the run.
func (s *RowStore) Save(ctx context.Context, row *harvest.Row) error {
	if err := s.begin(ctx); err != nil {
		return err
	}

	_, err := s.tx.ExecContext(ctx, `
		INSERT INTO run_rows (run_id, position, url, title, paragraph, paragraph_hash)
		VALUES (?, ?, ?, ?, ?, ?)
	`, s.runID, s.position, row.URL, row.Title, row.Paragraph, HashParagraph(row.Paragraph))
	if err != nil {
		return err
	}

	s.position++
	return nil
}

// Commit records the run and its rows. A run without rows is still recorded.
func (s *RowStore) Commit() error {
	if err := s.begin(context.Background()); err != nil {
		return err
	}
	err := s.tx.Commit()
	s.tx = nil
	return err
}

// Abort discards the run.
func (s *RowStore) Abort() error {
	if s.tx == nil {
		return nil
	}
	err := s.tx.Rollback()
	s.tx = nil
	s.runID = ""
	return err
}

// FindRun retrieves a run by ID along with its row count.
func (db *DB) FindRun(ctx context.Context, id string) (*Run, error) {
	var run Run
	var startedAt string

	err := db.QueryRowContext(ctx, `
		SELECT r.id, r.started_at, r.url_count, COUNT(w.position)
		FROM runs r
		LEFT JOIN run_rows w ON w.run_id = r.id
		WHERE r.id = ?
		GROUP BY r.id
	`, id).Scan(&run.ID, &startedAt, &run.URLCount, &run.RowCount)

	if err == sql.ErrNoRows {
		return nil, harvest.Errorf(harvest.ENOTFOUND, "run not found")
	}
	if err != nil {
		return nil, err
	}

	run.StartedAt, err = parseRFC3339(startedAt, "started_at")
	if err != nil {
		return nil, err
	}

	return &run, nil
}

// FindRows returns the rows of a run in the order they were saved.
func (db *DB) FindRows(ctx context.Context, runID string) ([]harvest.Row, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT url, title, paragraph
		FROM run_rows
		WHERE run_id = ?
		ORDER BY position
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []harvest.Row
	for rows.Next() {
		var r harvest.Row
		if err := rows.Scan(&r.URL, &r.Title, &r.Paragraph); err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	return result, rows.Err()
}
