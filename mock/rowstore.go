package mock

import (
	"context"

	"github.com/fwojciec/harvest"
)

var _ harvest.RowStore = (*RowStore)(nil)

// RowStore is a mock implementation of harvest.RowStore.
type RowStore struct {
	SaveFn   func(ctx context.Context, row *harvest.Row) error
	CommitFn func() error
	AbortFn  func() error
}

func (s *RowStore) Save(ctx context.Context, row *harvest.Row) error {
	return s.SaveFn(ctx, row)
}

func (s *RowStore) Commit() error {
	return s.CommitFn()
}

func (s *RowStore) Abort() error {
	return s.AbortFn()
}
