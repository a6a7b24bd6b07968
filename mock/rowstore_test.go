package mock_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/harvest"
	"github.com/fwojciec/harvest/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowStore_ImplementsInterface(t *testing.T) {
	t.Parallel()

	// Verify mock can be used where RowStore is expected
	var _ harvest.RowStore = &mock.RowStore{}
}

func TestRowStore_Save(t *testing.T) {
	t.Parallel()

	t.Run("delegates to SaveFn", func(t *testing.T) {
		t.Parallel()

		var calledWith *harvest.Row
		s := &mock.RowStore{
			SaveFn: func(_ context.Context, row *harvest.Row) error {
				calledWith = row
				return nil
			},
		}

		row := &harvest.Row{URL: "https://example.com", Title: "A", Paragraph: "p"}
		err := s.Save(context.Background(), row)

		require.NoError(t, err)
		assert.Same(t, row, calledWith)
	})

	t.Run("returns error from SaveFn", func(t *testing.T) {
		t.Parallel()

		expected := errors.New("disk full")
		s := &mock.RowStore{
			SaveFn: func(_ context.Context, _ *harvest.Row) error {
				return expected
			},
		}

		err := s.Save(context.Background(), &harvest.Row{})

		assert.ErrorIs(t, err, expected)
	})
}
