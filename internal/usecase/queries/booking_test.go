//go:build unit

package queries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"belizevibes-booking/internal/infra"
	"belizevibes-booking/internal/usecase/queries"
	"belizevibes-booking/tests/common/builder"
	usecasemock "belizevibes-booking/tests/mock/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func listItems(n int, newest time.Time) []*queries.BookingListItem {
	items := make([]*queries.BookingListItem, n)
	for i := range items {
		items[i] = &queries.BookingListItem{
			ID:        uuid.New(),
			CreatedAt: newest.Add(-time.Duration(i) * time.Minute),
		}
	}
	return items
}

func TestBookingQueries_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := usecasemock.NewMockBookingReadStore(ctrl)
		view := builder.NewBookingBuilder().BuildView()
		store.EXPECT().FindByID(ctx, view.ID).Return(view, nil)

		got, err := queries.NewBookingQueries(store).GetByID(ctx, view.ID)
		require.NoError(t, err)
		assert.Equal(t, view, got)
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := usecasemock.NewMockBookingReadStore(ctrl)
		store.EXPECT().FindByID(ctx, gomock.Any()).Return(nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound))

		_, err := queries.NewBookingQueries(store).GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, queries.ErrBookingNotFound)
	})

	t.Run("store failure passes through", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := usecasemock.NewMockBookingReadStore(ctrl)
		boom := errors.New("connection reset")
		store.EXPECT().FindByID(ctx, gomock.Any()).Return(nil, boom)

		_, err := queries.NewBookingQueries(store).GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, boom)
	})
}

func TestBookingQueries_ListByUser(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	newest := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

	t.Run("first page with more rows returns a cursor", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := usecasemock.NewMockBookingReadStore(ctrl)
		rows := listItems(4, newest)
		store.EXPECT().FindByUserFirstPage(ctx, userID, int32(4)).Return(rows, nil)

		items, next, err := queries.NewBookingQueries(store).ListByUser(ctx, userID, nil, 3)
		require.NoError(t, err)
		require.Len(t, items, 3)
		require.NotNil(t, next)

		at, id, err := queries.DecodeAfterCursor(next.After)
		require.NoError(t, err)
		assert.Equal(t, rows[2].ID, id)
		assert.True(t, at.Equal(rows[2].CreatedAt))
	})

	t.Run("last page has no cursor", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := usecasemock.NewMockBookingReadStore(ctrl)
		store.EXPECT().FindByUserFirstPage(ctx, userID, int32(4)).Return(listItems(2, newest), nil)

		items, next, err := queries.NewBookingQueries(store).ListByUser(ctx, userID, &queries.Cursor{}, 3)
		require.NoError(t, err)
		assert.Len(t, items, 2)
		assert.Nil(t, next)
	})

	t.Run("cursor continues with keyset", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := usecasemock.NewMockBookingReadStore(ctrl)
		lastID := uuid.New()
		cursor := &queries.Cursor{After: queries.EncodeAfterCursor(newest, lastID)}

		store.EXPECT().
			FindByUserKeyset(ctx, userID, gomock.Any(), lastID, int32(queries.DefaultListLimit+1)).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, at time.Time, _ uuid.UUID, _ int32) ([]*queries.BookingListItem, error) {
				assert.True(t, at.Equal(newest))
				return nil, nil
			})

		items, next, err := queries.NewBookingQueries(store).ListByUser(ctx, userID, cursor, 0)
		require.NoError(t, err)
		assert.Empty(t, items)
		assert.Nil(t, next)
	})

	t.Run("limit is capped", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := usecasemock.NewMockBookingReadStore(ctrl)
		store.EXPECT().FindByUserFirstPage(ctx, userID, int32(queries.MaxListLimit+1)).Return(nil, nil)

		_, _, err := queries.NewBookingQueries(store).ListByUser(ctx, userID, nil, 5000)
		require.NoError(t, err)
	})

	t.Run("garbage cursor", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := usecasemock.NewMockBookingReadStore(ctrl)

		_, _, err := queries.NewBookingQueries(store).ListByUser(ctx, userID, &queries.Cursor{After: "not-base64!"}, 10)
		assert.ErrorIs(t, err, queries.ErrInvalidCursor)
	})
}
