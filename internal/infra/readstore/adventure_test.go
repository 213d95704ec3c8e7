//go:build unit

package readstore_test

import (
	"context"
	"testing"
	"time"

	"belizevibes-booking/internal/domain/adventure"
	"belizevibes-booking/internal/infra"
	"belizevibes-booking/internal/infra/readstore"
	sqlc "belizevibes-booking/internal/infra/sqlc/generated"
	"belizevibes-booking/internal/usecase/shared"
	readstoremock "belizevibes-booking/tests/mock/readstore"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestAdventureReadStore_FindActivePrice(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name        string
		row         sqlc.GetActiveAdventurePriceRow
		queryErr    error
		expectCents int64
		expectKind  infra.RepositoryErrorKind
	}{
		{
			name:        "success: active adventure priced in catalog currency",
			row:         sqlc.GetActiveAdventurePriceRow{ID: "tour-42", Title: "Cave Tubing", PriceCents: 10000, Currency: "usd"},
			expectCents: 10000,
		},
		{
			name:       "error: adventure missing or inactive",
			queryErr:   pgx.ErrNoRows,
			expectKind: infra.KindNotFound,
		},
		{
			name:       "error: adventure priced in another currency",
			row:        sqlc.GetActiveAdventurePriceRow{ID: "tour-42", PriceCents: 20000, Currency: "BZD"},
			expectKind: infra.KindNotFound,
		},
		{
			name:       "error: database error",
			queryErr:   errDBConnectionLost,
			expectKind: infra.KindDBFailure,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockQueries := readstoremock.NewMockAdventureQueries(ctrl)
			mockDB := &mockDBTX{}
			store := readstore.NewAdventureReadStore(mockQueries, mockDB, "USD")

			mockQueries.EXPECT().GetActiveAdventurePrice(ctx, mockDB, "tour-42").Return(tc.row, tc.queryErr)

			quote, err := store.FindActivePrice(ctx, "tour-42")

			if tc.expectKind != "" {
				require.Error(t, err)
				assert.True(t, infra.IsKind(err, tc.expectKind), "expected kind [%v] but got (%v)", tc.expectKind, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "tour-42", quote.AdventureID)
			assert.Equal(t, tc.expectCents, quote.PricePerPerson.Cents())
			assert.Equal(t, adventure.SourceCatalog, quote.Source)
		})
	}
}

func TestIdempotencyReadStore_Get(t *testing.T) {
	ctx := context.Background()
	key := uuid.New()
	bookingID := uuid.New()
	expiresAt := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

	t.Run("success: completed record", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := readstoremock.NewMockIdempotencyReadQueries(ctrl)
		mockDB := &mockDBTX{}
		store := readstore.NewIdempotencyReadStore(mockQueries)

		mockQueries.EXPECT().GetIdempotencyKey(ctx, mockDB, key).Return(sqlc.IdempotencyKeys{
			Key:             key,
			Endpoint:        "POST /api/bookings",
			RequestHash:     "hash",
			Status:          shared.IdempotencyStatusCompleted,
			ResultBookingID: pgtype.UUID{Bytes: bookingID, Valid: true},
			ExpiresAt:       pgtype.Timestamptz{Time: expiresAt, Valid: true},
		}, nil)

		rec, err := store.Get(ctx, mockDB, key)
		require.NoError(t, err)
		assert.Equal(t, shared.IdempotencyStatusCompleted, rec.Status)
		assert.Nil(t, rec.UserID)
		require.NotNil(t, rec.ResultBookingID)
		assert.Equal(t, bookingID, *rec.ResultBookingID)
		assert.True(t, rec.ExpiresAt.Equal(expiresAt))
	})

	t.Run("error: unknown key", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := readstoremock.NewMockIdempotencyReadQueries(ctrl)
		mockDB := &mockDBTX{}
		store := readstore.NewIdempotencyReadStore(mockQueries)

		mockQueries.EXPECT().GetIdempotencyKey(ctx, mockDB, key).Return(sqlc.IdempotencyKeys{}, pgx.ErrNoRows)

		_, err := store.Get(ctx, mockDB, key)
		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})
}
