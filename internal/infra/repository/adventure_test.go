//go:build unit

package repository_test

import (
	"context"
	"errors"
	"testing"

	"belizevibes-booking/internal/domain/adventure"
	"belizevibes-booking/internal/infra"
	"belizevibes-booking/internal/infra/repository"
	sqlc "belizevibes-booking/internal/infra/sqlc/generated"
	repositorymock "belizevibes-booking/tests/mock/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestAdventureRepository_SeedFromCatalog(t *testing.T) {
	ctx := context.Background()

	t.Run("success: every entry upserted in id order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := repositorymock.NewMockAdventureWriteQueries(ctrl)
		mockDB := &mockDBTX{}
		repo := repository.NewAdventureRepository(mockQueries, mockDB)

		catalog := adventure.NewCatalog([]adventure.Entry{
			{ID: "tour-42", Title: "Cave Tubing", Price: "$100"},
			{ID: "belize-week", Title: "Jungle to Reef", Price: "$1,299.50"},
		})

		gomock.InOrder(
			mockQueries.EXPECT().UpsertAdventure(ctx, mockDB, sqlc.UpsertAdventureParams{
				ID: "belize-week", Title: "Jungle to Reef", PriceCents: 129950, Currency: "USD", Active: true,
			}).Return(nil),
			mockQueries.EXPECT().UpsertAdventure(ctx, mockDB, sqlc.UpsertAdventureParams{
				ID: "tour-42", Title: "Cave Tubing", PriceCents: 10000, Currency: "USD", Active: true,
			}).Return(nil),
		)

		n, err := repo.SeedFromCatalog(ctx, catalog, "usd")
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	})

	t.Run("error: unparseable price stops seeding", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := repositorymock.NewMockAdventureWriteQueries(ctrl)
		mockDB := &mockDBTX{}
		repo := repository.NewAdventureRepository(mockQueries, mockDB)

		catalog := adventure.NewCatalog([]adventure.Entry{{ID: "broken", Title: "Broken", Price: "call us"}})

		n, err := repo.SeedFromCatalog(ctx, catalog, "USD")
		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindCheckViolated))
		assert.Zero(t, n)
	})

	t.Run("error: database error occurs", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := repositorymock.NewMockAdventureWriteQueries(ctrl)
		mockDB := &mockDBTX{}
		repo := repository.NewAdventureRepository(mockQueries, mockDB)

		mockQueries.EXPECT().UpsertAdventure(ctx, mockDB, gomock.Any()).Return(errors.New("database connection error"))

		_, err := repo.SeedFromCatalog(ctx, adventure.StaticCatalog, "USD")
		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})
}
