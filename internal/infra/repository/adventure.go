package repository

import (
	"context"
	"strings"

	"belizevibes-booking/internal/domain/adventure"
	"belizevibes-booking/internal/infra"
	sqlc "belizevibes-booking/internal/infra/sqlc/generated"
)

type AdventureWriteQueries interface {
	UpsertAdventure(ctx context.Context, db sqlc.DBTX, arg sqlc.UpsertAdventureParams) error
}

type AdventureRepository struct {
	queries AdventureWriteQueries
	db      sqlc.DBTX
}

func NewAdventureRepository(queries AdventureWriteQueries, db sqlc.DBTX) *AdventureRepository {
	return &AdventureRepository{
		queries: queries,
		db:      db,
	}
}

// SeedFromCatalog upserts every catalog entry as an active adventure and
// returns how many rows were written.
func (r *AdventureRepository) SeedFromCatalog(ctx context.Context, catalog *adventure.Catalog, currency string) (int, error) {
	written := 0
	for _, entry := range catalog.Entries() {
		price, err := entry.PricePerPerson()
		if err != nil {
			return written, infra.WrapRepoErr("invalid catalog price for "+entry.ID, err, infra.KindCheckViolated)
		}

		err = r.queries.UpsertAdventure(ctx, r.db, sqlc.UpsertAdventureParams{
			ID:         entry.ID,
			Title:      entry.Title,
			PriceCents: price.Cents(),
			Currency:   strings.ToUpper(currency),
			Active:     true,
		})
		if err != nil {
			return written, infra.WrapRepoErr("failed to upsert adventure "+entry.ID, err)
		}
		written++
	}
	return written, nil
}
