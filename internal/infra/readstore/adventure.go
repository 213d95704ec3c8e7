package readstore

import (
	"context"
	"strings"

	"belizevibes-booking/internal/domain/adventure"
	"belizevibes-booking/internal/domain/money"
	"belizevibes-booking/internal/infra"
	sqlc "belizevibes-booking/internal/infra/sqlc/generated"
	"belizevibes-booking/internal/pkg/pgconv"
)

type AdventureQueries interface {
	GetActiveAdventurePrice(ctx context.Context, db sqlc.DBTX, id string) (sqlc.GetActiveAdventurePriceRow, error)
}

// AdventureReadStore is the live catalog: active rows of the adventures table.
type AdventureReadStore struct {
	queries  AdventureQueries
	db       sqlc.DBTX
	currency string
}

func NewAdventureReadStore(queries AdventureQueries, db sqlc.DBTX, currency string) *AdventureReadStore {
	return &AdventureReadStore{
		queries:  queries,
		db:       db,
		currency: strings.ToUpper(currency),
	}
}

func (r *AdventureReadStore) FindActivePrice(ctx context.Context, adventureID string) (adventure.PriceQuote, error) {
	row, err := r.queries.GetActiveAdventurePrice(ctx, r.db, adventureID)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return adventure.PriceQuote{}, infra.WrapRepoErr("adventure not found", err, infra.KindNotFound)
		}
		return adventure.PriceQuote{}, infra.WrapRepoErr("failed to get adventure price", err)
	}

	// Rows priced in another currency cannot be quoted in the catalog currency.
	if r.currency != "" && !strings.EqualFold(row.Currency, r.currency) {
		return adventure.PriceQuote{}, infra.WrapRepoErr("adventure priced in foreign currency", nil, infra.KindNotFound)
	}

	return adventure.PriceQuote{
		AdventureID:    row.ID,
		PricePerPerson: money.FromCents(row.PriceCents),
		Source:         adventure.SourceCatalog,
	}, nil
}
