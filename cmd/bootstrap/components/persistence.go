package components

import (
	"belizevibes-booking/internal/infra/readstore"
	sqlc "belizevibes-booking/internal/infra/sqlc/generated"
	"belizevibes-booking/internal/infra/uow"
	"belizevibes-booking/internal/pkg/config"
	"belizevibes-booking/internal/usecase/pricing"
	"belizevibes-booking/internal/usecase/queries"
	"belizevibes-booking/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	baseOption,
	readstoreModule,
	uowModule,
)

var baseOption = fx.Provide(
	NewSQLQueries,
	NewDBTX,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		// Adventure
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(readstore.AdventureQueries)),
		),
		fx.Annotate(
			NewAdventureReadStore,
			fx.As(new(pricing.CatalogReader)),
		),
		// Booking
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(readstore.BookingViewQueries)),
		),
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingReadStore)),
		),
	),
)

// Repositories are created per transaction by the unit of work.
var uowModule = fx.Module("persistence/uow",
	fx.Provide(
		NewUnitOfWork,
	),
)

func NewSQLQueries(_ *pgxpool.Pool) *sqlc.Queries {
	return sqlc.New()
}

func NewDBTX(pool *pgxpool.Pool) sqlc.DBTX {
	return pool
}

func NewUnitOfWork(pool *pgxpool.Pool, q *sqlc.Queries) shared.UnitOfWork {
	return uow.NewPostgresUoW(pool, q)
}

func NewAdventureReadStore(q readstore.AdventureQueries, db sqlc.DBTX, cfg config.Config) *readstore.AdventureReadStore {
	return readstore.NewAdventureReadStore(q, db, cfg.Catalog.Currency)
}
