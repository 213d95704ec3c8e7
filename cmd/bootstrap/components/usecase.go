package components

import (
	"log/slog"

	"belizevibes-booking/internal/domain/adventure"
	"belizevibes-booking/internal/pkg/clock"
	"belizevibes-booking/internal/pkg/config"
	"belizevibes-booking/internal/usecase/commands"
	"belizevibes-booking/internal/usecase/pricing"
	"belizevibes-booking/internal/usecase/queries"
	"belizevibes-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	func(cfg config.Config) clock.Clock {
		return clock.NewRealClock(cfg.Catalog.Location())
	},
	NewPriceResolver,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		NewBookingCommands,
		commands.NewPaymentUseCase,
		commands.NewReconciliationUseCase,
		commands.NewCheckoutUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewBookingQueries,
	),
)

// NewPriceResolver falls back to the built-in catalog when the adventures
// table has no active row.
func NewPriceResolver(live pricing.CatalogReader, logger *slog.Logger) pricing.Resolver {
	return pricing.NewResolver(live, adventure.StaticCatalog, logger.With("component", "pricing"))
}

func NewBookingCommands(uow shared.UnitOfWork, resolver pricing.Resolver, clk clock.Clock, cfg config.Config) commands.BookingCommands {
	return commands.NewBookingUseCase(uow, resolver, clk, cfg.Catalog.Currency)
}
