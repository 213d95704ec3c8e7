package bootstrap

import (
	"context"
	"log/slog"

	"belizevibes-booking/internal/infra/events"
	"belizevibes-booking/internal/infra/outbox"
	"belizevibes-booking/internal/pkg/clock"
	"belizevibes-booking/internal/pkg/config"
	"belizevibes-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

var EventsModule = fx.Module("events",
	fx.Provide(
		NewEventBus,
		NewOutboxRelay,
	),
	fx.Invoke(startEventConsumer, startOutboxRelay),
)

func NewEventBus(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (*events.Bus, error) {
	bus, err := events.NewBus(context.Background(), cfg.Events, logger)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return bus.Close()
		},
	})

	return bus, nil
}

func NewOutboxRelay(uow shared.UnitOfWork, bus *events.Bus, clk clock.Clock, cfg config.Config, logger *slog.Logger) *outbox.Relay {
	return outbox.NewRelay(uow, bus.Publisher, clk, cfg.Outbox, logger.With("component", "outbox"))
}

// startEventConsumer runs the in-process notification consumer. Brokers other
// than the in-memory one are drained by their own consumers.
func startEventConsumer(lc fx.Lifecycle, bus *events.Bus, logger *slog.Logger) error {
	if bus.Subscriber == nil {
		return nil
	}

	consumerLogger := logger.With("component", "notifications")
	router, err := events.NewConsumerRouter(bus, events.NewNotificationHandler(consumerLogger).Handle, consumerLogger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			go func() {
				if err := router.Run(ctx); err != nil {
					consumerLogger.Error("Event consumer stopped", "error", err.Error())
				}
			}()
			select {
			case <-router.Running():
				return nil
			case <-startCtx.Done():
				return startCtx.Err()
			}
		},
		OnStop: func(_ context.Context) error {
			cancel()
			return router.Close()
		},
	})
	return nil
}

func startOutboxRelay(lc fx.Lifecycle, relay *outbox.Relay, cfg config.Config, logger *slog.Logger) {
	if !cfg.Outbox.Enabled {
		logger.Info("Outbox relay disabled")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				defer close(done)
				relay.Run(ctx)
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
				return nil
			case <-stopCtx.Done():
				return stopCtx.Err()
			}
		},
	})
}
