package components

import (
	"belizevibes-booking/internal/handler"
	"belizevibes-booking/internal/handler/api"
	"belizevibes-booking/internal/handler/middleware"
	"belizevibes-booking/internal/pkg/config"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAdventureHandler,
		api.NewBookingHandler,
		api.NewCheckoutHandler,
		api.NewPaymentHandler,
		middleware.NewAuthMiddleware,
		NewRateLimiter,
		NewHandlers,
		NewMiddlewares,
	),
	fx.Invoke(handler.NewRouter),
)

func NewRateLimiter(cfg config.Config) *middleware.RateLimiter {
	return middleware.NewRateLimiter(cfg.RateLimit)
}

func NewHandlers(
	adventure *api.AdventureHandler,
	booking *api.BookingHandler,
	checkout *api.CheckoutHandler,
	payment *api.PaymentHandler,
) handler.Handlers {
	return handler.Handlers{
		Adventure: adventure,
		Booking:   booking,
		Checkout:  checkout,
		Payment:   payment,
	}
}

func NewMiddlewares(logger *middleware.Logger, auth *middleware.AuthMiddleware, limiter *middleware.RateLimiter) handler.Middlewares {
	return handler.Middlewares{
		Logger:      logger,
		Auth:        auth,
		RateLimiter: limiter,
	}
}
