package bootstrap

import (
	dompayment "belizevibes-booking/internal/domain/payment"
	"belizevibes-booking/internal/infra/payment"
	"belizevibes-booking/internal/pkg/config"

	"go.uber.org/fx"
)

var PaymentModule = fx.Module("payment",
	fx.Provide(
		fx.Annotate(
			NewPaymentProvider,
			fx.As(new(dompayment.Provider)),
		),
	),
)

func NewPaymentProvider(cfg config.Config) (*payment.StripeProvider, error) {
	return payment.NewStripeProvider(cfg.Payment)
}
