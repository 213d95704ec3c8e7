package bootstrap

import (
	"belizevibes-booking/internal/handler/middleware"
	"belizevibes-booking/internal/pkg/config"
	"belizevibes-booking/internal/pkg/jwt"

	"go.uber.org/fx"
)

var JWTModule = fx.Module("jwt",
	fx.Provide(
		fx.Annotate(
			NewJWTVerifier,
			fx.As(new(middleware.TokenVerifier)),
		),
	),
)

// NewJWTVerifier checks tokens minted by the external identity provider.
func NewJWTVerifier(cfg config.Config) *jwt.Verifier {
	if cfg.JWT.Secret == "" {
		panic("JWT_SECRET must be set")
	}
	return jwt.NewVerifier(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Audience)
}
