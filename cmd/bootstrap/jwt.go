package bootstrap

import (
	"meetroom/internal/handler/middleware"
	"meetroom/internal/pkg/config"
	"meetroom/internal/pkg/jwt"

	"go.uber.org/fx"
)

var JWTModule = fx.Module("jwt",
	fx.Provide(
		fx.Annotate(
			NewTokenVerifier,
			fx.As(new(middleware.TokenVerifier)),
		),
	),
)

func NewTokenVerifier(cfg config.Config) *jwt.Verifier {
	return jwt.NewVerifier(cfg.JWT.Secret, cfg.JWT.Issuer)
}
