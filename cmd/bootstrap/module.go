package bootstrap

import (
	"meetroom/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DocStoreModule,
	ScratchpadModule,
	JWTModule,
	NotifyModule,
	ConnectivityModule,
	components.RepositoryModule,
	components.UseCaseModule,
	components.HandlerModule,
)
