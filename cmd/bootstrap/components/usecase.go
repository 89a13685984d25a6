package components

import (
	"meetroom/internal/pkg/clock"
	"meetroom/internal/usecase/commands"
	"meetroom/internal/usecase/offline"
	"meetroom/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
	usecaseOfflineModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	fx.Annotate(
		commands.NewApplier,
		fx.As(fx.Self()),
		fx.As(new(offline.Applier)),
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewRoomUseCase,
		commands.NewBookingUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewRoomQueries,
		queries.NewBookingQueries,
	),
)

var usecaseOfflineModule = fx.Module("usecase/offline",
	fx.Provide(
		fx.Annotate(
			offline.NewSyncer,
			fx.As(fx.Self()),
			fx.As(new(offline.SyncService)),
		),
	),
	fx.Invoke(registerSyncerShutdown),
)

// registerSyncerShutdown stops an in-flight drain before the stores it
// writes to are closed.
func registerSyncerShutdown(lc fx.Lifecycle, syncer *offline.Syncer) {
	lc.Append(fx.Hook{OnStop: syncer.Shutdown})
}
