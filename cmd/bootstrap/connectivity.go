package bootstrap

import (
	"context"
	"log/slog"

	"meetroom/internal/handler/middleware"
	"meetroom/internal/infra/connectivity"
	"meetroom/internal/infra/docstore"
	"meetroom/internal/pkg/config"
	"meetroom/internal/usecase/commands"
	"meetroom/internal/usecase/offline"
	"meetroom/internal/usecase/shared"

	"go.uber.org/fx"
)

var ConnectivityModule = fx.Module("connectivity",
	fx.Provide(
		fx.Annotate(
			NewConnectivityMonitor,
			fx.As(fx.Self()),
			fx.As(new(shared.Connectivity)),
			fx.As(new(middleware.ConnectivityChecker)),
		),
	),
	fx.Invoke(startConnectivityMonitor),
)

func NewConnectivityMonitor(store docstore.Store, cfg config.Config, logger *slog.Logger) *connectivity.Monitor {
	return connectivity.NewMonitor(store, cfg.Connectivity, logger)
}

type schemaEnsurer interface {
	EnsureSchema(ctx context.Context) error
}

// startConnectivityMonitor replays the offline queue and resolves pending
// booking records on every transition back to online.
func startConnectivityMonitor(
	lc fx.Lifecycle,
	monitor *connectivity.Monitor,
	store docstore.Store,
	syncer offline.SyncService,
	bookings commands.BookingCommands,
	logger *slog.Logger,
) {
	if s, ok := store.(schemaEnsurer); ok {
		monitor.OnOnline(func(ctx context.Context) {
			if err := s.EnsureSchema(ctx); err != nil {
				logger.Error("Failed to apply document schema", slog.String("error", err.Error()))
			}
		})
	}
	monitor.OnOnline(func(ctx context.Context) {
		res, err := syncer.Drain(ctx)
		if err != nil {
			logger.Error("Offline queue drain failed", slog.String("error", err.Error()))
			return
		}
		if res.Attempted > 0 {
			logger.Info("Offline queue drained",
				slog.Int("attempted", res.Attempted),
				slog.Int("applied", res.Applied),
				slog.Int("dropped", res.Dropped),
				slog.Int("dead_lettered", res.DeadLettered),
			)
		}
	})
	monitor.OnOnline(func(ctx context.Context) {
		if _, err := bookings.ReconcilePending(ctx); err != nil {
			logger.Error("Booking reconciliation failed", slog.String("error", err.Error()))
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				defer close(done)
				monitor.Run(ctx)
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
			case <-stopCtx.Done():
			}
			return nil
		},
	})
}
