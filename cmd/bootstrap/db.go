package bootstrap

import (
	"context"
	"log/slog"

	"meetroom/internal/infra/db"
	"meetroom/internal/infra/docstore"
	"meetroom/internal/pkg/config"

	"go.uber.org/fx"
)

var DocStoreModule = fx.Module("docstore",
	fx.Provide(
		NewDocStore,
	),
)

// NewDocStore opens the remote document store. With the postgres driver an
// unreachable database is not fatal; the schema is applied again by the
// connectivity monitor once the database answers.
func NewDocStore(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (docstore.Store, error) {
	if cfg.DocStore.Driver == config.DocStoreDriverMemory {
		logger.Warn("Using in-memory document store, data is lost on restart")
		return docstore.NewMemoryStore(), nil
	}

	ctx := context.Background()
	pool, cleanup, err := db.Connect(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}

	store := docstore.NewPostgresStore(pool)
	if err := store.EnsureSchema(ctx); err != nil {
		logger.Warn("Document schema not applied yet", slog.String("error", err.Error()))
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			if cleanup != nil {
				cleanup()
			}
			return nil
		},
	})

	return store, nil
}
