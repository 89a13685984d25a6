package bootstrap

import (
	"context"
	"log/slog"

	"meetroom/internal/infra/scratchpad"
	"meetroom/internal/pkg/clock"
	"meetroom/internal/pkg/config"
	"meetroom/internal/pkg/errs"

	"github.com/go-redis/redis/v8"
	"go.uber.org/fx"
)

var ScratchpadModule = fx.Module("scratchpad",
	fx.Provide(
		NewScratchpad,
	),
)

// NewScratchpad opens the local durable area backing the offline queue.
func NewScratchpad(lc fx.Lifecycle, cfg config.Config, clk clock.Clock, logger *slog.Logger) (scratchpad.KV, error) {
	var (
		kv  scratchpad.KV
		err error
	)

	switch cfg.Queue.Driver {
	case config.QueueDriverRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Queue.RedisAddr,
			Password: cfg.Queue.RedisPassword,
			DB:       cfg.Queue.RedisDB,
		})
		if err := client.Ping(context.Background()).Err(); err != nil {
			_ = client.Close()
			return nil, errs.Wrap(err, "failed to reach scratchpad redis")
		}
		kv = scratchpad.NewRedisKV(client, cfg.Queue.RedisPrefix)
	default:
		kv, err = scratchpad.OpenSQLite(context.Background(), cfg.Queue.SQLitePath, clk)
		if err != nil {
			return nil, err
		}
	}

	logger.Info("Scratchpad opened", slog.String("driver", cfg.Queue.Driver))

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return kv.Close()
		},
	})
	return kv, nil
}
