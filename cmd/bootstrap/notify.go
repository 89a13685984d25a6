package bootstrap

import (
	"context"
	"log/slog"

	"meetroom/internal/infra/notify"
	"meetroom/internal/pkg/config"
	"meetroom/internal/usecase/shared"

	"go.uber.org/fx"
)

var NotifyModule = fx.Module("notify",
	fx.Provide(
		NewOccupancyPublisher,
	),
)

// NewOccupancyPublisher connects to MQTT when a broker is configured.
// Without one, occupancy changes are not announced.
func NewOccupancyPublisher(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (shared.OccupancyPublisher, error) {
	if cfg.MQTT.Broker == "" {
		return notify.NopPublisher{}, nil
	}

	client, err := notify.ConnectMQTT(cfg.MQTT)
	if err != nil {
		return nil, err
	}
	publisher := notify.NewMQTTPublisher(client, cfg.MQTT)
	logger.Info("Publishing occupancy over MQTT", slog.String("broker", cfg.MQTT.Broker))

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			publisher.Close()
			return nil
		},
	})
	return publisher, nil
}
