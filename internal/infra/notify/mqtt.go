package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"meetroom/internal/domain/room"
	"meetroom/internal/pkg/config"
	"meetroom/internal/pkg/errs"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

var ErrPublishTimeout = errs.New("timed out publishing occupancy")

type OccupancyMessage struct {
	RoomNo    int       `json:"roomNo"`
	FloorNo   int       `json:"floorNo"`
	Capacity  int       `json:"capacity"`
	Occupied  bool      `json:"occupied"`
	ChangedAt time.Time `json:"changedAt"`
}

// MQTTPublisher publishes a retained message per room so late subscribers
// (door displays, dashboards) see the current state immediately.
type MQTTPublisher struct {
	client      mqtt.Client
	topicPrefix string
	qos         byte
	timeout     time.Duration
	now         func() time.Time
}

// ConnectMQTT dials the broker described by cfg.
func ConnectMQTT(cfg config.MQTTConfig) (mqtt.Client, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.Broker)
	opts.SetClientID(cfg.ClientID)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
	}
	if cfg.Password != "" {
		opts.SetPassword(cfg.Password)
	}
	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetCleanSession(true)

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(cfg.PublishTimeout) {
		// ConnectRetry keeps dialing in the background.
		return client, nil
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %w", err)
	}
	return client, nil
}

func NewMQTTPublisher(client mqtt.Client, cfg config.MQTTConfig) *MQTTPublisher {
	return &MQTTPublisher{
		client:      client,
		topicPrefix: cfg.TopicPrefix,
		qos:         cfg.QoS,
		timeout:     cfg.PublishTimeout,
		now:         time.Now,
	}
}

func (p *MQTTPublisher) Topic(r *room.Room) string {
	return fmt.Sprintf("%s/floors/%d/rooms/%d/occupancy", p.topicPrefix, r.FloorNo(), r.RoomNo())
}

func (p *MQTTPublisher) PublishOccupancy(ctx context.Context, r *room.Room) error {
	payload, err := json.Marshal(OccupancyMessage{
		RoomNo:    r.RoomNo(),
		FloorNo:   r.FloorNo(),
		Capacity:  r.Capacity(),
		Occupied:  r.IsOccupied(),
		ChangedAt: p.now().UTC(),
	})
	if err != nil {
		return errs.Wrap(err, "failed to encode occupancy message")
	}

	token := p.client.Publish(p.Topic(r), p.qos, true, payload)
	select {
	case <-token.Done():
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(p.timeout):
		return ErrPublishTimeout
	}
	if err := token.Error(); err != nil {
		return errs.Wrapf(err, "failed to publish to %s", p.Topic(r))
	}
	return nil
}

func (p *MQTTPublisher) Close() {
	p.client.Disconnect(250)
}
