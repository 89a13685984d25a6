//go:build unit

package notify_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"meetroom/internal/infra/notify"
	"meetroom/internal/pkg/config"
	"meetroom/tests/common/builder"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeToken struct {
	mqtt.Token
	done chan struct{}
	err  error
}

func newToken(err error, complete bool) *fakeToken {
	t := &fakeToken{done: make(chan struct{}), err: err}
	if complete {
		close(t.done)
	}
	return t
}

func (t *fakeToken) Done() <-chan struct{} { return t.done }
func (t *fakeToken) Error() error          { return t.err }

type published struct {
	topic    string
	qos      byte
	retained bool
	payload  []byte
}

type fakeClient struct {
	mqtt.Client
	token *fakeToken
	sent  []published
}

func (c *fakeClient) Publish(topic string, qos byte, retained bool, payload any) mqtt.Token {
	c.sent = append(c.sent, published{topic: topic, qos: qos, retained: retained, payload: payload.([]byte)})
	return c.token
}

func TestMQTTPublisher(t *testing.T) {
	cfg := config.NewTestConfig().MQTT
	occupied := builder.NewRoomBuilder().WithRoomNo(205).WithFloorNo(2).WithCapacity(6).AsOccupied().MustBuild()

	t.Run("publishes a retained message per room", func(t *testing.T) {
		client := &fakeClient{token: newToken(nil, true)}
		p := notify.NewMQTTPublisher(client, cfg)

		require.NoError(t, p.PublishOccupancy(context.Background(), occupied))
		require.Len(t, client.sent, 1)

		msg := client.sent[0]
		assert.Equal(t, "fms/floors/2/rooms/205/occupancy", msg.topic)
		assert.Equal(t, byte(1), msg.qos)
		assert.True(t, msg.retained)

		var body notify.OccupancyMessage
		require.NoError(t, json.Unmarshal(msg.payload, &body))
		assert.Equal(t, 205, body.RoomNo)
		assert.Equal(t, 6, body.Capacity)
		assert.True(t, body.Occupied)
		assert.False(t, body.ChangedAt.IsZero())
	})

	t.Run("broker error", func(t *testing.T) {
		boom := errors.New("not authorized")
		p := notify.NewMQTTPublisher(&fakeClient{token: newToken(boom, true)}, cfg)
		require.ErrorIs(t, p.PublishOccupancy(context.Background(), occupied), boom)
	})

	t.Run("context cancelled while waiting", func(t *testing.T) {
		p := notify.NewMQTTPublisher(&fakeClient{token: newToken(nil, false)}, cfg)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		require.ErrorIs(t, p.PublishOccupancy(ctx, occupied), context.Canceled)
	})

	t.Run("nop publisher", func(t *testing.T) {
		require.NoError(t, notify.NopPublisher{}.PublishOccupancy(context.Background(), occupied))
	})
}
