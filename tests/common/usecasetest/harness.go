//go:build unit || e2e

// Package usecasetest wires the write path against in-memory backends.
package usecasetest

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"meetroom/internal/domain/booking"
	"meetroom/internal/domain/pendingwrite"
	"meetroom/internal/domain/room"
	"meetroom/internal/infra/docstore"
	"meetroom/internal/infra/notify"
	"meetroom/internal/infra/offlinequeue"
	"meetroom/internal/infra/repository"
	"meetroom/internal/infra/scratchpad"
	"meetroom/internal/pkg/clock"
	"meetroom/internal/pkg/config"
	"meetroom/internal/usecase/commands"

	"github.com/stretchr/testify/require"
)

var Epoch = time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

type Harness struct {
	Config   config.Config
	Logger   *slog.Logger
	Clock    *clock.MockClock
	Store    *docstore.MemoryStore
	Rooms    *repository.RoomRepository
	Bookings *repository.BookingRepository
	Queue    *offlinequeue.Queue
	Applier  *commands.Applier
}

func New(t *testing.T) *Harness {
	t.Helper()

	cfg := config.NewTestConfig()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := docstore.NewMemoryStore()
	clk := clock.NewMockClock(Epoch)

	kv, err := scratchpad.OpenSQLite(context.Background(), ":memory:", clk)
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })

	h := &Harness{
		Config:   cfg,
		Logger:   logger,
		Clock:    clk,
		Store:    store,
		Rooms:    repository.NewRoomRepository(store, cfg, logger),
		Bookings: repository.NewBookingRepository(store, cfg, logger),
		Queue:    offlinequeue.New(kv, logger),
	}
	h.Applier = commands.NewApplier(h.Rooms, h.Bookings, notify.NopPublisher{}, h.Clock, logger)
	return h
}

func (h *Harness) Seed(t *testing.T, rooms ...*room.Room) {
	t.Helper()
	for _, r := range rooms {
		require.NoError(t, h.Rooms.Create(context.Background(), r))
	}
}

// Room loads a room and fails the test if it is missing.
func (h *Harness) Room(t *testing.T, roomNo, floorNo int) *room.Room {
	t.Helper()
	r, err := h.Rooms.FindByKey(context.Background(), room.Key{RoomNo: roomNo, FloorNo: floorNo})
	require.NoError(t, err)
	return r
}

func (h *Harness) AllRooms(t *testing.T) []*room.Room {
	t.Helper()
	rooms, err := h.Rooms.FindAll(context.Background())
	require.NoError(t, err)
	return rooms
}

func (h *Harness) Records(t *testing.T) []*booking.Record {
	t.Helper()
	records, err := h.Bookings.FindAll(context.Background())
	require.NoError(t, err)
	return records
}

func (h *Harness) Pending(t *testing.T) []*pendingwrite.Write {
	t.Helper()
	writes, err := h.Queue.Pending(context.Background())
	require.NoError(t, err)
	return writes
}

// Enqueue queues a write as if it had been captured while offline.
func (h *Harness) Enqueue(t *testing.T, kind pendingwrite.Kind, payload any) *pendingwrite.Write {
	t.Helper()
	w, err := pendingwrite.New(kind, payload, h.Clock.Now())
	require.NoError(t, err)
	require.NoError(t, h.Queue.Enqueue(context.Background(), w))
	return w
}
