//go:build unit

package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"meetroom/internal/domain/pendingwrite"
	"meetroom/internal/domain/room"
	"meetroom/internal/infra/connectivity"
	"meetroom/internal/infra/notify"
	"meetroom/internal/pkg/errs"
	"meetroom/internal/usecase/commands"
	"meetroom/internal/usecase/shared"
	"meetroom/tests/common/builder"
	"meetroom/tests/common/usecasetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRoomCommands(h *usecasetest.Harness, online bool) commands.RoomCommands {
	return commands.NewRoomUseCase(h.Applier, connectivity.Static(online), h.Queue, h.Clock)
}

func intPtr(v int) *int { return &v }

func TestRoomCommands_AddRoom(t *testing.T) {
	ctx := context.Background()

	t.Run("success: room is stored free", func(t *testing.T) {
		h := usecasetest.New(t)
		uc := newRoomCommands(h, true)

		out, err := uc.AddRoom(ctx, commands.AddRoomParams{RoomNo: 101, FloorNo: 1, Capacity: 6})

		require.NoError(t, err)
		assert.False(t, out.Queued)
		assert.False(t, h.Room(t, 101, 1).IsOccupied())
	})

	t.Run("success: same room number on another floor", func(t *testing.T) {
		h := usecasetest.New(t)
		h.Seed(t, builder.Room(101, 1, 6, false))
		uc := newRoomCommands(h, true)

		_, err := uc.AddRoom(ctx, commands.AddRoomParams{RoomNo: 101, FloorNo: 2, Capacity: 4})

		require.NoError(t, err)
		assert.Len(t, h.AllRooms(t), 2)
	})

	t.Run("error: duplicate room on the same floor", func(t *testing.T) {
		h := usecasetest.New(t)
		h.Seed(t, builder.Room(101, 1, 6, false))
		uc := newRoomCommands(h, true)

		_, err := uc.AddRoom(ctx, commands.AddRoomParams{RoomNo: 101, FloorNo: 1, Capacity: 4})

		require.ErrorIs(t, err, commands.ErrDuplicateRoom)
		assert.True(t, errs.Is(err, errs.ErrConflict))
		assert.Len(t, h.AllRooms(t), 1)
	})

	t.Run("error: invalid fields are rejected before queueing", func(t *testing.T) {
		h := usecasetest.New(t)
		uc := newRoomCommands(h, false)

		_, err := uc.AddRoom(ctx, commands.AddRoomParams{RoomNo: 101, FloorNo: 1, Capacity: 0})

		require.ErrorIs(t, err, room.ErrInvalidCapacity)
		assert.Empty(t, h.Pending(t))
	})

	t.Run("offline: write is queued and the store is untouched", func(t *testing.T) {
		h := usecasetest.New(t)
		uc := newRoomCommands(h, false)

		out, err := uc.AddRoom(ctx, commands.AddRoomParams{RoomNo: 101, FloorNo: 1, Capacity: 6})

		require.NoError(t, err)
		assert.True(t, out.Queued)
		assert.Nil(t, out.Room)
		assert.Empty(t, h.AllRooms(t))

		pending := h.Pending(t)
		require.Len(t, pending, 1)
		assert.Equal(t, out.PendingWriteID, pending[0].ID)
		assert.Equal(t, pendingwrite.KindAddRoom, pending[0].Kind)
	})
}

func TestRoomCommands_ModifyRoom(t *testing.T) {
	ctx := context.Background()

	t.Run("success: capacity change", func(t *testing.T) {
		h := usecasetest.New(t)
		h.Seed(t, builder.Room(101, 1, 6, false))
		uc := newRoomCommands(h, true)

		out, err := uc.ModifyRoom(ctx, commands.ModifyRoomParams{RoomNo: 101, FloorNo: 1, Capacity: intPtr(10)})

		require.NoError(t, err)
		assert.Equal(t, 10, out.Room.Capacity())
		got := h.Room(t, 101, 1)
		assert.Equal(t, 10, got.Capacity())
		assert.False(t, got.IsOccupied())
	})

	t.Run("success: room moves to a new floor", func(t *testing.T) {
		h := usecasetest.New(t)
		h.Seed(t, builder.Room(101, 1, 6, false))
		uc := newRoomCommands(h, true)

		_, err := uc.ModifyRoom(ctx, commands.ModifyRoomParams{RoomNo: 101, FloorNo: 1, NewFloorNo: intPtr(3)})

		require.NoError(t, err)
		assert.Equal(t, 6, h.Room(t, 101, 3).Capacity())
		assert.Len(t, h.AllRooms(t), 1)
	})

	testCases := []struct {
		name  string
		seed  []*room.Room
		p     commands.ModifyRoomParams
		errIs error
		cat   error
	}{
		{
			name:  "error: nothing to change",
			p:     commands.ModifyRoomParams{RoomNo: 101, FloorNo: 1},
			errIs: commands.ErrNothingToModify,
			cat:   errs.ErrInvalidInput,
		},
		{
			name:  "error: negative capacity",
			p:     commands.ModifyRoomParams{RoomNo: 101, FloorNo: 1, Capacity: intPtr(-1)},
			errIs: room.ErrInvalidCapacity,
			cat:   errs.ErrInvalidInput,
		},
		{
			name:  "error: room does not exist",
			p:     commands.ModifyRoomParams{RoomNo: 101, FloorNo: 1, Capacity: intPtr(4)},
			errIs: commands.ErrRoomNotFound,
			cat:   errs.ErrNotFound,
		},
		{
			name:  "error: occupied room",
			seed:  []*room.Room{builder.Room(101, 1, 6, true)},
			p:     commands.ModifyRoomParams{RoomNo: 101, FloorNo: 1, Capacity: intPtr(8)},
			errIs: room.ErrOccupiedModify,
			cat:   errs.ErrConflict,
		},
		{
			name:  "error: target key already taken",
			seed:  []*room.Room{builder.Room(101, 1, 6, false), builder.Room(102, 1, 4, false)},
			p:     commands.ModifyRoomParams{RoomNo: 101, FloorNo: 1, NewRoomNo: intPtr(102)},
			errIs: commands.ErrDuplicateRoom,
			cat:   errs.ErrConflict,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h := usecasetest.New(t)
			h.Seed(t, tc.seed...)
			uc := newRoomCommands(h, true)

			_, err := uc.ModifyRoom(ctx, tc.p)

			require.ErrorIs(t, err, tc.errIs)
			assert.True(t, errs.Is(err, tc.cat))
		})
	}
}

// gatedRooms pauses the first lookup of one key until released.
type gatedRooms struct {
	shared.RoomRepository
	key     room.Key
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func (g *gatedRooms) FindByKey(ctx context.Context, key room.Key) (*room.Room, error) {
	if key == g.key {
		g.once.Do(func() {
			close(g.entered)
			<-g.release
		})
	}
	return g.RoomRepository.FindByKey(ctx, key)
}

func TestRoomCommands_ModifyRoomHoldsTargetKey(t *testing.T) {
	ctx := context.Background()
	h := usecasetest.New(t)
	h.Seed(t, builder.Room(101, 1, 6, false))

	rooms := &gatedRooms{
		RoomRepository: h.Rooms,
		key:            room.Key{RoomNo: 102, FloorNo: 1},
		entered:        make(chan struct{}),
		release:        make(chan struct{}),
	}
	applier := commands.NewApplier(rooms, h.Bookings, notify.NopPublisher{}, h.Clock, h.Logger)
	uc := commands.NewRoomUseCase(applier, connectivity.Static(true), h.Queue, h.Clock)

	modifyErr := make(chan error, 1)
	go func() {
		_, err := uc.ModifyRoom(ctx, commands.ModifyRoomParams{RoomNo: 101, FloorNo: 1, NewRoomNo: intPtr(102)})
		modifyErr <- err
	}()
	<-rooms.entered

	addErr := make(chan error, 1)
	go func() {
		_, err := uc.AddRoom(ctx, commands.AddRoomParams{RoomNo: 102, FloorNo: 1, Capacity: 4})
		addErr <- err
	}()
	time.Sleep(50 * time.Millisecond)
	close(rooms.release)

	require.NoError(t, <-modifyErr)
	require.ErrorIs(t, <-addErr, commands.ErrDuplicateRoom)

	all := h.AllRooms(t)
	require.Len(t, all, 1)
	assert.Equal(t, 6, all[0].Capacity())
}

func TestRoomCommands_DeleteRoom(t *testing.T) {
	ctx := context.Background()

	t.Run("success: free room is removed", func(t *testing.T) {
		h := usecasetest.New(t)
		h.Seed(t, builder.Room(101, 1, 6, false), builder.Room(101, 2, 6, false))
		uc := newRoomCommands(h, true)

		out, err := uc.DeleteRoom(ctx, commands.DeleteRoomParams{RoomNo: 101, FloorNo: 1})

		require.NoError(t, err)
		assert.False(t, out.Queued)
		rooms := h.AllRooms(t)
		require.Len(t, rooms, 1)
		assert.Equal(t, 2, rooms[0].FloorNo())
	})

	t.Run("error: occupied room cannot be deleted", func(t *testing.T) {
		h := usecasetest.New(t)
		h.Seed(t, builder.Room(101, 1, 6, true))
		uc := newRoomCommands(h, true)

		_, err := uc.DeleteRoom(ctx, commands.DeleteRoomParams{RoomNo: 101, FloorNo: 1})

		require.ErrorIs(t, err, room.ErrOccupiedDelete)
		assert.Len(t, h.AllRooms(t), 1)
	})

	t.Run("error: missing room", func(t *testing.T) {
		h := usecasetest.New(t)
		uc := newRoomCommands(h, true)

		_, err := uc.DeleteRoom(ctx, commands.DeleteRoomParams{RoomNo: 101, FloorNo: 1})

		require.ErrorIs(t, err, commands.ErrRoomNotFound)
	})
}

func TestRoomCommands_FreeRoom(t *testing.T) {
	ctx := context.Background()

	t.Run("success: occupied room becomes free", func(t *testing.T) {
		h := usecasetest.New(t)
		h.Seed(t, builder.Room(101, 1, 6, true))
		uc := newRoomCommands(h, true)

		out, err := uc.FreeRoom(ctx, commands.FreeRoomParams{RoomNo: 101, FloorNo: 1})

		require.NoError(t, err)
		assert.False(t, out.Room.IsOccupied())
		assert.False(t, h.Room(t, 101, 1).IsOccupied())
	})

	t.Run("error: room already free", func(t *testing.T) {
		h := usecasetest.New(t)
		h.Seed(t, builder.Room(101, 1, 6, false))
		uc := newRoomCommands(h, true)

		_, err := uc.FreeRoom(ctx, commands.FreeRoomParams{RoomNo: 101, FloorNo: 1})

		require.ErrorIs(t, err, room.ErrAlreadyFree)
		assert.True(t, errs.Is(err, errs.ErrConflict))
	})

	t.Run("offline: free request is queued", func(t *testing.T) {
		h := usecasetest.New(t)
		h.Seed(t, builder.Room(101, 1, 6, true))
		uc := newRoomCommands(h, false)

		out, err := uc.FreeRoom(ctx, commands.FreeRoomParams{RoomNo: 101, FloorNo: 1})

		require.NoError(t, err)
		assert.True(t, out.Queued)
		assert.True(t, h.Room(t, 101, 1).IsOccupied())
		require.Len(t, h.Pending(t), 1)
		assert.Equal(t, pendingwrite.KindFreeRoom, h.Pending(t)[0].Kind)
	})
}
