//go:build unit

package commands_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"meetroom/internal/domain/booking"
	"meetroom/internal/domain/pendingwrite"
	"meetroom/internal/domain/room"
	"meetroom/internal/infra"
	"meetroom/internal/infra/connectivity"
	"meetroom/internal/pkg/clock"
	"meetroom/internal/pkg/config"
	"meetroom/internal/pkg/errs"
	"meetroom/internal/usecase/commands"
	"meetroom/tests/common/builder"
	"meetroom/tests/common/usecasetest"
	sharedmock "meetroom/tests/mock/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newBookingCommands(h *usecasetest.Harness, online bool) commands.BookingCommands {
	return commands.NewBookingUseCase(h.Applier, h.Rooms, h.Bookings, connectivity.Static(online), h.Queue, h.Clock, h.Config, h.Logger)
}

func TestBookingCommands_ConfirmBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("success: room occupied and record committed", func(t *testing.T) {
		h := usecasetest.New(t)
		h.Seed(t, builder.Room(101, 1, 6, false))
		uc := newBookingCommands(h, true)

		out, err := uc.ConfirmBooking(ctx, commands.ConfirmBookingParams{UserID: "u-1", RoomNo: 101, FloorNo: 1})

		require.NoError(t, err)
		assert.False(t, out.Queued)
		assert.NotEmpty(t, out.Record.ID())
		assert.Equal(t, booking.StatusCommitted, out.Record.Status())
		assert.True(t, h.Room(t, 101, 1).IsOccupied())

		records := h.Records(t)
		require.Len(t, records, 1)
		assert.Equal(t, "u-1", records[0].UserID())
		assert.Equal(t, "", records[0].UserName())
		assert.Equal(t, 6, records[0].Capacity())
		assert.Equal(t, usecasetest.Epoch, records[0].BookedAt())
		assert.False(t, records[0].IsPending())
	})

	t.Run("error: already occupied leaves no trace", func(t *testing.T) {
		h := usecasetest.New(t)
		h.Seed(t, builder.Room(101, 1, 6, true))
		uc := newBookingCommands(h, true)

		_, err := uc.ConfirmBooking(ctx, commands.ConfirmBookingParams{UserID: "u-1", RoomNo: 101, FloorNo: 1})

		require.ErrorIs(t, err, room.ErrAlreadyOccupied)
		assert.True(t, errs.Is(err, errs.ErrConflict))
		assert.Empty(t, h.Records(t))
	})

	t.Run("error: room vanished after suggestion", func(t *testing.T) {
		h := usecasetest.New(t)
		uc := newBookingCommands(h, true)

		_, err := uc.ConfirmBooking(ctx, commands.ConfirmBookingParams{UserID: "u-1", RoomNo: 101, FloorNo: 1})

		require.ErrorIs(t, err, commands.ErrRoomNotFound)
		assert.Empty(t, h.Records(t))
	})

	t.Run("error: requester id is required", func(t *testing.T) {
		h := usecasetest.New(t)
		h.Seed(t, builder.Room(101, 1, 6, false))
		uc := newBookingCommands(h, false)

		_, err := uc.ConfirmBooking(ctx, commands.ConfirmBookingParams{UserID: "  ", RoomNo: 101, FloorNo: 1})

		require.ErrorIs(t, err, booking.ErrEmptyUserID)
		assert.Empty(t, h.Pending(t))
	})

	t.Run("offline: booking is queued for replay", func(t *testing.T) {
		h := usecasetest.New(t)
		h.Seed(t, builder.Room(101, 1, 6, false))
		uc := newBookingCommands(h, false)

		out, err := uc.ConfirmBooking(ctx, commands.ConfirmBookingParams{UserID: "u-1", UserName: "Aiko", RoomNo: 101, FloorNo: 1})

		require.NoError(t, err)
		assert.True(t, out.Queued)
		assert.False(t, h.Room(t, 101, 1).IsOccupied())
		assert.Empty(t, h.Records(t))

		pending := h.Pending(t)
		require.Len(t, pending, 1)
		assert.Equal(t, pendingwrite.KindBookRoom, pending[0].Kind)
		var p pendingwrite.BookRoomPayload
		require.NoError(t, pending[0].Decode(&p))
		assert.Equal(t, "Aiko", p.UserName)
		assert.Equal(t, 101, p.RoomNo)
	})

	t.Run("concurrent confirmations book the room once", func(t *testing.T) {
		h := usecasetest.New(t)
		h.Seed(t, builder.Room(101, 1, 6, false))
		uc := newBookingCommands(h, true)

		const n = 8
		results := make(chan error, n)
		for i := 0; i < n; i++ {
			go func() {
				_, err := uc.ConfirmBooking(ctx, commands.ConfirmBookingParams{UserID: "u-1", RoomNo: 101, FloorNo: 1})
				results <- err
			}()
		}

		succeeded := 0
		for i := 0; i < n; i++ {
			if err := <-results; err == nil {
				succeeded++
			} else {
				require.ErrorIs(t, err, room.ErrAlreadyOccupied)
			}
		}
		assert.Equal(t, 1, succeeded)
		assert.Len(t, h.Records(t), 1)
	})
}

func TestBookingCommands_Compensation(t *testing.T) {
	ctx := context.Background()
	key := room.Key{RoomNo: 101, FloorNo: 1}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	clk := clock.NewMockClock(usecasetest.Epoch)

	setup := func(t *testing.T) (*sharedmock.MockRoomRepository, *sharedmock.MockBookingRepository, *sharedmock.MockOccupancyPublisher, commands.BookingCommands) {
		ctrl := gomock.NewController(t)
		rooms := sharedmock.NewMockRoomRepository(ctrl)
		bookings := sharedmock.NewMockBookingRepository(ctrl)
		publisher := sharedmock.NewMockOccupancyPublisher(ctrl)
		applier := commands.NewApplier(rooms, bookings, publisher, clk, logger)
		uc := commands.NewBookingUseCase(applier, rooms, bookings, connectivity.Static(true), nil, clk, config.NewTestConfig(), logger)
		return rooms, bookings, publisher, uc
	}
	params := commands.ConfirmBookingParams{UserID: "u-1", RoomNo: 101, FloorNo: 1}

	t.Run("occupancy update fails: pending record is removed", func(t *testing.T) {
		rooms, bookings, _, uc := setup(t)
		gomock.InOrder(
			rooms.EXPECT().FindByKey(gomock.Any(), key).Return(builder.Room(101, 1, 6, false), nil),
			bookings.EXPECT().AppendPending(gomock.Any(), gomock.Any()).Return("rec-1", nil),
			rooms.EXPECT().SetOccupied(gomock.Any(), key, true).
				Return(infra.WrapRepoErr(logger, infra.KindDBFailure, "write failed", errors.New("timeout"))),
			bookings.EXPECT().Remove(gomock.Any(), "rec-1").Return(nil),
		)

		_, err := uc.ConfirmBooking(ctx, params)

		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrRemoteFailure))
	})

	t.Run("record append fails: room is not touched", func(t *testing.T) {
		rooms, bookings, _, uc := setup(t)
		rooms.EXPECT().FindByKey(gomock.Any(), key).Return(builder.Room(101, 1, 6, false), nil)
		bookings.EXPECT().AppendPending(gomock.Any(), gomock.Any()).
			Return("", infra.WrapRepoErr(logger, infra.KindDBFailure, "push failed", errors.New("timeout")))

		_, err := uc.ConfirmBooking(ctx, params)

		assert.True(t, errs.Is(err, errs.ErrRemoteFailure))
	})

	t.Run("commit marker fails: booking stands with a pending record", func(t *testing.T) {
		rooms, bookings, publisher, uc := setup(t)
		rooms.EXPECT().FindByKey(gomock.Any(), key).Return(builder.Room(101, 1, 6, false), nil)
		bookings.EXPECT().AppendPending(gomock.Any(), gomock.Any()).Return("rec-1", nil)
		rooms.EXPECT().SetOccupied(gomock.Any(), key, true).Return(nil)
		bookings.EXPECT().MarkCommitted(gomock.Any(), "rec-1").Return(errors.New("timeout"))
		publisher.EXPECT().PublishOccupancy(gomock.Any(), gomock.Any()).Return(nil)

		out, err := uc.ConfirmBooking(ctx, params)

		require.NoError(t, err)
		assert.Equal(t, "rec-1", out.Record.ID())
		assert.True(t, out.Record.IsPending())
	})

	t.Run("publish failure does not fail the booking", func(t *testing.T) {
		rooms, bookings, publisher, uc := setup(t)
		rooms.EXPECT().FindByKey(gomock.Any(), key).Return(builder.Room(101, 1, 6, false), nil)
		bookings.EXPECT().AppendPending(gomock.Any(), gomock.Any()).Return("rec-1", nil)
		rooms.EXPECT().SetOccupied(gomock.Any(), key, true).Return(nil)
		bookings.EXPECT().MarkCommitted(gomock.Any(), "rec-1").Return(nil)
		publisher.EXPECT().PublishOccupancy(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

		out, err := uc.ConfirmBooking(ctx, params)

		require.NoError(t, err)
		assert.False(t, out.Record.IsPending())
	})
}

func TestBookingCommands_ReconcilePending(t *testing.T) {
	ctx := context.Background()
	h := usecasetest.New(t)
	h.Seed(t,
		builder.Room(101, 1, 6, true),
		builder.Room(102, 1, 6, false),
		builder.Room(103, 1, 6, true),
	)

	old := usecasetest.Epoch.Add(-time.Hour)
	appendRecord := func(roomNo int, at time.Time) string {
		rec := builder.NewBookingBuilder().WithRoom(roomNo, 1, 6).WithBookedAt(at).AsPending().BuildDomain()
		id, err := h.Bookings.AppendPending(ctx, rec)
		require.NoError(t, err)
		return id
	}
	landed := appendRecord(101, old)
	lost := appendRecord(102, old)
	fresh := appendRecord(103, usecasetest.Epoch.Add(-time.Second))
	committed := appendRecord(102, old.Add(-time.Hour))
	require.NoError(t, h.Bookings.MarkCommitted(ctx, committed))

	res, err := newBookingCommands(h, true).ReconcilePending(ctx)

	require.NoError(t, err)
	assert.Equal(t, 1, res.Committed)
	assert.Equal(t, 1, res.Removed)

	byID := map[string]*booking.Record{}
	for _, rec := range h.Records(t) {
		byID[rec.ID()] = rec
	}
	require.Contains(t, byID, landed)
	assert.False(t, byID[landed].IsPending())
	assert.NotContains(t, byID, lost)
	require.Contains(t, byID, fresh)
	assert.True(t, byID[fresh].IsPending())
	assert.Contains(t, byID, committed)
}

func TestBookingCommands_ReconcilePendingSupersededRecord(t *testing.T) {
	ctx := context.Background()
	h := usecasetest.New(t)
	h.Seed(t, builder.Room(104, 1, 6, true))

	old := usecasetest.Epoch.Add(-2 * time.Hour)
	stale := builder.NewBookingBuilder().WithUser("u-1", "").WithRoom(104, 1, 6).WithBookedAt(old).AsPending().BuildDomain()
	staleID, err := h.Bookings.AppendPending(ctx, stale)
	require.NoError(t, err)
	later := builder.NewBookingBuilder().WithUser("u-2", "").WithRoom(104, 1, 6).WithBookedAt(old.Add(time.Hour)).AsPending().BuildDomain()
	laterID, err := h.Bookings.AppendPending(ctx, later)
	require.NoError(t, err)
	require.NoError(t, h.Bookings.MarkCommitted(ctx, laterID))

	res, err := newBookingCommands(h, true).ReconcilePending(ctx)

	require.NoError(t, err)
	assert.Zero(t, res.Committed)
	assert.Equal(t, 1, res.Removed)

	records := h.Records(t)
	require.Len(t, records, 1, "the occupancy belongs to the later booking")
	assert.Equal(t, laterID, records[0].ID())
	assert.NotEqual(t, staleID, records[0].ID())
}
