//go:build unit

package queries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"meetroom/internal/domain/room"
	"meetroom/internal/infra"
	"meetroom/internal/pkg/clock"
	"meetroom/internal/pkg/errs"
	"meetroom/internal/usecase/queries"
	"meetroom/tests/common/builder"
	queriesmock "meetroom/tests/mock/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var snapshotAt = time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

func newRoomQueries(t *testing.T) (*queriesmock.MockRoomReadStore, queries.RoomQueries) {
	ctrl := gomock.NewController(t)
	store := queriesmock.NewMockRoomReadStore(ctrl)
	return store, queries.NewRoomQueries(store, clock.NewMockClock(snapshotAt))
}

func keys(rooms []*room.Room) []room.Key {
	out := make([]room.Key, len(rooms))
	for i, r := range rooms {
		out[i] = r.Key()
	}
	return out
}

func TestRoomQueries_ListRooms(t *testing.T) {
	ctx := context.Background()

	t.Run("sorted by floor then room number", func(t *testing.T) {
		store, q := newRoomQueries(t)
		store.EXPECT().FindAll(ctx).Return([]*room.Room{
			builder.Room(205, 2, 4, false),
			builder.Room(110, 1, 4, true),
			builder.Room(101, 2, 8, false),
			builder.Room(101, 1, 6, false),
		}, nil)

		rooms, err := q.ListRooms(ctx)

		require.NoError(t, err)
		assert.Equal(t, []room.Key{{RoomNo: 101, FloorNo: 1}, {RoomNo: 110, FloorNo: 1}, {RoomNo: 101, FloorNo: 2}, {RoomNo: 205, FloorNo: 2}}, keys(rooms))
	})

	t.Run("store failure is a remote failure", func(t *testing.T) {
		store, q := newRoomQueries(t)
		store.EXPECT().FindAll(ctx).Return(nil, errors.New("unreachable"))

		_, err := q.ListRooms(ctx)

		assert.True(t, errs.Is(err, errs.ErrRemoteFailure))
	})
}

func TestRoomQueries_GetRoom(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		store, q := newRoomQueries(t)
		store.EXPECT().FindByKey(ctx, room.Key{RoomNo: 101, FloorNo: 0}).Return(builder.Room(101, 0, 6, false), nil)

		r, err := q.GetRoom(ctx, 101, 0)

		require.NoError(t, err)
		assert.Equal(t, 6, r.Capacity())
	})

	t.Run("not found", func(t *testing.T) {
		store, q := newRoomQueries(t)
		store.EXPECT().FindByKey(ctx, gomock.Any()).Return(nil, infra.WrapRepoErr(nil, infra.KindNotFound, "room", nil))

		_, err := q.GetRoom(ctx, 101, 1)

		require.ErrorIs(t, err, queries.ErrRoomNotFound)
		assert.True(t, errs.Is(err, errs.ErrNotFound))
	})

	t.Run("invalid key never reaches the store", func(t *testing.T) {
		_, q := newRoomQueries(t)

		_, err := q.GetRoom(ctx, 0, 1)

		require.ErrorIs(t, err, room.ErrInvalidRoomNo)
	})
}

func TestRoomQueries_SuggestRooms(t *testing.T) {
	ctx := context.Background()
	inventory := []*room.Room{
		builder.Room(101, 1, 6, false),
		builder.Room(108, 1, 8, false),
		builder.Room(205, 2, 5, false),
		builder.Room(301, 3, 10, true),
	}

	t.Run("two rankings from one snapshot", func(t *testing.T) {
		store, q := newRoomQueries(t)
		store.EXPECT().FindAll(ctx).Return(inventory, nil)

		s, err := q.SuggestRooms(ctx, "5")

		require.NoError(t, err)
		assert.Equal(t, []room.Key{{RoomNo: 101, FloorNo: 1}, {RoomNo: 108, FloorNo: 1}}, keys(s.ProximityAndCapacity))
		assert.Equal(t, []room.Key{{RoomNo: 205, FloorNo: 2}, {RoomNo: 101, FloorNo: 1}}, keys(s.CapacityOnly))
		assert.Equal(t, snapshotAt, s.SnapshotAt)
	})

	t.Run("no room fits", func(t *testing.T) {
		store, q := newRoomQueries(t)
		store.EXPECT().FindAll(ctx).Return(inventory, nil)

		_, err := q.SuggestRooms(ctx, "11")

		require.ErrorIs(t, err, room.ErrNoAvailability)
	})

	for _, raw := range []string{"", "abc", "0", "-3", "2.5"} {
		t.Run("invalid seat input "+raw, func(t *testing.T) {
			_, q := newRoomQueries(t)

			_, err := q.SuggestRooms(ctx, raw)

			require.ErrorIs(t, err, room.ErrInvalidSeatCount)
			assert.True(t, errs.Is(err, errs.ErrInvalidInput))
		})
	}
}
