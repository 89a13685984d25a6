package queries

import (
	"context"

	"meetroom/internal/domain/room"
	"meetroom/internal/infra"
	"meetroom/internal/pkg/clock"
	"meetroom/internal/pkg/errs"
)

var ErrRoomNotFound = errs.Mark(errs.New("no room found with the specified room and floor numbers"), errs.ErrNotFound)

type RoomReadStore interface {
	FindAll(ctx context.Context) ([]*room.Room, error)
	FindByKey(ctx context.Context, key room.Key) (*room.Room, error)
}

type RoomQueries interface {
	ListRooms(ctx context.Context) ([]*room.Room, error)
	GetRoom(ctx context.Context, roomNo, floorNo int) (*room.Room, error)
	// SuggestRooms validates rawSeats before touching the store.
	SuggestRooms(ctx context.Context, rawSeats string) (*room.Suggestion, error)
}

type roomQueriesImpl struct {
	store RoomReadStore
	clock clock.Clock
}

func NewRoomQueries(store RoomReadStore, clk clock.Clock) RoomQueries {
	return &roomQueriesImpl{store: store, clock: clk}
}

func (q *roomQueriesImpl) ListRooms(ctx context.Context) ([]*room.Room, error) {
	rooms, err := q.store.FindAll(ctx)
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "failed to list rooms"), errs.ErrRemoteFailure)
	}
	room.SortForListing(rooms)
	return rooms, nil
}

func (q *roomQueriesImpl) GetRoom(ctx context.Context, roomNo, floorNo int) (*room.Room, error) {
	key, err := room.NewKey(roomNo, floorNo)
	if err != nil {
		return nil, err
	}
	r, err := q.store.FindByKey(ctx, key)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, errs.Mark(errs.Wrap(err, "failed to load room"), errs.ErrRemoteFailure)
	}
	return r, nil
}

func (q *roomQueriesImpl) SuggestRooms(ctx context.Context, rawSeats string) (*room.Suggestion, error) {
	seats, err := room.ParseSeatCount(rawSeats)
	if err != nil {
		return nil, err
	}

	rooms, err := q.store.FindAll(ctx)
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "failed to load rooms for suggestion"), errs.ErrRemoteFailure)
	}
	return room.Suggest(rooms, seats.Int(), q.clock.Now())
}
