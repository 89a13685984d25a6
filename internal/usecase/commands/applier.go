package commands

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"sync"

	"meetroom/internal/domain/booking"
	"meetroom/internal/domain/pendingwrite"
	"meetroom/internal/domain/room"
	"meetroom/internal/infra"
	"meetroom/internal/pkg/clock"
	"meetroom/internal/pkg/patch"
	"meetroom/internal/usecase/shared"
)

// Applier performs writes against the remote store. Live requests and queue
// replay both go through it, so a replayed write behaves exactly like the
// original request would have.
type Applier struct {
	rooms     shared.RoomRepository
	bookings  shared.BookingRepository
	publisher shared.OccupancyPublisher
	clock     clock.Clock
	logger    *slog.Logger
	locks     sync.Map // room.Key -> *sync.Mutex
}

func NewApplier(
	rooms shared.RoomRepository,
	bookings shared.BookingRepository,
	publisher shared.OccupancyPublisher,
	clk clock.Clock,
	logger *slog.Logger,
) *Applier {
	return &Applier{
		rooms:     rooms,
		bookings:  bookings,
		publisher: publisher,
		clock:     clk,
		logger:    logger,
	}
}

// Apply replays one queued write.
func (a *Applier) Apply(ctx context.Context, w *pendingwrite.Write) error {
	switch w.Kind {
	case pendingwrite.KindAddRoom:
		var p pendingwrite.AddRoomPayload
		if err := w.Decode(&p); err != nil {
			return err
		}
		_, err := a.AddRoom(ctx, p)
		return err
	case pendingwrite.KindModifyRoom:
		var p pendingwrite.ModifyRoomPayload
		if err := w.Decode(&p); err != nil {
			return err
		}
		_, err := a.ModifyRoom(ctx, p)
		return err
	case pendingwrite.KindDeleteRoom:
		var p pendingwrite.DeleteRoomPayload
		if err := w.Decode(&p); err != nil {
			return err
		}
		return a.DeleteRoom(ctx, p)
	case pendingwrite.KindFreeRoom:
		var p pendingwrite.FreeRoomPayload
		if err := w.Decode(&p); err != nil {
			return err
		}
		_, err := a.FreeRoom(ctx, p)
		return err
	case pendingwrite.KindBookRoom:
		var p pendingwrite.BookRoomPayload
		if err := w.Decode(&p); err != nil {
			return err
		}
		requester, err := booking.NewRequester(p.UserID, p.UserName)
		if err != nil {
			return err
		}
		_, err = a.BookRoom(ctx, requester, room.Key{RoomNo: p.RoomNo, FloorNo: p.FloorNo})
		return err
	default:
		return pendingwrite.ErrUnknownKind
	}
}

func (a *Applier) AddRoom(ctx context.Context, p pendingwrite.AddRoomPayload) (*room.Room, error) {
	r, err := room.NewRoom(p.RoomNo, p.FloorNo, p.Capacity)
	if err != nil {
		return nil, err
	}

	unlock := a.lock(r.Key())
	defer unlock()

	if err := a.ensureVacantKey(ctx, r.Key()); err != nil {
		return nil, err
	}
	if err := a.rooms.Create(ctx, r); err != nil {
		return nil, remoteFailure(err, "failed to add room")
	}
	return r, nil
}

func (a *Applier) ModifyRoom(ctx context.Context, p pendingwrite.ModifyRoomPayload) (*room.Room, error) {
	if p.Capacity == nil && p.NewRoomNo == nil && p.NewFloorNo == nil {
		return nil, ErrNothingToModify
	}
	key := room.Key{RoomNo: p.RoomNo, FloorNo: p.FloorNo}
	target := room.Key{
		RoomNo:  patch.Coalesce(p.NewRoomNo, key.RoomNo),
		FloorNo: patch.Coalesce(p.NewFloorNo, key.FloorNo),
	}

	// The target key is locked too, so an AddRoom cannot claim it meanwhile.
	unlock := a.lock(key, target)
	defer unlock()

	r, err := a.findRoom(ctx, key)
	if err != nil {
		return nil, err
	}

	if err := r.Modify(target.RoomNo, target.FloorNo, patch.Coalesce(p.Capacity, r.Capacity())); err != nil {
		return nil, err
	}
	if target != key {
		if err := a.ensureVacantKey(ctx, target); err != nil {
			return nil, err
		}
	}

	if err := a.rooms.Save(ctx, key, r); err != nil {
		return nil, lookupFailure(err, ErrRoomNotFound, "failed to modify room")
	}
	return r, nil
}

func (a *Applier) DeleteRoom(ctx context.Context, p pendingwrite.DeleteRoomPayload) error {
	key := room.Key{RoomNo: p.RoomNo, FloorNo: p.FloorNo}

	unlock := a.lock(key)
	defer unlock()

	r, err := a.findRoom(ctx, key)
	if err != nil {
		return err
	}
	if err := r.EnsureDeletable(); err != nil {
		return err
	}
	if err := a.rooms.Delete(ctx, key); err != nil {
		return lookupFailure(err, ErrRoomNotFound, "failed to delete room")
	}
	return nil
}

func (a *Applier) FreeRoom(ctx context.Context, p pendingwrite.FreeRoomPayload) (*room.Room, error) {
	key := room.Key{RoomNo: p.RoomNo, FloorNo: p.FloorNo}

	unlock := a.lock(key)
	defer unlock()

	r, err := a.findRoom(ctx, key)
	if err != nil {
		return nil, err
	}
	if err := r.Free(); err != nil {
		return nil, err
	}
	if err := a.rooms.SetOccupied(ctx, key, false); err != nil {
		return nil, lookupFailure(err, ErrRoomNotFound, "failed to free room")
	}

	a.publish(ctx, r)
	return r, nil
}

// BookRoom re-reads the room and books it. The record is written first with
// a pending marker, then the room is flipped to occupied, then the marker is
// cleared. A crash between steps leaves a pending record that
// ReconcilePending resolves.
func (a *Applier) BookRoom(ctx context.Context, requester booking.Requester, key room.Key) (*booking.Record, error) {
	unlock := a.lock(key)
	defer unlock()

	r, err := a.findRoom(ctx, key)
	if err != nil {
		return nil, err
	}
	if err := r.Occupy(); err != nil {
		return nil, err
	}

	rec := booking.NewPendingRecord(requester, r, a.clock.Now())
	id, err := a.bookings.AppendPending(ctx, rec)
	if err != nil {
		return nil, remoteFailure(err, "failed to record booking")
	}
	rec.AssignID(id)

	if err := a.rooms.SetOccupied(ctx, key, true); err != nil {
		if rmErr := a.bookings.Remove(ctx, id); rmErr != nil {
			a.logger.Warn("Failed to remove pending booking record after occupancy update failed",
				slog.String("record_id", id),
				slog.String("error", rmErr.Error()))
		}
		return nil, lookupFailure(err, ErrRoomNotFound, "failed to mark room occupied")
	}

	if err := a.bookings.MarkCommitted(ctx, id); err != nil {
		a.logger.Warn("Booking applied but record left pending",
			slog.String("record_id", id),
			slog.String("room", key.String()),
			slog.String("error", err.Error()))
	} else {
		rec.Commit()
	}

	a.publish(ctx, r)
	return rec, nil
}

func (a *Applier) findRoom(ctx context.Context, key room.Key) (*room.Room, error) {
	r, err := a.rooms.FindByKey(ctx, key)
	if err != nil {
		return nil, lookupFailure(err, ErrRoomNotFound, "failed to load room")
	}
	return r, nil
}

func (a *Applier) ensureVacantKey(ctx context.Context, key room.Key) error {
	_, err := a.rooms.FindByKey(ctx, key)
	switch {
	case err == nil:
		return ErrDuplicateRoom
	case infra.IsKind(err, infra.KindNotFound):
		return nil
	default:
		return remoteFailure(err, "failed to check room uniqueness")
	}
}

func (a *Applier) publish(ctx context.Context, r *room.Room) {
	if err := a.publisher.PublishOccupancy(ctx, r); err != nil {
		a.logger.Warn("Failed to publish occupancy change",
			slog.String("room", r.Key().String()),
			slog.String("error", err.Error()))
	}
}

// lock serializes writes to the given rooms within this process. Keys are
// locked in (floorNo, roomNo) order so two callers cannot deadlock.
func (a *Applier) lock(keys ...room.Key) func() {
	sorted := slices.Clone(keys)
	slices.SortFunc(sorted, func(x, y room.Key) int {
		if c := cmp.Compare(x.FloorNo, y.FloorNo); c != 0 {
			return c
		}
		return cmp.Compare(x.RoomNo, y.RoomNo)
	})
	sorted = slices.Compact(sorted)

	held := make([]*sync.Mutex, 0, len(sorted))
	for _, key := range sorted {
		m, _ := a.locks.LoadOrStore(key, &sync.Mutex{})
		mu := m.(*sync.Mutex)
		mu.Lock()
		held = append(held, mu)
	}
	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].Unlock()
		}
	}
}
