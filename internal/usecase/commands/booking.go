package commands

import (
	"context"
	"log/slog"
	"time"

	"meetroom/internal/domain/booking"
	"meetroom/internal/domain/pendingwrite"
	"meetroom/internal/domain/room"
	"meetroom/internal/infra"
	"meetroom/internal/pkg/clock"
	"meetroom/internal/pkg/config"
	"meetroom/internal/usecase/shared"

	"github.com/google/uuid"
)

type ConfirmBookingParams struct {
	UserID   string
	UserName string
	RoomNo   int
	FloorNo  int
}

type BookingOutcome struct {
	Queued         bool
	PendingWriteID uuid.UUID
	Record         *booking.Record
}

type ReconcileResult struct {
	Committed int
	Removed   int
}

type BookingCommands interface {
	// ConfirmBooking books a room picked from a suggestion. The room is
	// always re-read, so a stale suggestion cannot double-book.
	ConfirmBooking(ctx context.Context, p ConfirmBookingParams) (*BookingOutcome, error)
	// ReconcilePending resolves records left pending by an interrupted booking.
	ReconcilePending(ctx context.Context) (*ReconcileResult, error)
}

type bookingUseCaseImpl struct {
	applier  *Applier
	rooms    shared.RoomRepository
	bookings shared.BookingRepository
	grace    time.Duration
	logger   *slog.Logger
	deferral
}

func NewBookingUseCase(
	applier *Applier,
	rooms shared.RoomRepository,
	bookings shared.BookingRepository,
	connectivity shared.Connectivity,
	queue shared.PendingQueue,
	clk clock.Clock,
	cfg config.Config,
	logger *slog.Logger,
) BookingCommands {
	return &bookingUseCaseImpl{
		applier:  applier,
		rooms:    rooms,
		bookings: bookings,
		grace:    cfg.Booking.ReconcileGrace,
		logger:   logger,
		deferral: deferral{connectivity: connectivity, queue: queue, clock: clk},
	}
}

func (uc *bookingUseCaseImpl) ConfirmBooking(ctx context.Context, p ConfirmBookingParams) (*BookingOutcome, error) {
	requester, err := booking.NewRequester(p.UserID, p.UserName)
	if err != nil {
		return nil, err
	}
	key, err := room.NewKey(p.RoomNo, p.FloorNo)
	if err != nil {
		return nil, err
	}

	payload := pendingwrite.BookRoomPayload{
		UserID:      requester.UserID(),
		UserName:    requester.UserName(),
		RoomNo:      key.RoomNo,
		FloorNo:     key.FloorNo,
		RequestedAt: uc.clock.Now(),
	}
	queued, id, err := uc.queueIfOffline(ctx, pendingwrite.KindBookRoom, payload)
	if err != nil {
		return nil, err
	}
	if queued {
		return &BookingOutcome{Queued: true, PendingWriteID: id}, nil
	}

	rec, err := uc.applier.BookRoom(ctx, requester, key)
	if err != nil {
		return nil, err
	}
	return &BookingOutcome{Record: rec}, nil
}

func (uc *bookingUseCaseImpl) ReconcilePending(ctx context.Context) (*ReconcileResult, error) {
	records, err := uc.bookings.FindAll(ctx)
	if err != nil {
		return nil, remoteFailure(err, "failed to load booking records")
	}

	latestCommitted := map[room.Key]time.Time{}
	for _, rec := range records {
		if !rec.IsPending() && rec.BookedAt().After(latestCommitted[rec.RoomKey()]) {
			latestCommitted[rec.RoomKey()] = rec.BookedAt()
		}
	}

	cutoff := uc.clock.Now().Add(-uc.grace)
	result := &ReconcileResult{}
	for _, rec := range records {
		if !rec.IsPending() || rec.BookedAt().After(cutoff) {
			continue
		}
		committed, err := uc.reconcile(ctx, rec, latestCommitted[rec.RoomKey()])
		if err != nil {
			return result, err
		}
		if committed {
			result.Committed++
		} else {
			result.Removed++
		}
	}
	return result, nil
}

// reconcile commits rec when its room is still occupied by it, and removes it
// otherwise. A committed record newer than rec means the occupancy belongs to
// a later booking.
func (uc *bookingUseCaseImpl) reconcile(ctx context.Context, rec *booking.Record, latestCommitted time.Time) (bool, error) {
	unlock := uc.applier.lock(rec.RoomKey())
	defer unlock()

	r, err := uc.rooms.FindByKey(ctx, rec.RoomKey())
	if err != nil && !infra.IsKind(err, infra.KindNotFound) {
		return false, remoteFailure(err, "failed to load room")
	}

	if r != nil && r.IsOccupied() && !latestCommitted.After(rec.BookedAt()) {
		if err := uc.bookings.MarkCommitted(ctx, rec.ID()); err != nil {
			return false, remoteFailure(err, "failed to commit booking record")
		}
		return true, nil
	}

	if err := uc.bookings.Remove(ctx, rec.ID()); err != nil {
		return false, remoteFailure(err, "failed to remove booking record")
	}
	uc.logger.Info("Removed booking record whose occupancy update never landed",
		slog.String("record_id", rec.ID()),
		slog.String("room", rec.RoomKey().String()))
	return false, nil
}
