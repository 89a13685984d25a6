package shared

import (
	"context"

	"meetroom/internal/domain/booking"
	"meetroom/internal/domain/pendingwrite"
	"meetroom/internal/domain/room"

	"github.com/google/uuid"
)

// RoomRepository reads and writes rooms in the remote store. Lookups by key
// return an infra.KindNotFound error when no room matches.
type RoomRepository interface {
	FindAll(ctx context.Context) ([]*room.Room, error)
	FindByKey(ctx context.Context, key room.Key) (*room.Room, error)
	Create(ctx context.Context, r *room.Room) error
	// Save overwrites the room currently stored under key, which may differ from r.Key().
	Save(ctx context.Context, key room.Key, r *room.Room) error
	SetOccupied(ctx context.Context, key room.Key, occupied bool) error
	Delete(ctx context.Context, key room.Key) error
}

type BookingRepository interface {
	// AppendPending stores rec and returns the key the store assigned.
	AppendPending(ctx context.Context, rec *booking.Record) (string, error)
	MarkCommitted(ctx context.Context, id string) error
	Remove(ctx context.Context, id string) error
	FindAll(ctx context.Context) ([]*booking.Record, error)
}

type PendingQueue interface {
	Enqueue(ctx context.Context, w *pendingwrite.Write) error
	Pending(ctx context.Context) ([]*pendingwrite.Write, error)
	Remove(ctx context.Context, ids []uuid.UUID) error
	DeadLetter(ctx context.Context, writes []*pendingwrite.Write) error
	DeadLetters(ctx context.Context) ([]*pendingwrite.Write, error)
	RequeueDeadLetters(ctx context.Context) (int, error)
}

type Connectivity interface {
	Online() bool
}

type OccupancyPublisher interface {
	PublishOccupancy(ctx context.Context, r *room.Room) error
}
