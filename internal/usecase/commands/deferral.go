package commands

import (
	"context"

	"meetroom/internal/domain/pendingwrite"
	"meetroom/internal/pkg/clock"
	"meetroom/internal/pkg/errs"
	"meetroom/internal/usecase/shared"

	"github.com/google/uuid"
)

// deferral diverts writes into the offline queue while the remote store is unreachable.
type deferral struct {
	connectivity shared.Connectivity
	queue        shared.PendingQueue
	clock        clock.Clock
}

// queueIfOffline reports whether the write was queued instead of applied.
func (d deferral) queueIfOffline(ctx context.Context, kind pendingwrite.Kind, payload any) (bool, uuid.UUID, error) {
	if d.connectivity.Online() {
		return false, uuid.Nil, nil
	}

	w, err := pendingwrite.New(kind, payload, d.clock.Now())
	if err != nil {
		return false, uuid.Nil, err
	}
	if err := d.queue.Enqueue(ctx, w); err != nil {
		return false, uuid.Nil, errs.Mark(errs.Wrap(err, kind.String()), ErrQueueUnavailable)
	}
	return true, w.ID, nil
}
