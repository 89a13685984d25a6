package queries

import (
	"cmp"
	"context"
	"slices"

	"meetroom/internal/domain/booking"
	"meetroom/internal/pkg/errs"
)

type BookingReadStore interface {
	FindAll(ctx context.Context) ([]*booking.Record, error)
}

type BookingQueries interface {
	// ListRecords returns the booking log, oldest first.
	ListRecords(ctx context.Context) ([]*booking.Record, error)
}

type bookingQueriesImpl struct {
	store BookingReadStore
}

func NewBookingQueries(store BookingReadStore) BookingQueries {
	return &bookingQueriesImpl{store: store}
}

func (q *bookingQueriesImpl) ListRecords(ctx context.Context) ([]*booking.Record, error) {
	records, err := q.store.FindAll(ctx)
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "failed to list booking records"), errs.ErrRemoteFailure)
	}
	slices.SortStableFunc(records, func(a, b *booking.Record) int {
		return cmp.Compare(a.BookedAt().UnixNano(), b.BookedAt().UnixNano())
	})
	return records, nil
}
