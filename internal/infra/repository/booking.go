package repository

import (
	"context"
	"log/slog"

	"meetroom/internal/domain/booking"
	"meetroom/internal/infra"
	"meetroom/internal/infra/docstore"
	"meetroom/internal/infra/repository/converter"
	"meetroom/internal/pkg/config"
	"meetroom/internal/pkg/errs"
)

const bookingsCollection = "MeetRecord"

type BookingRepository struct {
	store  docstore.Store
	path   string
	logger *slog.Logger
}

func NewBookingRepository(store docstore.Store, cfg config.Config, logger *slog.Logger) *BookingRepository {
	return &BookingRepository{
		store:  store,
		path:   docstore.Join(cfg.DocStore.Namespace, bookingsCollection),
		logger: logger,
	}
}

func (r *BookingRepository) AppendPending(ctx context.Context, rec *booking.Record) (string, error) {
	doc := converter.BookingToDocument(rec)
	doc.Status = booking.StatusPending.String()

	id, err := r.store.Push(ctx, r.path, doc)
	if err != nil {
		return "", infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to append booking record", err)
	}
	return id, nil
}

func (r *BookingRepository) MarkCommitted(ctx context.Context, id string) error {
	err := r.store.Update(ctx, docstore.Join(r.path, id), map[string]any{"status": booking.StatusCommitted.String()})
	if errs.Is(err, docstore.ErrNotFound) {
		return infra.WrapRepoErr(r.logger, infra.KindNotFound, "booking record "+id, err)
	}
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to commit booking record", err)
	}
	return nil
}

func (r *BookingRepository) Remove(ctx context.Context, id string) error {
	if err := r.store.Remove(ctx, docstore.Join(r.path, id)); err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to remove booking record", err)
	}
	return nil
}

func (r *BookingRepository) FindAll(ctx context.Context) ([]*booking.Record, error) {
	snap, err := r.store.Get(ctx, r.path, &docstore.Query{OrderBy: "bookedAt"})
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to list booking records", err)
	}

	records := make([]*booking.Record, 0, len(snap))
	for _, d := range snap {
		var doc converter.BookingDocument
		if err := d.Decode(&doc); err != nil {
			return nil, infra.WrapRepoErr(r.logger, infra.KindCorrupt, "failed to decode booking record", err)
		}
		rec, err := converter.BookingFromDocument(d.Key, doc)
		if err != nil {
			return nil, infra.WrapRepoErr(r.logger, infra.KindCorrupt, "invalid booking record", err)
		}
		records = append(records, rec)
	}
	return records, nil
}
