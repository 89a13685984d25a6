package repository

import (
	"context"
	"log/slog"

	"meetroom/internal/domain/room"
	"meetroom/internal/infra"
	"meetroom/internal/infra/docstore"
	"meetroom/internal/infra/repository/converter"
	"meetroom/internal/pkg/config"
	"meetroom/internal/pkg/errs"
)

const roomsCollection = "Rooms"

type RoomRepository struct {
	store  docstore.Store
	path   string
	logger *slog.Logger
}

func NewRoomRepository(store docstore.Store, cfg config.Config, logger *slog.Logger) *RoomRepository {
	return &RoomRepository{
		store:  store,
		path:   docstore.Join(cfg.DocStore.Namespace, roomsCollection),
		logger: logger,
	}
}

func (r *RoomRepository) FindAll(ctx context.Context) ([]*room.Room, error) {
	snap, err := r.store.Get(ctx, r.path, &docstore.Query{OrderBy: "RoomCapacity"})
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to list rooms", err)
	}

	rooms := make([]*room.Room, 0, len(snap))
	for _, d := range snap {
		var doc converter.RoomDocument
		if err := d.Decode(&doc); err != nil {
			return nil, infra.WrapRepoErr(r.logger, infra.KindCorrupt, "failed to decode room", err)
		}
		rooms = append(rooms, converter.RoomFromDocument(doc))
	}
	return rooms, nil
}

func (r *RoomRepository) FindByKey(ctx context.Context, key room.Key) (*room.Room, error) {
	_, doc, err := r.locate(ctx, key)
	if err != nil {
		return nil, err
	}
	return converter.RoomFromDocument(*doc), nil
}

func (r *RoomRepository) Create(ctx context.Context, rm *room.Room) error {
	if _, err := r.store.Push(ctx, r.path, converter.RoomToDocument(rm)); err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to create room", err)
	}
	return nil
}

func (r *RoomRepository) Save(ctx context.Context, key room.Key, rm *room.Room) error {
	docKey, _, err := r.locate(ctx, key)
	if err != nil {
		return err
	}
	if err := r.store.Set(ctx, docstore.Join(r.path, docKey), converter.RoomToDocument(rm)); err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to save room", err)
	}
	return nil
}

func (r *RoomRepository) SetOccupied(ctx context.Context, key room.Key, occupied bool) error {
	docKey, _, err := r.locate(ctx, key)
	if err != nil {
		return err
	}
	err = r.store.Update(ctx, docstore.Join(r.path, docKey), map[string]any{"isOccupied": occupied})
	if errs.Is(err, docstore.ErrNotFound) {
		return infra.WrapRepoErr(r.logger, infra.KindNotFound, "room disappeared before update", err)
	}
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to update occupancy", err)
	}
	return nil
}

func (r *RoomRepository) Delete(ctx context.Context, key room.Key) error {
	docKey, _, err := r.locate(ctx, key)
	if err != nil {
		return err
	}
	if err := r.store.Remove(ctx, docstore.Join(r.path, docKey)); err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to delete room", err)
	}
	return nil
}

// locate finds the document holding key: rooms are fetched by room number
// and then matched on floor, since room numbers repeat across floors.
func (r *RoomRepository) locate(ctx context.Context, key room.Key) (string, *converter.RoomDocument, error) {
	snap, err := r.store.Get(ctx, r.path, &docstore.Query{OrderBy: "RoomNo", EqualTo: key.RoomNo})
	if err != nil {
		return "", nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to look up room", err)
	}
	for _, d := range snap {
		var doc converter.RoomDocument
		if err := d.Decode(&doc); err != nil {
			return "", nil, infra.WrapRepoErr(r.logger, infra.KindCorrupt, "failed to decode room", err)
		}
		if doc.FloorNo == key.FloorNo {
			return d.Key, &doc, nil
		}
	}
	return "", nil, infra.WrapRepoErr(r.logger, infra.KindNotFound, key.String(), nil)
}
