package commands

import (
	"context"

	"meetroom/internal/domain/pendingwrite"
	"meetroom/internal/domain/room"
	"meetroom/internal/pkg/clock"
	"meetroom/internal/usecase/shared"

	"github.com/google/uuid"
)

type (
	AddRoomParams    = pendingwrite.AddRoomPayload
	ModifyRoomParams = pendingwrite.ModifyRoomPayload
	DeleteRoomParams = pendingwrite.DeleteRoomPayload
	FreeRoomParams   = pendingwrite.FreeRoomPayload
)

// RoomOutcome is either an applied change (Room set, except for deletes) or
// a queued one (Queued with the pending write id).
type RoomOutcome struct {
	Queued         bool
	PendingWriteID uuid.UUID
	Room           *room.Room
}

type RoomCommands interface {
	AddRoom(ctx context.Context, p AddRoomParams) (*RoomOutcome, error)
	ModifyRoom(ctx context.Context, p ModifyRoomParams) (*RoomOutcome, error)
	DeleteRoom(ctx context.Context, p DeleteRoomParams) (*RoomOutcome, error)
	FreeRoom(ctx context.Context, p FreeRoomParams) (*RoomOutcome, error)
}

type roomUseCaseImpl struct {
	applier *Applier
	deferral
}

func NewRoomUseCase(
	applier *Applier,
	connectivity shared.Connectivity,
	queue shared.PendingQueue,
	clk clock.Clock,
) RoomCommands {
	return &roomUseCaseImpl{
		applier:  applier,
		deferral: deferral{connectivity: connectivity, queue: queue, clock: clk},
	}
}

func (uc *roomUseCaseImpl) AddRoom(ctx context.Context, p AddRoomParams) (*RoomOutcome, error) {
	if _, err := room.NewRoom(p.RoomNo, p.FloorNo, p.Capacity); err != nil {
		return nil, err
	}
	if queued, id, err := uc.queueIfOffline(ctx, pendingwrite.KindAddRoom, p); err != nil || queued {
		return queuedOutcome(id, err)
	}

	r, err := uc.applier.AddRoom(ctx, p)
	if err != nil {
		return nil, err
	}
	return &RoomOutcome{Room: r}, nil
}

func (uc *roomUseCaseImpl) ModifyRoom(ctx context.Context, p ModifyRoomParams) (*RoomOutcome, error) {
	if err := validateModify(p); err != nil {
		return nil, err
	}
	if queued, id, err := uc.queueIfOffline(ctx, pendingwrite.KindModifyRoom, p); err != nil || queued {
		return queuedOutcome(id, err)
	}

	r, err := uc.applier.ModifyRoom(ctx, p)
	if err != nil {
		return nil, err
	}
	return &RoomOutcome{Room: r}, nil
}

func (uc *roomUseCaseImpl) DeleteRoom(ctx context.Context, p DeleteRoomParams) (*RoomOutcome, error) {
	if _, err := room.NewKey(p.RoomNo, p.FloorNo); err != nil {
		return nil, err
	}
	if queued, id, err := uc.queueIfOffline(ctx, pendingwrite.KindDeleteRoom, p); err != nil || queued {
		return queuedOutcome(id, err)
	}

	if err := uc.applier.DeleteRoom(ctx, p); err != nil {
		return nil, err
	}
	return &RoomOutcome{}, nil
}

func (uc *roomUseCaseImpl) FreeRoom(ctx context.Context, p FreeRoomParams) (*RoomOutcome, error) {
	if _, err := room.NewKey(p.RoomNo, p.FloorNo); err != nil {
		return nil, err
	}
	if queued, id, err := uc.queueIfOffline(ctx, pendingwrite.KindFreeRoom, p); err != nil || queued {
		return queuedOutcome(id, err)
	}

	r, err := uc.applier.FreeRoom(ctx, p)
	if err != nil {
		return nil, err
	}
	return &RoomOutcome{Room: r}, nil
}

func validateModify(p ModifyRoomParams) error {
	if _, err := room.NewKey(p.RoomNo, p.FloorNo); err != nil {
		return err
	}
	if p.Capacity == nil && p.NewRoomNo == nil && p.NewFloorNo == nil {
		return ErrNothingToModify
	}
	if p.Capacity != nil {
		if _, err := room.NewCapacity(*p.Capacity); err != nil {
			return err
		}
	}
	if p.NewRoomNo != nil {
		if _, err := room.NewRoomNo(*p.NewRoomNo); err != nil {
			return err
		}
	}
	if p.NewFloorNo != nil {
		if _, err := room.NewFloorNo(*p.NewFloorNo); err != nil {
			return err
		}
	}
	return nil
}

func queuedOutcome(id uuid.UUID, err error) (*RoomOutcome, error) {
	if err != nil {
		return nil, err
	}
	return &RoomOutcome{Queued: true, PendingWriteID: id}, nil
}
