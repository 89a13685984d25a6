//go:build unit || e2e

package builder

import (
	domroom "meetroom/internal/domain/room"
	reqdto "meetroom/internal/handler/dto/request"
)

type RoomBuilder struct {
	RoomNo   int
	FloorNo  int
	Capacity int
	Occupied bool
}

func NewRoomBuilder() *RoomBuilder {
	return &RoomBuilder{
		RoomNo:   101,
		FloorNo:  1,
		Capacity: 4,
	}
}

func (r *RoomBuilder) With(mutate func(*RoomBuilder)) *RoomBuilder {
	mutate(r)
	return r
}

// Build methods
func (r *RoomBuilder) BuildDomain() (*domroom.Room, error) {
	room, err := domroom.NewRoom(r.RoomNo, r.FloorNo, r.Capacity)
	if err != nil {
		return nil, err
	}
	if r.Occupied {
		if err := room.Occupy(); err != nil {
			return nil, err
		}
	}
	return room, nil
}

// MustBuild is for fixtures whose values are known to be valid.
func (r *RoomBuilder) MustBuild() *domroom.Room {
	return domroom.Reconstruct(r.RoomNo, r.FloorNo, r.Capacity, r.Occupied)
}

func (r *RoomBuilder) BuildCreateRequestDTO() reqdto.CreateRoomRequest {
	roomNo, floorNo, capacity := r.RoomNo, r.FloorNo, r.Capacity
	return reqdto.CreateRoomRequest{
		RoomNo:   &roomNo,
		FloorNo:  &floorNo,
		Capacity: &capacity,
	}
}

// Fluent builder methods
func (r *RoomBuilder) WithRoomNo(roomNo int) *RoomBuilder {
	r.RoomNo = roomNo
	return r
}

func (r *RoomBuilder) WithFloorNo(floorNo int) *RoomBuilder {
	r.FloorNo = floorNo
	return r
}

func (r *RoomBuilder) WithCapacity(capacity int) *RoomBuilder {
	r.Capacity = capacity
	return r
}

func (r *RoomBuilder) AsOccupied() *RoomBuilder {
	r.Occupied = true
	return r
}

// Room is shorthand for a valid room fixture.
func Room(roomNo, floorNo, capacity int, occupied bool) *domroom.Room {
	return domroom.Reconstruct(roomNo, floorNo, capacity, occupied)
}
