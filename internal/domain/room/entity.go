package room

import (
	"cmp"
	"slices"
)

type Room struct {
	roomNo   RoomNo
	floorNo  FloorNo
	capacity Capacity
	occupied bool
}

// NewRoom creates a free room after validating every field.
func NewRoom(roomNo, floorNo, capacity int) (*Room, error) {
	no, err := NewRoomNo(roomNo)
	if err != nil {
		return nil, err
	}
	floor, err := NewFloorNo(floorNo)
	if err != nil {
		return nil, err
	}
	c, err := NewCapacity(capacity)
	if err != nil {
		return nil, err
	}

	return &Room{roomNo: no, floorNo: floor, capacity: c}, nil
}

// Reconstruct rebuilds a room from stored state without validation.
func Reconstruct(roomNo, floorNo, capacity int, occupied bool) *Room {
	return &Room{
		roomNo:   RoomNo(roomNo),
		floorNo:  FloorNo(floorNo),
		capacity: Capacity(capacity),
		occupied: occupied,
	}
}

func (r *Room) RoomNo() int      { return r.roomNo.Int() }
func (r *Room) FloorNo() int     { return r.floorNo.Int() }
func (r *Room) Capacity() int    { return r.capacity.Int() }
func (r *Room) IsOccupied() bool { return r.occupied }
func (r *Room) Key() Key         { return Key{RoomNo: r.RoomNo(), FloorNo: r.FloorNo()} }

func (r *Room) CanSeat(seats SeatCount) bool {
	return !r.occupied && r.capacity.Int() >= seats.Int()
}

func (r *Room) Occupy() error {
	if r.occupied {
		return ErrAlreadyOccupied
	}
	r.occupied = true
	return nil
}

func (r *Room) Free() error {
	if !r.occupied {
		return ErrAlreadyFree
	}
	r.occupied = false
	return nil
}

// Modify replaces the room's attributes. Occupancy is kept.
func (r *Room) Modify(roomNo, floorNo, capacity int) error {
	if r.occupied {
		return ErrOccupiedModify
	}
	next, err := NewRoom(roomNo, floorNo, capacity)
	if err != nil {
		return err
	}
	r.roomNo, r.floorNo, r.capacity = next.roomNo, next.floorNo, next.capacity
	return nil
}

func (r *Room) EnsureDeletable() error {
	if r.occupied {
		return ErrOccupiedDelete
	}
	return nil
}

// SortForListing orders rooms by floor, then room number.
func SortForListing(rooms []*Room) {
	slices.SortStableFunc(rooms, func(a, b *Room) int {
		if c := cmp.Compare(a.floorNo, b.floorNo); c != 0 {
			return c
		}
		return cmp.Compare(a.roomNo, b.roomNo)
	})
}
