package room

import (
	"fmt"
	"strconv"
	"strings"
)

type RoomNo int

func NewRoomNo(v int) (RoomNo, error) {
	if v <= 0 {
		return 0, ErrInvalidRoomNo
	}
	return RoomNo(v), nil
}

func (n RoomNo) Int() int { return int(n) }

type FloorNo int

func NewFloorNo(v int) (FloorNo, error) {
	if v < 0 {
		return 0, ErrInvalidFloorNo
	}
	return FloorNo(v), nil
}

func (n FloorNo) Int() int { return int(n) }

type Capacity int

func NewCapacity(v int) (Capacity, error) {
	if v <= 0 {
		return 0, ErrInvalidCapacity
	}
	return Capacity(v), nil
}

func (c Capacity) Int() int { return int(c) }

// SeatCount is the number of seats a booking request asks for.
type SeatCount int

func NewSeatCount(v int) (SeatCount, error) {
	if v <= 0 {
		return 0, ErrInvalidSeatCount
	}
	return SeatCount(v), nil
}

// ParseSeatCount accepts only a positive decimal integer.
func ParseSeatCount(raw string) (SeatCount, error) {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, ErrInvalidSeatCount
	}
	return NewSeatCount(v)
}

func (s SeatCount) Int() int { return int(s) }

// Key identifies a room. Room numbers repeat across floors.
type Key struct {
	RoomNo  int
	FloorNo int
}

func NewKey(roomNo, floorNo int) (Key, error) {
	if _, err := NewRoomNo(roomNo); err != nil {
		return Key{}, err
	}
	if _, err := NewFloorNo(floorNo); err != nil {
		return Key{}, err
	}
	return Key{RoomNo: roomNo, FloorNo: floorNo}, nil
}

func (k Key) String() string {
	return fmt.Sprintf("room %d on floor %d", k.RoomNo, k.FloorNo)
}
