package converter

import "meetroom/internal/domain/room"

// RoomDocument keeps the field names used by existing FMS/Rooms data.
type RoomDocument struct {
	RoomNo       int  `json:"RoomNo"`
	RoomCapacity int  `json:"RoomCapacity"`
	FloorNo      int  `json:"FloorNo"`
	IsOccupied   bool `json:"isOccupied"`
}

func RoomToDocument(r *room.Room) RoomDocument {
	return RoomDocument{
		RoomNo:       r.RoomNo(),
		RoomCapacity: r.Capacity(),
		FloorNo:      r.FloorNo(),
		IsOccupied:   r.IsOccupied(),
	}
}

func RoomFromDocument(d RoomDocument) *room.Room {
	return room.Reconstruct(d.RoomNo, d.FloorNo, d.RoomCapacity, d.IsOccupied)
}
