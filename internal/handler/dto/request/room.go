package request

import "meetroom/internal/usecase/commands"

// Pointer fields let binding tell a missing field from floor 0.
type CreateRoomRequest struct {
	RoomNo   *int `json:"roomNo" binding:"required"`
	FloorNo  *int `json:"floorNo" binding:"required"`
	Capacity *int `json:"capacity" binding:"required"`
}

func (r *CreateRoomRequest) ToParams() commands.AddRoomParams {
	return commands.AddRoomParams{
		RoomNo:   *r.RoomNo,
		FloorNo:  *r.FloorNo,
		Capacity: *r.Capacity,
	}
}

// UpdateRoomRequest changes only the fields that are present.
type UpdateRoomRequest struct {
	RoomNo   *int `json:"roomNo"`
	FloorNo  *int `json:"floorNo"`
	Capacity *int `json:"capacity"`
}

func (r *UpdateRoomRequest) ToParams(roomNo, floorNo int) commands.ModifyRoomParams {
	return commands.ModifyRoomParams{
		RoomNo:     roomNo,
		FloorNo:    floorNo,
		Capacity:   r.Capacity,
		NewRoomNo:  r.RoomNo,
		NewFloorNo: r.FloorNo,
	}
}
