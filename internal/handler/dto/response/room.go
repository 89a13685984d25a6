package response

import (
	"time"

	"meetroom/internal/domain/room"

	"github.com/jinzhu/copier"
)

type RoomResponse struct {
	RoomNo     int  `json:"roomNo"`
	FloorNo    int  `json:"floorNo"`
	Capacity   int  `json:"capacity"`
	IsOccupied bool `json:"isOccupied"`
}

type SuggestionResponse struct {
	Seats                int             `json:"seats"`
	ProximityAndCapacity []*RoomResponse `json:"proximityAndCapacity"`
	CapacityOnly         []*RoomResponse `json:"capacityOnly"`
	SnapshotAt           time.Time       `json:"snapshotAt"`
}

func FromRoom(r *room.Room) (*RoomResponse, error) {
	res := &RoomResponse{}
	if err := copier.Copy(res, r); err != nil {
		return nil, err
	}
	return res, nil
}

func FromRooms(rooms []*room.Room) ([]*RoomResponse, error) {
	res := make([]*RoomResponse, len(rooms))
	for i, r := range rooms {
		item, err := FromRoom(r)
		if err != nil {
			return nil, err
		}
		res[i] = item
	}
	return res, nil
}

func FromSuggestion(s *room.Suggestion) (*SuggestionResponse, error) {
	byProximity, err := FromRooms(s.ProximityAndCapacity)
	if err != nil {
		return nil, err
	}
	byCapacity, err := FromRooms(s.CapacityOnly)
	if err != nil {
		return nil, err
	}
	return &SuggestionResponse{
		Seats:                s.Seats.Int(),
		ProximityAndCapacity: byProximity,
		CapacityOnly:         byCapacity,
		SnapshotAt:           s.SnapshotAt,
	}, nil
}
