package room

import (
	"cmp"
	"slices"
	"time"
)

// SuggestionLimit is the length of each ranking.
const SuggestionLimit = 2

// Suggestion holds both rankings computed from one snapshot of the room list.
// SnapshotAt lets a caller tell how stale the suggestion is; a booking always
// re-reads the room before committing.
type Suggestion struct {
	Seats                SeatCount
	ProximityAndCapacity []*Room
	CapacityOnly         []*Room
	SnapshotAt           time.Time
}

// Suggest ranks the free rooms that fit the requested seats. Ranking A prefers
// lower floors and then tighter rooms; ranking B prefers tighter rooms only.
// Both sorts are stable, so ties keep the input order.
func Suggest(rooms []*Room, seats int, snapshotAt time.Time) (*Suggestion, error) {
	requested, err := NewSeatCount(seats)
	if err != nil {
		return nil, err
	}

	candidates := make([]*Room, 0, len(rooms))
	for _, r := range rooms {
		if r != nil && r.CanSeat(requested) {
			candidates = append(candidates, r)
		}
	}
	if len(candidates) == 0 {
		return nil, ErrNoAvailability
	}

	byProximity := slices.Clone(candidates)
	slices.SortStableFunc(byProximity, func(a, b *Room) int {
		if c := cmp.Compare(a.floorNo, b.floorNo); c != 0 {
			return c
		}
		return cmp.Compare(a.capacity, b.capacity)
	})

	byCapacity := slices.Clone(candidates)
	slices.SortStableFunc(byCapacity, func(a, b *Room) int {
		return cmp.Compare(a.capacity, b.capacity)
	})

	return &Suggestion{
		Seats:                requested,
		ProximityAndCapacity: head(byProximity),
		CapacityOnly:         head(byCapacity),
		SnapshotAt:           snapshotAt,
	}, nil
}

func head(rooms []*Room) []*Room {
	return rooms[:min(len(rooms), SuggestionLimit)]
}
