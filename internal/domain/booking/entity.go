package booking

import (
	"time"

	"meetroom/internal/domain/room"
)

// Record is an append-only entry in the booking log.
type Record struct {
	id        string
	requester Requester
	roomNo    int
	floorNo   int
	capacity  int
	bookedAt  time.Time
	status    Status
}

// NewPendingRecord captures the room as it was when the booking was applied.
func NewPendingRecord(requester Requester, r *room.Room, bookedAt time.Time) *Record {
	return &Record{
		requester: requester,
		roomNo:    r.RoomNo(),
		floorNo:   r.FloorNo(),
		capacity:  r.Capacity(),
		bookedAt:  bookedAt,
		status:    StatusPending,
	}
}

func Reconstruct(id string, requester Requester, roomNo, floorNo, capacity int, bookedAt time.Time, status Status) *Record {
	return &Record{
		id:        id,
		requester: requester,
		roomNo:    roomNo,
		floorNo:   floorNo,
		capacity:  capacity,
		bookedAt:  bookedAt,
		status:    status,
	}
}

func (r *Record) ID() string           { return r.id }
func (r *Record) Requester() Requester { return r.requester }
func (r *Record) UserID() string       { return r.requester.userID }
func (r *Record) UserName() string     { return r.requester.userName }
func (r *Record) RoomNo() int          { return r.roomNo }
func (r *Record) FloorNo() int         { return r.floorNo }
func (r *Record) Capacity() int        { return r.capacity }
func (r *Record) BookedAt() time.Time  { return r.bookedAt }
func (r *Record) Status() Status       { return r.status }
func (r *Record) IsPending() bool      { return r.status == StatusPending }
func (r *Record) RoomKey() room.Key    { return room.Key{RoomNo: r.roomNo, FloorNo: r.floorNo} }

// AssignID records the key the store assigned on append.
func (r *Record) AssignID(id string) { r.id = id }

func (r *Record) Commit() { r.status = StatusCommitted }
