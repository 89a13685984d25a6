//go:build unit || e2e

package builder

import (
	"time"

	dombooking "meetroom/internal/domain/booking"
	reqdto "meetroom/internal/handler/dto/request"
)

type BookingBuilder struct {
	ID       string
	UserID   string
	UserName string
	RoomNo   int
	FloorNo  int
	Capacity int
	BookedAt time.Time
	Status   dombooking.Status
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		ID:       "rec-1",
		UserID:   "u-100",
		UserName: "Aiko Tanaka",
		RoomNo:   101,
		FloorNo:  1,
		Capacity: 4,
		BookedAt: time.Date(2026, 4, 1, 9, 30, 0, 0, time.UTC),
		Status:   dombooking.StatusCommitted,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) BuildRequester() (dombooking.Requester, error) {
	return dombooking.NewRequester(b.UserID, b.UserName)
}

func (b *BookingBuilder) BuildDomain() *dombooking.Record {
	requester, err := b.BuildRequester()
	if err != nil {
		panic(err)
	}
	return dombooking.Reconstruct(b.ID, requester, b.RoomNo, b.FloorNo, b.Capacity, b.BookedAt, b.Status)
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	roomNo, floorNo := b.RoomNo, b.FloorNo
	return reqdto.CreateBookingRequest{
		UserID:   b.UserID,
		UserName: b.UserName,
		RoomNo:   &roomNo,
		FloorNo:  &floorNo,
	}
}

func (b *BookingBuilder) WithID(id string) *BookingBuilder {
	b.ID = id
	return b
}

func (b *BookingBuilder) WithUser(userID, userName string) *BookingBuilder {
	b.UserID = userID
	b.UserName = userName
	return b
}

func (b *BookingBuilder) WithRoom(roomNo, floorNo, capacity int) *BookingBuilder {
	b.RoomNo = roomNo
	b.FloorNo = floorNo
	b.Capacity = capacity
	return b
}

func (b *BookingBuilder) WithBookedAt(t time.Time) *BookingBuilder {
	b.BookedAt = t
	return b
}

func (b *BookingBuilder) AsPending() *BookingBuilder {
	b.Status = dombooking.StatusPending
	return b
}
