package converter

import (
	"time"

	"meetroom/internal/domain/booking"
	"meetroom/internal/pkg/errs"
)

type BookingDocument struct {
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
	RoomNo   int    `json:"roomNo"`
	FloorNo  int    `json:"floorNo"`
	Capacity int    `json:"capacity"`
	BookedAt string `json:"bookedAt"`
	Status   string `json:"status,omitempty"`
}

func BookingToDocument(rec *booking.Record) BookingDocument {
	return BookingDocument{
		UserID:   rec.UserID(),
		UserName: rec.UserName(),
		RoomNo:   rec.RoomNo(),
		FloorNo:  rec.FloorNo(),
		Capacity: rec.Capacity(),
		BookedAt: rec.BookedAt().UTC().Format(time.RFC3339Nano),
		Status:   rec.Status().String(),
	}
}

func BookingFromDocument(id string, d BookingDocument) (*booking.Record, error) {
	requester := booking.ReconstructRequester(d.UserID, d.UserName)
	bookedAt, err := time.Parse(time.RFC3339Nano, d.BookedAt)
	if err != nil {
		return nil, errs.Wrapf(err, "booking record %s has invalid bookedAt", id)
	}
	return booking.Reconstruct(id, requester, d.RoomNo, d.FloorNo, d.Capacity, bookedAt, booking.ParseStatus(d.Status)), nil
}
