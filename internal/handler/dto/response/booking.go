package response

import (
	"time"

	"meetroom/internal/domain/booking"

	"github.com/jinzhu/copier"
)

type BookingRecordResponse struct {
	ID       string    `json:"id"`
	UserID   string    `json:"userId"`
	UserName string    `json:"userName"`
	RoomNo   int       `json:"roomNo"`
	FloorNo  int       `json:"floorNo"`
	Capacity int       `json:"capacity"`
	BookedAt time.Time `json:"bookedAt"`
	Status   string    `json:"status"`
}

func FromBookingRecord(rec *booking.Record) (*BookingRecordResponse, error) {
	res := &BookingRecordResponse{}
	if err := copier.Copy(res, rec); err != nil {
		return nil, err
	}
	res.Status = rec.Status().String()
	return res, nil
}

func FromBookingRecords(records []*booking.Record) ([]*BookingRecordResponse, error) {
	res := make([]*BookingRecordResponse, len(records))
	for i, rec := range records {
		item, err := FromBookingRecord(rec)
		if err != nil {
			return nil, err
		}
		res[i] = item
	}
	return res, nil
}

type ReconcileResponse struct {
	Committed int `json:"committed"`
	Removed   int `json:"removed"`
}
