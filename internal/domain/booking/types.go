package booking

import "meetroom/internal/pkg/errs"

var ErrEmptyUserID = errs.Mark(errs.New("user id is required to book a room"), errs.ErrInvalidInput)

type Status string

const (
	// StatusPending marks a record written before the room's occupancy flip
	// was confirmed.
	StatusPending   Status = "pending"
	StatusCommitted Status = "committed"
)

func (s Status) String() string { return string(s) }

// ParseStatus treats a missing status as committed; records written before
// the pending marker existed have none.
func ParseStatus(s string) Status {
	if Status(s) == StatusPending {
		return StatusPending
	}
	return StatusCommitted
}
