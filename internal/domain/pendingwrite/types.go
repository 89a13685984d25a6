package pendingwrite

import "meetroom/internal/pkg/errs"

var (
	ErrUnknownKind   = errs.Mark(errs.New("unknown pending write kind"), errs.ErrInvalidInput)
	ErrInvalidPolicy = errs.New("invalid drain failure policy")
)

type Kind string

const (
	KindAddRoom    Kind = "add_room"
	KindModifyRoom Kind = "modify_room"
	KindDeleteRoom Kind = "delete_room"
	KindFreeRoom   Kind = "free_room"
	KindBookRoom   Kind = "book_room"
)

var storageKeys = map[Kind]string{
	KindAddRoom:    "offlineRoomData",
	KindModifyRoom: "offlineRoomModifications",
	KindDeleteRoom: "offlineRoomDeletions",
	KindFreeRoom:   "offlineFreeRoomRequests",
	KindBookRoom:   "offlineBookings",
}

// Kinds lists every kind in a fixed order.
func Kinds() []Kind {
	return []Kind{KindAddRoom, KindModifyRoom, KindDeleteRoom, KindFreeRoom, KindBookRoom}
}

func (k Kind) IsValid() bool {
	_, ok := storageKeys[k]
	return ok
}

// StorageKey is the scratchpad key holding the list of writes of this kind.
func (k Kind) StorageKey() string { return storageKeys[k] }

func (k Kind) String() string { return string(k) }
