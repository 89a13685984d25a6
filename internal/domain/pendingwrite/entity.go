package pendingwrite

import (
	"encoding/json"
	"time"

	"meetroom/internal/pkg/errs"

	"github.com/google/uuid"
)

// Write is a mutation captured while the remote store was unreachable.
// Seq is assigned by the queue and defines replay order across kinds.
type Write struct {
	ID         uuid.UUID       `json:"id"`
	Seq        int64           `json:"seq"`
	Kind       Kind            `json:"kind"`
	Payload    json.RawMessage `json:"payload"`
	EnqueuedAt time.Time       `json:"enqueuedAt"`
	Attempts   int             `json:"attempts,omitempty"`
	LastError  string          `json:"lastError,omitempty"`
}

func New(kind Kind, payload any, now time.Time) (*Write, error) {
	if !kind.IsValid() {
		return nil, ErrUnknownKind
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, errs.Wrap(err, "failed to encode pending write payload")
	}
	return &Write{
		ID:         uuid.New(),
		Kind:       kind,
		Payload:    raw,
		EnqueuedAt: now,
	}, nil
}

func (w *Write) Decode(v any) error {
	if err := json.Unmarshal(w.Payload, v); err != nil {
		return errs.Mark(errs.Wrapf(err, "failed to decode %s payload", w.Kind), errs.ErrInvalidInput)
	}
	return nil
}

// RecordFailure notes a failed replay attempt.
func (w *Write) RecordFailure(err error) {
	w.Attempts++
	if err != nil {
		w.LastError = err.Error()
	}
}

type AddRoomPayload struct {
	RoomNo   int `json:"roomNo"`
	FloorNo  int `json:"floorNo"`
	Capacity int `json:"capacity"`
}

// ModifyRoomPayload addresses the room by its current key; nil fields are left unchanged.
type ModifyRoomPayload struct {
	RoomNo     int  `json:"roomNo"`
	FloorNo    int  `json:"floorNo"`
	Capacity   *int `json:"capacity,omitempty"`
	NewRoomNo  *int `json:"newRoomNo,omitempty"`
	NewFloorNo *int `json:"newFloorNo,omitempty"`
}

type DeleteRoomPayload struct {
	RoomNo  int `json:"roomNo"`
	FloorNo int `json:"floorNo"`
}

type FreeRoomPayload struct {
	RoomNo  int `json:"roomNo"`
	FloorNo int `json:"floorNo"`
}

type BookRoomPayload struct {
	UserID      string    `json:"userId"`
	UserName    string    `json:"userName"`
	RoomNo      int       `json:"roomNo"`
	FloorNo     int       `json:"floorNo"`
	RequestedAt time.Time `json:"requestedAt"`
}
