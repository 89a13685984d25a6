package response

import (
	"encoding/json"
	"time"

	"meetroom/internal/domain/pendingwrite"
	"meetroom/internal/usecase/offline"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

// QueuedResponse is returned with 202 when a write was deferred.
type QueuedResponse struct {
	Queued         bool      `json:"queued"`
	PendingWriteID uuid.UUID `json:"pendingWriteId"`
}

type PendingWriteResponse struct {
	ID         uuid.UUID       `json:"id"`
	Seq        int64           `json:"seq"`
	Kind       string          `json:"kind"`
	Payload    json.RawMessage `json:"payload"`
	EnqueuedAt time.Time       `json:"enqueuedAt"`
	Attempts   int             `json:"attempts"`
	LastError  string          `json:"lastError,omitempty"`
}

type FailureResponse struct {
	ID    uuid.UUID `json:"id"`
	Kind  string    `json:"kind"`
	Error string    `json:"error"`
}

type DrainResponse struct {
	Attempted    int               `json:"attempted"`
	Applied      int               `json:"applied"`
	Dropped      int               `json:"dropped"`
	DeadLettered int               `json:"deadLettered"`
	Failures     []FailureResponse `json:"failures"`
}

type RequeueResponse struct {
	Requeued int `json:"requeued"`
}

func FromPendingWrites(writes []*pendingwrite.Write) ([]*PendingWriteResponse, error) {
	res := make([]*PendingWriteResponse, 0, len(writes))
	if err := copier.Copy(&res, writes); err != nil {
		return nil, err
	}
	return res, nil
}

func FromDrainResult(r *offline.DrainResult) (*DrainResponse, error) {
	res := &DrainResponse{Failures: []FailureResponse{}}
	if err := copier.Copy(res, r); err != nil {
		return nil, err
	}
	return res, nil
}
