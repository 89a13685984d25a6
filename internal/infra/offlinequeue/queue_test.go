//go:build unit

package offlinequeue_test

import (
	"context"
	"testing"
	"time"

	"meetroom/internal/domain/pendingwrite"
	"meetroom/internal/infra/offlinequeue"
	"meetroom/internal/infra/scratchpad"
	"meetroom/internal/pkg/clock"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var enqueuedAt = time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

func newQueue(t *testing.T) (*offlinequeue.Queue, scratchpad.KV) {
	t.Helper()
	kv, err := scratchpad.OpenSQLite(context.Background(), ":memory:", clock.NewMockClock(enqueuedAt))
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })
	return offlinequeue.New(kv, nil), kv
}

func mustWrite(t *testing.T, kind pendingwrite.Kind, payload any) *pendingwrite.Write {
	t.Helper()
	w, err := pendingwrite.New(kind, payload, enqueuedAt)
	require.NoError(t, err)
	return w
}

func ids(writes []*pendingwrite.Write) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(writes))
	for _, w := range writes {
		out = append(out, w.ID)
	}
	return out
}

func TestQueue(t *testing.T) {
	ctx := context.Background()

	t.Run("pending preserves enqueue order across kinds", func(t *testing.T) {
		q, _ := newQueue(t)
		book := mustWrite(t, pendingwrite.KindBookRoom, pendingwrite.BookRoomPayload{UserID: "u-1", RoomNo: 101, FloorNo: 1})
		add := mustWrite(t, pendingwrite.KindAddRoom, pendingwrite.AddRoomPayload{RoomNo: 7, FloorNo: 0, Capacity: 3})
		free := mustWrite(t, pendingwrite.KindFreeRoom, pendingwrite.FreeRoomPayload{RoomNo: 101, FloorNo: 1})
		for _, w := range []*pendingwrite.Write{book, add, free} {
			require.NoError(t, q.Enqueue(ctx, w))
		}

		pending, err := q.Pending(ctx)
		require.NoError(t, err)
		assert.Equal(t, ids([]*pendingwrite.Write{book, add, free}), ids(pending))
		assert.Equal(t, []int64{1, 2, 3}, []int64{pending[0].Seq, pending[1].Seq, pending[2].Seq})

		var p pendingwrite.BookRoomPayload
		require.NoError(t, pending[0].Decode(&p))
		assert.Equal(t, "u-1", p.UserID)
	})

	t.Run("duplicates are kept", func(t *testing.T) {
		q, _ := newQueue(t)
		payload := pendingwrite.FreeRoomPayload{RoomNo: 3, FloorNo: 0}
		require.NoError(t, q.Enqueue(ctx, mustWrite(t, pendingwrite.KindFreeRoom, payload)))
		require.NoError(t, q.Enqueue(ctx, mustWrite(t, pendingwrite.KindFreeRoom, payload)))

		pending, err := q.Pending(ctx)
		require.NoError(t, err)
		assert.Len(t, pending, 2)
	})

	t.Run("lists are stored under their kind keys", func(t *testing.T) {
		q, kv := newQueue(t)
		require.NoError(t, q.Enqueue(ctx, mustWrite(t, pendingwrite.KindDeleteRoom, pendingwrite.DeleteRoomPayload{RoomNo: 4})))

		raw, err := kv.Get(ctx, "offlineRoomDeletions")
		require.NoError(t, err)
		assert.Contains(t, raw, `"kind":"delete_room"`)

		_, err = kv.Get(ctx, "offlineBookings")
		require.ErrorIs(t, err, scratchpad.ErrNotFound)
	})

	t.Run("remove keeps untouched writes and clears empty lists", func(t *testing.T) {
		q, kv := newQueue(t)
		a := mustWrite(t, pendingwrite.KindAddRoom, pendingwrite.AddRoomPayload{RoomNo: 1, Capacity: 2})
		b := mustWrite(t, pendingwrite.KindBookRoom, pendingwrite.BookRoomPayload{UserID: "u", RoomNo: 1})
		c := mustWrite(t, pendingwrite.KindAddRoom, pendingwrite.AddRoomPayload{RoomNo: 2, Capacity: 2})
		for _, w := range []*pendingwrite.Write{a, b, c} {
			require.NoError(t, q.Enqueue(ctx, w))
		}

		require.NoError(t, q.Remove(ctx, []uuid.UUID{a.ID, b.ID}))

		pending, err := q.Pending(ctx)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{c.ID}, ids(pending))

		_, err = kv.Get(ctx, "offlineBookings")
		require.ErrorIs(t, err, scratchpad.ErrNotFound)
	})

	t.Run("sequence survives across queue instances", func(t *testing.T) {
		q, kv := newQueue(t)
		require.NoError(t, q.Enqueue(ctx, mustWrite(t, pendingwrite.KindAddRoom, pendingwrite.AddRoomPayload{RoomNo: 1, Capacity: 1})))

		again := offlinequeue.New(kv, nil)
		w := mustWrite(t, pendingwrite.KindAddRoom, pendingwrite.AddRoomPayload{RoomNo: 2, Capacity: 1})
		require.NoError(t, again.Enqueue(ctx, w))
		assert.Equal(t, int64(2), w.Seq)
	})

	t.Run("dead letters can be requeued at the tail", func(t *testing.T) {
		q, _ := newQueue(t)
		failed := mustWrite(t, pendingwrite.KindBookRoom, pendingwrite.BookRoomPayload{UserID: "u", RoomNo: 9})
		require.NoError(t, q.Enqueue(ctx, failed))
		require.NoError(t, q.Remove(ctx, []uuid.UUID{failed.ID}))
		failed.Attempts = 1
		failed.LastError = "room not found"
		require.NoError(t, q.DeadLetter(ctx, []*pendingwrite.Write{failed}))

		later := mustWrite(t, pendingwrite.KindAddRoom, pendingwrite.AddRoomPayload{RoomNo: 9, Capacity: 2})
		require.NoError(t, q.Enqueue(ctx, later))

		dead, err := q.DeadLetters(ctx)
		require.NoError(t, err)
		require.Len(t, dead, 1)
		assert.Equal(t, "room not found", dead[0].LastError)

		n, err := q.RequeueDeadLetters(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		pending, err := q.Pending(ctx)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{later.ID, failed.ID}, ids(pending))

		dead, err = q.DeadLetters(ctx)
		require.NoError(t, err)
		assert.Empty(t, dead)
	})

	t.Run("unknown kind is rejected", func(t *testing.T) {
		q, _ := newQueue(t)
		err := q.Enqueue(ctx, &pendingwrite.Write{ID: uuid.New(), Kind: "rename"})
		require.ErrorIs(t, err, pendingwrite.ErrUnknownKind)
	})
}
