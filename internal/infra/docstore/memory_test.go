//go:build unit

package docstore_test

import (
	"context"
	"testing"

	"meetroom/internal/infra/docstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	const rooms = "FMS/Rooms"

	seed := func(t *testing.T) *docstore.MemoryStore {
		t.Helper()
		s := docstore.NewMemoryStore()
		for _, r := range []roomDoc{
			{RoomNo: 205, FloorNo: 2, RoomCapacity: 4},
			{RoomNo: 101, FloorNo: 1, RoomCapacity: 4},
			{RoomNo: 101, FloorNo: 3, RoomCapacity: 12},
			{RoomNo: 108, FloorNo: 1, RoomCapacity: 10},
		} {
			_, err := s.Push(ctx, rooms, r)
			require.NoError(t, err)
		}
		return s
	}

	t.Run("push keys keep insertion order", func(t *testing.T) {
		s := seed(t)
		snap, err := s.Get(ctx, rooms, nil)
		require.NoError(t, err)
		got := decodeAll(t, snap)
		require.Len(t, got, 4)
		assert.Equal(t, []int{205, 101, 101, 108}, []int{got[0].RoomNo, got[1].RoomNo, got[2].RoomNo, got[3].RoomNo})
	})

	t.Run("order by child field", func(t *testing.T) {
		s := seed(t)
		snap, err := s.Get(ctx, rooms, &docstore.Query{OrderBy: "RoomCapacity"})
		require.NoError(t, err)
		got := decodeAll(t, snap)
		assert.Equal(t, []int{4, 4, 10, 12}, []int{got[0].RoomCapacity, got[1].RoomCapacity, got[2].RoomCapacity, got[3].RoomCapacity})
		assert.Equal(t, 205, got[0].RoomNo, "ties keep key order")
	})

	t.Run("equal to filter", func(t *testing.T) {
		s := seed(t)
		snap, err := s.Get(ctx, rooms, &docstore.Query{OrderBy: "RoomNo", EqualTo: 101})
		require.NoError(t, err)
		got := decodeAll(t, snap)
		require.Len(t, got, 2)
		assert.ElementsMatch(t, []int{1, 3}, []int{got[0].FloorNo, got[1].FloorNo})
	})

	t.Run("update merges fields", func(t *testing.T) {
		s := seed(t)
		snap, err := s.Get(ctx, rooms, &docstore.Query{OrderBy: "RoomNo", EqualTo: 108})
		require.NoError(t, err)
		require.Len(t, snap, 1)

		path := docstore.Join(rooms, snap[0].Key)
		require.NoError(t, s.Update(ctx, path, map[string]any{"isOccupied": true}))

		snap, err = s.Get(ctx, rooms, &docstore.Query{OrderBy: "isOccupied", EqualTo: true})
		require.NoError(t, err)
		got := decodeAll(t, snap)
		require.Len(t, got, 1)
		assert.Equal(t, roomDoc{RoomNo: 108, FloorNo: 1, RoomCapacity: 10, IsOccupied: true}, got[0])
	})

	t.Run("update of a missing document fails", func(t *testing.T) {
		s := docstore.NewMemoryStore()
		err := s.Update(ctx, docstore.Join(rooms, "nope"), map[string]any{"isOccupied": true})
		require.ErrorIs(t, err, docstore.ErrNotFound)
	})

	t.Run("set overwrites and remove deletes", func(t *testing.T) {
		s := docstore.NewMemoryStore()
		path := docstore.Join(rooms, "r1")
		require.NoError(t, s.Set(ctx, path, roomDoc{RoomNo: 1, RoomCapacity: 2}))
		require.NoError(t, s.Set(ctx, path, roomDoc{RoomNo: 1, RoomCapacity: 6}))

		snap, err := s.Get(ctx, rooms, nil)
		require.NoError(t, err)
		require.Len(t, snap, 1)
		assert.Equal(t, 6, decodeAll(t, snap)[0].RoomCapacity)

		require.NoError(t, s.Remove(ctx, path))
		require.NoError(t, s.Remove(ctx, path), "removing twice is a no-op")
		snap, err = s.Get(ctx, rooms, nil)
		require.NoError(t, err)
		assert.False(t, snap.Exists())
	})

	t.Run("invalid paths", func(t *testing.T) {
		s := docstore.NewMemoryStore()
		require.ErrorIs(t, s.Set(ctx, "FMS", roomDoc{}), docstore.ErrInvalidPath)
		require.ErrorIs(t, s.Remove(ctx, "FMS/Rooms/"), docstore.ErrInvalidPath)
		_, err := s.Get(ctx, "", nil)
		require.ErrorIs(t, err, docstore.ErrInvalidPath)
	})

	t.Run("unreachable store fails every call", func(t *testing.T) {
		s := seed(t)
		s.SetReachable(false)

		require.ErrorIs(t, s.Ping(ctx), docstore.ErrUnavailable)
		_, err := s.Get(ctx, rooms, nil)
		require.ErrorIs(t, err, docstore.ErrUnavailable)
		_, err = s.Push(ctx, rooms, roomDoc{RoomNo: 9, RoomCapacity: 1})
		require.ErrorIs(t, err, docstore.ErrUnavailable)

		s.SetReachable(true)
		require.NoError(t, s.Ping(ctx))
		snap, err := s.Get(ctx, rooms, nil)
		require.NoError(t, err)
		assert.Len(t, snap, 4, "nothing was written while unreachable")
	})
}
