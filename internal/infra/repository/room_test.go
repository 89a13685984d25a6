//go:build unit

package repository_test

import (
	"context"
	"errors"
	"testing"

	"meetroom/internal/domain/room"
	"meetroom/internal/infra"
	"meetroom/internal/infra/docstore"
	"meetroom/internal/infra/repository"
	"meetroom/internal/pkg/config"
	"meetroom/tests/common/builder"
	docstoremock "meetroom/tests/mock/docstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newRoomRepo(t *testing.T) (*repository.RoomRepository, *docstore.MemoryStore) {
	t.Helper()
	store := docstore.NewMemoryStore()
	return repository.NewRoomRepository(store, config.NewTestConfig(), nil), store
}

func TestRoomRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRoomRepo(t)

	require.NoError(t, repo.Create(ctx, builder.Room(101, 1, 6, false)))
	require.NoError(t, repo.Create(ctx, builder.Room(101, 2, 4, true)))
	require.NoError(t, repo.Create(ctx, builder.Room(205, 2, 8, false)))

	t.Run("room numbers repeat across floors", func(t *testing.T) {
		got, err := repo.FindByKey(ctx, room.Key{RoomNo: 101, FloorNo: 2})
		require.NoError(t, err)
		assert.Equal(t, 4, got.Capacity())
		assert.True(t, got.IsOccupied())
	})

	t.Run("missing room is NOT_FOUND", func(t *testing.T) {
		_, err := repo.FindByKey(ctx, room.Key{RoomNo: 101, FloorNo: 3})
		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})

	t.Run("FindAll returns every room", func(t *testing.T) {
		rooms, err := repo.FindAll(ctx)
		require.NoError(t, err)
		assert.Len(t, rooms, 3)
	})
}

func TestRoomRepository_Mutations(t *testing.T) {
	ctx := context.Background()

	t.Run("SetOccupied only touches the matching floor", func(t *testing.T) {
		repo, _ := newRoomRepo(t)
		require.NoError(t, repo.Create(ctx, builder.Room(101, 1, 6, false)))
		require.NoError(t, repo.Create(ctx, builder.Room(101, 2, 4, false)))

		require.NoError(t, repo.SetOccupied(ctx, room.Key{RoomNo: 101, FloorNo: 2}, true))

		first, err := repo.FindByKey(ctx, room.Key{RoomNo: 101, FloorNo: 1})
		require.NoError(t, err)
		second, err := repo.FindByKey(ctx, room.Key{RoomNo: 101, FloorNo: 2})
		require.NoError(t, err)
		assert.False(t, first.IsOccupied())
		assert.True(t, second.IsOccupied())
	})

	t.Run("Save can move a room to a new key", func(t *testing.T) {
		repo, _ := newRoomRepo(t)
		require.NoError(t, repo.Create(ctx, builder.Room(101, 1, 6, false)))

		require.NoError(t, repo.Save(ctx, room.Key{RoomNo: 101, FloorNo: 1}, builder.Room(110, 3, 10, false)))

		_, err := repo.FindByKey(ctx, room.Key{RoomNo: 101, FloorNo: 1})
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
		moved, err := repo.FindByKey(ctx, room.Key{RoomNo: 110, FloorNo: 3})
		require.NoError(t, err)
		assert.Equal(t, 10, moved.Capacity())
	})

	t.Run("Delete removes the room", func(t *testing.T) {
		repo, _ := newRoomRepo(t)
		require.NoError(t, repo.Create(ctx, builder.Room(101, 1, 6, false)))

		require.NoError(t, repo.Delete(ctx, room.Key{RoomNo: 101, FloorNo: 1}))

		rooms, err := repo.FindAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, rooms)
	})

	t.Run("mutations on a missing room are NOT_FOUND", func(t *testing.T) {
		repo, _ := newRoomRepo(t)
		key := room.Key{RoomNo: 999, FloorNo: 9}

		assert.True(t, infra.IsKind(repo.SetOccupied(ctx, key, true), infra.KindNotFound))
		assert.True(t, infra.IsKind(repo.Delete(ctx, key), infra.KindNotFound))
		assert.True(t, infra.IsKind(repo.Save(ctx, key, builder.Room(999, 9, 2, false)), infra.KindNotFound))
	})
}

func TestRoomRepository_StoreFailures(t *testing.T) {
	ctx := context.Background()
	cfg := config.NewTestConfig()

	testCases := []struct {
		name       string
		setupMock  func(*docstoremock.MockStore)
		call       func(*repository.RoomRepository) error
		expectKind infra.RepositoryErrorKind
	}{
		{
			name: "error: listing fails",
			setupMock: func(m *docstoremock.MockStore) {
				m.EXPECT().Get(ctx, "FMS/Rooms", gomock.Any()).Return(nil, docstore.ErrUnavailable)
			},
			call: func(r *repository.RoomRepository) error {
				_, err := r.FindAll(ctx)
				return err
			},
			expectKind: infra.KindDBFailure,
		},
		{
			name: "error: push fails",
			setupMock: func(m *docstoremock.MockStore) {
				m.EXPECT().Push(ctx, "FMS/Rooms", gomock.Any()).Return("", errors.New("connection reset"))
			},
			call: func(r *repository.RoomRepository) error {
				return r.Create(ctx, builder.Room(101, 1, 4, false))
			},
			expectKind: infra.KindDBFailure,
		},
		{
			name: "error: stored document is not a room",
			setupMock: func(m *docstoremock.MockStore) {
				m.EXPECT().Get(ctx, "FMS/Rooms", &docstore.Query{OrderBy: "RoomNo", EqualTo: 101}).
					Return(docstore.Snapshot{{Key: "k1", Value: []byte(`{"RoomNo":"oops"}`)}}, nil)
			},
			call: func(r *repository.RoomRepository) error {
				_, err := r.FindByKey(ctx, room.Key{RoomNo: 101, FloorNo: 1})
				return err
			},
			expectKind: infra.KindCorrupt,
		},
		{
			name: "error: occupancy update fails",
			setupMock: func(m *docstoremock.MockStore) {
				m.EXPECT().Get(ctx, "FMS/Rooms", gomock.Any()).
					Return(docstore.Snapshot{{Key: "k1", Value: []byte(`{"RoomNo":101,"FloorNo":1,"RoomCapacity":4,"isOccupied":false}`)}}, nil)
				m.EXPECT().Update(ctx, "FMS/Rooms/k1", map[string]any{"isOccupied": true}).Return(docstore.ErrUnavailable)
			},
			call: func(r *repository.RoomRepository) error {
				return r.SetOccupied(ctx, room.Key{RoomNo: 101, FloorNo: 1}, true)
			},
			expectKind: infra.KindDBFailure,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			store := docstoremock.NewMockStore(ctrl)
			tc.setupMock(store)

			err := tc.call(repository.NewRoomRepository(store, cfg, nil))

			require.Error(t, err)
			assert.True(t, infra.IsKind(err, tc.expectKind), "got %v", err)
		})
	}
}
