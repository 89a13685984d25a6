//go:build unit

package repository_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"meetroom/internal/domain/booking"
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

func TestBookingRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemoryStore()
	repo := repository.NewBookingRepository(store, config.NewTestConfig(), nil)

	base := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	later := builder.NewBookingBuilder().WithUser("u-2", "Ren").WithBookedAt(base.Add(time.Hour)).BuildDomain()
	earlier := builder.NewBookingBuilder().WithUser("u-1", "").WithBookedAt(base).BuildDomain()

	laterID, err := repo.AppendPending(ctx, later)
	require.NoError(t, err)
	earlierID, err := repo.AppendPending(ctx, earlier)
	require.NoError(t, err)
	require.NotEqual(t, laterID, earlierID)

	records, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "u-1", records[0].UserID(), "records come back oldest first")
	assert.True(t, records[0].IsPending())
	assert.Equal(t, base, records[0].BookedAt())

	require.NoError(t, repo.MarkCommitted(ctx, earlierID))
	require.NoError(t, repo.Remove(ctx, laterID))

	records, err = repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, earlierID, records[0].ID())
	assert.Equal(t, booking.StatusCommitted, records[0].Status())
}

func TestBookingRepository_MarkCommittedMissing(t *testing.T) {
	repo := repository.NewBookingRepository(docstore.NewMemoryStore(), config.NewTestConfig(), nil)

	err := repo.MarkCommitted(context.Background(), "nope")

	require.Error(t, err)
	assert.True(t, infra.IsKind(err, infra.KindNotFound))
}

func TestBookingRepository_LegacyRecordsWithoutStatus(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	store := docstoremock.NewMockStore(ctrl)
	repo := repository.NewBookingRepository(store, config.NewTestConfig(), nil)

	store.EXPECT().Get(ctx, "FMS/MeetRecord", &docstore.Query{OrderBy: "bookedAt"}).Return(docstore.Snapshot{
		{Key: "r1", Value: []byte(`{"userId":"u-1","userName":"Aiko","roomNo":101,"floorNo":1,"capacity":4,"bookedAt":"2026-04-01T09:00:00Z"}`)},
	}, nil)

	records, err := repo.FindAll(ctx)

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.False(t, records[0].IsPending())
}

func TestBookingRepository_LegacyRecordsWithoutUserID(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemoryStore()
	repo := repository.NewBookingRepository(store, config.NewTestConfig(), nil)

	valid := builder.NewBookingBuilder().WithUser("u-1", "Aiko").
		WithBookedAt(time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)).BuildDomain()
	_, err := repo.AppendPending(ctx, valid)
	require.NoError(t, err)
	_, err = store.Push(ctx, "FMS/MeetRecord", map[string]any{
		"userId": "", "userName": "", "roomNo": 102, "floorNo": 1, "capacity": 4,
		"bookedAt": "2026-04-01T10:00:00Z",
	})
	require.NoError(t, err)

	records, err := repo.FindAll(ctx)

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Empty(t, records[1].UserID())
	assert.Equal(t, 102, records[1].RoomNo())
	assert.False(t, records[1].IsPending())
}

func TestBookingRepository_CorruptRecord(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	store := docstoremock.NewMockStore(ctrl)
	repo := repository.NewBookingRepository(store, config.NewTestConfig(), nil)

	store.EXPECT().Get(ctx, "FMS/MeetRecord", gomock.Any()).Return(docstore.Snapshot{
		{Key: "r1", Value: []byte(`{"userId":"u-1","bookedAt":"yesterday"}`)},
	}, nil)

	_, err := repo.FindAll(ctx)

	require.Error(t, err)
	assert.True(t, infra.IsKind(err, infra.KindCorrupt))
	assert.Equal(t, 1, strings.Count(err.Error(), "invalid booking record"))
}
