//go:build unit

package queries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"meetroom/internal/domain/booking"
	"meetroom/internal/pkg/errs"
	"meetroom/internal/usecase/queries"
	"meetroom/tests/common/builder"
	queriesmock "meetroom/tests/mock/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestBookingQueries_ListRecords(t *testing.T) {
	ctx := context.Background()

	t.Run("oldest first", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockBookingReadStore(ctrl)
		base := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
		store.EXPECT().FindAll(ctx).Return([]*booking.Record{
			builder.NewBookingBuilder().WithID("c").WithBookedAt(base.Add(2 * time.Hour)).BuildDomain(),
			builder.NewBookingBuilder().WithID("a").WithBookedAt(base).BuildDomain(),
			builder.NewBookingBuilder().WithID("b").WithBookedAt(base.Add(time.Hour)).BuildDomain(),
		}, nil)

		records, err := queries.NewBookingQueries(store).ListRecords(ctx)

		require.NoError(t, err)
		ids := []string{records[0].ID(), records[1].ID(), records[2].ID()}
		assert.Equal(t, []string{"a", "b", "c"}, ids)
	})

	t.Run("store failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockBookingReadStore(ctrl)
		store.EXPECT().FindAll(ctx).Return(nil, errors.New("unreachable"))

		_, err := queries.NewBookingQueries(store).ListRecords(ctx)

		assert.True(t, errs.Is(err, errs.ErrRemoteFailure))
	})
}
