package components

import (
	"meetroom/internal/infra/offlinequeue"
	"meetroom/internal/infra/repository"
	"meetroom/internal/usecase/queries"
	"meetroom/internal/usecase/shared"

	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		fx.Annotate(
			repository.NewRoomRepository,
			fx.As(new(shared.RoomRepository)),
			fx.As(new(queries.RoomReadStore)),
		),
		fx.Annotate(
			repository.NewBookingRepository,
			fx.As(new(shared.BookingRepository)),
			fx.As(new(queries.BookingReadStore)),
		),
		fx.Annotate(
			offlinequeue.New,
			fx.As(new(shared.PendingQueue)),
		),
	),
)
