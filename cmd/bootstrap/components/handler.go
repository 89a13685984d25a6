package components

import (
	"meetroom/internal/handler"
	"meetroom/internal/handler/api"
	"meetroom/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewRoomHandler,
		api.NewBookingHandler,
		api.NewSyncHandler,
		middleware.NewAuthMiddleware,
		func(room *api.RoomHandler, booking *api.BookingHandler, sync *api.SyncHandler) handler.Handlers {
			return handler.Handlers{Room: room, Booking: booking, Sync: sync}
		},
	),
	fx.Invoke(handler.NewRouter),
)
