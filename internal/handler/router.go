package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"meetroom/internal/handler/api"
	"meetroom/internal/handler/middleware"
	"meetroom/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Room    *api.RoomHandler
	Booking *api.BookingHandler
	Sync    *api.SyncHandler
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	handlers Handlers,
	authMiddleware *middleware.AuthMiddleware,
	connectivity middleware.ConnectivityChecker,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, handlers, authMiddleware, connectivity)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware, connectivity middleware.ConnectivityChecker) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	apiGroup.Use(authMiddleware.RequireAuth())
	{
		addRoutes(apiGroup.Group("/rooms"), []route{
			{Method: http.MethodGet, Path: "", Handler: h.Room.List},
			{Method: http.MethodPost, Path: "", Handler: h.Room.Create},
			{Method: http.MethodGet, Path: "/suggestions", Handler: h.Room.Suggest},
		})

		addRoutes(apiGroup.Group("/floors/:floorNo/rooms/:roomNo"), []route{
			{Method: http.MethodGet, Path: "", Handler: h.Room.Get},
			{Method: http.MethodPut, Path: "", Handler: h.Room.Update},
			{Method: http.MethodDelete, Path: "", Handler: h.Room.Delete},
			{Method: http.MethodPost, Path: "/free", Handler: h.Room.Free},
		})

		addRoutes(apiGroup.Group("/bookings"), []route{
			{Method: http.MethodPost, Path: "", Handler: h.Booking.Create},
			{Method: http.MethodGet, Path: "", Handler: h.Booking.List},
			{Method: http.MethodPost, Path: "/reconcile", Handler: h.Booking.Reconcile},
		})

		addRoutes(apiGroup.Group("/sync"), []route{
			{Method: http.MethodGet, Path: "/pending", Handler: h.Sync.Pending},
			{Method: http.MethodPost, Path: "/drain", Handler: h.Sync.Drain, Mw: []gin.HandlerFunc{middleware.RequireOnline(connectivity)}},
			{Method: http.MethodGet, Path: "/dead-letters", Handler: h.Sync.DeadLetters},
			{Method: http.MethodPost, Path: "/dead-letters/requeue", Handler: h.Sync.Requeue},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
