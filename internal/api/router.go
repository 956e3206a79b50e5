package api

import (
	"smart_parking_booking/internal/api/handler"
	"smart_parking_booking/internal/api/middleware"
	"smart_parking_booking/internal/domain"
	"smart_parking_booking/internal/service"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// SetupRouter wires the HTTP surface. as and authMw are nil when operator auth
// is disabled, in which case every route is open.
func SetupRouter(logger *zerolog.Logger, bs *service.BookingService, ps *service.ParkingService,
	as *service.AuthService, authMw *middleware.AuthMiddleware, wsManager *handler.WebSocketManager, metricsEnabled bool) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestLogger(logger))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	// WebSocket endpoint (không cần auth cho real-time connection)
	if wsManager != nil {
		wsHandler := handler.NewWebSocketHandler(wsManager, logger)
		r.GET("/ws", wsHandler.HandleWebSocket)
	}

	if metricsEnabled {
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	if as != nil {
		authHandler := handler.NewAuthHandler(as, logger)
		authRoutes := r.Group("/auth")
		{
			authRoutes.POST("/login", authHandler.Login)
		}
	}

	bookingH := handler.NewBookingHandler(bs, logger)
	parkingH := handler.NewParkingHandler(ps, logger)

	apiRoutes := r.Group("/api")
	{
		apiRoutes.GET("/health", handler.Health)
		apiRoutes.GET("/lots", parkingH.ListLots)
		apiRoutes.GET("/slots", parkingH.ListSlots)

		apiRoutes.POST("/book", bookingH.Book)
		apiRoutes.GET("/booking/:bookingId", bookingH.GetBooking)
		apiRoutes.POST("/release", bookingH.Release)

		if authMw != nil {
			apiRoutes.GET("/bookings", authMw.Authenticate(), authMw.AuthorizeRole(domain.RoleAdmin), bookingH.ListBookings)
		} else {
			apiRoutes.GET("/bookings", bookingH.ListBookings)
		}
	}
	return r
}
