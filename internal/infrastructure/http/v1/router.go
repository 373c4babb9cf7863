// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"posada/internal/core/clock"
	"posada/internal/domain/audit"
	"posada/internal/domain/catalogs/guest"
	"posada/internal/domain/catalogs/room"
	"posada/internal/domain/frontdesk"
	"posada/internal/domain/reservation"
	"posada/internal/domain/settings"
	"posada/internal/infrastructure/http/v1/handlers"
	"posada/internal/infrastructure/http/v1/middleware"
	"posada/internal/infrastructure/storage/postgres"
	"posada/internal/infrastructure/storage/postgres/booking_repo"
	"posada/internal/infrastructure/storage/postgres/catalog_repo"
	"posada/pkg/logger"
)

// RouterConfig holds router configuration.
type RouterConfig struct {
	// Pool is the database connection pool (health checks)
	Pool *postgres.Pool

	// TxManager drives every transactional operation
	TxManager *postgres.TxManager

	// Logger for request logging
	Logger *logger.Logger

	// JWTValidator for token validation
	JWTValidator middleware.JWTValidator

	// Audit records every lifecycle transition
	Audit audit.Recorder

	// Clock defaults to the system clock; tests inject a fixed one
	Clock clock.Clock
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints (no auth)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
	}

	// API v1
	api := router.Group("/api/v1")
	api.Use(middleware.Auth(cfg.JWTValidator))

	registerRoutes(api, cfg)

	return router
}

// registerRoutes wires repositories, services and handlers.
func registerRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	baseHandler := handlers.NewBaseHandler()

	// Repositories
	roomRepo := catalog_repo.NewRoomRepo(cfg.TxManager)
	roomTypeRepo := catalog_repo.NewRoomTypeRepo(cfg.TxManager)
	guestRepo := catalog_repo.NewGuestRepo(cfg.TxManager)
	companyRepo := catalog_repo.NewCompanyRepo(cfg.TxManager)
	settingsRepo := catalog_repo.NewSettingsRepo(cfg.TxManager)

	reservationRepo := booking_repo.NewReservationRepo(cfg.TxManager)
	stayRepo := booking_repo.NewStayRepo(cfg.TxManager)
	occupancyRepo := booking_repo.NewOccupancyRepo(cfg.TxManager)
	chargeRepo := booking_repo.NewChargeRepo(cfg.TxManager)
	paymentRepo := booking_repo.NewPaymentRepo(cfg.TxManager)
	housekeepingRepo := booking_repo.NewHousekeepingRepo(cfg.TxManager)

	// Services
	settingsService := settings.NewService(settingsRepo, cfg.TxManager)
	roomService := room.NewService(roomRepo, roomTypeRepo, cfg.TxManager)
	guestService := guest.NewService(guestRepo, companyRepo, cfg.TxManager)
	reservationService := reservation.NewService(reservationRepo, cfg.Audit, cfg.TxManager)
	frontdeskService := frontdesk.NewService(frontdesk.Deps{
		Stays:        stayRepo,
		Occupancies:  occupancyRepo,
		Charges:      chargeRepo,
		Payments:     paymentRepo,
		Reservations: reservationRepo,
		Rooms:        roomRepo,
		RoomTypes:    roomTypeRepo,
		Guests:       guestRepo,
		Companies:    companyRepo,
		Housekeeping: housekeepingRepo,
		Settings:     settingsService,
		Audit:        cfg.Audit,
		TxManager:    cfg.TxManager,
		Clock:        cfg.Clock,
	})

	// Handlers
	reservations := rg.Group("/reservations")
	stays := rg.Group("/stays")

	handlers.NewReservationHandler(baseHandler, reservationService).RegisterRoutes(reservations)
	handlers.NewStayHandler(baseHandler, frontdeskService).RegisterRoutes(reservations, stays)
	handlers.NewRoomHandler(baseHandler, roomService).RegisterRoutes(
		rg.Group("/rooms"), rg.Group("/room-types"))
	handlers.NewGuestHandler(baseHandler, guestService).RegisterRoutes(
		rg.Group("/guests"), rg.Group("/companies"))
	handlers.NewHousekeepingHandler(baseHandler, frontdeskService).RegisterRoutes(
		rg.Group("/housekeeping"))

	settingsGroup := rg.Group("/settings")
	settingsHandler := handlers.NewSettingsHandler(baseHandler, settingsService)
	settingsGroup.GET("", settingsHandler.Get)
	settingsGroup.PUT("", middleware.RequireAdmin(), settingsHandler.Update)
}
