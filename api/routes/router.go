// api/routes/router.go
package routes

import (
	"context"
	"net/http"
	"time"

	"staybook/internal/auth"
	"staybook/internal/booking"
	"staybook/internal/guests"
	"staybook/internal/notifications"
	"staybook/internal/payments"
	"staybook/internal/rooms"
	"staybook/internal/shared/config"
	"staybook/internal/shared/database"
	"staybook/pkg/cache"
	"staybook/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config   *config.Config
	db       *database.DB
	notifier notifications.Service

	// Shared services, wired once and reused across route groups
	guestService guests.Service
	roomService  rooms.Service
	manager      *booking.Manager
}

// NewRouter creates a new router instance. The notifier may be nil when the
// Kafka pipeline is disabled; bookings still commit, they just are not
// published.
func NewRouter(cfg *config.Config, db *database.DB, notifier notifications.Service) *Router {
	return &Router{
		config:   cfg,
		db:       db,
		notifier: notifier,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// Health check and basic info endpoints
	r.setupHealthRoutes(engine)

	// API routes
	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupAuthRoutes(api)

		// Guest and room services are shared with the booking session
		// manager, so they are wired before the booking routes.
		r.setupGuestRoutes(api)
		r.setupRoomRoutes(api)
		r.setupBookingRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "staybook-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "staybook-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}

// setupAuthRoutes configures staff authentication routes
func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	authRepo := auth.NewRepository(r.db.GetPostgreSQL())
	authService := auth.NewService(authRepo, r.config)
	authController := auth.NewController(authService)
	authRouter := auth.NewRouter(authController)

	authRouter.SetupRoutes(rg)
}

// setupGuestRoutes configures the guest directory routes
func (r *Router) setupGuestRoutes(rg *gin.RouterGroup) {
	guestRepo := guests.NewRepository(r.db.GetPostgreSQL())
	r.guestService = guests.NewService(guestRepo)
	guestController := guests.NewController(r.guestService)

	guests.SetupGuestRoutes(rg, guestController)
}

// setupRoomRoutes configures room catalog and availability routes
func (r *Router) setupRoomRoutes(rg *gin.RouterGroup) {
	cacheService := cache.NewService(r.db.GetRedisClient())
	holds := rooms.NewRoomHolds(r.db.GetRedisClient(), r.config.Redis.RoomHoldTTL)

	roomRepo := rooms.NewRepository(r.db.GetPostgreSQL())
	r.roomService = rooms.NewService(roomRepo, cacheService, holds)
	roomController := rooms.NewController(r.roomService)

	rooms.SetupRoomRoutes(rg, roomController)
}

// setupBookingRoutes configures the booking session workflow routes
func (r *Router) setupBookingRoutes(rg *gin.RouterGroup) {
	authorizer := payments.NewCreditAuthorizer(map[payments.CardType]float64{
		payments.CardTypeVisa:       r.config.Payments.VisaLimit,
		payments.CardTypeMasterCard: r.config.Payments.MasterCardLimit,
		payments.CardTypeAmex:       r.config.Payments.AmexLimit,
	})

	r.manager = booking.NewManager(r.guestService, r.roomService, authorizer)

	r.manager.OnConfirmed(func(confirmed booking.ConfirmedBooking) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		logger.GetDefault().LogBookingConfirmed(ctx, confirmed.ConfirmationNumber,
			confirmed.RoomNumber, confirmed.SessionID)

		if r.notifier == nil {
			return
		}
		message := notifications.NewBookingConfirmedMessage(
			confirmed.SessionID,
			confirmed.ConfirmationNumber,
			confirmed.GuestName,
			confirmed.RoomNumber,
			confirmed.RoomDescription,
			confirmed.Arrival,
			confirmed.CardVendor,
			confirmed.CardNumber,
		)
		if err := r.notifier.PublishConfirmedBooking(ctx, message); err != nil {
			logger.GetDefault().WithError(err).Error("failed to publish confirmed booking",
				"confirmation", confirmed.ConfirmationNumber)
		}
	})

	bookingController := booking.NewController(r.manager, r.roomService)
	booking.SetupBookingRoutes(rg, bookingController)
}

// SessionManager exposes the booking session manager for the idle sweeper.
func (r *Router) SessionManager() *booking.Manager {
	return r.manager
}
