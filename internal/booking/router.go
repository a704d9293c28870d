package booking

import (
	"staybook/internal/shared/middleware"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// SetupBookingRoutes configures the booking session endpoints. The flow is a
// front-desk surface, so it sits behind staff authentication like the guest
// registry.
func SetupBookingRoutes(rg *gin.RouterGroup, controller *Controller) {
	registerCardValidation()

	sessions := rg.Group("/booking-sessions")
	sessions.Use(middleware.JWTAuth(), middleware.RequireRoles("RECEPTIONIST", "MANAGER"))
	{
		sessions.POST("", controller.CreateSession) // POST /api/v1/booking-sessions
		sessions.GET("/:id", controller.GetSession) // GET  /api/v1/booking-sessions/:id

		sessions.POST("/:id/phone", controller.Phone)                 // identify the guest
		sessions.POST("/:id/guest-details", controller.GuestDetails)  // register a new guest
		sessions.POST("/:id/room-selection", controller.RoomSelection) // choose type and occupants
		sessions.POST("/:id/dates", controller.Dates)                 // request the stay window
		sessions.POST("/:id/payment", controller.Payment)             // authorize and commit
		sessions.POST("/:id/cancel", controller.Cancel)               // abandon the transaction
	}
}

// registerCardValidation adds the carddigits rule used by the payment
// request: digits only, so formatting mistakes are caught before the
// authorizer sees them.
func registerCardValidation() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("carddigits", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if value == "" {
			return false
		}
		for _, r := range value {
			if r < '0' || r > '9' {
				return false
			}
		}
		return true
	})
}
