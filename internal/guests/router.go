package guests

import (
	"staybook/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupGuestRoutes configures the guest registry routes. The registry is a
// front-desk surface, so every route sits behind staff authentication.
func SetupGuestRoutes(rg *gin.RouterGroup, controller *Controller) {
	guests := rg.Group("/guests")
	guests.Use(middleware.JWTAuth(), middleware.RequireRoles("RECEPTIONIST", "MANAGER"))
	{
		guests.POST("", controller.Register)      // POST /api/v1/guests
		guests.GET("", controller.List)           // GET  /api/v1/guests
		guests.GET("/lookup", controller.GetByPhone) // GET /api/v1/guests/lookup?phone=...
		guests.GET("/:id", controller.GetByID)    // GET  /api/v1/guests/:id
	}
}
