package rooms

import (
	"staybook/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupRoomRoutes configures the catalog, availability, and booking-lookup
// routes. Catalog mutation is manager-only; availability is open so the
// booking flow can quote rooms before any staff sign-in. Open availability
// checks are read-only: a hold is only placed when the caller passes the
// session_id of an active booking session.
func SetupRoomRoutes(rg *gin.RouterGroup, controller *Controller) {
	roomTypes := rg.Group("/room-types")
	{
		roomTypes.GET("", controller.ListRoomTypes)       // GET  /api/v1/room-types
		roomTypes.GET("/:code", controller.GetRoomType)   // GET  /api/v1/room-types/:code

		staff := roomTypes.Group("")
		staff.Use(middleware.JWTAuth(), middleware.RequireRoles("MANAGER"))
		{
			staff.POST("", controller.CreateRoomType)        // POST   /api/v1/room-types
			staff.PUT("/:code", controller.UpdateRoomType)   // PUT    /api/v1/room-types/:code
			staff.DELETE("/:code", controller.DeleteRoomType) // DELETE /api/v1/room-types/:code
		}
	}

	rooms := rg.Group("/rooms")
	{
		rooms.GET("/availability", controller.CheckAvailability) // GET /api/v1/rooms/availability

		staff := rooms.Group("")
		staff.Use(middleware.JWTAuth(), middleware.RequireRoles("MANAGER"))
		{
			staff.POST("", controller.AddRoom)  // POST /api/v1/rooms
			staff.GET("", controller.ListRooms) // GET  /api/v1/rooms?type=...
		}
	}

	bookings := rg.Group("/bookings")
	bookings.Use(middleware.JWTAuth(), middleware.RequireRoles("RECEPTIONIST", "MANAGER"))
	{
		bookings.GET("/:confirmation", controller.GetBooking) // GET /api/v1/bookings/:confirmation
	}
}
