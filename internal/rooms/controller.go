package rooms

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"staybook/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// CreateRoomType handles POST /room-types
func (c *Controller) CreateRoomType(ctx *gin.Context) {
	var req CreateRoomTypeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	roomType, err := c.service.CreateRoomType(ctx.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrRoomTypeExists) {
			response.RespondJSON(ctx, "error", http.StatusConflict, "Room type already exists", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to create room type", nil, err.Error())
		return
	}
	response.RespondJSON(ctx, "success", http.StatusCreated, "Room type created", toRoomTypeResponse(roomType), nil)
}

// ListRoomTypes handles GET /room-types
func (c *Controller) ListRoomTypes(ctx *gin.Context) {
	list, err := c.service.ListRoomTypes(ctx.Request.Context())
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to list room types", nil, err.Error())
		return
	}

	resp := make([]*RoomTypeResponse, 0, len(list))
	for i := range list {
		resp = append(resp, toRoomTypeResponse(&list[i]))
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Room types retrieved", resp, nil)
}

// GetRoomType handles GET /room-types/:code
func (c *Controller) GetRoomType(ctx *gin.Context) {
	roomType, err := c.service.GetRoomTypeByCode(ctx.Request.Context(), ctx.Param("code"))
	if err != nil {
		if errors.Is(err, ErrRoomTypeNotFound) {
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Room type not found", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get room type", nil, err.Error())
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Room type retrieved", toRoomTypeResponse(roomType), nil)
}

// UpdateRoomType handles PUT /room-types/:code
func (c *Controller) UpdateRoomType(ctx *gin.Context) {
	var req UpdateRoomTypeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	roomType, err := c.service.UpdateRoomType(ctx.Request.Context(), ctx.Param("code"), req)
	if err != nil {
		if errors.Is(err, ErrRoomTypeNotFound) {
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Room type not found", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to update room type", nil, err.Error())
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Room type updated", toRoomTypeResponse(roomType), nil)
}

// DeleteRoomType handles DELETE /room-types/:code
func (c *Controller) DeleteRoomType(ctx *gin.Context) {
	err := c.service.DeleteRoomType(ctx.Request.Context(), ctx.Param("code"))
	if err != nil {
		switch {
		case errors.Is(err, ErrRoomTypeNotFound):
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Room type not found", nil, nil)
		case errors.Is(err, ErrRoomTypeInUse):
			response.RespondJSON(ctx, "error", http.StatusConflict, "Room type has rooms assigned", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to delete room type", nil, err.Error())
		}
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Room type deleted", nil, nil)
}

// AddRoom handles POST /rooms
func (c *Controller) AddRoom(ctx *gin.Context) {
	var req AddRoomRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	room, err := c.service.AddRoom(ctx.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrRoomTypeNotFound) {
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Room type not found", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to add room", nil, err.Error())
		return
	}
	response.RespondJSON(ctx, "success", http.StatusCreated, "Room added", toRoomResponse(room), nil)
}

// ListRooms handles GET /rooms?type=...
func (c *Controller) ListRooms(ctx *gin.Context) {
	typeCode := ctx.Query("type")
	if typeCode == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "type query parameter is required", nil, nil)
		return
	}

	list, err := c.service.ListRoomsByType(ctx.Request.Context(), typeCode)
	if err != nil {
		if errors.Is(err, ErrRoomTypeNotFound) {
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Room type not found", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to list rooms", nil, err.Error())
		return
	}

	resp := make([]*RoomResponse, 0, len(list))
	for i := range list {
		resp = append(resp, toRoomResponse(&list[i]))
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Rooms retrieved", resp, nil)
}

// CheckAvailability handles GET /rooms/availability
func (c *Controller) CheckAvailability(ctx *gin.Context) {
	var query AvailabilityQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	arrival, err := time.Parse(dateLayout, query.Arrival)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "arrival must use the YYYY-MM-DD format", nil, nil)
		return
	}
	// Without a session ID this is a read-only check: no hold is placed,
	// so anonymous availability browsing cannot tie up inventory.
	room, err := c.service.FindAvailableRoom(ctx.Request.Context(), query.SessionID, query.Type, arrival, query.StayLength)
	if err != nil {
		switch {
		case errors.Is(err, ErrRoomTypeNotFound):
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Room type not found", nil, nil)
		case errors.Is(err, ErrInvalidStay):
			response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid arrival date or stay length", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to check availability", nil, err.Error())
		}
		return
	}

	resp := AvailabilityResponse{
		Available: room != nil,
		Room:      toRoomResponse(room),
		Arrival:   formatDate(arrival),
		Departure: formatDate(arrival.AddDate(0, 0, query.StayLength)),
	}
	if room != nil && room.RoomType != nil {
		resp.Cost = room.RoomType.CalculateCost(arrival, query.StayLength)
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Availability checked", resp, nil)
}

// GetBooking handles GET /bookings/:confirmation
func (c *Controller) GetBooking(ctx *gin.Context) {
	confirmation, err := strconv.ParseInt(ctx.Param("confirmation"), 10, 64)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid confirmation number", nil, nil)
		return
	}

	record, err := c.service.FindBookingByConfirmation(ctx.Request.Context(), confirmation)
	if err != nil {
		if errors.Is(err, ErrBookingNotFound) {
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Booking not found", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get booking", nil, err.Error())
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Booking retrieved", toBookingRecordResponse(record), nil)
}
