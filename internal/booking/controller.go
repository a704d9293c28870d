package booking

import (
	"errors"
	"net/http"
	"time"

	"staybook/internal/guests"
	"staybook/internal/payments"
	"staybook/internal/rooms"
	"staybook/internal/shared/utils/response"
	"staybook/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Controller exposes the booking workflow over HTTP. Each session is one
// transaction; each endpoint submits one event to it and returns the notices
// the event produced.
type Controller struct {
	manager *Manager
	rooms   rooms.Service
}

func NewController(manager *Manager, roomService rooms.Service) *Controller {
	return &Controller{manager: manager, rooms: roomService}
}

// CreateSession handles POST /booking-sessions
func (c *Controller) CreateSession(ctx *gin.Context) {
	session := c.manager.Create()
	logger.GetDefault().LogSessionStarted(ctx.Request.Context(), session.ID)
	resp := SessionResponse{SessionID: session.ID, Stage: session.Stage()}
	response.RespondJSON(ctx, "success", http.StatusCreated, "Booking session started", resp, nil)
}

// GetSession handles GET /booking-sessions/:id
func (c *Controller) GetSession(ctx *gin.Context) {
	session, err := c.manager.Get(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Booking session not found", nil, nil)
		return
	}
	resp := SessionResponse{SessionID: session.ID, Stage: session.Stage()}
	response.RespondJSON(ctx, "success", http.StatusOK, "Booking session retrieved", resp, nil)
}

// Phone handles POST /booking-sessions/:id/phone
func (c *Controller) Phone(ctx *gin.Context) {
	var req PhoneEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	c.dispatch(ctx, func(w *Workflow) error {
		return w.PhoneEntered(ctx.Request.Context(), req.Phone)
	})
}

// GuestDetails handles POST /booking-sessions/:id/guest-details
func (c *Controller) GuestDetails(ctx *gin.Context) {
	var req GuestDetailsEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	c.dispatch(ctx, func(w *Workflow) error {
		return w.GuestDetailsEntered(ctx.Request.Context(), req.Name, req.Address)
	})
}

// RoomSelection handles POST /booking-sessions/:id/room-selection
func (c *Controller) RoomSelection(ctx *gin.Context) {
	var req RoomSelectionEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	roomType, err := c.rooms.GetRoomTypeByCode(ctx.Request.Context(), req.RoomType)
	if err != nil {
		if errors.Is(err, rooms.ErrRoomTypeNotFound) {
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Room type not found", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to resolve room type", nil, err.Error())
		return
	}

	c.dispatch(ctx, func(w *Workflow) error {
		return w.RoomTypeAndOccupantsEntered(RoomTypeFromCatalog(roomType), req.Occupants)
	})
}

// Dates handles POST /booking-sessions/:id/dates
func (c *Controller) Dates(ctx *gin.Context) {
	var req DatesEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	arrival, err := time.Parse(dateLayout, req.Arrival)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "arrival must use the YYYY-MM-DD format", nil, nil)
		return
	}

	c.dispatch(ctx, func(w *Workflow) error {
		return w.DatesEntered(ctx.Request.Context(), arrival, req.StayLength)
	})
}

// Payment handles POST /booking-sessions/:id/payment
func (c *Controller) Payment(ctx *gin.Context) {
	var req PaymentEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	cardType := payments.CardType(req.CardType)
	if !cardType.IsValid() {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Unknown card type", nil, nil)
		return
	}

	c.dispatch(ctx, func(w *Workflow) error {
		return w.PaymentDetailsEntered(ctx.Request.Context(), cardType, req.CardNumber, req.SecurityCode)
	})
}

// Cancel handles POST /booking-sessions/:id/cancel
func (c *Controller) Cancel(ctx *gin.Context) {
	c.dispatch(ctx, func(w *Workflow) error {
		return w.Cancel(ctx.Request.Context())
	})
}

// dispatch submits one event to the session and maps the outcome onto the
// transport. Protocol violations are conflicts: the session exists but the
// event is illegal in its current stage.
func (c *Controller) dispatch(ctx *gin.Context, event func(w *Workflow) error) {
	session, err := c.manager.Get(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Booking session not found", nil, nil)
		return
	}

	stageBefore := session.Stage()
	notices, err := session.Do(event)
	if err != nil {
		var violation *ProtocolViolationError
		switch {
		case errors.As(err, &violation):
			response.RespondJSON(ctx, "error", http.StatusConflict, violation.Error(), nil, nil)
		case errors.Is(err, guests.ErrInvalidPhone):
			response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid phone number", nil, nil)
		case errors.Is(err, guests.ErrPhoneAlreadyRegistered):
			response.RespondJSON(ctx, "error", http.StatusConflict, "Phone number already registered", nil, nil)
		case errors.Is(err, rooms.ErrRoomNoLongerAvailable):
			response.RespondJSON(ctx, "error", http.StatusConflict, "Room no longer available", nil, nil)
		default:
			logger.GetDefault().WithSessionID(session.ID).WithError(err).
				Error("booking event failed")
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to process booking event", nil, err.Error())
		}
		return
	}

	stage := session.Stage()
	if stage == StageCancelled && stageBefore != StageCancelled {
		logger.GetDefault().LogSessionCancelled(ctx.Request.Context(), session.ID, stageBefore.String())
	}

	resp := EventResponse{SessionID: session.ID, Stage: stage, Notices: notices}
	response.RespondJSON(ctx, "success", http.StatusOK, "Event accepted", resp, nil)
}
