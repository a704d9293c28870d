package guests

import (
	"errors"
	"net/http"

	"staybook/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// Register handles POST /guests
func (c *Controller) Register(ctx *gin.Context) {
	var req RegisterGuestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	guest, err := c.service.Register(ctx.Request.Context(), req.Name, req.Address, req.Phone)
	if err != nil {
		switch {
		case errors.Is(err, ErrPhoneAlreadyRegistered):
			response.RespondJSON(ctx, "error", http.StatusConflict, "Phone number already registered", nil, nil)
		case errors.Is(err, ErrInvalidPhone):
			response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid phone number", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to register guest", nil, err.Error())
		}
		return
	}

	resp := toGuestResponse(guest)
	response.RespondJSON(ctx, "success", http.StatusCreated, "Guest registered", resp, nil)
}

// GetByPhone handles GET /guests/lookup?phone=...
func (c *Controller) GetByPhone(ctx *gin.Context) {
	phone := ctx.Query("phone")
	if phone == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "phone query parameter is required", nil, nil)
		return
	}

	guest, err := c.service.FindByPhone(ctx.Request.Context(), phone)
	if err != nil {
		switch {
		case errors.Is(err, ErrGuestNotFound):
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Guest not found", nil, nil)
		case errors.Is(err, ErrInvalidPhone):
			response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid phone number", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to look up guest", nil, err.Error())
		}
		return
	}

	resp := toGuestResponse(guest)
	response.RespondJSON(ctx, "success", http.StatusOK, "Guest found", resp, nil)
}

// GetByID handles GET /guests/:id
func (c *Controller) GetByID(ctx *gin.Context) {
	guest, err := c.service.GetByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, ErrGuestNotFound) {
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Guest not found", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get guest", nil, err.Error())
		return
	}

	resp := toGuestResponse(guest)
	response.RespondJSON(ctx, "success", http.StatusOK, "Guest found", resp, nil)
}

// List handles GET /guests
func (c *Controller) List(ctx *gin.Context) {
	var query GuestListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}
	if query.Limit == 0 {
		query.Limit = 20
	}

	list, total, err := c.service.List(ctx.Request.Context(), query.Limit, query.Offset)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to list guests", nil, err.Error())
		return
	}

	resp := GuestListResponse{
		Guests: make([]GuestResponse, 0, len(list)),
		Total:  total,
		Limit:  query.Limit,
		Offset: query.Offset,
	}
	for i := range list {
		resp.Guests = append(resp.Guests, toGuestResponse(&list[i]))
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Guests retrieved", resp, nil)
}
