package guests

// RegisterGuestRequest represents a front-desk guest registration
type RegisterGuestRequest struct {
	Name    string `json:"name" binding:"required,min=2,max=255"`
	Address string `json:"address" binding:"required,min=3,max=500"`
	Phone   string `json:"phone" binding:"required,min=6,max=32"`
}

// GuestListQuery represents pagination for the guest list
type GuestListQuery struct {
	Limit  int `form:"limit" binding:"omitempty,min=1,max=100"`
	Offset int `form:"offset" binding:"omitempty,min=0"`
}
