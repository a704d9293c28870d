package guests

import "time"

// GuestResponse represents guest data in API responses
type GuestResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

// GuestListResponse represents a paginated guest list
type GuestListResponse struct {
	Guests []GuestResponse `json:"guests"`
	Total  int64           `json:"total"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}

func toGuestResponse(guest *Guest) GuestResponse {
	return GuestResponse{
		ID:        guest.ID.String(),
		Name:      guest.Name,
		Address:   guest.Address,
		Phone:     guest.Phone,
		CreatedAt: guest.CreatedAt,
	}
}
