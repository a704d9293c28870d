package rooms

type CreateRoomTypeRequest struct {
	Code         string  `json:"code" binding:"required,min=1,max=16"`
	Description  string  `json:"description" binding:"required,min=1,max=255"`
	MaxOccupancy int     `json:"max_occupancy" binding:"required,min=1"`
	NightlyRate  float64 `json:"nightly_rate" binding:"required,gt=0"`
}

type UpdateRoomTypeRequest struct {
	Description  *string  `json:"description,omitempty" binding:"omitempty,min=1,max=255"`
	MaxOccupancy *int     `json:"max_occupancy,omitempty" binding:"omitempty,min=1"`
	NightlyRate  *float64 `json:"nightly_rate,omitempty" binding:"omitempty,gt=0"`
}

type AddRoomRequest struct {
	Number       string `json:"number" binding:"required,min=1,max=16"`
	RoomTypeCode string `json:"room_type_code" binding:"required"`
}

// AvailabilityQuery carries the availability check parameters. The arrival
// date uses the 2006-01-02 layout.
type AvailabilityQuery struct {
	Type       string `form:"type" binding:"required"`
	Arrival    string `form:"arrival" binding:"required"`
	StayLength int    `form:"stay_length" binding:"required,min=1"`
	SessionID  string `form:"session_id"`
}
