package booking

type PhoneEventRequest struct {
	Phone string `json:"phone" binding:"required,min=5,max=20"`
}

type GuestDetailsEventRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=255"`
	Address string `json:"address" binding:"required,min=1,max=255"`
}

type RoomSelectionEventRequest struct {
	RoomType  string `json:"room_type" binding:"required"`
	Occupants int    `json:"occupants" binding:"required,min=1"`
}

// DatesEventRequest carries the requested stay. Arrival uses the 2006-01-02
// layout.
type DatesEventRequest struct {
	Arrival    string `json:"arrival" binding:"required"`
	StayLength int    `json:"stay_length" binding:"required,min=1"`
}

type PaymentEventRequest struct {
	CardType     string `json:"card_type" binding:"required"`
	CardNumber   string `json:"card_number" binding:"required,carddigits,min=12,max=19"`
	SecurityCode string `json:"security_code" binding:"required,carddigits,min=3,max=4"`
}
