package booking

import "time"

// ConfirmedBooking carries the details displayed once a booking is committed.
// The card security code is deliberately absent; it is never echoed back.
type ConfirmedBooking struct {
	SessionID          string    `json:"session_id,omitempty"`
	RoomDescription    string    `json:"room_description"`
	RoomNumber         string    `json:"room_number"`
	Arrival            time.Time `json:"arrival"`
	GuestName          string    `json:"guest_name"`
	CardVendor         string    `json:"card_vendor"`
	CardNumber         string    `json:"card_number"`
	ConfirmationNumber int64     `json:"confirmation_number"`
}

// Notifier is the presentation boundary. The workflow pushes stage changes
// and human-readable results through it before returning from each event.
type Notifier interface {
	StageChanged(stage Stage)
	GuestDetails(name, address, phone string)
	BookingDetails(description string, arrival time.Time, stayLength int, cost float64)
	BookingConfirmed(confirmed ConfirmedBooking)
	Message(text string)
}
