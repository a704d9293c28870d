package booking

import (
	"context"
	"time"

	"staybook/internal/payments"
)

// Collaborator interfaces are declared here, on the consuming side, so the
// workflow can be driven against the gorm-backed directory in production and
// against in-memory fakes in tests.

// Guest is the directory's record of a registered guest. The workflow only
// reads it; it never mutates or copies the directory's internals.
type Guest struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// Room identifies a physical room offered by the inventory.
type Room struct {
	ID          string `json:"id"`
	Number      string `json:"number"`
	Description string `json:"description"`
}

// BookingRecord is the committed booking the directory produces on success.
// The workflow reads it back to report the confirmation; it never constructs
// or stores one itself.
type BookingRecord struct {
	ConfirmationNumber int64     `json:"confirmation_number"`
	Room               Room      `json:"room"`
	GuestName          string    `json:"guest_name"`
	Arrival            time.Time `json:"arrival"`
	StayLength         int       `json:"stay_length"`
}

// RoomTypeSpec is the read-only view of a selectable room type.
type RoomTypeSpec interface {
	// Code identifies the room type in the inventory.
	Code() string
	Description() string
	IsSuitable(occupants int) bool
	CalculateCost(arrival time.Time, stayLength int) float64
}

// Directory manages guests, room inventory, and booking commitment.
// FindAvailableRoom returns a nil room when nothing is free for the window
// and holds the returned room for the session; ReleaseRoom gives that hold
// back when the transaction ends without booking. Every other failure is
// returned as an error and treated as fatal by the workflow.
type Directory interface {
	IsRegistered(ctx context.Context, phone string) (bool, error)
	FindGuestByPhone(ctx context.Context, phone string) (*Guest, error)
	RegisterGuest(ctx context.Context, name, address, phone string) (*Guest, error)
	FindAvailableRoom(ctx context.Context, roomType RoomTypeSpec, arrival time.Time, stayLength int) (*Room, error)
	ReleaseRoom(ctx context.Context, room *Room) error
	Book(ctx context.Context, room *Room, guest *Guest, arrival time.Time, stayLength, occupants int, card payments.CreditCard) (int64, error)
	FindBooking(ctx context.Context, confirmationNumber int64) (*BookingRecord, error)
}

// Authorizer approves or declines a payment for the quoted amount.
type Authorizer interface {
	Authorize(ctx context.Context, card payments.CreditCard, amount float64) (bool, error)
}
