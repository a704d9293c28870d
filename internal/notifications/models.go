package notifications

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type NotificationStatus string

const (
	NotificationStatusPending NotificationStatus = "PENDING"
	NotificationStatusQueued  NotificationStatus = "QUEUED"
	NotificationStatusSending NotificationStatus = "SENDING"
	NotificationStatusSent    NotificationStatus = "SENT"
	NotificationStatusFailed  NotificationStatus = "FAILED"
)

// BookingConfirmedMessage is the event published when a booking session
// commits a reservation. The front desk is notified off this message; the
// card security code is never part of it.
type BookingConfirmedMessage struct {
	ID        uuid.UUID `json:"id"`
	SessionID string    `json:"session_id"`

	ConfirmationNumber int64     `json:"confirmation_number"`
	GuestName          string    `json:"guest_name"`
	RoomNumber         string    `json:"room_number"`
	RoomDescription    string    `json:"room_description"`
	Arrival            time.Time `json:"arrival"`
	CardVendor         string    `json:"card_vendor"`
	CardNumber         string    `json:"card_number"`

	// Status tracking
	Status     NotificationStatus `json:"status"`
	RetryCount int                `json:"retry_count"`
	LastError  *string            `json:"last_error,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
	SentAt     *time.Time         `json:"sent_at,omitempty"`
}

// NewBookingConfirmedMessage wraps the confirmation details in a message
// envelope ready for publishing.
func NewBookingConfirmedMessage(sessionID string, confirmationNumber int64, guestName, roomNumber, roomDescription string, arrival time.Time, cardVendor, cardNumber string) *BookingConfirmedMessage {
	now := time.Now()
	return &BookingConfirmedMessage{
		ID:                 uuid.New(),
		SessionID:          sessionID,
		ConfirmationNumber: confirmationNumber,
		GuestName:          guestName,
		RoomNumber:         roomNumber,
		RoomDescription:    roomDescription,
		Arrival:            arrival,
		CardVendor:         cardVendor,
		CardNumber:         cardNumber,
		Status:             NotificationStatusPending,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// GetPartitionKey routes all events for one session to the same partition.
func (m *BookingConfirmedMessage) GetPartitionKey() string {
	return m.SessionID
}

func (m *BookingConfirmedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func (m *BookingConfirmedMessage) MarkSent() {
	now := time.Now()
	m.Status = NotificationStatusSent
	m.SentAt = &now
	m.UpdatedAt = now
}

func (m *BookingConfirmedMessage) MarkFailed(err error) {
	now := time.Now()
	m.Status = NotificationStatusFailed
	m.UpdatedAt = now

	errorStr := err.Error()
	m.LastError = &errorStr
}
