package rooms

import (
	"time"

	"github.com/google/uuid"
)

// RoomType describes a bookable category of room: its occupancy ceiling and
// nightly rate drive the suitability predicate and the cost function the
// booking workflow consults.
type RoomType struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Code         string    `json:"code" gorm:"uniqueIndex;not null;size:16"`
	Description  string    `json:"description" gorm:"not null;size:255"`
	MaxOccupancy int       `json:"max_occupancy" gorm:"not null;check:max_occupancy > 0"`
	NightlyRate  float64   `json:"nightly_rate" gorm:"not null;check:nightly_rate >= 0"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName sets the table name for RoomType
func (RoomType) TableName() string {
	return "room_types"
}

// IsSuitable reports whether the type can host the given occupant count.
func (rt *RoomType) IsSuitable(occupants int) bool {
	return occupants > 0 && occupants <= rt.MaxOccupancy
}

// CalculateCost quotes the stay at the type's nightly rate.
func (rt *RoomType) CalculateCost(arrival time.Time, stayLength int) float64 {
	if stayLength <= 0 {
		return 0
	}
	return float64(stayLength) * rt.NightlyRate
}

// Room is one physical room in the inventory.
type Room struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Number     string    `json:"number" gorm:"uniqueIndex;not null;size:16"`
	RoomTypeID uuid.UUID `json:"room_type_id" gorm:"type:uuid;index;not null"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`

	RoomType *RoomType `json:"room_type,omitempty" gorm:"foreignKey:RoomTypeID"`
}

// TableName sets the table name for Room
func (Room) TableName() string {
	return "rooms"
}

// BookingRecord is a committed booking. The guest name and card display
// fields are captured at commit time so the confirmation can be reproduced
// without joins.
type BookingRecord struct {
	ID                 uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	ConfirmationNumber int64     `json:"confirmation_number" gorm:"uniqueIndex;not null"`
	RoomID             uuid.UUID `json:"room_id" gorm:"type:uuid;index;not null"`
	GuestID            uuid.UUID `json:"guest_id" gorm:"type:uuid;index;not null"`
	GuestName          string    `json:"guest_name" gorm:"not null;size:255"`
	Arrival            time.Time `json:"arrival" gorm:"not null"`
	Departure          time.Time `json:"departure" gorm:"not null;index"`
	StayLength         int       `json:"stay_length" gorm:"not null"`
	Occupants          int       `json:"occupants" gorm:"not null"`
	Cost               float64   `json:"cost" gorm:"not null"`
	CardVendor         string    `json:"card_vendor" gorm:"size:32"`
	CardLastFour       string    `json:"card_last_four" gorm:"size:4"`
	CreatedAt          time.Time `json:"created_at" gorm:"autoCreateTime"`

	Room *Room `json:"room,omitempty" gorm:"foreignKey:RoomID"`
}

// TableName sets the table name for BookingRecord
func (BookingRecord) TableName() string {
	return "booking_records"
}
