package staff

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleReceptionist Role = "RECEPTIONIST"
	RoleManager      Role = "MANAGER"
)

func IsValidRole(role string) bool {
	switch role {
	case string(RoleReceptionist), string(RoleManager):
		return true
	default:
		return false
	}
}

// Staff is a front-desk or management account. Receptionists drive booking
// sessions and the guest registry; managers additionally maintain the room
// catalog.
type Staff struct {
	ID        uuid.UUID `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	FirstName string    `json:"first_name" gorm:"not null"`
	LastName  string    `json:"last_name" gorm:"not null"`
	Password  string    `json:"-" gorm:"not null"` // hide in json
	Role      Role      `json:"role" gorm:"not null;default:'RECEPTIONIST'"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName sets the table name for Staff
func (Staff) TableName() string {
	return "staff"
}
