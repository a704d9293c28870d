package guests

import (
	"time"

	"github.com/google/uuid"
)

// Guest is a registered hotel guest, keyed for lookup by phone number.
type Guest struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name      string    `json:"name" gorm:"not null;size:255"`
	Address   string    `json:"address" gorm:"not null;size:500"`
	Phone     string    `json:"phone" gorm:"uniqueIndex;not null;size:32"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName sets the table name for Guest
func (Guest) TableName() string {
	return "guests"
}
