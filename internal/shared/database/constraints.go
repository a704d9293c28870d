package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds indexes the availability query depends on beyond
// what AutoMigrate derives from struct tags.
func MigrateConstraints(db *gorm.DB) error {
	// Composite index for the room overlap check: bookings for a room are
	// filtered by arrival/departure window on every availability search.
	err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_booking_records_room_window
		ON booking_records (room_id, arrival, departure);
	`).Error
	if err != nil {
		return err
	}

	// Guests are looked up by phone on every new booking session.
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_guests_phone
		ON guests (phone);
	`).Error
	if err != nil {
		return err
	}

	return nil
}
