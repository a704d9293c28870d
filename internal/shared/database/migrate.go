package database

import (
	"staybook/internal/guests"
	"staybook/internal/rooms"
	"staybook/internal/staff"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&staff.Staff{},
		&guests.Guest{},
		&rooms.RoomType{},
		&rooms.Room{},
		&rooms.BookingRecord{},
	)
	if err != nil {
		return err
	}
	return MigrateConstraints(db)
}
