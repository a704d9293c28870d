package rooms

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	// Room-type catalog
	CreateRoomType(ctx context.Context, roomType *RoomType) error
	GetRoomTypeByCode(ctx context.Context, code string) (*RoomType, error)
	GetAllRoomTypes(ctx context.Context) ([]RoomType, error)
	UpdateRoomType(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*RoomType, error)
	DeleteRoomType(ctx context.Context, id uuid.UUID) error

	// Inventory
	CreateRoom(ctx context.Context, room *Room) error
	GetRoomByID(ctx context.Context, id uuid.UUID) (*Room, error)
	GetRoomsByType(ctx context.Context, roomTypeID uuid.UUID) ([]Room, error)
	FindFreeRooms(ctx context.Context, roomTypeID uuid.UUID, arrival, departure time.Time) ([]Room, error)

	// Committed bookings
	CreateBookingRecord(ctx context.Context, record *BookingRecord) error
	GetBookingByConfirmation(ctx context.Context, confirmationNumber int64) (*BookingRecord, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateRoomType(ctx context.Context, roomType *RoomType) error {
	return r.db.WithContext(ctx).Create(roomType).Error
}

func (r *repository) GetRoomTypeByCode(ctx context.Context, code string) (*RoomType, error) {
	var roomType RoomType
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&roomType).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomTypeNotFound
		}
		return nil, err
	}
	return &roomType, nil
}

func (r *repository) GetAllRoomTypes(ctx context.Context) ([]RoomType, error) {
	var list []RoomType
	if err := r.db.WithContext(ctx).Order("code").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *repository) UpdateRoomType(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*RoomType, error) {
	var roomType RoomType
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&roomType).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomTypeNotFound
		}
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&roomType).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &roomType, nil
}

func (r *repository) DeleteRoomType(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var roomCount int64
		if err := tx.Model(&Room{}).Where("room_type_id = ?", id).Count(&roomCount).Error; err != nil {
			return err
		}
		if roomCount > 0 {
			return ErrRoomTypeInUse
		}
		return tx.Where("id = ?", id).Delete(&RoomType{}).Error
	})
}

func (r *repository) CreateRoom(ctx context.Context, room *Room) error {
	return r.db.WithContext(ctx).Create(room).Error
}

func (r *repository) GetRoomByID(ctx context.Context, id uuid.UUID) (*Room, error) {
	var room Room
	err := r.db.WithContext(ctx).Preload("RoomType").Where("id = ?", id).First(&room).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return &room, nil
}

func (r *repository) GetRoomsByType(ctx context.Context, roomTypeID uuid.UUID) ([]Room, error) {
	var list []Room
	err := r.db.WithContext(ctx).Where("room_type_id = ?", roomTypeID).Order("number").Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// FindFreeRooms returns the rooms of the type with no booking overlapping
// [arrival, departure). Two stays overlap when one starts before the other
// ends.
func (r *repository) FindFreeRooms(ctx context.Context, roomTypeID uuid.UUID, arrival, departure time.Time) ([]Room, error) {
	var list []Room
	err := r.db.WithContext(ctx).
		Preload("RoomType").
		Where("room_type_id = ?", roomTypeID).
		Where("id NOT IN (?)",
			r.db.Model(&BookingRecord{}).
				Select("room_id").
				Where("arrival < ? AND departure > ?", departure, arrival),
		).
		Order("number").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *repository) CreateBookingRecord(ctx context.Context, record *BookingRecord) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// re-check the window inside the transaction so two commits for the
		// same room cannot both succeed
		var overlapping int64
		err := tx.Model(&BookingRecord{}).
			Where("room_id = ?", record.RoomID).
			Where("arrival < ? AND departure > ?", record.Departure, record.Arrival).
			Count(&overlapping).Error
		if err != nil {
			return err
		}
		if overlapping > 0 {
			return ErrRoomNoLongerAvailable
		}
		return tx.Create(record).Error
	})
}

func (r *repository) GetBookingByConfirmation(ctx context.Context, confirmationNumber int64) (*BookingRecord, error) {
	var record BookingRecord
	err := r.db.WithContext(ctx).
		Preload("Room").
		Preload("Room.RoomType").
		Where("confirmation_number = ?", confirmationNumber).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &record, nil
}
