package guests

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, guest *Guest) error
	GetByID(ctx context.Context, id uuid.UUID) (*Guest, error)
	GetByPhone(ctx context.Context, phone string) (*Guest, error)
	PhoneExists(ctx context.Context, phone string) (bool, error)
	GetAll(ctx context.Context, limit, offset int) ([]Guest, int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, guest *Guest) error {
	return r.db.WithContext(ctx).Create(guest).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Guest, error) {
	var guest Guest
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&guest).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGuestNotFound
		}
		return nil, err
	}
	return &guest, nil
}

func (r *repository) GetByPhone(ctx context.Context, phone string) (*Guest, error) {
	var guest Guest
	err := r.db.WithContext(ctx).Where("phone = ?", phone).First(&guest).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGuestNotFound
		}
		return nil, err
	}
	return &guest, nil
}

func (r *repository) PhoneExists(ctx context.Context, phone string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Guest{}).Where("phone = ?", phone).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) GetAll(ctx context.Context, limit, offset int) ([]Guest, int64, error) {
	var list []Guest
	var total int64

	db := r.db.WithContext(ctx).Model(&Guest{})
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}
