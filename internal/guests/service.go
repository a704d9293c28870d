package guests

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrGuestNotFound          = errors.New("guest not found")
	ErrPhoneAlreadyRegistered = errors.New("phone number already registered")
	ErrInvalidPhone           = errors.New("invalid phone number")
)

// Service is the guest half of the booking directory: phone lookup and
// registration for the workflow, list/get for the front desk.
type Service interface {
	IsRegistered(ctx context.Context, phone string) (bool, error)
	FindByPhone(ctx context.Context, phone string) (*Guest, error)
	Register(ctx context.Context, name, address, phone string) (*Guest, error)
	GetByID(ctx context.Context, id string) (*Guest, error)
	List(ctx context.Context, limit, offset int) ([]Guest, int64, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) IsRegistered(ctx context.Context, phone string) (bool, error) {
	normalized, err := normalizePhone(phone)
	if err != nil {
		return false, err
	}
	return s.repo.PhoneExists(ctx, normalized)
}

func (s *service) FindByPhone(ctx context.Context, phone string) (*Guest, error) {
	normalized, err := normalizePhone(phone)
	if err != nil {
		return nil, err
	}
	return s.repo.GetByPhone(ctx, normalized)
}

func (s *service) Register(ctx context.Context, name, address, phone string) (*Guest, error) {
	normalized, err := normalizePhone(phone)
	if err != nil {
		return nil, err
	}
	exists, err := s.repo.PhoneExists(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrPhoneAlreadyRegistered
	}

	guest := &Guest{
		Name:    strings.TrimSpace(name),
		Address: strings.TrimSpace(address),
		Phone:   normalized,
	}
	if err := s.repo.Create(ctx, guest); err != nil {
		return nil, err
	}
	return guest, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Guest, error) {
	guestID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrGuestNotFound
	}
	return s.repo.GetByID(ctx, guestID)
}

func (s *service) List(ctx context.Context, limit, offset int) ([]Guest, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.GetAll(ctx, limit, offset)
}

// normalizePhone strips separators and checks the remainder is a plausible
// dialable number.
func normalizePhone(phone string) (string, error) {
	var b strings.Builder
	for i, r := range strings.TrimSpace(phone) {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '(' || r == ')':
			// separator, drop
		default:
			return "", ErrInvalidPhone
		}
	}
	normalized := b.String()
	digits := strings.TrimPrefix(normalized, "+")
	if len(digits) < 6 || len(digits) > 15 {
		return "", ErrInvalidPhone
	}
	return normalized, nil
}
