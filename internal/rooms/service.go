package rooms

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"staybook/internal/shared/constants"
	"staybook/pkg/cache"

	"github.com/google/uuid"
)

var (
	ErrRoomTypeNotFound      = errors.New("room type not found")
	ErrRoomTypeExists        = errors.New("room type already exists")
	ErrRoomTypeInUse         = errors.New("room type has rooms assigned")
	ErrRoomNotFound          = errors.New("room not found")
	ErrBookingNotFound       = errors.New("booking not found")
	ErrRoomNoLongerAvailable = errors.New("room no longer available for the window")
	ErrInvalidStay           = errors.New("invalid arrival date or stay length")
)

// Holds abstracts the short-lived room reservations placed between the
// availability check and booking commitment.
type Holds interface {
	Hold(ctx context.Context, roomID, sessionID string) (bool, error)
	IsHeld(ctx context.Context, roomID, sessionID string) (bool, error)
	Release(ctx context.Context, roomID string) error
	ReleaseOwned(ctx context.Context, roomID, sessionID string) error
}

// BookRequest carries everything needed to commit a booking.
type BookRequest struct {
	SessionID    string
	RoomID       uuid.UUID
	GuestID      uuid.UUID
	GuestName    string
	Arrival      time.Time
	StayLength   int
	Occupants    int
	CardVendor   string
	CardLastFour string
}

// Service is the inventory half of the booking directory plus the staff
// catalog operations.
type Service interface {
	// Catalog management
	CreateRoomType(ctx context.Context, req CreateRoomTypeRequest) (*RoomType, error)
	GetRoomTypeByCode(ctx context.Context, code string) (*RoomType, error)
	ListRoomTypes(ctx context.Context) ([]RoomType, error)
	UpdateRoomType(ctx context.Context, code string, req UpdateRoomTypeRequest) (*RoomType, error)
	DeleteRoomType(ctx context.Context, code string) error
	AddRoom(ctx context.Context, req AddRoomRequest) (*Room, error)
	ListRoomsByType(ctx context.Context, code string) ([]Room, error)

	// Booking directory operations
	FindAvailableRoom(ctx context.Context, sessionID, typeCode string, arrival time.Time, stayLength int) (*Room, error)
	ReleaseRoom(ctx context.Context, sessionID string, roomID uuid.UUID) error
	Book(ctx context.Context, req BookRequest) (int64, error)
	FindBookingByConfirmation(ctx context.Context, confirmationNumber int64) (*BookingRecord, error)
}

type service struct {
	repo         Repository
	cacheService cache.Service
	holds        Holds
}

// NewService creates the rooms service. cacheService and holds are optional;
// a nil value disables the catalog cache or the hold step.
func NewService(repo Repository, cacheService cache.Service, holds Holds) Service {
	return &service{
		repo:         repo,
		cacheService: cacheService,
		holds:        holds,
	}
}

//  CATALOG MANAGEMENT

func (s *service) CreateRoomType(ctx context.Context, req CreateRoomTypeRequest) (*RoomType, error) {
	code := normalizeCode(req.Code)
	if _, err := s.repo.GetRoomTypeByCode(ctx, code); err == nil {
		return nil, ErrRoomTypeExists
	} else if !errors.Is(err, ErrRoomTypeNotFound) {
		return nil, err
	}

	roomType := &RoomType{
		Code:         code,
		Description:  strings.TrimSpace(req.Description),
		MaxOccupancy: req.MaxOccupancy,
		NightlyRate:  req.NightlyRate,
	}
	if err := s.repo.CreateRoomType(ctx, roomType); err != nil {
		return nil, err
	}
	s.invalidateCatalogCache(ctx, code)
	return roomType, nil
}

func (s *service) GetRoomTypeByCode(ctx context.Context, code string) (*RoomType, error) {
	code = normalizeCode(code)
	if s.cacheService != nil {
		var cached RoomType
		err := s.cacheService.GetOrSet(ctx, constants.BuildRoomTypeKey(code), constants.TTL_ROOM_TYPES,
			func() (interface{}, error) {
				return s.repo.GetRoomTypeByCode(ctx, code)
			}, &cached)
		if err == nil {
			return &cached, nil
		}
		if !errors.Is(err, ErrRoomTypeNotFound) {
			return nil, err
		}
		return nil, ErrRoomTypeNotFound
	}
	return s.repo.GetRoomTypeByCode(ctx, code)
}

func (s *service) ListRoomTypes(ctx context.Context) ([]RoomType, error) {
	if s.cacheService != nil {
		var cached []RoomType
		err := s.cacheService.GetOrSet(ctx, constants.CACHE_KEY_ROOM_TYPES_ALL, constants.TTL_ROOM_TYPES,
			func() (interface{}, error) {
				return s.repo.GetAllRoomTypes(ctx)
			}, &cached)
		if err == nil {
			return cached, nil
		}
		return nil, err
	}
	return s.repo.GetAllRoomTypes(ctx)
}

func (s *service) UpdateRoomType(ctx context.Context, code string, req UpdateRoomTypeRequest) (*RoomType, error) {
	code = normalizeCode(code)
	roomType, err := s.repo.GetRoomTypeByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Description != nil {
		updates["description"] = strings.TrimSpace(*req.Description)
	}
	if req.MaxOccupancy != nil {
		updates["max_occupancy"] = *req.MaxOccupancy
	}
	if req.NightlyRate != nil {
		updates["nightly_rate"] = *req.NightlyRate
	}
	if len(updates) == 0 {
		return roomType, nil
	}

	updated, err := s.repo.UpdateRoomType(ctx, roomType.ID, updates)
	if err != nil {
		return nil, err
	}
	s.invalidateCatalogCache(ctx, code)
	return updated, nil
}

func (s *service) DeleteRoomType(ctx context.Context, code string) error {
	code = normalizeCode(code)
	roomType, err := s.repo.GetRoomTypeByCode(ctx, code)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteRoomType(ctx, roomType.ID); err != nil {
		return err
	}
	s.invalidateCatalogCache(ctx, code)
	return nil
}

func (s *service) AddRoom(ctx context.Context, req AddRoomRequest) (*Room, error) {
	roomType, err := s.repo.GetRoomTypeByCode(ctx, normalizeCode(req.RoomTypeCode))
	if err != nil {
		return nil, err
	}
	room := &Room{
		Number:     strings.TrimSpace(req.Number),
		RoomTypeID: roomType.ID,
	}
	if err := s.repo.CreateRoom(ctx, room); err != nil {
		return nil, err
	}
	room.RoomType = roomType
	if s.cacheService != nil {
		_ = s.cacheService.Delete(ctx, constants.BuildRoomsByTypeKey(roomType.Code))
	}
	return room, nil
}

func (s *service) ListRoomsByType(ctx context.Context, code string) ([]Room, error) {
	code = normalizeCode(code)
	roomType, err := s.repo.GetRoomTypeByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if s.cacheService != nil {
		var cached []Room
		err := s.cacheService.GetOrSet(ctx, constants.BuildRoomsByTypeKey(code), constants.TTL_ROOM_LISTS,
			func() (interface{}, error) {
				return s.repo.GetRoomsByType(ctx, roomType.ID)
			}, &cached)
		if err == nil {
			return cached, nil
		}
		return nil, err
	}
	return s.repo.GetRoomsByType(ctx, roomType.ID)
}

//  BOOKING DIRECTORY

// FindAvailableRoom returns the first free, unheld room of the type for
// [arrival, arrival+stayLength) and places a hold on it for the session.
// An empty session ID performs a read-only check: the first room not held
// by anyone is returned and no hold is placed. A room the session already
// holds counts as available to that session. A nil room with a nil error
// means nothing is available.
func (s *service) FindAvailableRoom(ctx context.Context, sessionID, typeCode string, arrival time.Time, stayLength int) (*Room, error) {
	if arrival.IsZero() || stayLength <= 0 {
		return nil, ErrInvalidStay
	}
	roomType, err := s.repo.GetRoomTypeByCode(ctx, normalizeCode(typeCode))
	if err != nil {
		return nil, err
	}

	departure := arrival.AddDate(0, 0, stayLength)
	free, err := s.repo.FindFreeRooms(ctx, roomType.ID, arrival, departure)
	if err != nil {
		return nil, err
	}

	for i := range free {
		room := &free[i]
		if s.holds == nil {
			return room, nil
		}
		if sessionID == "" {
			held, err := s.holds.IsHeld(ctx, room.ID.String(), "")
			if err != nil {
				return nil, err
			}
			if !held {
				return room, nil
			}
			continue
		}
		ok, err := s.holds.Hold(ctx, room.ID.String(), sessionID)
		if err != nil {
			return nil, err
		}
		if ok {
			return room, nil
		}
	}
	return nil, nil
}

// ReleaseRoom drops the session's hold on the room, if it still owns one.
// Used when a session is cancelled or expires before booking.
func (s *service) ReleaseRoom(ctx context.Context, sessionID string, roomID uuid.UUID) error {
	if s.holds == nil || sessionID == "" {
		return nil
	}
	return s.holds.ReleaseOwned(ctx, roomID.String(), sessionID)
}

// Book commits the booking, derives the confirmation number, and releases
// the session's hold on the room.
func (s *service) Book(ctx context.Context, req BookRequest) (int64, error) {
	if req.Arrival.IsZero() || req.StayLength <= 0 {
		return 0, ErrInvalidStay
	}
	room, err := s.repo.GetRoomByID(ctx, req.RoomID)
	if err != nil {
		return 0, err
	}

	record := &BookingRecord{
		ConfirmationNumber: confirmationNumber(req.Arrival, room.Number),
		RoomID:             room.ID,
		GuestID:            req.GuestID,
		GuestName:          req.GuestName,
		Arrival:            req.Arrival,
		Departure:          req.Arrival.AddDate(0, 0, req.StayLength),
		StayLength:         req.StayLength,
		Occupants:          req.Occupants,
		Cost:               room.RoomType.CalculateCost(req.Arrival, req.StayLength),
		CardVendor:         req.CardVendor,
		CardLastFour:       req.CardLastFour,
	}
	if err := s.repo.CreateBookingRecord(ctx, record); err != nil {
		return 0, err
	}

	if s.holds != nil {
		if err := s.holds.Release(ctx, room.ID.String()); err != nil {
			return 0, err
		}
	}
	return record.ConfirmationNumber, nil
}

func (s *service) FindBookingByConfirmation(ctx context.Context, confirmationNumber int64) (*BookingRecord, error) {
	return s.repo.GetBookingByConfirmation(ctx, confirmationNumber)
}

func (s *service) invalidateCatalogCache(ctx context.Context, code string) {
	if s.cacheService == nil {
		return
	}
	_ = s.cacheService.Delete(ctx, constants.CACHE_KEY_ROOM_TYPES_ALL)
	_ = s.cacheService.Delete(ctx, constants.BuildRoomTypeKey(code))
	_ = s.cacheService.Delete(ctx, constants.BuildRoomsByTypeKey(code))
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// confirmationNumber derives a stable confirmation from the arrival date and
// room number: yyyymmdd followed by the room's digits.
func confirmationNumber(arrival time.Time, roomNumber string) int64 {
	base, _ := strconv.ParseInt(arrival.Format("20060102"), 10, 64)
	var roomDigits int64
	for _, r := range roomNumber {
		if r >= '0' && r <= '9' {
			roomDigits = roomDigits*10 + int64(r-'0')
		}
	}
	return base*100000 + roomDigits%100000
}
