package booking

import (
	"context"
	"fmt"
	"time"

	"staybook/internal/guests"
	"staybook/internal/payments"
	"staybook/internal/rooms"

	"github.com/google/uuid"
)

// hotelDirectory satisfies Directory on top of the guest registry and the
// room inventory. One instance serves one session: the session ID scopes the
// room holds placed during availability checks.
type hotelDirectory struct {
	guests    guests.Service
	rooms     rooms.Service
	sessionID string
}

// NewHotelDirectory builds the production Directory for a single session.
func NewHotelDirectory(guestService guests.Service, roomService rooms.Service, sessionID string) Directory {
	return &hotelDirectory{
		guests:    guestService,
		rooms:     roomService,
		sessionID: sessionID,
	}
}

func (d *hotelDirectory) IsRegistered(ctx context.Context, phone string) (bool, error) {
	return d.guests.IsRegistered(ctx, phone)
}

func (d *hotelDirectory) FindGuestByPhone(ctx context.Context, phone string) (*Guest, error) {
	guest, err := d.guests.FindByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	return toDirectoryGuest(guest), nil
}

func (d *hotelDirectory) RegisterGuest(ctx context.Context, name, address, phone string) (*Guest, error) {
	guest, err := d.guests.Register(ctx, name, address, phone)
	if err != nil {
		return nil, err
	}
	return toDirectoryGuest(guest), nil
}

func (d *hotelDirectory) FindAvailableRoom(ctx context.Context, roomType RoomTypeSpec, arrival time.Time, stayLength int) (*Room, error) {
	room, err := d.rooms.FindAvailableRoom(ctx, d.sessionID, roomType.Code(), arrival, stayLength)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, nil
	}
	return toDirectoryRoom(room, roomType.Description()), nil
}

func (d *hotelDirectory) ReleaseRoom(ctx context.Context, room *Room) error {
	roomID, err := uuid.Parse(room.ID)
	if err != nil {
		return fmt.Errorf("invalid room id %q: %w", room.ID, err)
	}
	return d.rooms.ReleaseRoom(ctx, d.sessionID, roomID)
}

func (d *hotelDirectory) Book(ctx context.Context, room *Room, guest *Guest, arrival time.Time, stayLength, occupants int, card payments.CreditCard) (int64, error) {
	roomID, err := uuid.Parse(room.ID)
	if err != nil {
		return 0, fmt.Errorf("invalid room id %q: %w", room.ID, err)
	}
	guestID, err := uuid.Parse(guest.ID)
	if err != nil {
		return 0, fmt.Errorf("invalid guest id %q: %w", guest.ID, err)
	}

	return d.rooms.Book(ctx, rooms.BookRequest{
		SessionID:    d.sessionID,
		RoomID:       roomID,
		GuestID:      guestID,
		GuestName:    guest.Name,
		Arrival:      arrival,
		StayLength:   stayLength,
		Occupants:    occupants,
		CardVendor:   card.Vendor(),
		CardLastFour: card.LastFour(),
	})
}

func (d *hotelDirectory) FindBooking(ctx context.Context, confirmationNumber int64) (*BookingRecord, error) {
	record, err := d.rooms.FindBookingByConfirmation(ctx, confirmationNumber)
	if err != nil {
		return nil, err
	}

	var room Room
	if record.Room != nil {
		description := ""
		if record.Room.RoomType != nil {
			description = record.Room.RoomType.Description
		}
		room = *toDirectoryRoom(record.Room, description)
	}
	return &BookingRecord{
		ConfirmationNumber: record.ConfirmationNumber,
		Room:               room,
		GuestName:          record.GuestName,
		Arrival:            record.Arrival,
		StayLength:         record.StayLength,
	}, nil
}

func toDirectoryGuest(guest *guests.Guest) *Guest {
	return &Guest{
		ID:      guest.ID.String(),
		Name:    guest.Name,
		Address: guest.Address,
		Phone:   guest.Phone,
	}
}

func toDirectoryRoom(room *rooms.Room, description string) *Room {
	return &Room{
		ID:          room.ID.String(),
		Number:      room.Number,
		Description: description,
	}
}

// catalogRoomType adapts a catalog room type to the workflow's read-only
// view.
type catalogRoomType struct {
	rt rooms.RoomType
}

// RoomTypeFromCatalog wraps a catalog room type for use in room selection.
func RoomTypeFromCatalog(rt *rooms.RoomType) RoomTypeSpec {
	return catalogRoomType{rt: *rt}
}

func (c catalogRoomType) Code() string        { return c.rt.Code }
func (c catalogRoomType) Description() string { return c.rt.Description }

func (c catalogRoomType) IsSuitable(occupants int) bool {
	return c.rt.IsSuitable(occupants)
}

func (c catalogRoomType) CalculateCost(arrival time.Time, stayLength int) float64 {
	return c.rt.CalculateCost(arrival, stayLength)
}
