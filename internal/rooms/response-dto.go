package rooms

import "time"

type RoomTypeResponse struct {
	ID           string  `json:"id"`
	Code         string  `json:"code"`
	Description  string  `json:"description"`
	MaxOccupancy int     `json:"max_occupancy"`
	NightlyRate  float64 `json:"nightly_rate"`
}

type RoomResponse struct {
	ID       string            `json:"id"`
	Number   string            `json:"number"`
	RoomType *RoomTypeResponse `json:"room_type,omitempty"`
}

type AvailabilityResponse struct {
	Available bool          `json:"available"`
	Room      *RoomResponse `json:"room,omitempty"`
	Arrival   string        `json:"arrival"`
	Departure string        `json:"departure"`
	Cost      float64       `json:"cost,omitempty"`
}

type BookingRecordResponse struct {
	ConfirmationNumber int64         `json:"confirmation_number"`
	GuestName          string        `json:"guest_name"`
	Room               *RoomResponse `json:"room,omitempty"`
	Arrival            string        `json:"arrival"`
	Departure          string        `json:"departure"`
	StayLength         int           `json:"stay_length"`
	Occupants          int           `json:"occupants"`
	Cost               float64       `json:"cost"`
	CardVendor         string        `json:"card_vendor,omitempty"`
	CardLastFour       string        `json:"card_last_four,omitempty"`
}

const dateLayout = "2006-01-02"

func toRoomTypeResponse(rt *RoomType) *RoomTypeResponse {
	if rt == nil {
		return nil
	}
	return &RoomTypeResponse{
		ID:           rt.ID.String(),
		Code:         rt.Code,
		Description:  rt.Description,
		MaxOccupancy: rt.MaxOccupancy,
		NightlyRate:  rt.NightlyRate,
	}
}

func toRoomResponse(room *Room) *RoomResponse {
	if room == nil {
		return nil
	}
	return &RoomResponse{
		ID:       room.ID.String(),
		Number:   room.Number,
		RoomType: toRoomTypeResponse(room.RoomType),
	}
}

func toBookingRecordResponse(record *BookingRecord) *BookingRecordResponse {
	return &BookingRecordResponse{
		ConfirmationNumber: record.ConfirmationNumber,
		GuestName:          record.GuestName,
		Room:               toRoomResponse(record.Room),
		Arrival:            record.Arrival.Format(dateLayout),
		Departure:          record.Departure.Format(dateLayout),
		StayLength:         record.StayLength,
		Occupants:          record.Occupants,
		Cost:               record.Cost,
		CardVendor:         record.CardVendor,
		CardLastFour:       record.CardLastFour,
	}
}

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}
