package booking

import "time"

// Session is the mutable state of one in-progress booking transaction.
// Every field beyond the stage is written at most once per transaction;
// starting over means creating a new Workflow.
type Session struct {
	stage      Stage
	phone      string
	guest      *Guest
	roomType   RoomTypeSpec
	occupants  int
	arrival    time.Time
	stayLength int
	room       *Room
	cost       float64
}

// Stage returns the session's current workflow stage
func (s *Session) Stage() Stage {
	return s.stage
}

// Phone returns the phone number the transaction was opened with
func (s *Session) Phone() string {
	return s.phone
}

// Guest returns the identified or registered guest, nil before identification
func (s *Session) Guest() *Guest {
	return s.guest
}

// RoomType returns the selected room type, nil before a suitable selection
func (s *Session) RoomType() RoomTypeSpec {
	return s.roomType
}

// Occupants returns the occupant count recorded with the room selection
func (s *Session) Occupants() int {
	return s.occupants
}

// Arrival returns the arrival date recorded once availability was confirmed
func (s *Session) Arrival() time.Time {
	return s.arrival
}

// StayLength returns the stay length in nights
func (s *Session) StayLength() int {
	return s.stayLength
}

// Room returns the assigned room, nil before availability was confirmed
func (s *Session) Room() *Room {
	return s.room
}

// QuotedCost returns the cost quoted for the assigned room
func (s *Session) QuotedCost() float64 {
	return s.cost
}
