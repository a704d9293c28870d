// Interactive walkthrough of the booking workflow against an in-memory
// directory. Useful for demoing the stage machine without a database:
//
//	go run ./cmd/console
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"staybook/internal/booking"
	"staybook/internal/payments"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

func main() {
	fmt.Println("Staybook booking console")
	fmt.Println("Known guest phone: +1-555-0101 (Alice Smith)")
	fmt.Println("Type 'cancel' at any prompt to abandon the booking")
	fmt.Println()

	directory := newMemoryDirectory()
	authorizer := payments.NewCreditAuthorizer(nil)
	notifier := &consoleNotifier{}
	workflow := booking.NewWorkflow(directory, authorizer, notifier)

	scanner := bufio.NewScanner(os.Stdin)
	ctx := context.Background()

	for !workflow.Stage().IsTerminal() {
		var err error
		switch workflow.Stage() {
		case booking.StageAwaitingPhone:
			phone := prompt(scanner, "Guest phone number")
			if isCancel(phone) {
				err = workflow.Cancel(ctx)
				break
			}
			err = workflow.PhoneEntered(ctx, phone)

		case booking.StageAwaitingGuestDetails:
			name := prompt(scanner, "Guest name")
			if isCancel(name) {
				err = workflow.Cancel(ctx)
				break
			}
			address := prompt(scanner, "Guest address")
			err = workflow.GuestDetailsEntered(ctx, name, address)

		case booking.StageAwaitingRoomSelection:
			fmt.Println("Room types:")
			for _, rt := range directory.catalog {
				fmt.Printf("  %-4s %s (max %d, %.2f/night)\n", rt.code, rt.description, rt.maxOccupancy, rt.nightlyRate)
			}
			input := prompt(scanner, "Room type code")
			if isCancel(input) {
				err = workflow.Cancel(ctx)
				break
			}
			occupants := promptInt(scanner, "Occupants")
			roomType := directory.roomTypeByCode(strings.ToUpper(input))
			if roomType == nil {
				fmt.Println("Unknown room type code")
				continue
			}
			err = workflow.RoomTypeAndOccupantsEntered(roomType, occupants)

		case booking.StageAwaitingDates:
			arrivalStr := prompt(scanner, "Arrival date (YYYY-MM-DD)")
			if isCancel(arrivalStr) {
				err = workflow.Cancel(ctx)
				break
			}
			arrival, parseErr := time.Parse(dateLayout, arrivalStr)
			if parseErr != nil {
				fmt.Println("Invalid date, expected YYYY-MM-DD")
				continue
			}
			stayLength := promptInt(scanner, "Stay length (nights)")
			err = workflow.DatesEntered(ctx, arrival, stayLength)

		case booking.StageAwaitingPayment:
			input := prompt(scanner, "Card type (VISA/MASTERCARD/AMEX)")
			if isCancel(input) {
				err = workflow.Cancel(ctx)
				break
			}
			cardType := payments.CardType(strings.ToUpper(input))
			if !cardType.IsValid() {
				fmt.Println("Unknown card type")
				continue
			}
			number := prompt(scanner, "Card number")
			code := prompt(scanner, "Security code")
			err = workflow.PaymentDetailsEntered(ctx, cardType, number, code)
		}

		if err != nil {
			fmt.Printf("error: %v\n", err)
			return
		}
	}
}

func isCancel(input string) bool {
	return strings.EqualFold(input, "cancel")
}

func prompt(scanner *bufio.Scanner, label string) string {
	fmt.Printf("%s: ", label)
	if !scanner.Scan() {
		os.Exit(0)
	}
	return strings.TrimSpace(scanner.Text())
}

func promptInt(scanner *bufio.Scanner, label string) int {
	for {
		value, err := strconv.Atoi(prompt(scanner, label))
		if err == nil && value > 0 {
			return value
		}
		fmt.Println("Please enter a positive number")
	}
}

// consoleNotifier prints workflow notices to stdout.
type consoleNotifier struct{}

func (n *consoleNotifier) StageChanged(stage booking.Stage) {
	fmt.Printf("-> %s\n", stage)
}

func (n *consoleNotifier) GuestDetails(name, address, phone string) {
	fmt.Printf("Guest on file: %s, %s (%s)\n", name, address, phone)
}

func (n *consoleNotifier) BookingDetails(description string, arrival time.Time, stayLength int, cost float64) {
	fmt.Printf("Quote: %s from %s for %d nights, total %.2f\n",
		description, arrival.Format(dateLayout), stayLength, cost)
}

func (n *consoleNotifier) BookingConfirmed(confirmed booking.ConfirmedBooking) {
	fmt.Printf("Confirmed: room %s (%s) for %s, arriving %s\n",
		confirmed.RoomNumber, confirmed.RoomDescription,
		confirmed.GuestName, confirmed.Arrival.Format(dateLayout))
	fmt.Printf("Paid with %s %s\n", confirmed.CardVendor, confirmed.CardNumber)
	fmt.Printf("Confirmation number: %d\n", confirmed.ConfirmationNumber)
}

func (n *consoleNotifier) Message(text string) {
	fmt.Println(text)
}

// memoryRoomType is an in-memory RoomTypeSpec backing the console catalog.
type memoryRoomType struct {
	code         string
	description  string
	maxOccupancy int
	nightlyRate  float64
}

func (rt *memoryRoomType) Code() string        { return rt.code }
func (rt *memoryRoomType) Description() string { return rt.description }

func (rt *memoryRoomType) IsSuitable(occupants int) bool {
	return occupants > 0 && occupants <= rt.maxOccupancy
}

func (rt *memoryRoomType) CalculateCost(arrival time.Time, stayLength int) float64 {
	if stayLength <= 0 {
		return 0
	}
	return float64(stayLength) * rt.nightlyRate
}

type memoryRoom struct {
	room     booking.Room
	typeCode string
}

type stay struct {
	roomID    string
	arrival   time.Time
	departure time.Time
}

// memoryDirectory is an in-memory Directory with a small fixed inventory.
type memoryDirectory struct {
	catalog  []*memoryRoomType
	rooms    []memoryRoom
	guests   map[string]*booking.Guest
	stays    []stay
	bookings map[int64]*booking.BookingRecord
}

func newMemoryDirectory() *memoryDirectory {
	catalog := []*memoryRoomType{
		{code: "SGL", description: "Single room with one twin bed", maxOccupancy: 1, nightlyRate: 95},
		{code: "DBL", description: "Double room with queen bed", maxOccupancy: 2, nightlyRate: 150},
		{code: "FAM", description: "Family room with two queen beds", maxOccupancy: 4, nightlyRate: 210},
	}

	return &memoryDirectory{
		catalog: catalog,
		rooms: []memoryRoom{
			{room: booking.Room{ID: uuid.NewString(), Number: "101", Description: catalog[0].description}, typeCode: "SGL"},
			{room: booking.Room{ID: uuid.NewString(), Number: "102", Description: catalog[1].description}, typeCode: "DBL"},
			{room: booking.Room{ID: uuid.NewString(), Number: "103", Description: catalog[1].description}, typeCode: "DBL"},
			{room: booking.Room{ID: uuid.NewString(), Number: "201", Description: catalog[2].description}, typeCode: "FAM"},
		},
		guests: map[string]*booking.Guest{
			"+1-555-0101": {
				ID:      uuid.NewString(),
				Name:    "Alice Smith",
				Address: "17 Rose Lane, Springfield",
				Phone:   "+1-555-0101",
			},
		},
		bookings: make(map[int64]*booking.BookingRecord),
	}
}

func (d *memoryDirectory) roomTypeByCode(code string) booking.RoomTypeSpec {
	for _, rt := range d.catalog {
		if rt.code == code {
			return rt
		}
	}
	return nil
}

func (d *memoryDirectory) IsRegistered(ctx context.Context, phone string) (bool, error) {
	_, ok := d.guests[phone]
	return ok, nil
}

func (d *memoryDirectory) FindGuestByPhone(ctx context.Context, phone string) (*booking.Guest, error) {
	guest, ok := d.guests[phone]
	if !ok {
		return nil, fmt.Errorf("guest with phone %s not found", phone)
	}
	return guest, nil
}

func (d *memoryDirectory) RegisterGuest(ctx context.Context, name, address, phone string) (*booking.Guest, error) {
	guest := &booking.Guest{
		ID:      uuid.NewString(),
		Name:    name,
		Address: address,
		Phone:   phone,
	}
	d.guests[phone] = guest
	return guest, nil
}

func (d *memoryDirectory) FindAvailableRoom(ctx context.Context, roomType booking.RoomTypeSpec, arrival time.Time, stayLength int) (*booking.Room, error) {
	departure := arrival.AddDate(0, 0, stayLength)

	for _, candidate := range d.rooms {
		if candidate.typeCode != roomType.Code() {
			continue
		}
		if d.isFree(candidate.room.ID, arrival, departure) {
			room := candidate.room
			return &room, nil
		}
	}
	return nil, nil
}

// ReleaseRoom is a no-op: the console directory places no holds, rooms are
// only taken once booked.
func (d *memoryDirectory) ReleaseRoom(ctx context.Context, room *booking.Room) error {
	return nil
}

func (d *memoryDirectory) isFree(roomID string, arrival, departure time.Time) bool {
	for _, s := range d.stays {
		if s.roomID != roomID {
			continue
		}
		if arrival.Before(s.departure) && departure.After(s.arrival) {
			return false
		}
	}
	return true
}

func (d *memoryDirectory) Book(ctx context.Context, room *booking.Room, guest *booking.Guest, arrival time.Time, stayLength, occupants int, card payments.CreditCard) (int64, error) {
	departure := arrival.AddDate(0, 0, stayLength)
	if !d.isFree(room.ID, arrival, departure) {
		return 0, fmt.Errorf("room %s is no longer available", room.Number)
	}

	confirmation := confirmationNumber(arrival, room.Number)
	d.stays = append(d.stays, stay{roomID: room.ID, arrival: arrival, departure: departure})
	d.bookings[confirmation] = &booking.BookingRecord{
		ConfirmationNumber: confirmation,
		Room:               *room,
		GuestName:          guest.Name,
		Arrival:            arrival,
		StayLength:         stayLength,
	}
	return confirmation, nil
}

func (d *memoryDirectory) FindBooking(ctx context.Context, confirmation int64) (*booking.BookingRecord, error) {
	record, ok := d.bookings[confirmation]
	if !ok {
		return nil, fmt.Errorf("booking %d not found", confirmation)
	}
	return record, nil
}

// confirmationNumber derives the arrival-date-plus-room scheme used by the
// persistent inventory, so console confirmations look the same.
func confirmationNumber(arrival time.Time, roomNumber string) int64 {
	base, _ := strconv.ParseInt(arrival.Format("20060102"), 10, 64)

	var digits int64
	for _, r := range roomNumber {
		if r >= '0' && r <= '9' {
			digits = digits*10 + int64(r-'0')
		}
	}
	return base*100000 + digits%100000
}
