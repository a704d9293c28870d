package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"staybook/internal/payments"
)

type fakeRoomType struct {
	code         string
	description  string
	maxOccupants int
	nightlyRate  float64
}

func (f fakeRoomType) Code() string        { return f.code }
func (f fakeRoomType) Description() string { return f.description }
func (f fakeRoomType) IsSuitable(occupants int) bool {
	return occupants > 0 && occupants <= f.maxOccupants
}
func (f fakeRoomType) CalculateCost(arrival time.Time, stayLength int) float64 {
	return float64(stayLength) * f.nightlyRate
}

type fakeDirectory struct {
	registered map[string]*Guest
	registerID string

	availableRoom *Room
	findRoomErr   error

	releasedRooms []string
	releaseErr    error

	bookConfirmation int64
	bookErr          error
	bookedRoom       *Room
	bookedGuest      *Guest
	bookedArrival    time.Time
	bookedStay       int
	bookedOccupants  int
	bookedCard       payments.CreditCard

	record *BookingRecord
}

func (f *fakeDirectory) IsRegistered(ctx context.Context, phone string) (bool, error) {
	_, ok := f.registered[phone]
	return ok, nil
}

func (f *fakeDirectory) FindGuestByPhone(ctx context.Context, phone string) (*Guest, error) {
	guest, ok := f.registered[phone]
	if !ok {
		return nil, errors.New("guest not found")
	}
	return guest, nil
}

func (f *fakeDirectory) RegisterGuest(ctx context.Context, name, address, phone string) (*Guest, error) {
	guest := &Guest{ID: f.registerID, Name: name, Address: address, Phone: phone}
	if f.registered == nil {
		f.registered = map[string]*Guest{}
	}
	f.registered[phone] = guest
	return guest, nil
}

func (f *fakeDirectory) FindAvailableRoom(ctx context.Context, roomType RoomTypeSpec, arrival time.Time, stayLength int) (*Room, error) {
	if f.findRoomErr != nil {
		return nil, f.findRoomErr
	}
	return f.availableRoom, nil
}

func (f *fakeDirectory) ReleaseRoom(ctx context.Context, room *Room) error {
	if f.releaseErr != nil {
		return f.releaseErr
	}
	f.releasedRooms = append(f.releasedRooms, room.ID)
	return nil
}

func (f *fakeDirectory) Book(ctx context.Context, room *Room, guest *Guest, arrival time.Time, stayLength, occupants int, card payments.CreditCard) (int64, error) {
	if f.bookErr != nil {
		return 0, f.bookErr
	}
	f.bookedRoom = room
	f.bookedGuest = guest
	f.bookedArrival = arrival
	f.bookedStay = stayLength
	f.bookedOccupants = occupants
	f.bookedCard = card
	f.record = &BookingRecord{
		ConfirmationNumber: f.bookConfirmation,
		Room:               *room,
		GuestName:          guest.Name,
		Arrival:            arrival,
		StayLength:         stayLength,
	}
	return f.bookConfirmation, nil
}

func (f *fakeDirectory) FindBooking(ctx context.Context, confirmationNumber int64) (*BookingRecord, error) {
	if f.record == nil || f.record.ConfirmationNumber != confirmationNumber {
		return nil, errors.New("booking not found")
	}
	return f.record, nil
}

type fakeAuthorizer struct {
	approve  bool
	err      error
	lastCard payments.CreditCard
	amount   float64
	calls    int
}

func (f *fakeAuthorizer) Authorize(ctx context.Context, card payments.CreditCard, amount float64) (bool, error) {
	f.calls++
	f.lastCard = card
	f.amount = amount
	return f.approve, f.err
}

// captureNotifier captures everything the workflow pushes to the
// presentation boundary.
type captureNotifier struct {
	stages    []Stage
	messages  []string
	guests    []string
	details   []string
	confirmed []ConfirmedBooking
}

func (r *captureNotifier) StageChanged(stage Stage) {
	r.stages = append(r.stages, stage)
}

func (r *captureNotifier) GuestDetails(name, address, phone string) {
	r.guests = append(r.guests, fmt.Sprintf("%s|%s|%s", name, address, phone))
}

func (r *captureNotifier) BookingDetails(description string, arrival time.Time, stayLength int, cost float64) {
	r.details = append(r.details, fmt.Sprintf("%s|%s|%d|%.2f", description, arrival.Format("2006-01-02"), stayLength, cost))
}

func (r *captureNotifier) BookingConfirmed(confirmed ConfirmedBooking) {
	r.confirmed = append(r.confirmed, confirmed)
}

func (r *captureNotifier) Message(text string) {
	r.messages = append(r.messages, text)
}

func (r *captureNotifier) lastMessage() string {
	if len(r.messages) == 0 {
		return ""
	}
	return r.messages[len(r.messages)-1]
}

var (
	testArrival  = time.Date(2018, time.November, 11, 0, 0, 0, 0, time.UTC)
	testRoomType = fakeRoomType{code: "DBL", description: "Double room", maxOccupants: 2, nightlyRate: 150}
	testGuest    = &Guest{ID: "guest-1", Name: "Alice Smith", Address: "1 High St", Phone: "0412345678"}
	testRoom     = &Room{ID: "room-101", Number: "101", Description: "Double room"}
)

func newTestWorkflow(dir *fakeDirectory, auth *fakeAuthorizer) (*Workflow, *captureNotifier) {
	notifier := &captureNotifier{}
	return NewWorkflow(dir, auth, notifier), notifier
}

// advance drives a workflow to the requested stage along the known-guest
// happy path.
func advance(t *testing.T, w *Workflow, target Stage) {
	t.Helper()
	ctx := context.Background()
	steps := []struct {
		stage Stage
		run   func() error
	}{
		{StageAwaitingRoomSelection, func() error { return w.PhoneEntered(ctx, testGuest.Phone) }},
		{StageAwaitingDates, func() error { return w.RoomTypeAndOccupantsEntered(testRoomType, 2) }},
		{StageAwaitingPayment, func() error { return w.DatesEntered(ctx, testArrival, 3) }},
		{StageCompleted, func() error {
			return w.PaymentDetailsEntered(ctx, payments.CardTypeVisa, "4111111111111111", "123")
		}},
	}
	for _, step := range steps {
		if w.Stage() == target {
			return
		}
		if err := step.run(); err != nil {
			t.Fatalf("advancing to %s: %v", target, err)
		}
	}
	if w.Stage() != target {
		t.Fatalf("could not advance to %s, stuck at %s", target, w.Stage())
	}
}

func happyPathDirectory() *fakeDirectory {
	return &fakeDirectory{
		registered:       map[string]*Guest{testGuest.Phone: testGuest},
		availableRoom:    testRoom,
		bookConfirmation: 1112018101,
	}
}

func TestPhoneEnteredKnownGuest(t *testing.T) {
	dir := happyPathDirectory()
	w, notifier := newTestWorkflow(dir, &fakeAuthorizer{approve: true})

	if err := w.PhoneEntered(context.Background(), testGuest.Phone); err != nil {
		t.Fatalf("phone entered: %v", err)
	}
	if w.Stage() != StageAwaitingRoomSelection {
		t.Fatalf("expected %s, got %s", StageAwaitingRoomSelection, w.Stage())
	}
	if w.Session().Guest() != testGuest {
		t.Fatalf("expected looked-up guest stored, got %+v", w.Session().Guest())
	}
	if len(notifier.guests) != 1 || !strings.Contains(notifier.guests[0], "Alice Smith") {
		t.Fatalf("expected guest details notification, got %v", notifier.guests)
	}
	if len(notifier.stages) != 1 || notifier.stages[0] != StageAwaitingRoomSelection {
		t.Fatalf("expected stage-changed notification, got %v", notifier.stages)
	}
}

func TestPhoneEnteredUnknownGuest(t *testing.T) {
	dir := &fakeDirectory{registered: map[string]*Guest{}}
	w, notifier := newTestWorkflow(dir, &fakeAuthorizer{})

	if err := w.PhoneEntered(context.Background(), "0499999999"); err != nil {
		t.Fatalf("phone entered: %v", err)
	}
	if w.Stage() != StageAwaitingGuestDetails {
		t.Fatalf("expected %s, got %s", StageAwaitingGuestDetails, w.Stage())
	}
	if w.Session().Guest() != nil {
		t.Fatal("expected no guest before registration")
	}
	if w.Session().Phone() != "0499999999" {
		t.Fatalf("expected phone recorded, got %q", w.Session().Phone())
	}
	if len(notifier.guests) != 0 {
		t.Fatalf("expected no guest details yet, got %v", notifier.guests)
	}
}

func TestGuestDetailsEnteredRegistersUnderStoredPhone(t *testing.T) {
	dir := &fakeDirectory{registered: map[string]*Guest{}, registerID: "guest-2"}
	w, notifier := newTestWorkflow(dir, &fakeAuthorizer{})
	ctx := context.Background()

	if err := w.PhoneEntered(ctx, "0499999999"); err != nil {
		t.Fatalf("phone entered: %v", err)
	}
	if err := w.GuestDetailsEntered(ctx, "Bob Jones", "2 Low St"); err != nil {
		t.Fatalf("guest details entered: %v", err)
	}
	if w.Stage() != StageAwaitingRoomSelection {
		t.Fatalf("expected %s, got %s", StageAwaitingRoomSelection, w.Stage())
	}
	guest := w.Session().Guest()
	if guest == nil || guest.Phone != "0499999999" || guest.Name != "Bob Jones" {
		t.Fatalf("expected registered guest under stored phone, got %+v", guest)
	}
	if len(notifier.guests) != 1 {
		t.Fatalf("expected guest details notification, got %v", notifier.guests)
	}
}

func TestRoomSelectionUnsuitableStays(t *testing.T) {
	dir := happyPathDirectory()
	w, notifier := newTestWorkflow(dir, &fakeAuthorizer{})
	advance(t, w, StageAwaitingRoomSelection)

	if err := w.RoomTypeAndOccupantsEntered(testRoomType, 5); err != nil {
		t.Fatalf("room selection: %v", err)
	}
	if w.Stage() != StageAwaitingRoomSelection {
		t.Fatalf("expected stage unchanged, got %s", w.Stage())
	}
	if w.Session().RoomType() != nil {
		t.Fatal("unsuitable selection must not be recorded")
	}
	if !strings.Contains(notifier.lastMessage(), "select another room type") {
		t.Fatalf("expected unsuitable message, got %q", notifier.lastMessage())
	}

	// a corrected selection of the same kind succeeds
	if err := w.RoomTypeAndOccupantsEntered(testRoomType, 2); err != nil {
		t.Fatalf("corrected room selection: %v", err)
	}
	if w.Stage() != StageAwaitingDates {
		t.Fatalf("expected %s, got %s", StageAwaitingDates, w.Stage())
	}
	if w.Session().Occupants() != 2 {
		t.Fatalf("expected occupants recorded, got %d", w.Session().Occupants())
	}
}

func TestDatesEnteredNoAvailability(t *testing.T) {
	dir := happyPathDirectory()
	dir.availableRoom = nil
	w, notifier := newTestWorkflow(dir, &fakeAuthorizer{})
	advance(t, w, StageAwaitingDates)

	if err := w.DatesEntered(context.Background(), testArrival, 3); err != nil {
		t.Fatalf("dates entered: %v", err)
	}
	if w.Stage() != StageAwaitingDates {
		t.Fatalf("expected stage unchanged, got %s", w.Stage())
	}
	msg := notifier.lastMessage()
	if !strings.Contains(msg, "not available between 2018-11-11 and 2018-11-14") {
		t.Fatalf("expected departure date computed as arrival + stay length, got %q", msg)
	}
	if w.Session().Room() != nil {
		t.Fatal("no room may be assigned without availability")
	}
}

func TestDatesEnteredDepartureRollsOverMonth(t *testing.T) {
	dir := happyPathDirectory()
	dir.availableRoom = nil
	w, notifier := newTestWorkflow(dir, &fakeAuthorizer{})
	advance(t, w, StageAwaitingDates)

	arrival := time.Date(2018, time.December, 30, 0, 0, 0, 0, time.UTC)
	if err := w.DatesEntered(context.Background(), arrival, 4); err != nil {
		t.Fatalf("dates entered: %v", err)
	}
	if !strings.Contains(notifier.lastMessage(), "between 2018-12-30 and 2019-01-03") {
		t.Fatalf("expected calendar-correct rollover, got %q", notifier.lastMessage())
	}
}

func TestDatesEnteredAvailableQuotesCost(t *testing.T) {
	dir := happyPathDirectory()
	w, notifier := newTestWorkflow(dir, &fakeAuthorizer{})
	advance(t, w, StageAwaitingDates)

	if err := w.DatesEntered(context.Background(), testArrival, 3); err != nil {
		t.Fatalf("dates entered: %v", err)
	}
	if w.Stage() != StageAwaitingPayment {
		t.Fatalf("expected %s, got %s", StageAwaitingPayment, w.Stage())
	}
	if w.Session().Room() != testRoom {
		t.Fatalf("expected room assigned, got %+v", w.Session().Room())
	}
	if w.Session().QuotedCost() != 450 {
		t.Fatalf("expected cost 3 x 150 = 450, got %.2f", w.Session().QuotedCost())
	}
	if len(notifier.details) != 1 || !strings.Contains(notifier.details[0], "450.00") {
		t.Fatalf("expected booking details notification, got %v", notifier.details)
	}
}

func TestPaymentDeclinedRetainsSessionForRetry(t *testing.T) {
	dir := happyPathDirectory()
	auth := &fakeAuthorizer{approve: false}
	w, notifier := newTestWorkflow(dir, auth)
	advance(t, w, StageAwaitingPayment)
	ctx := context.Background()

	if err := w.PaymentDetailsEntered(ctx, payments.CardTypeVisa, "4111111111111111", "123"); err != nil {
		t.Fatalf("payment entered: %v", err)
	}
	if w.Stage() != StageAwaitingPayment {
		t.Fatalf("expected stage unchanged, got %s", w.Stage())
	}
	if !strings.Contains(notifier.lastMessage(), "could not be authorised") {
		t.Fatalf("expected decline message, got %q", notifier.lastMessage())
	}
	if w.Session().Room() != testRoom || w.Session().Guest() != testGuest {
		t.Fatal("declined payment must retain room and guest")
	}

	// second attempt with a working card succeeds without redoing earlier steps
	auth.approve = true
	if err := w.PaymentDetailsEntered(ctx, payments.CardTypeMasterCard, "5500000000000004", "321"); err != nil {
		t.Fatalf("retried payment: %v", err)
	}
	if w.Stage() != StageCompleted {
		t.Fatalf("expected %s, got %s", StageCompleted, w.Stage())
	}
	if auth.calls != 2 {
		t.Fatalf("expected two authorization attempts, got %d", auth.calls)
	}
}

func TestHappyPathConfirmation(t *testing.T) {
	dir := happyPathDirectory()
	auth := &fakeAuthorizer{approve: true}
	w, notifier := newTestWorkflow(dir, auth)
	ctx := context.Background()

	if err := w.PhoneEntered(ctx, testGuest.Phone); err != nil {
		t.Fatalf("phone: %v", err)
	}
	if err := w.RoomTypeAndOccupantsEntered(testRoomType, 2); err != nil {
		t.Fatalf("room selection: %v", err)
	}
	if err := w.DatesEntered(ctx, testArrival, 3); err != nil {
		t.Fatalf("dates: %v", err)
	}
	if err := w.PaymentDetailsEntered(ctx, payments.CardTypeVisa, "4111111111111111", "123"); err != nil {
		t.Fatalf("payment: %v", err)
	}

	if w.Stage() != StageCompleted {
		t.Fatalf("expected %s, got %s", StageCompleted, w.Stage())
	}
	if len(notifier.confirmed) != 1 {
		t.Fatalf("expected one confirmation, got %d", len(notifier.confirmed))
	}
	confirmed := notifier.confirmed[0]
	if confirmed.ConfirmationNumber != dir.bookConfirmation {
		t.Fatalf("expected confirmation %d, got %d", dir.bookConfirmation, confirmed.ConfirmationNumber)
	}
	if confirmed.RoomNumber != "101" || confirmed.GuestName != "Alice Smith" {
		t.Fatalf("unexpected confirmation payload: %+v", confirmed)
	}
	if confirmed.CardVendor != "Visa" {
		t.Fatalf("expected vendor Visa, got %q", confirmed.CardVendor)
	}
	if confirmed.CardNumber != "************1111" {
		t.Fatalf("expected masked card number, got %q", confirmed.CardNumber)
	}
	if auth.amount != 450 {
		t.Fatalf("expected quoted cost authorized, got %.2f", auth.amount)
	}
	if dir.bookedOccupants != 2 || dir.bookedStay != 3 {
		t.Fatalf("unexpected booking commit: occupants %d stay %d", dir.bookedOccupants, dir.bookedStay)
	}

	// completion acknowledgement is informational and leaves the stage alone
	if err := w.Completed(); err != nil {
		t.Fatalf("completed: %v", err)
	}
	if w.Stage() != StageCompleted {
		t.Fatalf("expected stage unchanged, got %s", w.Stage())
	}
	if !strings.Contains(notifier.lastMessage(), "Booking completed") {
		t.Fatalf("expected completion message, got %q", notifier.lastMessage())
	}
}

func TestCancelFromEveryNonTerminalStage(t *testing.T) {
	stages := []Stage{
		StageAwaitingPhone,
		StageAwaitingRoomSelection,
		StageAwaitingDates,
		StageAwaitingPayment,
	}
	for _, stage := range stages {
		t.Run(string(stage), func(t *testing.T) {
			w, notifier := newTestWorkflow(happyPathDirectory(), &fakeAuthorizer{approve: true})
			advance(t, w, stage)

			if err := w.Cancel(context.Background()); err != nil {
				t.Fatalf("cancel from %s: %v", stage, err)
			}
			if w.Stage() != StageCancelled {
				t.Fatalf("expected %s, got %s", StageCancelled, w.Stage())
			}
			if !strings.Contains(notifier.lastMessage(), "Booking cancelled") {
				t.Fatalf("expected cancellation message, got %q", notifier.lastMessage())
			}
		})
	}
}

func TestCancelFromGuestDetails(t *testing.T) {
	dir := &fakeDirectory{registered: map[string]*Guest{}}
	w, _ := newTestWorkflow(dir, &fakeAuthorizer{})
	if err := w.PhoneEntered(context.Background(), "0499999999"); err != nil {
		t.Fatalf("phone: %v", err)
	}
	if err := w.Cancel(context.Background()); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if w.Stage() != StageCancelled {
		t.Fatalf("expected %s, got %s", StageCancelled, w.Stage())
	}
}

func TestCancelReleasesHeldRoom(t *testing.T) {
	dir := happyPathDirectory()
	w, _ := newTestWorkflow(dir, &fakeAuthorizer{approve: true})
	advance(t, w, StageAwaitingPayment)

	if err := w.Cancel(context.Background()); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if len(dir.releasedRooms) != 1 || dir.releasedRooms[0] != testRoom.ID {
		t.Fatalf("expected held room %s released on cancel, got %v", testRoom.ID, dir.releasedRooms)
	}
	if w.Session().Room() != nil {
		t.Fatal("expected the room dropped from the session")
	}
}

func TestCancelBeforeDatesReleasesNothing(t *testing.T) {
	dir := happyPathDirectory()
	w, _ := newTestWorkflow(dir, &fakeAuthorizer{approve: true})
	advance(t, w, StageAwaitingRoomSelection)

	if err := w.Cancel(context.Background()); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if len(dir.releasedRooms) != 0 {
		t.Fatalf("no room was held, nothing to release, got %v", dir.releasedRooms)
	}
}

func TestCompletedBookingKeepsItsRoom(t *testing.T) {
	dir := happyPathDirectory()
	w, _ := newTestWorkflow(dir, &fakeAuthorizer{approve: true})
	advance(t, w, StageCompleted)

	if err := w.ReleaseRoomHold(context.Background()); err != nil {
		t.Fatalf("release: %v", err)
	}
	if len(dir.releasedRooms) != 0 {
		t.Fatalf("a committed booking's room must stay booked, got %v", dir.releasedRooms)
	}
}

func TestEventsOutOfSequenceAreProtocolViolations(t *testing.T) {
	ctx := context.Background()
	events := map[string]func(w *Workflow) error{
		"PhoneEntered": func(w *Workflow) error { return w.PhoneEntered(ctx, "0412345678") },
		"GuestDetailsEntered": func(w *Workflow) error {
			return w.GuestDetailsEntered(ctx, "Alice Smith", "1 High St")
		},
		"RoomTypeAndOccupantsEntered": func(w *Workflow) error {
			return w.RoomTypeAndOccupantsEntered(testRoomType, 2)
		},
		"DatesEntered": func(w *Workflow) error { return w.DatesEntered(ctx, testArrival, 3) },
		"PaymentDetailsEntered": func(w *Workflow) error {
			return w.PaymentDetailsEntered(ctx, payments.CardTypeVisa, "4111111111111111", "123")
		},
		"Completed": func(w *Workflow) error { return w.Completed() },
	}
	required := map[string]Stage{
		"PhoneEntered":                StageAwaitingPhone,
		"GuestDetailsEntered":         StageAwaitingGuestDetails,
		"RoomTypeAndOccupantsEntered": StageAwaitingRoomSelection,
		"DatesEntered":                StageAwaitingDates,
		"PaymentDetailsEntered":       StageAwaitingPayment,
		"Completed":                   StageCompleted,
	}
	stages := []Stage{
		StageAwaitingPhone,
		StageAwaitingRoomSelection,
		StageAwaitingDates,
		StageAwaitingPayment,
		StageCompleted,
	}

	for _, stage := range stages {
		for name, fire := range events {
			if required[name] == stage {
				continue
			}
			t.Run(fmt.Sprintf("%s in %s", name, stage), func(t *testing.T) {
				w, _ := newTestWorkflow(happyPathDirectory(), &fakeAuthorizer{approve: true})
				advance(t, w, stage)

				err := fire(w)
				if err == nil {
					t.Fatalf("expected protocol violation for %s in %s", name, stage)
				}
				var pv *ProtocolViolationError
				if !errors.As(err, &pv) {
					t.Fatalf("expected *ProtocolViolationError, got %T: %v", err, err)
				}
				if pv.Event != name || pv.Stage != stage {
					t.Fatalf("violation should carry event and stage, got %+v", pv)
				}
				if w.Stage() != stage {
					t.Fatalf("stage must be unchanged after violation, got %s", w.Stage())
				}
			})
		}
	}
}

func TestEventsAfterCancelAreProtocolViolations(t *testing.T) {
	w, _ := newTestWorkflow(happyPathDirectory(), &fakeAuthorizer{approve: true})
	if err := w.Cancel(context.Background()); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	if err := w.PhoneEntered(context.Background(), testGuest.Phone); !IsProtocolViolation(err) {
		t.Fatalf("expected protocol violation after cancel, got %v", err)
	}
	if err := w.Cancel(context.Background()); !IsProtocolViolation(err) {
		t.Fatalf("expected cancel after cancel to be a protocol violation, got %v", err)
	}
	if w.Stage() != StageCancelled {
		t.Fatalf("expected stage to remain %s, got %s", StageCancelled, w.Stage())
	}
}

func TestCollaboratorErrorsPropagate(t *testing.T) {
	dir := happyPathDirectory()
	dir.findRoomErr = errors.New("inventory offline")
	w, _ := newTestWorkflow(dir, &fakeAuthorizer{})
	advance(t, w, StageAwaitingDates)

	err := w.DatesEntered(context.Background(), testArrival, 3)
	if err == nil || err.Error() != "inventory offline" {
		t.Fatalf("expected collaborator error to propagate, got %v", err)
	}
	if IsProtocolViolation(err) {
		t.Fatal("collaborator failure must not be classified as a protocol violation")
	}
	if w.Stage() != StageAwaitingDates {
		t.Fatalf("expected stage unchanged on collaborator failure, got %s", w.Stage())
	}
}
