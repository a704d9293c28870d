package booking

import (
	"context"
	"fmt"
	"time"

	"staybook/internal/payments"
)

const dateLayout = "2006-01-02"

// Workflow drives a single booking transaction through its legal step order.
// It validates each incoming event against the session's current stage,
// delegates guest, inventory, and payment decisions to its collaborators,
// and reports every outcome through the Notifier before returning.
//
// Business rejections (unsuitable room type, no availability, declined card)
// leave the stage unchanged, surface as a Notifier message, and return nil so
// the caller can resubmit a corrected event. A *ProtocolViolationError return
// means the event arrived in the wrong stage and the session is unusable.
// Any other error comes from a collaborator and propagates unwrapped.
//
// A Workflow serves exactly one transaction at a time and performs no
// locking; hosting several simultaneous transactions means one Workflow per
// session.
type Workflow struct {
	directory  Directory
	authorizer Authorizer
	notifier   Notifier
	session    Session
}

// NewWorkflow creates a workflow for one booking transaction, starting at
// StageAwaitingPhone. All collaborators are required.
func NewWorkflow(directory Directory, authorizer Authorizer, notifier Notifier) *Workflow {
	return &Workflow{
		directory:  directory,
		authorizer: authorizer,
		notifier:   notifier,
		session:    Session{stage: StageAwaitingPhone},
	}
}

// Session returns a read-only view of the transaction state.
func (w *Workflow) Session() *Session {
	return &w.session
}

// Stage returns the session's current stage.
func (w *Workflow) Stage() Stage {
	return w.session.stage
}

func (w *Workflow) setStage(stage Stage) {
	w.session.stage = stage
	w.notifier.StageChanged(stage)
}

func (w *Workflow) guard(event string, required Stage) error {
	if w.session.stage != required {
		return &ProtocolViolationError{Event: event, Stage: w.session.stage}
	}
	return nil
}

// PhoneEntered identifies the guest by phone number. A known phone loads the
// guest and moves to room selection; an unknown phone records the number and
// moves to guest registration.
func (w *Workflow) PhoneEntered(ctx context.Context, phone string) error {
	if err := w.guard("PhoneEntered", StageAwaitingPhone); err != nil {
		return err
	}
	w.session.phone = phone

	registered, err := w.directory.IsRegistered(ctx, phone)
	if err != nil {
		return err
	}
	if !registered {
		w.setStage(StageAwaitingGuestDetails)
		return nil
	}

	guest, err := w.directory.FindGuestByPhone(ctx, phone)
	if err != nil {
		return err
	}
	w.session.guest = guest
	w.notifier.GuestDetails(guest.Name, guest.Address, guest.Phone)
	w.setStage(StageAwaitingRoomSelection)
	return nil
}

// GuestDetailsEntered registers a new guest under the phone number recorded
// earlier and moves to room selection.
func (w *Workflow) GuestDetailsEntered(ctx context.Context, name, address string) error {
	if err := w.guard("GuestDetailsEntered", StageAwaitingGuestDetails); err != nil {
		return err
	}

	guest, err := w.directory.RegisterGuest(ctx, name, address, w.session.phone)
	if err != nil {
		return err
	}
	w.session.guest = guest
	w.notifier.GuestDetails(guest.Name, guest.Address, guest.Phone)
	w.setStage(StageAwaitingRoomSelection)
	return nil
}

// RoomTypeAndOccupantsEntered validates the selected room type against the
// occupant count. An unsuitable pair keeps the session in room selection so
// another type can be chosen; the selection is only recorded once suitable.
func (w *Workflow) RoomTypeAndOccupantsEntered(roomType RoomTypeSpec, occupants int) error {
	if err := w.guard("RoomTypeAndOccupantsEntered", StageAwaitingRoomSelection); err != nil {
		return err
	}

	if !roomType.IsSuitable(occupants) {
		w.notifier.Message("Room type unsuitable, please select another room type")
		return nil
	}
	w.session.roomType = roomType
	w.session.occupants = occupants
	w.setStage(StageAwaitingDates)
	return nil
}

// DatesEntered searches the inventory for an available room of the selected
// type. When nothing is free the implied departure date is reported and the
// session stays in date entry; otherwise the room and quoted cost are
// recorded and the session moves to payment.
func (w *Workflow) DatesEntered(ctx context.Context, arrival time.Time, stayLength int) error {
	if err := w.guard("DatesEntered", StageAwaitingDates); err != nil {
		return err
	}

	room, err := w.directory.FindAvailableRoom(ctx, w.session.roomType, arrival, stayLength)
	if err != nil {
		return err
	}
	if room == nil {
		departure := arrival.AddDate(0, 0, stayLength)
		w.notifier.Message(fmt.Sprintf("%s is not available between %s and %s",
			w.session.roomType.Description(),
			arrival.Format(dateLayout),
			departure.Format(dateLayout)))
		return nil
	}

	w.session.arrival = arrival
	w.session.stayLength = stayLength
	w.session.room = room
	w.session.cost = w.session.roomType.CalculateCost(arrival, stayLength)
	w.notifier.BookingDetails(w.session.roomType.Description(), arrival, stayLength, w.session.cost)
	w.setStage(StageAwaitingPayment)
	return nil
}

// PaymentDetailsEntered asks the authorizer to approve the quoted cost. A
// decline keeps the session in payment with the room, guest, and dates
// intact so a second attempt can succeed; an approval commits the booking
// and reports the confirmation.
func (w *Workflow) PaymentDetailsEntered(ctx context.Context, cardType payments.CardType, number, securityCode string) error {
	if err := w.guard("PaymentDetailsEntered", StageAwaitingPayment); err != nil {
		return err
	}

	card := payments.NewCreditCard(cardType, number, securityCode)
	approved, err := w.authorizer.Authorize(ctx, card, w.session.cost)
	if err != nil {
		return err
	}
	if !approved {
		w.notifier.Message("Card could not be authorised")
		return nil
	}

	confirmationNumber, err := w.directory.Book(ctx, w.session.room, w.session.guest,
		w.session.arrival, w.session.stayLength, w.session.occupants, card)
	if err != nil {
		return err
	}

	record, err := w.directory.FindBooking(ctx, confirmationNumber)
	if err != nil {
		return err
	}
	w.notifier.BookingConfirmed(ConfirmedBooking{
		RoomDescription:    record.Room.Description,
		RoomNumber:         record.Room.Number,
		Arrival:            record.Arrival,
		GuestName:          record.GuestName,
		CardVendor:         card.Vendor(),
		CardNumber:         card.MaskedNumber(),
		ConfirmationNumber: record.ConfirmationNumber,
	})
	w.setStage(StageCompleted)
	return nil
}

// Cancel abandons the transaction and gives back any room held for it.
// Legal from any non-terminal stage.
func (w *Workflow) Cancel(ctx context.Context) error {
	if w.session.stage.IsTerminal() {
		return &ProtocolViolationError{Event: "Cancel", Stage: w.session.stage}
	}
	if err := w.ReleaseRoomHold(ctx); err != nil {
		return err
	}
	w.notifier.Message("Booking cancelled")
	w.setStage(StageCancelled)
	return nil
}

// ReleaseRoomHold gives back the room held during date entry, if any. A
// completed booking keeps its room; a session with no room yet is a no-op.
// Called on cancellation and when an idle session is dropped.
func (w *Workflow) ReleaseRoomHold(ctx context.Context) error {
	if w.session.room == nil || w.session.stage == StageCompleted {
		return nil
	}
	if err := w.directory.ReleaseRoom(ctx, w.session.room); err != nil {
		return err
	}
	w.session.room = nil
	return nil
}

// Completed acknowledges a finished booking. Informational only; the session
// is already in its terminal stage and does not change.
func (w *Workflow) Completed() error {
	if err := w.guard("Completed", StageCompleted); err != nil {
		return err
	}
	w.notifier.Message("Booking completed")
	return nil
}
