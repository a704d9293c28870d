package booking

// Stage is the controller's current position in the booking workflow.
type Stage string

const (
	StageAwaitingPhone         Stage = "AWAITING_PHONE"
	StageAwaitingGuestDetails  Stage = "AWAITING_GUEST_DETAILS"
	StageAwaitingRoomSelection Stage = "AWAITING_ROOM_SELECTION"
	StageAwaitingDates         Stage = "AWAITING_DATES"
	StageAwaitingPayment       Stage = "AWAITING_PAYMENT"
	StageApproved              Stage = "APPROVED"
	StageCancelled             Stage = "CANCELLED"
	StageCompleted             Stage = "COMPLETED"
)

// IsValid checks if the stage is one of the workflow stages
func (s Stage) IsValid() bool {
	switch s {
	case StageAwaitingPhone, StageAwaitingGuestDetails, StageAwaitingRoomSelection,
		StageAwaitingDates, StageAwaitingPayment, StageApproved, StageCancelled, StageCompleted:
		return true
	}
	return false
}

// IsTerminal checks if no further booking events are accepted in this stage
func (s Stage) IsTerminal() bool {
	switch s {
	case StageCancelled, StageCompleted:
		return true
	}
	return false
}

// String returns the string representation of Stage
func (s Stage) String() string {
	return string(s)
}
