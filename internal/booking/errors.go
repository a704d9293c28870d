package booking

import (
	"errors"
	"fmt"
)

// ProtocolViolationError reports an event delivered while the session is not
// in the stage that event requires. It means the presentation boundary is out
// of sync with the workflow and is never recoverable within the session.
type ProtocolViolationError struct {
	Event string
	Stage Stage
}

func (e *ProtocolViolationError) Error() string {
	return fmt.Sprintf("booking: %s not accepted in stage %s", e.Event, e.Stage)
}

// IsProtocolViolation checks if err is a protocol violation
func IsProtocolViolation(err error) bool {
	var pv *ProtocolViolationError
	return errors.As(err, &pv)
}
