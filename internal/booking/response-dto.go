package booking

// SessionResponse describes a booking session without any event outcome.
type SessionResponse struct {
	SessionID string `json:"session_id"`
	Stage     Stage  `json:"stage"`
}

// EventResponse is returned from every event endpoint: the stage after the
// event plus the notices the event produced, in order.
type EventResponse struct {
	SessionID string   `json:"session_id"`
	Stage     Stage    `json:"stage"`
	Notices   []Notice `json:"notices"`
}
