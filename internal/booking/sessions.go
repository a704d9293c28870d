package booking

import (
	"context"
	"errors"
	"sync"
	"time"

	"staybook/internal/guests"
	"staybook/internal/rooms"
	"staybook/pkg/logger"

	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("booking session not found")

// Notice is one presentation event recorded while a workflow event ran.
type Notice struct {
	Kind      string            `json:"kind"`
	Stage     Stage             `json:"stage,omitempty"`
	Text      string            `json:"text,omitempty"`
	Guest     *Guest            `json:"guest,omitempty"`
	Quote     *Quote            `json:"quote,omitempty"`
	Confirmed *ConfirmedBooking `json:"confirmed,omitempty"`
}

// Quote is the priced stay reported once an available room is found.
type Quote struct {
	Description string    `json:"description"`
	Arrival     time.Time `json:"arrival"`
	StayLength  int       `json:"stay_length"`
	Cost        float64   `json:"cost"`
}

const (
	NoticeStageChanged     = "stage_changed"
	NoticeGuestDetails     = "guest_details"
	NoticeBookingDetails   = "booking_details"
	NoticeBookingConfirmed = "booking_confirmed"
	NoticeMessage          = "message"
)

// recordingNotifier buffers notices so the transport can return them with
// the event's response instead of pushing them anywhere.
type recordingNotifier struct {
	notices []Notice
}

func (r *recordingNotifier) StageChanged(stage Stage) {
	r.notices = append(r.notices, Notice{Kind: NoticeStageChanged, Stage: stage})
}

func (r *recordingNotifier) GuestDetails(name, address, phone string) {
	r.notices = append(r.notices, Notice{Kind: NoticeGuestDetails, Guest: &Guest{Name: name, Address: address, Phone: phone}})
}

func (r *recordingNotifier) BookingDetails(description string, arrival time.Time, stayLength int, cost float64) {
	r.notices = append(r.notices, Notice{Kind: NoticeBookingDetails, Quote: &Quote{
		Description: description,
		Arrival:     arrival,
		StayLength:  stayLength,
		Cost:        cost,
	}})
}

func (r *recordingNotifier) BookingConfirmed(confirmed ConfirmedBooking) {
	r.notices = append(r.notices, Notice{Kind: NoticeBookingConfirmed, Confirmed: &confirmed})
}

func (r *recordingNotifier) Message(text string) {
	r.notices = append(r.notices, Notice{Kind: NoticeMessage, Text: text})
}

func (r *recordingNotifier) drain() []Notice {
	notices := r.notices
	r.notices = nil
	return notices
}

// ManagedSession pairs a workflow with its notice recorder. Events against
// the same session are serialized; the workflow itself performs no locking.
type ManagedSession struct {
	ID string

	mu          sync.Mutex
	workflow    *Workflow
	recorder    *recordingNotifier
	lastTouched time.Time
	onConfirmed func(ConfirmedBooking)
}

// Do runs one event against the session and returns the notices it produced.
func (s *ManagedSession) Do(event func(w *Workflow) error) ([]Notice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastTouched = time.Now()
	err := event(s.workflow)
	notices := s.recorder.drain()

	if err == nil && s.onConfirmed != nil {
		for _, n := range notices {
			if n.Kind == NoticeBookingConfirmed && n.Confirmed != nil {
				confirmed := *n.Confirmed
				confirmed.SessionID = s.ID
				s.onConfirmed(confirmed)
			}
		}
	}
	return notices, err
}

// Stage returns the session's current stage.
func (s *ManagedSession) Stage() Stage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.workflow.Stage()
}

// releaseHold gives back any room still held by the session. A failed
// release is logged and swallowed; the hold's TTL is the backstop.
func (s *ManagedSession) releaseHold(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.workflow.ReleaseRoomHold(ctx); err != nil {
		logger.GetDefault().WithSessionID(s.ID).WithError(err).
			Warn("failed to release room hold for dropped session")
	}
}

// Manager hosts the live booking sessions, one workflow per session ID.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*ManagedSession

	guests      guests.Service
	rooms       rooms.Service
	authorizer  Authorizer
	onConfirmed func(ConfirmedBooking)
}

func NewManager(guestService guests.Service, roomService rooms.Service, authorizer Authorizer) *Manager {
	return &Manager{
		sessions:   make(map[string]*ManagedSession),
		guests:     guestService,
		rooms:      roomService,
		authorizer: authorizer,
	}
}

// OnConfirmed registers a hook invoked after an event commits a booking.
// Set it before sessions are created.
func (m *Manager) OnConfirmed(fn func(ConfirmedBooking)) {
	m.onConfirmed = fn
}

// Create starts a new booking session and returns it.
func (m *Manager) Create() *ManagedSession {
	id := uuid.NewString()
	recorder := &recordingNotifier{}
	directory := NewHotelDirectory(m.guests, m.rooms, id)

	session := &ManagedSession{
		ID:          id,
		workflow:    NewWorkflow(directory, m.authorizer, recorder),
		recorder:    recorder,
		lastTouched: time.Now(),
		onConfirmed: m.onConfirmed,
	}

	m.mu.Lock()
	m.sessions[id] = session
	m.mu.Unlock()
	return session
}

// Get returns the session for the ID, or ErrSessionNotFound.
func (m *Manager) Get(id string) (*ManagedSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Remove drops the session and gives back any room it still held. Used once
// a terminal stage has been reported.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	session := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if session != nil {
		session.releaseHold(context.Background())
	}
}

// Sweep drops sessions idle for longer than maxAge and returns how many were
// removed. Holds are released after the manager lock is given up, so a slow
// release cannot stall new sessions.
func (m *Manager) Sweep(maxAge time.Duration) int {
	cutoff := time.Now().Add(-maxAge)

	m.mu.Lock()
	var swept []*ManagedSession
	for id, session := range m.sessions {
		session.mu.Lock()
		idle := session.lastTouched.Before(cutoff)
		session.mu.Unlock()
		if idle {
			delete(m.sessions, id)
			swept = append(swept, session)
		}
	}
	m.mu.Unlock()

	for _, session := range swept {
		session.releaseHold(context.Background())
	}
	return len(swept)
}
