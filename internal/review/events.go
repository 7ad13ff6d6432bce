package review

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// EventKind names a state machine transition
type EventKind string

const (
	EventSessionStarted        EventKind = "session_started"
	EventAnswerRecorded        EventKind = "answer_recorded"
	EventModeSwitched          EventKind = "mode_switched"
	EventReinforcementOffered  EventKind = "reinforcement_offered"
	EventReinforcementAccepted EventKind = "reinforcement_accepted"
	EventReinforcementRejected EventKind = "reinforcement_rejected"
	EventSessionEnded          EventKind = "session_ended"
	EventPracticeStarted       EventKind = "practice_started"
	EventReturnedHome          EventKind = "returned_home"
	EventRoundStarted          EventKind = "round_started"
	EventWordDetailOpened      EventKind = "word_detail_opened"
	EventPanelClosed           EventKind = "panel_closed"
)

// Event is emitted after every transition. It carries the state the
// machine settled in so listeners never need to query it back.
type Event struct {
	ID         uuid.UUID          `json:"id"`
	Kind       EventKind          `json:"kind"`
	SessionID  string             `json:"session_id"`
	Mode       Mode               `json:"mode"`
	Panel      Panel              `json:"panel"`
	Navigation *NavigationContext `json:"navigation,omitempty"`
	WordID     int64              `json:"word_id,omitempty"`
	Correct    bool               `json:"correct,omitempty"`
	At         time.Time          `json:"at"`
}

// Listener receives machine events
type Listener interface {
	HandleEvent(event Event)
}

// ListenerFunc adapts a function to the Listener interface
type ListenerFunc func(Event)

// HandleEvent calls f(event)
func (f ListenerFunc) HandleEvent(event Event) {
	f(event)
}

// emitter dispatches events to listeners in registration order
type emitter struct {
	listeners []Listener
	logger    *slog.Logger
}

func (e *emitter) subscribe(l Listener) {
	e.listeners = append(e.listeners, l)
	e.logger.Debug("registered event listener", "listener_count", len(e.listeners))
}

func (e *emitter) emit(event Event) {
	e.logger.Debug("emitting event",
		"event_id", event.ID,
		"event_kind", event.Kind,
		"mode", event.Mode,
		"panel", event.Panel)

	for _, l := range e.listeners {
		l.HandleEvent(event)
	}
}
