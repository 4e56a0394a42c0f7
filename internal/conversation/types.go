package conversation

import (
	"time"

	"golang.org/x/oauth2"

	"taskcal-bot/internal/credential"
	"taskcal-bot/internal/event"
)

// State is a step of the task conversation.
type State string

const (
	StateTitle     State = "TITLE"
	StateStart     State = "START"
	StateEnd       State = "END"
	StateLocation  State = "LOCATION"
	StateCode      State = "CODE"
	StateDone      State = "DONE"
	StateCancelled State = "CANCELLED"
)

// Active reports whether the conversation still accepts input.
func (s State) Active() bool {
	switch s {
	case StateTitle, StateStart, StateEnd, StateLocation, StateCode:
		return true
	}
	return false
}

// Location is a shared device location.
type Location struct {
	Latitude  float64
	Longitude float64
}

// Session holds one chat's task conversation. Fields fill in state order.
type Session struct {
	ChatID     int64
	UserID     int64
	State      State
	Title      string
	StartRaw   string
	EndRaw     string
	Location   *Location
	TimezoneID string
	Start      time.Time
	End        time.Time

	Credentials oauth2.TokenSource
	Handshake   *credential.Handshake

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EventKind identifies what happened to a session.
type EventKind string

const (
	// Inbound from the user.
	EventText     EventKind = "text"
	EventLocation EventKind = "location"
	EventCancel   EventKind = "cancel"

	// Results of effects.
	EventTimezoneResolved      EventKind = "timezone_resolved"
	EventTimezoneFailed        EventKind = "timezone_failed"
	EventAuthorized            EventKind = "authorized"
	EventAuthorizationRequired EventKind = "authorization_required"
	EventAuthorizationFailed   EventKind = "authorization_failed"
	EventCreated               EventKind = "event_created"
	EventFailed                EventKind = "event_failed"
)

// Event is an input to Transition. Only the fields relevant to Kind are set.
type Event struct {
	Kind        EventKind
	Text        string
	Location    *Location
	TimezoneID  string
	Credentials oauth2.TokenSource
	Handshake   *credential.Handshake
	Link        string
	Err         error
}

// EffectKind identifies work requested by Transition.
type EffectKind string

const (
	EffectReply           EffectKind = "reply"
	EffectResolveTimezone EffectKind = "resolve_timezone"
	EffectAuthorize       EffectKind = "authorize"
	EffectExchangeCode    EffectKind = "exchange_code"
	EffectCreateEvent     EffectKind = "create_event"
	EffectEnd             EffectKind = "end"
)

// Keyboard selects the reply keyboard sent along with a reply.
type Keyboard int

const (
	KeyboardNone Keyboard = iota
	KeyboardLocation
	KeyboardRemove
)

// Effect is work for the executor. Only the fields relevant to Kind are set.
type Effect struct {
	Kind        EffectKind
	Text        string
	Keyboard    Keyboard
	Location    Location
	Code        string
	Handshake   *credential.Handshake
	Credentials oauth2.TokenSource
	Input       event.CreateInput
}

// Reply is a message to send back to the chat.
type Reply struct {
	Text     string
	Keyboard Keyboard
}

// Input is one inbound user message. Location is set for location shares.
type Input struct {
	Text     string
	Location *Location
}

// Output is the result of handling one inbound message.
type Output struct {
	Replies []Reply
	State   State
	Handled bool // false when the chat had no conversation
}
