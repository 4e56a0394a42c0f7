package conversation

import (
	"strings"
	"time"

	"taskcal-bot/internal/event"
	"taskcal-bot/pkg/datemath"
)

// NewSession opens a conversation in TITLE and asks for the title.
func NewSession(chatID, userID int64, now time.Time) (Session, []Effect) {
	s := Session{
		ChatID:    chatID,
		UserID:    userID,
		State:     StateTitle,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return s, []Effect{reply(PromptTitle)}
}

// Transition applies ev to s. It performs no I/O: external work is returned
// as effects whose results come back as further events.
func Transition(s Session, ev Event) (Session, []Effect) {
	if !s.State.Active() {
		return s, nil
	}

	if ev.Kind == EventCancel {
		s.State = StateCancelled
		return s, []Effect{
			{Kind: EffectReply, Text: MessageCanceled, Keyboard: KeyboardRemove},
			{Kind: EffectEnd},
		}
	}

	switch s.State {
	case StateTitle:
		return onTitle(s, ev)
	case StateStart:
		return onStart(s, ev)
	case StateEnd:
		return onEnd(s, ev)
	case StateLocation:
		return onLocation(s, ev)
	case StateCode:
		return onCode(s, ev)
	}
	return s, nil
}

func onTitle(s Session, ev Event) (Session, []Effect) {
	if ev.Kind != EventText || strings.TrimSpace(ev.Text) == "" {
		return s, []Effect{reply(PromptTitle)}
	}
	s.Title = ev.Text
	s.State = StateStart
	return s, []Effect{reply(PromptStart)}
}

func onStart(s Session, ev Event) (Session, []Effect) {
	if ev.Kind != EventText {
		return s, []Effect{reply(PromptStart)}
	}
	raw := strings.TrimSpace(ev.Text)
	if err := datemath.Validate(raw); err != nil {
		return s, []Effect{reply(MessageInvalid + err.Error() + "\n" + PromptStart)}
	}
	s.StartRaw = raw
	s.State = StateEnd
	return s, []Effect{reply(PromptEnd)}
}

func onEnd(s Session, ev Event) (Session, []Effect) {
	if ev.Kind != EventText {
		return s, []Effect{reply(PromptEnd)}
	}
	raw := strings.TrimSpace(ev.Text)
	if err := datemath.ValidateRange(s.StartRaw, raw); err != nil {
		return s, []Effect{reply(MessageInvalid + err.Error() + "\n" + PromptEnd)}
	}
	s.EndRaw = raw
	s.State = StateLocation
	return s, []Effect{locationPrompt()}
}

func onLocation(s Session, ev Event) (Session, []Effect) {
	switch ev.Kind {
	case EventLocation:
		if ev.Location == nil {
			return s, []Effect{locationPrompt()}
		}
		if s.Location != nil {
			// Lookup already under way for this session.
			return s, nil
		}
		loc := *ev.Location
		s.Location = &loc
		return s, []Effect{{Kind: EffectResolveTimezone, Location: loc}}

	case EventText:
		if s.Location != nil {
			return s, nil
		}
		return s, []Effect{locationPrompt()}

	case EventTimezoneFailed:
		return fail(s, ev.Err)

	case EventTimezoneResolved:
		if ev.TimezoneID == "" {
			return fail(s, ErrMissingTimezone)
		}
		parser, err := datemath.NewParser(ev.TimezoneID)
		if err != nil {
			return fail(s, err)
		}
		start, end, err := parser.ParseRange(s.StartRaw, s.EndRaw)
		if err != nil {
			return fail(s, err)
		}
		s.TimezoneID = ev.TimezoneID
		s.Start, s.End = start, end
		return s, []Effect{{Kind: EffectAuthorize}}

	case EventAuthorizationRequired:
		if ev.Handshake == nil {
			return fail(s, ev.Err)
		}
		s.Handshake = ev.Handshake
		s.State = StateCode
		return s, []Effect{
			{Kind: EffectReply, Text: MessageAuthorize + ev.Handshake.AuthURL + "\n\n" + PromptCode, Keyboard: KeyboardRemove},
		}
	}
	return afterAuthorization(s, ev)
}

func onCode(s Session, ev Event) (Session, []Effect) {
	switch ev.Kind {
	case EventText:
		code := strings.TrimSpace(ev.Text)
		if code == "" {
			return s, []Effect{reply(PromptCode)}
		}
		return s, []Effect{{Kind: EffectExchangeCode, Code: code, Handshake: s.Handshake}}
	case EventLocation:
		return s, []Effect{reply(PromptCode)}
	}
	return afterAuthorization(s, ev)
}

// afterAuthorization handles the credential and calendar results shared by
// LOCATION and CODE.
func afterAuthorization(s Session, ev Event) (Session, []Effect) {
	if s.TimezoneID == "" {
		return s, nil
	}

	switch ev.Kind {
	case EventAuthorized:
		if ev.Credentials == nil {
			return fail(s, ev.Err)
		}
		s.Credentials = ev.Credentials
		s.Handshake = nil
		return s, []Effect{{
			Kind:        EffectCreateEvent,
			Credentials: s.Credentials,
			Input:       createInput(s),
		}}

	case EventAuthorizationFailed, EventFailed:
		return fail(s, ev.Err)

	case EventCreated:
		s.State = StateDone
		return s, []Effect{
			{Kind: EffectReply, Text: MessageCreated + ev.Link, Keyboard: KeyboardRemove},
			{Kind: EffectEnd},
		}
	}
	return s, nil
}

func createInput(s Session) event.CreateInput {
	return event.CreateInput{
		Title:      s.Title,
		Start:      s.Start,
		End:        s.End,
		TimezoneID: s.TimezoneID,
	}
}

func fail(s Session, err error) (Session, []Effect) {
	reason := "unknown error"
	if err != nil {
		reason = err.Error()
	}
	s.State = StateDone
	return s, []Effect{
		{Kind: EffectReply, Text: MessageFailed + reason, Keyboard: KeyboardRemove},
		{Kind: EffectEnd},
	}
}

func reply(text string) Effect {
	return Effect{Kind: EffectReply, Text: text}
}

func locationPrompt() Effect {
	return Effect{Kind: EffectReply, Text: PromptLocation, Keyboard: KeyboardLocation}
}
