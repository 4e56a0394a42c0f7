package usecase

import (
	"context"
	"fmt"
	"time"

	"taskcal-bot/internal/conversation"
)

// run drains effects, feeding each external result back into the machine,
// then stores or removes the session. Caller holds the chat lock.
func (uc *implUseCase) run(ctx context.Context, s conversation.Session, effects []conversation.Effect) (conversation.Output, error) {
	out := conversation.Output{Handled: true}
	queue := effects
	ended := false
	created := false

	for steps := 0; len(queue) > 0; steps++ {
		if steps >= maxSteps {
			uc.repo.Delete(ctx, s.ChatID)
			uc.metrics.finish(OutcomeFailed)
			return out, fmt.Errorf("chat %d: effect loop exceeded %d steps in %s", s.ChatID, maxSteps, s.State)
		}

		eff := queue[0]
		queue = queue[1:]

		switch eff.Kind {
		case conversation.EffectReply:
			out.Replies = append(out.Replies, conversation.Reply{Text: eff.Text, Keyboard: eff.Keyboard})
		case conversation.EffectEnd:
			ended = true
		default:
			ev := uc.execute(ctx, eff)
			if ev.Kind == conversation.EventCreated {
				created = true
			}
			var next []conversation.Effect
			s, next = conversation.Transition(s, ev)
			queue = append(queue, next...)
		}
	}

	s.UpdatedAt = uc.now()
	out.State = s.State

	if ended || !s.State.Active() {
		uc.repo.Delete(ctx, s.ChatID)
		switch {
		case s.State == conversation.StateCancelled:
			uc.metrics.finish(OutcomeCanceled)
		case created:
			uc.metrics.finish(OutcomeCreated)
		default:
			uc.metrics.finish(OutcomeFailed)
		}
		return out, nil
	}

	uc.repo.Save(ctx, s)
	return out, nil
}

// execute performs one external effect and reports its result as an event.
func (uc *implUseCase) execute(ctx context.Context, eff conversation.Effect) conversation.Event {
	began := time.Now()

	switch eff.Kind {
	case conversation.EffectResolveTimezone:
		tz, err := uc.timezones.Lookup(ctx, eff.Location.Latitude, eff.Location.Longitude)
		uc.metrics.observe(string(eff.Kind), began, err)
		if err != nil {
			uc.l.Warnf(ctx, "%s: timezone lookup (%f, %f): %v", LogPrefixExecute, eff.Location.Latitude, eff.Location.Longitude, err)
			return conversation.Event{Kind: conversation.EventTimezoneFailed, Err: err}
		}
		return conversation.Event{Kind: conversation.EventTimezoneResolved, TimezoneID: tz}

	case conversation.EffectAuthorize:
		auth, err := uc.credentials.Authorize(ctx)
		uc.metrics.observe(string(eff.Kind), began, err)
		if err != nil {
			uc.l.Errorf(ctx, "%s: authorize: %v", LogPrefixExecute, err)
			return conversation.Event{Kind: conversation.EventAuthorizationFailed, Err: err}
		}
		if auth.Ready() {
			return conversation.Event{Kind: conversation.EventAuthorized, Credentials: auth.TokenSource}
		}
		return conversation.Event{Kind: conversation.EventAuthorizationRequired, Handshake: auth.Handshake}

	case conversation.EffectExchangeCode:
		ts, err := uc.credentials.Complete(ctx, eff.Handshake, eff.Code)
		uc.metrics.observe(string(eff.Kind), began, err)
		if err != nil {
			uc.l.Warnf(ctx, "%s: exchange code: %v", LogPrefixExecute, err)
			return conversation.Event{Kind: conversation.EventAuthorizationFailed, Err: err}
		}
		return conversation.Event{Kind: conversation.EventAuthorized, Credentials: ts}

	case conversation.EffectCreateEvent:
		created, err := uc.events.Create(ctx, eff.Credentials, eff.Input)
		uc.metrics.observe(string(eff.Kind), began, err)
		if err != nil {
			return conversation.Event{Kind: conversation.EventFailed, Err: err}
		}
		return conversation.Event{Kind: conversation.EventCreated, Link: created.Link}
	}

	return conversation.Event{Kind: conversation.EventFailed, Err: fmt.Errorf("unsupported effect %q", eff.Kind)}
}
