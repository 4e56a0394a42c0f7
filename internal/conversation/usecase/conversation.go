package usecase

import (
	"context"

	"taskcal-bot/internal/conversation"
	"taskcal-bot/internal/model"
)

// Start opens a conversation, replacing one already in progress.
func (uc *implUseCase) Start(ctx context.Context, sc model.Scope) (conversation.Output, error) {
	unlock := uc.repo.Lock(sc.ChatID)
	defer unlock()

	if old, ok := uc.repo.Get(ctx, sc.ChatID); ok && old.State.Active() {
		uc.l.Infof(ctx, "%s: restarting chat %d from %s", LogPrefixStart, sc.ChatID, old.State)
		uc.repo.Delete(ctx, sc.ChatID)
		uc.metrics.finish(OutcomeRestarted)
	}

	s, effects := conversation.NewSession(sc.ChatID, sc.UserID, uc.now())
	uc.metrics.start()
	uc.l.Infof(ctx, "%s: chat %d user %d", LogPrefixStart, sc.ChatID, sc.UserID)

	return uc.run(ctx, s, effects)
}

// Handle feeds a text or location message into the chat's conversation.
func (uc *implUseCase) Handle(ctx context.Context, sc model.Scope, input conversation.Input) (conversation.Output, error) {
	unlock := uc.repo.Lock(sc.ChatID)
	defer unlock()

	s, ok := uc.repo.Get(ctx, sc.ChatID)
	if !ok {
		return conversation.Output{}, nil
	}

	ev := conversation.Event{Kind: conversation.EventText, Text: input.Text}
	if input.Location != nil {
		ev = conversation.Event{Kind: conversation.EventLocation, Location: input.Location}
	}

	uc.l.Debugf(ctx, "%s: chat %d %s in %s", LogPrefixHandle, sc.ChatID, ev.Kind, s.State)
	s, effects := conversation.Transition(s, ev)
	return uc.run(ctx, s, effects)
}

// Cancel aborts the conversation. Handled is false when there was none.
func (uc *implUseCase) Cancel(ctx context.Context, sc model.Scope) (conversation.Output, error) {
	unlock := uc.repo.Lock(sc.ChatID)
	defer unlock()

	s, ok := uc.repo.Get(ctx, sc.ChatID)
	if !ok {
		return conversation.Output{}, nil
	}

	uc.l.Infof(ctx, "%s: chat %d in %s", LogPrefixCancel, sc.ChatID, s.State)
	s, effects := conversation.Transition(s, conversation.Event{Kind: conversation.EventCancel})
	return uc.run(ctx, s, effects)
}

// Discard drops the conversation without replying.
func (uc *implUseCase) Discard(ctx context.Context, sc model.Scope) {
	unlock := uc.repo.Lock(sc.ChatID)
	defer unlock()

	if _, ok := uc.repo.Get(ctx, sc.ChatID); !ok {
		return
	}
	uc.repo.Delete(ctx, sc.ChatID)
	uc.metrics.finish(OutcomeDiscarded)
	uc.l.Warnf(ctx, "%s: chat %d", LogPrefixDiscard, sc.ChatID)
}
