package conversation

import (
	"context"

	"taskcal-bot/internal/model"
)

// UseCase drives the task conversation for each chat.
type UseCase interface {
	// Start opens a conversation for the chat, replacing any existing one.
	Start(ctx context.Context, sc model.Scope) (Output, error)

	// Handle feeds one user message into the chat's conversation.
	Handle(ctx context.Context, sc model.Scope, input Input) (Output, error)

	// Cancel aborts the chat's conversation without side effects.
	Cancel(ctx context.Context, sc model.Scope) (Output, error)

	// Discard drops the chat's conversation silently.
	Discard(ctx context.Context, sc model.Scope)
}
