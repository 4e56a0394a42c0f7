package event

import (
	"context"

	"golang.org/x/oauth2"
)

// UseCase creates calendar events from a finished conversation.
type UseCase interface {
	// Create submits one event to the calendar authenticated by ts.
	Create(ctx context.Context, ts oauth2.TokenSource, input CreateInput) (CreateOutput, error)
}
