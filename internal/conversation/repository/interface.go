package repository

import (
	"context"

	"taskcal-bot/internal/conversation"
)

// SessionRepository is the process-wide table of live conversations.
type SessionRepository interface {
	Get(ctx context.Context, chatID int64) (conversation.Session, bool)
	Save(ctx context.Context, s conversation.Session)
	Delete(ctx context.Context, chatID int64)
	Len() int

	// Lock serializes work on one chat. The returned func releases it.
	Lock(chatID int64) func()
}
