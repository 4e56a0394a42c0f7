package middleware

import (
	"taskcal-bot/pkg/log"
	"taskcal-bot/pkg/ratelimit"
)

type Middleware struct {
	l             log.Logger
	webhookSecret string
	limiter       *ratelimit.Limiter[string]
}

// New creates the HTTP middleware set. An empty webhookSecret disables the
// Telegram secret check; requestsPerMin <= 0 disables per-IP limiting.
func New(l log.Logger, webhookSecret string, requestsPerMin int) Middleware {
	return Middleware{
		l:             l,
		webhookSecret: webhookSecret,
		limiter:       ratelimit.New[string](requestsPerMin),
	}
}
