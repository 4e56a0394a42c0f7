package credential

import (
	"context"

	"golang.org/x/oauth2"
)

// UseCase obtains calendar credentials without blocking on user consent.
type UseCase interface {
	// Authorize returns ready credentials, or a Handshake the user must complete.
	Authorize(ctx context.Context) (Authorization, error)

	// Complete exchanges the user-supplied code (or pasted redirect URL) for credentials.
	Complete(ctx context.Context, h *Handshake, input string) (oauth2.TokenSource, error)
}
