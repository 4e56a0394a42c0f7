package credential

import (
	"fmt"
	"time"

	"golang.org/x/oauth2"
)

// Mode selects how credentials are obtained.
type Mode string

const (
	// ModeCached reuses and refreshes a token persisted on disk, asking for consent only when needed.
	ModeCached Mode = "cached"
	// ModeManual asks for consent on every flow and never persists the token.
	ModeManual Mode = "manual"
)

// ParseMode validates a configured mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeCached, ModeManual:
		return Mode(s), nil
	case "":
		return ModeCached, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// HandshakeTTL bounds how long a consent URL stays usable. Google
// authorization codes are short-lived, so an older handshake is restarted.
const HandshakeTTL = 10 * time.Minute

// Handshake is a suspended authorization request awaiting the user's code.
type Handshake struct {
	State     string
	AuthURL   string
	Verifier  string
	CreatedAt time.Time
}

// Authorization is the result of Authorize. Exactly one field is set.
type Authorization struct {
	TokenSource oauth2.TokenSource
	Handshake   *Handshake
}

// Expired reports whether the handshake is older than HandshakeTTL at now.
func (h *Handshake) Expired(now time.Time) bool {
	return now.Sub(h.CreatedAt) > HandshakeTTL
}

// Ready reports whether credentials can be used right away.
func (a Authorization) Ready() bool {
	return a.TokenSource != nil
}
