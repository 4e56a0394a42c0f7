package credential

import "errors"

var (
	ErrUnknownMode   = errors.New("unknown credential mode")
	ErrClientSecret  = errors.New("failed to load OAuth client secret")
	ErrNoHandshake   = errors.New("no authorization in progress")
	ErrHandshakeOld  = errors.New("authorization request expired, start again with /task")
	ErrEmptyCode     = errors.New("authorization code is empty")
	ErrStateMismatch = errors.New("authorization state does not match")
	ErrCodeExchange  = errors.New("failed to exchange authorization code")
	ErrRefreshFailed = errors.New("failed to refresh token")
	ErrTokenStorage  = errors.New("failed to access token storage")
)
