package repository

import (
	"context"

	"golang.org/x/oauth2"
)

// TokenStore persists a single OAuth token bundle.
type TokenStore interface {
	Load(ctx context.Context) (*oauth2.Token, error)
	Save(ctx context.Context, tok *oauth2.Token) error
}
