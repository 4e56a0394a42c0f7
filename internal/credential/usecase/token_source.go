package usecase

import (
	"context"
	"sync"

	"golang.org/x/oauth2"
)

// persistingTokenSource writes the token back to storage whenever the
// underlying source hands out a new access token.
type persistingTokenSource struct {
	uc   *implUseCase
	base oauth2.TokenSource

	mu   sync.Mutex
	last string
}

func (uc *implUseCase) persisting(ctx context.Context, cfg *oauth2.Config, tok *oauth2.Token) oauth2.TokenSource {
	return &persistingTokenSource{
		uc:   uc,
		base: cfg.TokenSource(context.WithoutCancel(ctx), tok),
		last: tok.AccessToken,
	}
}

func (s *persistingTokenSource) Token() (*oauth2.Token, error) {
	tok, err := s.base.Token()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if tok.AccessToken != s.last {
		ctx := context.Background()
		if err := s.uc.saveToken(ctx, tok); err != nil {
			s.uc.l.Warnf(ctx, "internal.credential.usecase.persistingTokenSource: %v", err)
		} else {
			s.last = tok.AccessToken
		}
	}
	return tok, nil
}
