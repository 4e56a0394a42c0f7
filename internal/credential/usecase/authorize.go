package usecase

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/oauth2"

	"taskcal-bot/internal/credential"
	"taskcal-bot/internal/credential/repository"
)

// Authorize returns usable credentials or a handshake for the user to complete.
//
// Cached mode: a valid stored token is used as is; an expired token with a
// refresh token is refreshed once and rewritten; anything else needs consent.
// Manual mode always needs consent.
func (uc *implUseCase) Authorize(ctx context.Context) (credential.Authorization, error) {
	cfg, err := uc.loadConfig()
	if err != nil {
		return credential.Authorization{}, err
	}

	if uc.mode == credential.ModeManual || uc.store == nil {
		return credential.Authorization{Handshake: uc.newHandshake(cfg)}, nil
	}

	tok, err := uc.store.Load(ctx)
	switch {
	case errors.Is(err, repository.ErrTokenNotFound):
		uc.l.Infof(ctx, "internal.credential.usecase.Authorize: no cached token, consent required")
		return credential.Authorization{Handshake: uc.newHandshake(cfg)}, nil
	case errors.Is(err, repository.ErrTokenCorrupt):
		uc.l.Warnf(ctx, "internal.credential.usecase.Authorize: cached token unusable, consent required: %v", err)
		return credential.Authorization{Handshake: uc.newHandshake(cfg)}, nil
	case err != nil:
		return credential.Authorization{}, fmt.Errorf("%w: %v", credential.ErrTokenStorage, err)
	}

	if tok.Valid() {
		return credential.Authorization{TokenSource: uc.persisting(ctx, cfg, tok)}, nil
	}

	if tok.RefreshToken == "" {
		uc.l.Infof(ctx, "internal.credential.usecase.Authorize: cached token expired without refresh token, consent required")
		return credential.Authorization{Handshake: uc.newHandshake(cfg)}, nil
	}

	fresh, err := cfg.TokenSource(ctx, tok).Token()
	if err != nil {
		var rErr *oauth2.RetrieveError
		if errors.As(err, &rErr) {
			uc.l.Warnf(ctx, "internal.credential.usecase.Authorize: refresh rejected, consent required: %v", err)
			return credential.Authorization{Handshake: uc.newHandshake(cfg)}, nil
		}
		return credential.Authorization{}, fmt.Errorf("%w: %v", credential.ErrRefreshFailed, err)
	}

	if err := uc.saveToken(ctx, fresh); err != nil {
		uc.l.Warnf(ctx, "internal.credential.usecase.Authorize: %v", err)
	}
	uc.l.Infof(ctx, "internal.credential.usecase.Authorize: token refreshed")

	return credential.Authorization{TokenSource: uc.persisting(ctx, cfg, fresh)}, nil
}
