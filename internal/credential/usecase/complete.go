package usecase

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"

	"taskcal-bot/internal/credential"
)

// Complete exchanges the code for a token. Cached mode persists the result.
func (uc *implUseCase) Complete(ctx context.Context, h *credential.Handshake, input string) (oauth2.TokenSource, error) {
	if h == nil {
		return nil, credential.ErrNoHandshake
	}
	if h.Expired(uc.now()) {
		return nil, credential.ErrHandshakeOld
	}

	code, err := extractCode(input, h.State)
	if err != nil {
		return nil, err
	}

	cfg, err := uc.loadConfig()
	if err != nil {
		return nil, err
	}

	tok, err := cfg.Exchange(ctx, code, oauth2.VerifierOption(h.Verifier))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", credential.ErrCodeExchange, err)
	}

	if uc.mode == credential.ModeManual {
		return cfg.TokenSource(ctx, tok), nil
	}

	if err := uc.saveToken(ctx, tok); err != nil {
		uc.l.Warnf(ctx, "internal.credential.usecase.Complete: %v", err)
	}
	return uc.persisting(ctx, cfg, tok), nil
}
