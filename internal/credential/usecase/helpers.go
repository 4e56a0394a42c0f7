package usecase

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"taskcal-bot/internal/credential"
)

// loadConfig reads the client secret file. It is read on every flow so a
// rotated secret takes effect without a restart.
func (uc *implUseCase) loadConfig() (*oauth2.Config, error) {
	data, err := os.ReadFile(uc.clientSecretPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", credential.ErrClientSecret, err)
	}
	cfg, err := google.ConfigFromJSON(data, uc.scopes...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", credential.ErrClientSecret, err)
	}
	if uc.redirectURL != "" {
		cfg.RedirectURL = uc.redirectURL
	}
	return cfg, nil
}

func (uc *implUseCase) newHandshake(cfg *oauth2.Config) *credential.Handshake {
	state := uuid.NewString()
	verifier := oauth2.GenerateVerifier()

	opts := []oauth2.AuthCodeOption{oauth2.AccessTypeOffline, oauth2.S256ChallengeOption(verifier)}
	if uc.mode == credential.ModeCached {
		// Forces a refresh token to be issued again.
		opts = append(opts, oauth2.ApprovalForce)
	}

	return &credential.Handshake{
		State:     state,
		AuthURL:   cfg.AuthCodeURL(state, opts...),
		Verifier:  verifier,
		CreatedAt: uc.now(),
	}
}

// extractCode accepts either the bare code or the full redirect URL the
// browser landed on, in which case the state must match.
func extractCode(input, state string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", credential.ErrEmptyCode
	}

	if !strings.Contains(input, "code=") {
		return input, nil
	}

	u, err := url.Parse(input)
	if err != nil {
		return input, nil
	}
	q := u.Query()
	code := q.Get("code")
	if code == "" {
		return "", credential.ErrEmptyCode
	}
	if got := q.Get("state"); got != "" && got != state {
		return "", credential.ErrStateMismatch
	}
	return code, nil
}

func (uc *implUseCase) saveToken(ctx context.Context, tok *oauth2.Token) error {
	if uc.store == nil {
		return nil
	}
	if err := uc.store.Save(ctx, tok); err != nil {
		return fmt.Errorf("%w: %v", credential.ErrTokenStorage, err)
	}
	return nil
}
