package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"

	"taskcal-bot/internal/credential/repository"
)

type tokenStore struct {
	path string
}

// New creates a TokenStore backed by a JSON file at path (e.g. token.json).
func New(path string) repository.TokenStore {
	return &tokenStore{path: path}
}

// Load reads the token file. A missing file yields repository.ErrTokenNotFound.
func (s *tokenStore) Load(ctx context.Context) (*oauth2.Token, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, repository.ErrTokenNotFound
		}
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrTokenCorrupt, err)
	}
	if tok.AccessToken == "" && tok.RefreshToken == "" {
		return nil, fmt.Errorf("%w: no access or refresh token", repository.ErrTokenCorrupt)
	}
	return &tok, nil
}

// Save atomically rewrites the token file with 0600 permissions.
func (s *tokenStore) Save(ctx context.Context, tok *oauth2.Token) error {
	if tok == nil {
		return errors.New("token is nil")
	}

	dir := filepath.Dir(s.path)
	f, err := os.CreateTemp(dir, ".token-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp token file: %w", err)
	}
	tmp := f.Name()
	defer os.Remove(tmp)

	if err := json.NewEncoder(f).Encode(tok); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode token: %w", err)
	}
	if err := f.Chmod(0600); err != nil {
		f.Close()
		return fmt.Errorf("failed to chmod token file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close token file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", s.path, err)
	}
	return nil
}
