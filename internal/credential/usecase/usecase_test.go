package usecase

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"taskcal-bot/internal/credential"
	"taskcal-bot/internal/credential/repository"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Info(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Panicf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}

type mockStore struct {
	mu      sync.Mutex
	tok     *oauth2.Token
	loadErr error
	saves   int
}

func (s *mockStore) Load(ctx context.Context) (*oauth2.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	if s.tok == nil {
		return nil, repository.ErrTokenNotFound
	}
	cp := *s.tok
	return &cp, nil
}

func (s *mockStore) Save(ctx context.Context, tok *oauth2.Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves++
	cp := *tok
	s.tok = &cp
	return nil
}

// tokenServer fakes Google's token endpoint.
type tokenServer struct {
	*httptest.Server
	mu        sync.Mutex
	refreshes int
	exchanges int
	lastForm  url.Values
}

func newTokenServer(t *testing.T) *tokenServer {
	ts := &tokenServer{}
	ts.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		ts.mu.Lock()
		ts.lastForm = r.PostForm
		ts.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		switch r.PostForm.Get("grant_type") {
		case "refresh_token":
			ts.mu.Lock()
			ts.refreshes++
			ts.mu.Unlock()
			if r.PostForm.Get("refresh_token") == "revoked" {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"error":"invalid_grant"}`))
				return
			}
			w.Write([]byte(`{"access_token":"refreshed","token_type":"Bearer","expires_in":3600}`))
		case "authorization_code":
			ts.mu.Lock()
			ts.exchanges++
			ts.mu.Unlock()
			if r.PostForm.Get("code") != "good-code" {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"error":"invalid_grant","error_description":"Malformed auth code."}`))
				return
			}
			w.Write([]byte(`{"access_token":"exchanged","refresh_token":"rt-1","token_type":"Bearer","expires_in":3600}`))
		default:
			w.WriteHeader(http.StatusBadRequest)
		}
	}))
	t.Cleanup(ts.Close)
	return ts
}

func writeSecret(t *testing.T, tokenURL string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "credentials.json")
	body := fmt.Sprintf(`{"installed":{
		"client_id":"cid.apps.googleusercontent.com",
		"client_secret":"secret",
		"auth_uri":"https://accounts.google.com/o/oauth2/auth",
		"token_uri":%q,
		"redirect_uris":["http://localhost"]
	}}`, tokenURL)
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))
	return path
}

func newTestUseCase(t *testing.T, mode credential.Mode, store repository.TokenStore) (*implUseCase, *tokenServer) {
	srv := newTokenServer(t)
	uc := New(&mockLogger{}, store, Config{
		Mode:             mode,
		ClientSecretPath: writeSecret(t, srv.URL),
	})
	return uc, srv
}

func testContext(srv *tokenServer) context.Context {
	return context.WithValue(context.Background(), oauth2.HTTPClient, srv.Client())
}

func TestAuthorize_Cached(t *testing.T) {
	t.Run("valid token is reused without network", func(t *testing.T) {
		store := &mockStore{tok: &oauth2.Token{AccessToken: "cached", RefreshToken: "rt", Expiry: time.Now().Add(time.Hour)}}
		uc, srv := newTestUseCase(t, credential.ModeCached, store)

		auth, err := uc.Authorize(testContext(srv))
		require.NoError(t, err)
		require.True(t, auth.Ready())

		tok, err := auth.TokenSource.Token()
		require.NoError(t, err)
		assert.Equal(t, "cached", tok.AccessToken)
		assert.Equal(t, 0, srv.refreshes)
		assert.Equal(t, 0, store.saves)
	})

	t.Run("expired token is refreshed once and rewritten", func(t *testing.T) {
		store := &mockStore{tok: &oauth2.Token{AccessToken: "old", RefreshToken: "rt", Expiry: time.Now().Add(-time.Hour)}}
		uc, srv := newTestUseCase(t, credential.ModeCached, store)

		auth, err := uc.Authorize(testContext(srv))
		require.NoError(t, err)
		require.True(t, auth.Ready())

		tok, err := auth.TokenSource.Token()
		require.NoError(t, err)
		assert.Equal(t, "refreshed", tok.AccessToken)
		assert.Equal(t, 1, srv.refreshes)
		assert.Equal(t, 1, store.saves)
		assert.Equal(t, "refreshed", store.tok.AccessToken)
		assert.Equal(t, "rt", store.tok.RefreshToken)
	})

	t.Run("missing token requires consent", func(t *testing.T) {
		uc, srv := newTestUseCase(t, credential.ModeCached, &mockStore{})

		auth, err := uc.Authorize(testContext(srv))
		require.NoError(t, err)
		require.False(t, auth.Ready())
		require.NotNil(t, auth.Handshake)

		u, err := url.Parse(auth.Handshake.AuthURL)
		require.NoError(t, err)
		q := u.Query()
		assert.Equal(t, auth.Handshake.State, q.Get("state"))
		assert.Equal(t, "offline", q.Get("access_type"))
		assert.Equal(t, "consent", q.Get("prompt"))
		assert.Equal(t, "S256", q.Get("code_challenge_method"))
		assert.NotEmpty(t, auth.Handshake.Verifier)
	})

	t.Run("corrupt token requires consent", func(t *testing.T) {
		store := &mockStore{loadErr: fmt.Errorf("%w: bad json", repository.ErrTokenCorrupt)}
		uc, srv := newTestUseCase(t, credential.ModeCached, store)

		auth, err := uc.Authorize(testContext(srv))
		require.NoError(t, err)
		assert.NotNil(t, auth.Handshake)
	})

	t.Run("expired token without refresh token requires consent", func(t *testing.T) {
		store := &mockStore{tok: &oauth2.Token{AccessToken: "old", Expiry: time.Now().Add(-time.Hour)}}
		uc, srv := newTestUseCase(t, credential.ModeCached, store)

		auth, err := uc.Authorize(testContext(srv))
		require.NoError(t, err)
		assert.NotNil(t, auth.Handshake)
		assert.Equal(t, 0, srv.refreshes)
	})

	t.Run("revoked refresh token requires consent", func(t *testing.T) {
		store := &mockStore{tok: &oauth2.Token{AccessToken: "old", RefreshToken: "revoked", Expiry: time.Now().Add(-time.Hour)}}
		uc, srv := newTestUseCase(t, credential.ModeCached, store)

		auth, err := uc.Authorize(testContext(srv))
		require.NoError(t, err)
		assert.NotNil(t, auth.Handshake)
		assert.Positive(t, srv.refreshes)
		assert.Equal(t, 0, store.saves)
	})

	t.Run("missing client secret fails", func(t *testing.T) {
		uc := New(&mockLogger{}, &mockStore{}, Config{ClientSecretPath: filepath.Join(t.TempDir(), "nope.json")})
		_, err := uc.Authorize(context.Background())
		assert.ErrorIs(t, err, credential.ErrClientSecret)
	})
}

func TestAuthorize_Manual(t *testing.T) {
	store := &mockStore{tok: &oauth2.Token{AccessToken: "cached", Expiry: time.Now().Add(time.Hour)}}
	uc, srv := newTestUseCase(t, credential.ModeManual, store)

	auth, err := uc.Authorize(testContext(srv))
	require.NoError(t, err)
	require.NotNil(t, auth.Handshake)
	assert.False(t, auth.Ready())

	u, err := url.Parse(auth.Handshake.AuthURL)
	require.NoError(t, err)
	assert.Empty(t, u.Query().Get("prompt"))
}

func TestComplete(t *testing.T) {
	t.Run("manual exchange does not persist", func(t *testing.T) {
		store := &mockStore{}
		uc, srv := newTestUseCase(t, credential.ModeManual, store)
		ctx := testContext(srv)

		auth, err := uc.Authorize(ctx)
		require.NoError(t, err)

		ts, err := uc.Complete(ctx, auth.Handshake, "  good-code\n")
		require.NoError(t, err)
		tok, err := ts.Token()
		require.NoError(t, err)
		assert.Equal(t, "exchanged", tok.AccessToken)
		assert.Equal(t, 0, store.saves)
		assert.Equal(t, auth.Handshake.Verifier, srv.lastForm.Get("code_verifier"))
	})

	t.Run("cached exchange persists", func(t *testing.T) {
		store := &mockStore{}
		uc, srv := newTestUseCase(t, credential.ModeCached, store)
		ctx := testContext(srv)

		auth, err := uc.Authorize(ctx)
		require.NoError(t, err)

		_, err = uc.Complete(ctx, auth.Handshake, "good-code")
		require.NoError(t, err)
		assert.Equal(t, 1, store.saves)
		assert.Equal(t, "rt-1", store.tok.RefreshToken)
	})

	t.Run("pasted redirect url", func(t *testing.T) {
		uc, srv := newTestUseCase(t, credential.ModeManual, nil)
		ctx := testContext(srv)

		auth, err := uc.Authorize(ctx)
		require.NoError(t, err)

		redirect := "http://localhost/?state=" + auth.Handshake.State + "&code=good-code&scope=calendar"
		_, err = uc.Complete(ctx, auth.Handshake, redirect)
		require.NoError(t, err)
		assert.Equal(t, 1, srv.exchanges)
	})

	t.Run("state mismatch", func(t *testing.T) {
		uc, srv := newTestUseCase(t, credential.ModeManual, nil)
		ctx := testContext(srv)

		auth, err := uc.Authorize(ctx)
		require.NoError(t, err)

		_, err = uc.Complete(ctx, auth.Handshake, "http://localhost/?state=forged&code=good-code")
		assert.ErrorIs(t, err, credential.ErrStateMismatch)
		assert.Equal(t, 0, srv.exchanges)
	})

	t.Run("invalid code", func(t *testing.T) {
		uc, srv := newTestUseCase(t, credential.ModeManual, nil)
		ctx := testContext(srv)

		auth, err := uc.Authorize(ctx)
		require.NoError(t, err)

		_, err = uc.Complete(ctx, auth.Handshake, "bad-code")
		require.ErrorIs(t, err, credential.ErrCodeExchange)
		assert.True(t, strings.Contains(err.Error(), "invalid_grant"))
	})

	t.Run("empty code", func(t *testing.T) {
		uc, _ := newTestUseCase(t, credential.ModeManual, nil)
		_, err := uc.Complete(context.Background(), &credential.Handshake{State: "s", CreatedAt: time.Now()}, "   ")
		assert.ErrorIs(t, err, credential.ErrEmptyCode)
	})

	t.Run("expired handshake", func(t *testing.T) {
		uc, srv := newTestUseCase(t, credential.ModeManual, nil)
		ctx := testContext(srv)

		auth, err := uc.Authorize(ctx)
		require.NoError(t, err)

		uc.now = func() time.Time { return auth.Handshake.CreatedAt.Add(credential.HandshakeTTL + time.Second) }
		_, err = uc.Complete(ctx, auth.Handshake, "good-code")
		assert.ErrorIs(t, err, credential.ErrHandshakeOld)
		assert.Equal(t, 0, srv.exchanges)
	})

	t.Run("no handshake", func(t *testing.T) {
		uc, _ := newTestUseCase(t, credential.ModeManual, nil)
		_, err := uc.Complete(context.Background(), nil, "good-code")
		assert.ErrorIs(t, err, credential.ErrNoHandshake)
	})
}

func TestPersistingTokenSource(t *testing.T) {
	store := &mockStore{}
	uc, srv := newTestUseCase(t, credential.ModeCached, store)
	ctx := testContext(srv)

	cfg, err := uc.loadConfig()
	require.NoError(t, err)

	// Expired token forces the underlying source to refresh on first use.
	ts := uc.persisting(ctx, cfg, &oauth2.Token{AccessToken: "old", RefreshToken: "rt", Expiry: time.Now().Add(-time.Minute)})

	tok, err := ts.Token()
	require.NoError(t, err)
	assert.Equal(t, "refreshed", tok.AccessToken)
	assert.Equal(t, 1, store.saves)

	_, err = ts.Token()
	require.NoError(t, err)
	assert.Equal(t, 1, store.saves)
}
