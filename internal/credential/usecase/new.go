package usecase

import (
	"time"

	"google.golang.org/api/calendar/v3"

	"taskcal-bot/internal/credential"
	"taskcal-bot/internal/credential/repository"
	pkgLog "taskcal-bot/pkg/log"
)

// Config holds the credential use case settings.
type Config struct {
	Mode             credential.Mode
	ClientSecretPath string   // credentials.json, Google installed-app format
	RedirectURL      string   // overrides the first redirect_uris entry when set
	Scopes           []string // defaults to the Calendar read/write scope
}

type implUseCase struct {
	l                pkgLog.Logger
	store            repository.TokenStore
	mode             credential.Mode
	clientSecretPath string
	redirectURL      string
	scopes           []string
	now              func() time.Time
}

var _ credential.UseCase = (*implUseCase)(nil)

// New creates a credential UseCase. store may be nil in manual mode.
func New(l pkgLog.Logger, store repository.TokenStore, cfg Config) *implUseCase {
	scopes := cfg.Scopes
	if len(scopes) == 0 {
		scopes = []string{calendar.CalendarScope}
	}
	mode := cfg.Mode
	if mode == "" {
		mode = credential.ModeCached
	}
	return &implUseCase{
		l:                l,
		store:            store,
		mode:             mode,
		clientSecretPath: cfg.ClientSecretPath,
		redirectURL:      cfg.RedirectURL,
		scopes:           scopes,
		now:              time.Now,
	}
}
