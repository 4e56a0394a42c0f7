package usecase

import (
	"context"
	"time"

	"taskcal-bot/internal/conversation"
	"taskcal-bot/internal/conversation/repository"
	"taskcal-bot/internal/credential"
	"taskcal-bot/internal/event"
	pkgLog "taskcal-bot/pkg/log"
)

// TimezoneResolver maps a coordinate to an IANA timezone identifier.
type TimezoneResolver interface {
	Lookup(ctx context.Context, lat, lng float64) (string, error)
}

type implUseCase struct {
	l           pkgLog.Logger
	repo        repository.SessionRepository
	timezones   TimezoneResolver
	credentials credential.UseCase
	events      event.UseCase
	metrics     *Metrics
	now         func() time.Time
}

var _ conversation.UseCase = (*implUseCase)(nil)

// New creates a new conversation UseCase. metrics may be nil.
func New(
	l pkgLog.Logger,
	repo repository.SessionRepository,
	timezones TimezoneResolver,
	credentials credential.UseCase,
	events event.UseCase,
	metrics *Metrics,
) *implUseCase {
	return &implUseCase{
		l:           l,
		repo:        repo,
		timezones:   timezones,
		credentials: credentials,
		events:      events,
		metrics:     metrics,
		now:         time.Now,
	}
}

// OnEvict returns the callback for sessions dropped by the session table.
func OnEvict(l pkgLog.Logger, m *Metrics) func(conversation.Session) {
	return func(s conversation.Session) {
		l.Infof(context.Background(), "%s: chat %d abandoned in %s after %s",
			LogPrefixEvict, s.ChatID, s.State, time.Since(s.UpdatedAt).Round(time.Second))
		m.finish(OutcomeExpired)
	}
}
