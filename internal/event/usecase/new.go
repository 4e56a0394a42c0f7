package usecase

import (
	"context"

	"golang.org/x/oauth2"

	"taskcal-bot/internal/event"
	"taskcal-bot/pkg/gcalendar"
	pkgLog "taskcal-bot/pkg/log"
)

// Calendar is the subset of the Calendar client used here.
type Calendar interface {
	CreateEvent(ctx context.Context, req gcalendar.CreateEventRequest) (*gcalendar.Event, error)
}

// CalendarFactory builds a Calendar for one set of credentials.
type CalendarFactory func(ctx context.Context, ts oauth2.TokenSource) (Calendar, error)

// DefaultCalendarFactory talks to the Google Calendar API.
func DefaultCalendarFactory(ctx context.Context, ts oauth2.TokenSource) (Calendar, error) {
	c, err := gcalendar.NewClientFromTokenSource(ctx, ts)
	if err != nil {
		return nil, err
	}
	return c, nil
}

type implUseCase struct {
	l          pkgLog.Logger
	calendars  CalendarFactory
	calendarID string
}

var _ event.UseCase = (*implUseCase)(nil)

// New creates a new event UseCase. A nil factory uses DefaultCalendarFactory.
func New(l pkgLog.Logger, calendars CalendarFactory, calendarID string) *implUseCase {
	if calendars == nil {
		calendars = DefaultCalendarFactory
	}
	if calendarID == "" {
		calendarID = gcalendar.PrimaryCalendarID
	}
	return &implUseCase{
		l:          l,
		calendars:  calendars,
		calendarID: calendarID,
	}
}
