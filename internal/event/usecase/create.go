package usecase

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/oauth2"

	"taskcal-bot/internal/event"
	"taskcal-bot/pkg/gcalendar"
)

// Create validates the input and inserts the event.
func (uc *implUseCase) Create(ctx context.Context, ts oauth2.TokenSource, input event.CreateInput) (event.CreateOutput, error) {
	if ts == nil {
		return event.CreateOutput{}, event.ErrNoCredentials
	}
	if strings.TrimSpace(input.Title) == "" {
		return event.CreateOutput{}, event.ErrEmptyTitle
	}
	if input.TimezoneID == "" {
		return event.CreateOutput{}, event.ErrMissingTimezone
	}
	if input.End.Before(input.Start) {
		return event.CreateOutput{}, event.ErrInvalidRange
	}

	cal, err := uc.calendars(ctx, ts)
	if err != nil {
		uc.l.Errorf(ctx, "internal.event.usecase.Create: calendar client: %v", err)
		return event.CreateOutput{}, fmt.Errorf("%w: %v", event.ErrCalendar, err)
	}

	calendarID := input.CalendarID
	if calendarID == "" {
		calendarID = uc.calendarID
	}

	created, err := cal.CreateEvent(ctx, gcalendar.CreateEventRequest{
		CalendarID: calendarID,
		Summary:    input.Title,
		StartTime:  input.Start,
		EndTime:    input.End,
		Timezone:   input.TimezoneID,
	})
	if err != nil {
		uc.l.Errorf(ctx, "internal.event.usecase.Create: %v", err)
		return event.CreateOutput{}, fmt.Errorf("%w: %v", event.ErrCalendar, err)
	}

	uc.l.Infof(ctx, "internal.event.usecase.Create: created event %s in %s", created.ID, calendarID)
	return event.CreateOutput{ID: created.ID, Link: created.HtmlLink}, nil
}
