package event

import "errors"

var (
	ErrNoCredentials   = errors.New("calendar credentials are missing")
	ErrEmptyTitle      = errors.New("event title is empty")
	ErrMissingTimezone = errors.New("event timezone is missing")
	ErrInvalidRange    = errors.New("event ends before it starts")
	ErrCalendar        = errors.New("calendar service rejected the event")
)
