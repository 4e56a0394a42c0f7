package event

import "time"

// CreateInput is the collected event data. Start and End must already be
// localized to TimezoneID.
type CreateInput struct {
	Title      string
	Start      time.Time
	End        time.Time
	TimezoneID string
	CalendarID string // empty means the configured default
}

// CreateOutput describes the created event.
type CreateOutput struct {
	ID   string
	Link string
}
