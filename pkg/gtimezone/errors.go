package gtimezone

import "errors"

var (
	// ErrTimezoneNotFound is returned when the service does not yield a timezone id.
	ErrTimezoneNotFound = errors.New("timezone not found for location")
	ErrInvalidLocation  = errors.New("latitude or longitude out of range")
)
