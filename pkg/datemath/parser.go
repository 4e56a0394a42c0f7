package datemath

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Layout is the wall-clock format users type, YYYY-MM-DD HH:MM:SS.
const Layout = "2006-01-02 15:04:05"

// ErrInvalidFormat is returned when a string does not match Layout.
var ErrInvalidFormat = errors.New("date must be in YYYY-MM-DD HH:MM:SS format")

// ErrEndBeforeStart is returned when an end wall-clock precedes its start.
var ErrEndBeforeStart = errors.New("end date must not be before start date")

// Parser localizes wall-clock strings into a fixed IANA timezone.
type Parser struct {
	location *time.Location
}

// NewParser creates a new date parser for the given IANA timezone string.
// e.g. "America/New_York"
func NewParser(timezone string) (*Parser, error) {
	if strings.TrimSpace(timezone) == "" {
		return nil, errors.New("timezone is required")
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return &Parser{location: loc}, nil
}

// Location returns the parser's timezone.
func (p *Parser) Location() *time.Location {
	return p.location
}

// Parse interprets raw as a wall-clock time in the parser's timezone.
// A time inside a spring-forward gap is read with the offset in force
// before the transition, so 02:30 on a night that skips 02:00-03:00
// lands on 03:30.
func (p *Parser) Parse(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	t, err := time.ParseInLocation(Layout, raw, p.location)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidFormat, raw)
	}
	if t.Format(Layout) == raw {
		return t, nil
	}

	// Nonexistent wall clock, normalized backwards by the length of the gap.
	wall, _ := time.Parse(Layout, raw)
	got, _ := time.Parse(Layout, t.Format(Layout))
	if gap := wall.Sub(got); gap > 0 {
		t = t.Add(gap)
	}
	return t, nil
}

// ParseRange parses start and end and checks end is not before start.
func (p *Parser) ParseRange(startRaw, endRaw string) (time.Time, time.Time, error) {
	start, err := p.Parse(startRaw)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("start: %w", err)
	}
	end, err := p.Parse(endRaw)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("end: %w", err)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, ErrEndBeforeStart
	}
	return start, end, nil
}

// Validate checks raw against Layout without binding a timezone.
func Validate(raw string) error {
	if _, err := time.Parse(Layout, strings.TrimSpace(raw)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidFormat, raw)
	}
	return nil
}

// ValidateRange checks both strings and that end does not precede start
// as wall-clock values.
func ValidateRange(startRaw, endRaw string) error {
	if err := Validate(startRaw); err != nil {
		return err
	}
	if err := Validate(endRaw); err != nil {
		return err
	}
	start, _ := time.Parse(Layout, strings.TrimSpace(startRaw))
	end, _ := time.Parse(Layout, strings.TrimSpace(endRaw))
	if end.Before(start) {
		return ErrEndBeforeStart
	}
	return nil
}
