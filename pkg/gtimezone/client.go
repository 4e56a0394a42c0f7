package gtimezone

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"googlemaps.github.io/maps"
)

// Client resolves IANA timezone ids through the Google Time Zone API.
type Client struct {
	maps *maps.Client
	now  func() time.Time
}

// NewClient creates a Time Zone API client with the given API key. opts are
// applied after the defaults, e.g. maps.WithBaseURL to point at a test server.
func NewClient(apiKey string, opts ...maps.ClientOption) (*Client, error) {
	options := append([]maps.ClientOption{
		maps.WithAPIKey(apiKey),
		maps.WithHTTPClient(&http.Client{Timeout: 10 * time.Second}),
	}, opts...)

	mc, err := maps.NewClient(options...)
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &Client{maps: mc, now: time.Now}, nil
}

// SetClock overrides the clock used for the request timestamp.
func (c *Client) SetClock(now func() time.Time) {
	c.now = now
}

// Lookup returns the IANA timezone id at (lat, lng), e.g. "America/New_York".
// Any HTTP failure or non-OK service status yields ErrTimezoneNotFound.
func (c *Client) Lookup(ctx context.Context, lat, lng float64) (string, error) {
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return "", fmt.Errorf("%w: (%v, %v)", ErrInvalidLocation, lat, lng)
	}

	res, err := c.maps.Timezone(ctx, &maps.TimezoneRequest{
		Location:  &maps.LatLng{Lat: lat, Lng: lng},
		Timestamp: c.now(),
	})
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("timezone lookup: %w", ctx.Err())
		}
		return "", fmt.Errorf("%w: %v", ErrTimezoneNotFound, err)
	}
	if res == nil || res.TimeZoneID == "" {
		return "", fmt.Errorf("%w: empty timeZoneId", ErrTimezoneNotFound)
	}

	return res.TimeZoneID, nil
}
