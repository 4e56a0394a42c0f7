package quote

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// ErrNoQuote is returned when the service answers without a quote.
var ErrNoQuote = errors.New("quote service returned no quote")

// Client fetches quotes from a local quote service that answers with
// a JSON array of objects carrying a "quote" field.
type Client struct {
	url        string
	httpClient *http.Client
}

// NewClient creates a quote client for the given endpoint.
func NewClient(url string) *Client {
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

// Fetch returns the "quote" field of the first element of the response.
func (c *Client) Fetch(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build quote request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call quote service: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read quote response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("quote service error %d: %s", resp.StatusCode, string(raw))
	}
	if !gjson.ValidBytes(raw) {
		return "", fmt.Errorf("quote service returned invalid JSON")
	}

	q := gjson.GetBytes(raw, "0.quote")
	if !q.Exists() || strings.TrimSpace(q.String()) == "" {
		return "", ErrNoQuote
	}
	return q.String(), nil
}
