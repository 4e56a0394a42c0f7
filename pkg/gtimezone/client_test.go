package gtimezone_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"googlemaps.github.io/maps"

	"taskcal-bot/pkg/gtimezone"
)

func TestLookup(t *testing.T) {
	var gotQuery map[string]string

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/maps/api/timezone/json" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		q := r.URL.Query()
		gotQuery = map[string]string{
			"location":  q.Get("location"),
			"timestamp": q.Get("timestamp"),
			"key":       q.Get("key"),
		}

		switch q.Get("location") {
		case "40.7128,-74.006":
			w.Write([]byte(`{"status": "OK", "timeZoneId": "America/New_York", "timeZoneName": "Eastern Standard Time"}`))
		case "0,0":
			w.Write([]byte(`{"status": "ZERO_RESULTS"}`))
		case "1,1":
			w.Write([]byte(`{"status": "REQUEST_DENIED", "errorMessage": "The provided API key is invalid."}`))
		case "2,2":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			w.Write([]byte(`not json`))
		}
	}))
	defer ts.Close()

	client, err := gtimezone.NewClient("test-key", maps.WithBaseURL(ts.URL))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	client.SetClock(func() time.Time { return time.Unix(1709301600, 0) })
	ctx := context.Background()

	t.Run("OK", func(t *testing.T) {
		id, err := client.Lookup(ctx, 40.7128, -74.0060)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if id != "America/New_York" {
			t.Errorf("expected America/New_York, got %q", id)
		}
		if gotQuery["timestamp"] != "1709301600" || gotQuery["key"] != "test-key" {
			t.Errorf("unexpected query: %v", gotQuery)
		}
	})

	t.Run("Non OK status", func(t *testing.T) {
		_, err := client.Lookup(ctx, 0, 0)
		if !errors.Is(err, gtimezone.ErrTimezoneNotFound) {
			t.Fatalf("expected ErrTimezoneNotFound, got %v", err)
		}
	})

	t.Run("Service error message", func(t *testing.T) {
		_, err := client.Lookup(ctx, 1, 1)
		if !errors.Is(err, gtimezone.ErrTimezoneNotFound) {
			t.Fatalf("expected ErrTimezoneNotFound, got %v", err)
		}
	})

	t.Run("HTTP failure", func(t *testing.T) {
		_, err := client.Lookup(ctx, 2, 2)
		if !errors.Is(err, gtimezone.ErrTimezoneNotFound) {
			t.Fatalf("expected ErrTimezoneNotFound, got %v", err)
		}
	})

	t.Run("Bad body", func(t *testing.T) {
		_, err := client.Lookup(ctx, 3, 3)
		if !errors.Is(err, gtimezone.ErrTimezoneNotFound) {
			t.Fatalf("expected ErrTimezoneNotFound, got %v", err)
		}
	})

	t.Run("Canceled context", func(t *testing.T) {
		canceled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := client.Lookup(canceled, 40.7128, -74.0060)
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	})

	t.Run("Out of range", func(t *testing.T) {
		_, err := client.Lookup(ctx, 91, 0)
		if !errors.Is(err, gtimezone.ErrInvalidLocation) {
			t.Fatalf("expected ErrInvalidLocation, got %v", err)
		}
	})
}
