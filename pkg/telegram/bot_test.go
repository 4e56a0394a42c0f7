package telegram_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"taskcal-bot/pkg/telegram"
)

func TestBot(t *testing.T) {
	var lastMarkup map[string]interface{}
	var lastOffset float64

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path

		if strings.HasSuffix(path, "/setWebhook") {
			var req map[string]string
			json.NewDecoder(r.Body).Decode(&req)
			if req["url"] == "cause_error" {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"ok": false, "description": "invalid url"}`))
				return
			}
			if req["url"] == "cause_500" {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			if req["secret_token"] != "s3cret" {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"ok": false, "description": "missing secret"}`))
				return
			}
			w.Write([]byte(`{"ok": true, "description": "webhook set"}`))
			return
		}

		if strings.HasSuffix(path, "/deleteWebhook") {
			w.Write([]byte(`{"ok": true}`))
			return
		}

		if strings.HasSuffix(path, "/getUpdates") {
			var req map[string]interface{}
			json.NewDecoder(r.Body).Decode(&req)
			lastOffset, _ = req["offset"].(float64)
			w.Write([]byte(`{"ok": true, "result": [
				{"update_id": 10, "message": {"message_id": 1, "chat": {"id": 5}, "text": "hi"}},
				{"update_id": 11, "message": {"message_id": 2, "chat": {"id": 5}, "location": {"latitude": 40.7128, "longitude": -74.006}}}
			]}`))
			return
		}

		if strings.HasSuffix(path, "/sendMessage") {
			var req map[string]interface{}
			json.NewDecoder(r.Body).Decode(&req)
			text := req["text"].(string)
			lastMarkup, _ = req["reply_markup"].(map[string]interface{})

			if text == "cause_error" {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"ok": false, "description": "invalid text"}`))
				return
			}
			if text == "cause_500" {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			w.Write([]byte(`{"ok": true}`))
			return
		}

		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	ctx := context.Background()
	bot := telegram.NewBot("test-token")
	bot.SetAPIURL(ts.URL)

	t.Run("SetWebhook Success", func(t *testing.T) {
		if err := bot.SetWebhook(ctx, "https://example.com/webhook", "s3cret"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("SetWebhook API Failed", func(t *testing.T) {
		err := bot.SetWebhook(ctx, "cause_error", "s3cret")
		if err == nil || !strings.Contains(err.Error(), "invalid url") {
			t.Fatalf("expected api failure error, got: %v", err)
		}
	})

	t.Run("SetWebhook HTTP Failed", func(t *testing.T) {
		if err := bot.SetWebhook(ctx, "cause_500", "s3cret"); err == nil {
			t.Fatalf("expected http decoding error")
		}
	})

	t.Run("DeleteWebhook", func(t *testing.T) {
		if err := bot.DeleteWebhook(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("GetUpdates", func(t *testing.T) {
		updates, err := bot.GetUpdates(ctx, 10, 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(updates) != 2 {
			t.Fatalf("expected 2 updates, got %d", len(updates))
		}
		if lastOffset != 10 {
			t.Errorf("expected offset 10 in request, got %v", lastOffset)
		}
		loc := updates[1].Message.Location
		if loc == nil || loc.Latitude != 40.7128 || loc.Longitude != -74.006 {
			t.Errorf("unexpected location: %+v", loc)
		}
	})

	t.Run("SendMessage Success", func(t *testing.T) {
		if err := bot.SendMessage(ctx, 12345, "Hello"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if lastMarkup != nil {
			t.Errorf("expected no reply markup, got %v", lastMarkup)
		}
	})

	t.Run("SendMessageWithMode Success", func(t *testing.T) {
		if err := bot.SendMessageWithMode(ctx, 12345, "Hello", "Markdown"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("Send With Location Keyboard", func(t *testing.T) {
		err := bot.Send(ctx, telegram.SendMessageRequest{
			ChatID:      12345,
			Text:        "Share",
			ReplyMarkup: telegram.LocationRequestKeyboard("Share Location"),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		rows, ok := lastMarkup["keyboard"].([]interface{})
		if !ok || len(rows) != 1 {
			t.Fatalf("unexpected keyboard: %v", lastMarkup)
		}
		button := rows[0].([]interface{})[0].(map[string]interface{})
		if button["request_location"] != true {
			t.Errorf("expected request_location button, got %v", button)
		}
		if lastMarkup["one_time_keyboard"] != true {
			t.Errorf("expected one-time keyboard")
		}
	})

	t.Run("SendMessage API Failed", func(t *testing.T) {
		err := bot.SendMessage(ctx, 12345, "cause_error")
		if err == nil || !strings.Contains(err.Error(), "invalid text") {
			t.Fatalf("expected api failure error, got: %v", err)
		}
	})

	t.Run("SendMessage HTTP Failed", func(t *testing.T) {
		if err := bot.SendMessage(ctx, 12345, "cause_500"); err == nil {
			t.Fatalf("expected http decoding error")
		}
	})

	t.Run("Invalid API URL logic", func(t *testing.T) {
		badBot := telegram.NewBot("test")
		badBot.SetAPIURL("http://invalid-url.local:1234")
		if err := badBot.SendMessage(ctx, 12345, "fail"); err == nil {
			t.Errorf("expected network failure on invalid domain")
		}
	})
}
