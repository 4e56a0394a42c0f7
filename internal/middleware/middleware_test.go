package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"taskcal-bot/pkg/telegram"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Info(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Panicf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}

func newEngine(mw Middleware) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.POST("/webhook/telegram", mw.RateLimit(), mw.TelegramSecret(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return engine
}

func post(engine *gin.Engine, secret string) int {
	req, _ := http.NewRequest(http.MethodPost, "/webhook/telegram", nil)
	if secret != "" {
		req.Header.Set(telegram.SecretTokenHeader, secret)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w.Code
}

func TestTelegramSecret(t *testing.T) {
	engine := newEngine(New(&mockLogger{}, "s3cret", 0))

	if code := post(engine, "s3cret"); code != http.StatusOK {
		t.Errorf("expected 200 with correct secret, got %d", code)
	}
	if code := post(engine, "wrong"); code != http.StatusUnauthorized {
		t.Errorf("expected 401 with wrong secret, got %d", code)
	}
	if code := post(engine, ""); code != http.StatusUnauthorized {
		t.Errorf("expected 401 without secret, got %d", code)
	}

	open := newEngine(New(&mockLogger{}, "", 0))
	if code := post(open, ""); code != http.StatusOK {
		t.Errorf("expected 200 when no secret configured, got %d", code)
	}
}

func TestRateLimit(t *testing.T) {
	engine := newEngine(New(&mockLogger{}, "", 10)) // burst 1

	if code := post(engine, ""); code != http.StatusOK {
		t.Fatalf("expected first request to pass, got %d", code)
	}
	if code := post(engine, ""); code != http.StatusTooManyRequests {
		t.Errorf("expected 429, got %d", code)
	}
}
