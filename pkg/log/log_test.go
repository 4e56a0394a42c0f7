package log_test

import (
	"context"
	"testing"

	"taskcal-bot/pkg/log"
)

func TestTraceID(t *testing.T) {
	ctx := log.WithTraceID(context.Background(), "abc")
	if got := log.TraceID(ctx); got != "abc" {
		t.Errorf("expected trace id abc, got %q", got)
	}

	generated := log.WithTraceID(context.Background(), "")
	if log.TraceID(generated) == "" {
		t.Error("expected generated trace id")
	}

	if log.TraceID(context.Background()) != "" {
		t.Error("expected empty trace id on bare context")
	}
}

func TestInit(t *testing.T) {
	configs := []log.ZapConfig{
		{Level: "debug", Mode: log.ModeDebug, Encoding: log.EncodingConsole, ColorEnabled: true},
		{Level: "info", Mode: log.ModeProduction, Encoding: log.EncodingJSON},
		{Level: "not-a-level", Mode: log.ModeProduction, Encoding: log.EncodingConsole},
	}

	for _, cfg := range configs {
		l := log.Init(cfg)
		if l == nil {
			t.Fatalf("expected logger for %+v", cfg)
		}
		ctx := log.WithTraceID(context.Background(), "t-1")
		l.Infof(ctx, "hello %s", "world")
		l.Debug(ctx, "debug line")
	}
}
