package logger

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestContextFieldsAreLogged(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := New(zap.New(core))

	ctx := WithTraceID(context.Background(), "req-1")
	ctx = WithWorkerID(ctx, 3)
	ctx = WithActionType(ctx, "health_alert")

	log.Infof(ctx, "processed %d jobs", 2)

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	entry := entries[0]
	if entry.Message != "processed 2 jobs" {
		t.Errorf("message = %q", entry.Message)
	}
	fields := entry.ContextMap()
	if fields["trace_id"] != "req-1" {
		t.Errorf("trace_id = %v", fields["trace_id"])
	}
	if fields["worker_id"] != int64(3) {
		t.Errorf("worker_id = %v", fields["worker_id"])
	}
	if fields["action_type"] != "health_alert" {
		t.Errorf("action_type = %v", fields["action_type"])
	}
}

func TestLevelFiltering(t *testing.T) {
	core, logs := observer.New(ParseLevel("warn"))
	log := New(zap.New(core))

	log.Debugf(context.Background(), "debug")
	log.Infof(context.Background(), "info")
	log.Warnf(context.Background(), "warn")
	log.Errorf(context.Background(), "error")

	if got := logs.Len(); got != 2 {
		t.Fatalf("expected 2 entries at warn level, got %d", got)
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"info":    zapcore.InfoLevel,
		"warn":    zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"verbose": zapcore.InfoLevel,
		"":        zapcore.InfoLevel,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestTraceID(t *testing.T) {
	if TraceID(context.Background()) != "" {
		t.Fatal("expected empty trace id")
	}
	if got := TraceID(WithTraceID(context.Background(), "abc")); got != "abc" {
		t.Fatalf("TraceID() = %q", got)
	}
}
