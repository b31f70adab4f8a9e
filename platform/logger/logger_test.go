package logger

import (
	"context"
	"errors"
	"testing"
)

func TestWithContextNilReturnsSameLogger(t *testing.T) {
	log := New("development")
	//nolint:staticcheck // nil context is part of the contract
	if got := log.WithContext(nil); got != log {
		t.Fatal("expected same logger for nil context")
	}
}

func TestWithContextWithoutValuesReturnsSameLogger(t *testing.T) {
	log := New("production")
	if got := log.WithContext(context.Background()); got != log {
		t.Fatal("expected same logger when context carries nothing")
	}
}

func TestWithContextAddsRequestAndActor(t *testing.T) {
	log := New("production")
	ctx := context.WithValue(context.Background(), RequestIDKey, "req-1")
	ctx = context.WithValue(ctx, ActorKey, "agent-7")
	if got := log.WithContext(ctx); got == log {
		t.Fatal("expected derived logger when request id and actor are present")
	}
}

func TestHelpersDoNotPanic(t *testing.T) {
	log := New("development")
	log.DependencyFallback("judge", "score", errors.New("timeout"), "lead_id", "abc")
	log.AuditWriteFailed("activity", "lead", "abc", errors.New("db down"))
	log.HTTPRequest("GET", "/api/v1/leads", 503, 12.5, "127.0.0.1", "req-1")
	log.RateLimitExceeded("127.0.0.1", "/api/v1/leads")
}
