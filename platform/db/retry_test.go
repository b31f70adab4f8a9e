package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"propboost_backend/platform/logger"
)

var testLog = logger.New("development")

func TestRetrySucceedsAfterTransientFailures(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), testLog, "connect", 3, time.Millisecond, func() error {
		calls++
		if calls < 3 {
			return errors.New("connection refused")
		}
		return nil
	})
	if err != nil || calls != 3 {
		t.Fatalf("expected success on third attempt, got err=%v calls=%d", err, calls)
	}
}

func TestRetryWrapsLastError(t *testing.T) {
	cause := errors.New("connection refused")
	err := Retry(context.Background(), testLog, "connect", 2, time.Millisecond, func() error { return cause })
	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped cause, got %v", err)
	}
}

func TestRetryStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := Retry(ctx, testLog, "connect", 5, time.Hour, func() error {
		calls++
		cancel()
		return errors.New("down")
	})
	if !errors.Is(err, context.Canceled) || calls != 1 {
		t.Fatalf("expected cancellation after one call, got err=%v calls=%d", err, calls)
	}
}

func TestRetryRejectsZeroAttempts(t *testing.T) {
	if err := Retry(context.Background(), testLog, "connect", 0, time.Millisecond, func() error { return nil }); err == nil {
		t.Fatal("expected error for zero attempts")
	}
}
