package db

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"propboost_backend/platform/logger"
)

// Retry runs fn up to attempts times with quadratic backoff from baseDelay
// plus up to 20% jitter. Containers start the database and the binaries
// together, so startup calls use it.
func Retry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts %d", name, attempts)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if lastErr = fn(); lastErr == nil {
			return nil
		}
		log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "of", attempts, "error", lastErr)

		if attempt == attempts {
			break
		}
		delay := time.Duration(attempt*attempt) * baseDelay
		if delay > 0 {
			delay += time.Duration(rand.Int64N(int64(delay)/5 + 1))
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}

	return fmt.Errorf("%s: %w", name, lastErr)
}
