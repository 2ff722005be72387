package catalog

import (
	"context"
	"time"
)

// withRetry runs fn up to maxAttempts times with exponential backoff
// (base, 2*base, 4*base, ...). Returns the number of attempts made and
// the last error. A context cancellation during backoff aborts
// immediately.
func withRetry(ctx context.Context, maxAttempts int, base time.Duration, fn func() error) (int, error) {
	var last error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return attempt - 1, err
		}
		if last = fn(); last == nil {
			return attempt, nil
		}
		if attempt == maxAttempts {
			break
		}
		backoff := time.Duration(1<<(attempt-1)) * base
		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return attempt, ctx.Err()
		}
	}
	return maxAttempts, last
}
