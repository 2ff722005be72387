package catalog

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestWithRetrySucceedsFirstTry(t *testing.T) {
	calls := 0
	attempts, err := withRetry(context.Background(), 3, time.Millisecond, func() error {
		calls++
		return nil
	})
	if err != nil || attempts != 1 || calls != 1 {
		t.Fatalf("attempts=%d calls=%d err=%v, want 1/1/nil", attempts, calls, err)
	}
}

func TestWithRetryRecoversAfterFailure(t *testing.T) {
	calls := 0
	attempts, err := withRetry(context.Background(), 3, time.Millisecond, func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if attempts != 3 || calls != 3 {
		t.Fatalf("attempts=%d calls=%d, want 3/3", attempts, calls)
	}
}

func TestWithRetryExhaustsAttempts(t *testing.T) {
	sentinel := errors.New("hard failure")
	calls := 0
	attempts, err := withRetry(context.Background(), 3, time.Millisecond, func() error {
		calls++
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("err = %v, want the last failure", err)
	}
	if attempts != 3 || calls != 3 {
		t.Fatalf("attempts=%d calls=%d, want 3/3", attempts, calls)
	}
}

func TestWithRetryStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	_, err := withRetry(ctx, 5, time.Hour, func() error {
		calls++
		cancel()
		return errors.New("fail then hang in backoff")
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if calls != 1 {
		t.Fatalf("calls = %d, want 1 (no retry after cancel)", calls)
	}
}
