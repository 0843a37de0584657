package testutil

import (
	"context"
	"testing"
	"time"
)

// DefaultTimeout bounds a single test's blocking calls.
const DefaultTimeout = 5 * time.Second

// Context returns a context cancelled at timeout or at test cleanup,
// whichever comes first. It never outlives the test deadline.
func Context(t testing.TB, timeout time.Duration) context.Context {
	t.Helper()
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if withDeadline, ok := t.(interface{ Deadline() (time.Time, bool) }); ok {
		if deadline, ok := withDeadline.Deadline(); ok {
			if remaining := time.Until(deadline) - time.Second; remaining > 0 && remaining < timeout {
				timeout = remaining
			}
		}
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	t.Cleanup(cancel)
	return ctx
}

// CancelledContext returns a context that is already done.
func CancelledContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	return ctx
}
