package testutil

import (
	"testing"
	"time"
)

// Eventually polls fn every interval until it reports true. The test fails
// with msg once timeout elapses.
func Eventually(t testing.TB, timeout, interval time.Duration, fn func() bool, msg string) {
	t.Helper()
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for !fn() {
		select {
		case <-deadline.C:
			if msg == "" {
				msg = "condition not met before timeout"
			}
			t.Fatalf("%s", msg)
		case <-ticker.C:
		}
	}
}
