// Package testutil holds helpers shared by tests that wait on real time.
package testutil

import (
	"context"
	"fmt"
	"time"
)

// Poll checks condition every interval until it holds, the timeout passes
// or ctx is done.
func Poll(ctx context.Context, condition func() bool, timeout, interval time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		if condition() {
			return nil
		}
		if !time.Now().Before(deadline) {
			return fmt.Errorf("timeout waiting for condition (threshold: %v)", timeout)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}
}
