package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPollBecomesTrue(t *testing.T) {
	calls := 0
	err := Poll(t.Context(), func() bool {
		calls++
		return calls >= 3
	}, 5*time.Second, time.Millisecond)
	require.NoError(t, err)
	require.Equal(t, 3, calls)
}

func TestPollTimeout(t *testing.T) {
	err := Poll(t.Context(), func() bool { return false }, 20*time.Millisecond, 5*time.Millisecond)
	require.ErrorContains(t, err, "timeout waiting for condition")
}

func TestPollContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	checked := make(chan struct{})
	go func() {
		<-checked
		cancel()
	}()
	first := true
	err := Poll(ctx, func() bool {
		if first {
			first = false
			close(checked)
		}
		return false
	}, 5*time.Second, 10*time.Millisecond)
	require.ErrorIs(t, err, context.Canceled)
}
