//go:build unix

package cancel_test

import (
	"context"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/randomizedcoder/pollgate/internal/cancel"
)

func TestSignalCanceler_Signal(t *testing.T) {
	c := cancel.NewSignal(context.Background(), syscall.SIGUSR1)
	defer c.Cancel()
	require.False(t, c.Done())

	require.NoError(t, syscall.Kill(syscall.Getpid(), syscall.SIGUSR1))
	require.Eventually(t, c.Done, time.Second, time.Millisecond)
}
