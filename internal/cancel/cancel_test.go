package cancel_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/randomizedcoder/pollgate/internal/cancel"
	"github.com/randomizedcoder/pollgate/internal/clock"
)

func TestContextCanceler(t *testing.T) {
	c := cancel.NewContext(context.Background())

	assert.False(t, c.Done(), "expected Done() = false before Cancel()")
	c.Cancel()
	assert.True(t, c.Done(), "expected Done() = true after Cancel()")

	// Verify idempotent
	c.Cancel()
	assert.True(t, c.Done(), "expected Done() = true after second Cancel()")
}

func TestContextCanceler_Parent(t *testing.T) {
	parent, stop := context.WithCancel(context.Background())
	c := cancel.NewContext(parent)
	assert.False(t, c.Done())

	stop()
	assert.True(t, c.Done(), "expected Done() = true after the parent is cancelled")

	select {
	case <-c.Context().Done():
	default:
		t.Error("expected context to be done")
	}
}

func TestContextCanceler_Err(t *testing.T) {
	c := cancel.NewContext(context.Background())
	assert.NoError(t, c.Err())
	c.Cancel()
	assert.ErrorIs(t, c.Err(), context.Canceled)
}

func TestSignalCanceler_ParentAndCancel(t *testing.T) {
	parent, stop := context.WithCancel(context.Background())
	c := cancel.NewSignal(parent, os.Interrupt)
	assert.False(t, c.Done())
	stop()
	assert.True(t, c.Done(), "parent cancellation must propagate")

	c2 := cancel.NewSignal(context.Background(), os.Interrupt)
	c2.Cancel()
	assert.True(t, c2.Done())
	c2.Cancel()
}

func TestAtomicCanceler(t *testing.T) {
	c := cancel.NewAtomic()

	assert.False(t, c.Done())
	c.Cancel()
	assert.True(t, c.Done())

	c.Reset()
	assert.False(t, c.Done(), "expected Done() = false after Reset()")
}

func TestAtomicCanceler_Countdown(t *testing.T) {
	c := cancel.NewCountdown(3)
	assert.Equal(t, int64(3), c.Remaining())

	assert.False(t, c.Count())
	assert.False(t, c.Count())
	assert.False(t, c.Done())
	assert.True(t, c.Count(), "the third Count trips the canceler")
	assert.True(t, c.Done())
	assert.False(t, c.Count(), "only one Count reports the trip")
	assert.Zero(t, c.Remaining())

	c.Reset()
	assert.False(t, c.Done())
	assert.Equal(t, int64(3), c.Remaining())
}

func TestAtomicCanceler_CountdownNonPositive(t *testing.T) {
	assert.True(t, cancel.NewCountdown(0).Done())
	assert.True(t, cancel.NewCountdown(-1).Done())
}

func TestDeadlineCanceler(t *testing.T) {
	fc := clock.NewFake()
	c := cancel.NewDeadline(fc, time.Second)

	assert.False(t, c.Done())
	fc.Advance(999 * time.Millisecond)
	assert.False(t, c.Done())
	fc.Advance(time.Millisecond)
	assert.True(t, c.Done())
}

func TestDeadlineCanceler_EarlyCancel(t *testing.T) {
	c := cancel.NewDeadline(clock.NewFake(), time.Hour)
	c.Cancel()
	assert.True(t, c.Done())
}

func TestDeadlineCanceler_NonPositive(t *testing.T) {
	assert.True(t, cancel.NewDeadline(clock.NewFake(), 0).Done())
	assert.True(t, cancel.NewDeadline(clock.NewFake(), -time.Second).Done())
}

func TestAny(t *testing.T) {
	fc := clock.NewFake()
	sig := cancel.NewAtomic()
	dl := cancel.NewDeadline(fc, time.Second)
	c := cancel.Any(sig, dl)

	assert.False(t, c.Done())
	fc.Advance(time.Second)
	assert.True(t, c.Done(), "deadline alone must stop the loop")

	sig2 := cancel.NewAtomic()
	c2 := cancel.Any(sig2, cancel.NewDeadline(fc, time.Hour))
	sig2.Cancel()
	assert.True(t, c2.Done(), "signal alone must stop the loop")

	c3 := cancel.Any(cancel.NewAtomic(), cancel.NewAtomic())
	c3.Cancel()
	assert.True(t, c3.Done())
}

// Test that all implementations satisfy the interface
func TestCancelerInterface(t *testing.T) {
	testCases := []struct {
		name string
		c    cancel.Canceler
	}{
		{"Context", cancel.NewContext(context.Background())},
		{"Atomic", cancel.NewAtomic()},
		{"Deadline", cancel.NewDeadline(clock.NewFake(), time.Hour)},
		{"Any", cancel.Any(cancel.NewAtomic())},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.False(t, tc.c.Done(), "expected Done() = false initially")
			tc.c.Cancel()
			assert.True(t, tc.c.Done(), "expected Done() = true after Cancel()")
		})
	}
}
