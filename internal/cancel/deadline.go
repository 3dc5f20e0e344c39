package cancel

import (
	"sync/atomic"
	"time"

	"github.com/randomizedcoder/pollgate/internal/clock"
)

// DeadlineCanceler is done once its clock reaches a deadline, or after
// Cancel. It reads the clock on every Done() until it trips.
type DeadlineCanceler struct {
	src      clock.Source
	deadline clock.Sample
	done     atomic.Bool
}

// NewDeadline returns a canceler that trips after d on src.
// A non-positive d is done immediately.
func NewDeadline(src clock.Source, d time.Duration) *DeadlineCanceler {
	c := &DeadlineCanceler{src: src, deadline: src.Now() + clock.Sample(d)}
	if d <= 0 {
		c.done.Store(true)
	}
	return c
}

// Done returns true once the deadline has passed or Cancel was called.
func (c *DeadlineCanceler) Done() bool {
	if c.done.Load() {
		return true
	}
	if c.src.Now() >= c.deadline {
		c.done.Store(true)
		return true
	}
	return false
}

// Cancel trips the canceler early.
func (c *DeadlineCanceler) Cancel() {
	c.done.Store(true)
}
