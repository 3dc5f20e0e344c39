package cancel

import "sync/atomic"

// AtomicCanceler is done once its budget of Count calls is used up, or
// after Cancel.
//
// Done is a single atomic load. NewAtomic gives a plain flag; NewCountdown
// stops a loop after a fixed number of events, such as laps recorded.
type AtomicCanceler struct {
	budget int64
	left   atomic.Int64
}

// NewAtomic creates a canceler that is done only after Cancel.
func NewAtomic() *AtomicCanceler {
	return NewCountdown(1)
}

// NewCountdown creates a canceler that is done after n calls to Count.
// n < 1 is done immediately.
func NewCountdown(n int64) *AtomicCanceler {
	a := &AtomicCanceler{budget: n}
	a.left.Store(n)
	return a
}

// Done returns true once the budget is spent.
func (a *AtomicCanceler) Done() bool {
	return a.left.Load() <= 0
}

// Count spends one unit of the budget. It returns true only for the call
// that made the canceler done.
func (a *AtomicCanceler) Count() bool {
	return a.left.Add(-1) == 0
}

// Remaining returns how many Count calls are left before Done.
func (a *AtomicCanceler) Remaining() int64 {
	return max(a.left.Load(), 0)
}

// Cancel spends the whole budget. Safe to call multiple times.
func (a *AtomicCanceler) Cancel() {
	a.left.Store(0)
}

// Reset restores the budget so the loop can be run again.
// Not safe to call concurrently with Done(), Count() or Cancel().
func (a *AtomicCanceler) Reset() {
	a.left.Store(a.budget)
}
