// Package cancel provides cooperative stop signals for poll loops.
//
// A gate never blocks, so a busy loop stops only when it checks a stop
// signal between polls. This package offers several implementations of
// the Canceler interface:
//   - AtomicCanceler: atomic flag or event countdown, set from another goroutine
//   - ContextCanceler: wraps context.Context, optionally tied to OS signals
//   - DeadlineCanceler: fires once a clock.Source passes a deadline
//   - Any: combines several cancelers
package cancel

// Canceler provides cancellation signaling to poll loops.
//
// Implementations must be safe for concurrent use:
//   - Multiple goroutines may call Done() concurrently
//   - Cancel() may be called concurrently with Done()
type Canceler interface {
	// Done returns true if cancellation has been triggered.
	Done() bool

	// Cancel triggers cancellation. Safe to call multiple times.
	Cancel()
}

type anyCanceler []Canceler

// Any returns a Canceler that is done when any of cs is done.
// Cancel cancels all of them.
func Any(cs ...Canceler) Canceler {
	return anyCanceler(cs)
}

func (a anyCanceler) Done() bool {
	for _, c := range a {
		if c.Done() {
			return true
		}
	}
	return false
}

func (a anyCanceler) Cancel() {
	for _, c := range a {
		c.Cancel()
	}
}
