// Package clock provides monotonic time sources for poll-driven gates.
//
// This package offers several implementations of the Source interface:
//   - Mono: the runtime's monotonic clock via runtime.nanotime
//   - Wall: time.Now's monotonic reading, relative to a fixed origin
//   - TSC: raw CPU timestamp counter (x86 only)
//   - Fake: a manually advanced clock for deterministic tests
//
// Samples from different sources share no origin and must never be
// compared with each other.
package clock

import (
	"errors"
	"fmt"
	"time"
)

// ErrClockUnavailable is returned when no usable monotonic clock exists.
var ErrClockUnavailable = errors.New("clock: monotonic clock unavailable")

// Sample is an opaque monotonic timestamp in nanoseconds from an
// arbitrary, source-specific origin.
type Sample int64

// Sub returns the duration s-o.
func (s Sample) Sub(o Sample) time.Duration {
	return time.Duration(s - o)
}

// Seconds returns the time between from and to in floating point seconds.
func Seconds(from, to Sample) float64 {
	return float64(to-from) / float64(time.Second)
}

// Source reads a monotonic clock.
//
// Now must never return a Sample earlier than one it returned before.
// Sources used by concurrent pollers must be safe for concurrent use;
// all sources in this package are.
type Source interface {
	Now() Sample
}

// Verify checks that src is present and does not run backwards across
// two consecutive reads.
func Verify(src Source) error {
	if src == nil {
		return fmt.Errorf("%w: nil source", ErrClockUnavailable)
	}
	a := src.Now()
	b := src.Now()
	if b < a {
		return fmt.Errorf("%w: sample regressed by %v", ErrClockUnavailable, a.Sub(b))
	}
	return nil
}
