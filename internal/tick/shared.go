package tick

import (
	"sync/atomic"
	"time"

	"github.com/randomizedcoder/pollgate/internal/clock"
)

// Shared is a gate safe for concurrent pollers.
//
// Several goroutines may poll the same Shared; for each period exactly
// one of them observes the fire. The clock source must itself be safe
// for concurrent use.
type Shared struct {
	src       clock.Source
	period    time.Duration
	threshold int64 // nanoseconds
	step      uint64

	last  atomic.Int64
	ticks atomic.Uint64
}

// NewShared creates a Shared gate firing at freqHz times per second.
func NewShared(freqHz float64, opts ...Option) (*Shared, error) {
	period, err := Period(freqHz)
	if err != nil {
		return nil, err
	}
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}
	s := &Shared{
		src:       o.clock,
		period:    period,
		threshold: int64(threshold(period)),
		step:      o.step,
	}
	s.last.Store(int64(o.clock.Now()))
	return s, nil
}

// Tick returns true for the one caller that wins the current period.
//
// Uses a compare-and-swap so concurrent pollers cannot both fire.
func (s *Shared) Tick() bool {
	now := int64(s.src.Now())
	last := s.last.Load()

	if now-last > s.threshold {
		if s.last.CompareAndSwap(last, now) {
			s.ticks.Add(s.step)
			return true
		}
	}
	return false
}

// Poll is Tick.
func (s *Shared) Poll() bool {
	return s.Tick()
}

// Reset restarts the current period from now.
func (s *Shared) Reset() {
	s.last.Store(int64(s.src.Now()))
}

// Stop is a no-op for Shared (no resources to release).
func (s *Shared) Stop() {}

// Ticks returns the tick counter.
func (s *Shared) Ticks() uint64 {
	return s.ticks.Load()
}

// Period returns the gate's period.
func (s *Shared) Period() time.Duration {
	return s.period
}
