package tick

import (
	"time"

	"github.com/randomizedcoder/pollgate/internal/clock"
)

// Gate fires at most once per period of its target frequency.
//
// Gate is not safe for concurrent use; confine it to the polling
// goroutine or use Shared.
type Gate struct {
	src       clock.Source
	freq      float64
	period    time.Duration
	threshold time.Duration
	step      uint64

	last  clock.Sample
	ticks uint64
}

// New creates a Gate firing at freqHz times per second.
//
// Returns ErrInvalidArgument for a frequency that is not positive and
// finite, and clock.ErrClockUnavailable if the clock source is unusable.
func New(freqHz float64, opts ...Option) (*Gate, error) {
	period, err := Period(freqHz)
	if err != nil {
		return nil, err
	}
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}
	return &Gate{
		src:       o.clock,
		freq:      freqHz,
		period:    period,
		threshold: threshold(period),
		step:      o.step,
		last:      o.clock.Now(),
	}, nil
}

// Poll reports whether a period has elapsed since the last fire.
//
// On fire the tick counter advances by the step and the reference time
// moves to now. Otherwise nothing changes.
func (g *Gate) Poll() bool {
	now := g.src.Now()
	if now.Sub(g.last) <= g.threshold {
		return false
	}
	g.ticks += g.step
	g.last = now
	return true
}

// Tick is Poll, for the Ticker interface.
func (g *Gate) Tick() bool {
	return g.Poll()
}

// Reset restarts the current period from now. The tick counter is kept.
func (g *Gate) Reset() {
	g.last = g.src.Now()
}

// Stop is a no-op for Gate (no resources to release).
func (g *Gate) Stop() {}

// Ticks returns the tick counter.
func (g *Gate) Ticks() uint64 {
	return g.ticks
}

// Step returns how far the counter advances per fire.
func (g *Gate) Step() uint64 {
	return g.step
}

// Period returns the gate's period.
func (g *Gate) Period() time.Duration {
	return g.period
}

// Frequency returns the target frequency in Hz.
func (g *Gate) Frequency() float64 {
	return g.freq
}
