// Package tick provides frequency-gated periodic triggers for poll loops.
//
// This package offers several implementations of the Ticker interface:
//   - Gate: single-goroutine gate, fires at most once per period
//   - Batch: Gate that reads the clock only every N polls
//   - Shared: CAS-based gate safe for concurrent pollers
//
// A gate never blocks and never owns a goroutine or timer. The caller
// polls it from its own loop at any rate; the gate decides whether the
// period has elapsed since its last fire, using one clock read and one
// comparison when it has not.
package tick

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/randomizedcoder/pollgate/internal/clock"
)

// Ticker signals when a time interval has elapsed.
type Ticker interface {
	// Tick returns true if the interval has elapsed since the last tick.
	// This is a non-blocking check.
	Tick() bool

	// Reset starts a new interval from now.
	Reset()

	// Stop releases any resources held by the ticker.
	Stop()
}

// Epsilon is the slack allowed before a period boundary. A gate fires
// once the remaining time until the boundary is below Epsilon, so
// scheduler jitter makes it fire slightly early rather than drift late.
// Above about 15Hz the slack shrinks to 1/64 of the period.
const Epsilon = time.Millisecond

// ErrInvalidArgument is returned for a non-positive or non-finite
// frequency, or a zero step.
var ErrInvalidArgument = errors.New("tick: invalid argument")

// Option configures a gate.
type Option func(*options)

type options struct {
	clock clock.Source
	step  uint64
}

// WithClock sets the time source. The default is clock.Mono().
func WithClock(src clock.Source) Option {
	return func(o *options) { o.clock = src }
}

// WithStep sets how far the tick counter advances per fire. Default 1.
func WithStep(n uint64) Option {
	return func(o *options) { o.step = n }
}

func buildOptions(opts []Option) (options, error) {
	o := options{clock: clock.Mono(), step: 1}
	for _, opt := range opts {
		opt(&o)
	}
	if o.step == 0 {
		return o, fmt.Errorf("%w: step must be at least 1", ErrInvalidArgument)
	}
	if err := clock.Verify(o.clock); err != nil {
		return o, err
	}
	return o, nil
}

// Period converts a frequency in Hz to a period.
func Period(freqHz float64) (time.Duration, error) {
	if math.IsNaN(freqHz) || math.IsInf(freqHz, 0) || freqHz <= 0 {
		return 0, fmt.Errorf("%w: frequency %v Hz must be positive and finite", ErrInvalidArgument, freqHz)
	}
	ns := float64(time.Second) / freqHz
	if ns >= math.MaxInt64 {
		return 0, fmt.Errorf("%w: frequency %v Hz gives a period that overflows time.Duration", ErrInvalidArgument, freqHz)
	}
	p := time.Duration(ns)
	if p <= 0 {
		return 0, fmt.Errorf("%w: frequency %v Hz exceeds clock resolution", ErrInvalidArgument, freqHz)
	}
	return p, nil
}

// maxSlackDivisor caps the slack at period/maxSlackDivisor. Each early
// fire shortens the next period by up to the slack, so the cap bounds
// the rate overshoot at high frequencies to about 1/maxSlackDivisor.
const maxSlackDivisor = 64

// threshold is the elapsed time beyond which a poll fires.
func threshold(period time.Duration) time.Duration {
	slack := min(Epsilon, period/maxSlackDivisor)
	return period - slack
}
