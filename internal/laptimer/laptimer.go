// Package laptimer measures elapsed time and records laps on a monotonic clock.
package laptimer

import "github.com/randomizedcoder/pollgate/internal/clock"

// Option configures a Timer.
type Option func(*Timer)

// WithClock sets the time source. The default is clock.Mono().
func WithClock(src clock.Source) Option {
	return func(t *Timer) { t.src = src }
}

// Timer is a start/stop timer with a lap record.
//
// Laps are independent of the running flag: Lap works before Start and
// after Stop, measuring from the previous lap reference. The reference
// starts at construction and is reset by Start and by every Lap.
//
// Timer is not safe for concurrent use.
type Timer struct {
	src     clock.Source
	running bool
	start   clock.Sample
	lastLap clock.Sample
	laps    []float64
}

// New creates a stopped Timer.
//
// Returns clock.ErrClockUnavailable if the clock source is unusable.
func New(opts ...Option) (*Timer, error) {
	t := &Timer{src: clock.Mono()}
	for _, opt := range opts {
		opt(t)
	}
	if err := clock.Verify(t.src); err != nil {
		return nil, err
	}
	t.start = t.src.Now()
	t.lastLap = t.start
	return t, nil
}

// Start marks the timer running and resets the start and lap reference.
func (t *Timer) Start() {
	now := t.src.Now()
	t.running = true
	t.start = now
	t.lastLap = now
}

// Stop marks the timer stopped. Recorded laps are kept.
func (t *Timer) Stop() {
	t.running = false
}

// Running reports whether the timer is running.
func (t *Timer) Running() bool {
	return t.running
}

// Elapsed returns seconds since Start, or 0 when stopped.
func (t *Timer) Elapsed() float64 {
	if !t.running {
		return 0
	}
	return clock.Seconds(t.start, t.src.Now())
}

// Lap records and returns the seconds since the previous lap reference,
// then moves the reference to now.
func (t *Timer) Lap() float64 {
	now := t.src.Now()
	d := clock.Seconds(t.lastLap, now)
	t.laps = append(t.laps, d)
	t.lastLap = now
	return d
}

// CurrentLapTime returns the seconds since the lap reference without
// recording a lap.
func (t *Timer) CurrentLapTime() float64 {
	return clock.Seconds(t.lastLap, t.src.Now())
}

// Laps returns a copy of the recorded laps in recording order.
func (t *Timer) Laps() []float64 {
	out := make([]float64, len(t.laps))
	copy(out, t.laps)
	return out
}

// Total returns the sum of the recorded laps in seconds.
func (t *Timer) Total() float64 {
	var sum float64
	for _, l := range t.laps {
		sum += l
	}
	return sum
}
