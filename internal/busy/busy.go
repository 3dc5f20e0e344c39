// Package busy drives gates from a caller-owned hot loop.
//
// The loop is the pattern the gates are built for:
//
//	for {
//	    if canceler.Done() { return }
//	    for _, p := range pollers { p.Poll() }
//	}
//
// Nothing here blocks except the optional pause between iterations.
package busy

import (
	"log/slog"
	"runtime"
	"time"

	"github.com/randomizedcoder/pollgate/internal/cancel"
	"github.com/randomizedcoder/pollgate/internal/clock"
)

// Poller is anything polled once per loop iteration, such as a
// *tick.Gate or an *anim.Animator.
type Poller interface {
	Poll() bool
}

// PollerFunc adapts a function to Poller.
type PollerFunc func() bool

// Poll calls f.
func (f PollerFunc) Poll() bool { return f() }

// OnFire returns a Poller that calls fn each time p fires.
func OnFire(p Poller, fn func()) Poller {
	return PollerFunc(func() bool {
		if p.Poll() {
			fn()
			return true
		}
		return false
	})
}

// Stats summarizes one Run.
type Stats struct {
	Iterations uint64
	Fires      uint64
	Elapsed    time.Duration
}

// Loop polls a set of pollers until its canceler is done.
type Loop struct {
	// Cancel stops the loop. Required.
	Cancel cancel.Canceler

	// Pause is slept after each iteration. Zero spins, yielding the
	// processor every YieldEvery iterations.
	Pause time.Duration

	// YieldEvery is how many iterations a spinning loop runs between
	// runtime.Gosched calls. Zero means 1024.
	YieldEvery uint64

	// Clock measures Stats.Elapsed. Nil means clock.Mono().
	Clock clock.Source

	// Logger receives start and stop records at debug level.
	// Nil means slog.Default().
	Logger *slog.Logger
}

// Run polls every poller once per iteration until l.Cancel is done.
func (l *Loop) Run(pollers ...Poller) Stats {
	src := l.Clock
	if src == nil {
		src = clock.Mono()
	}
	log := l.Logger
	if log == nil {
		log = slog.Default()
	}
	yield := l.YieldEvery
	if yield == 0 {
		yield = 1024
	}

	log.Debug("Poll loop starting", "pollers", len(pollers), "pause", l.Pause)
	start := src.Now()

	var st Stats
	for !l.Cancel.Done() {
		for _, p := range pollers {
			if p.Poll() {
				st.Fires++
			}
		}
		st.Iterations++

		if l.Pause > 0 {
			time.Sleep(l.Pause)
		} else if st.Iterations%yield == 0 {
			runtime.Gosched()
		}
	}

	st.Elapsed = src.Now().Sub(start)
	log.Debug("Poll loop stopped",
		"iterations", st.Iterations,
		"fires", st.Fires,
		"elapsed", st.Elapsed)
	return st
}
