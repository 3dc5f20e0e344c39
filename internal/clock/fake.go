package clock

import (
	"sync/atomic"
	"time"
)

// Fake is a Source that only moves when told to.
// Safe for concurrent use.
type Fake struct {
	now atomic.Int64
}

// NewFake returns a fake clock at Sample 0.
func NewFake() *Fake {
	return &Fake{}
}

// Now returns the current fake time.
func (f *Fake) Now() Sample {
	return Sample(f.now.Load())
}

// Advance moves the clock forward by d. Negative durations are ignored
// so the clock stays monotonic.
func (f *Fake) Advance(d time.Duration) {
	if d <= 0 {
		return
	}
	f.now.Add(int64(d))
}

// Set jumps the clock to s. Going backwards is allowed here so tests can
// model a broken source.
func (f *Fake) Set(s Sample) {
	f.now.Store(int64(s))
}
