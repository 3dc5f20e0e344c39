package clock

import (
	"time"
	_ "unsafe" // Required for go:linkname
)

// nanotime returns the current monotonic time in nanoseconds.
// This is faster than time.Now() because it returns a single int64
// and avoids constructing a time.Time struct.
//
// Note: This uses go:linkname to access an internal runtime function.
// It may break in future Go versions, though it has been stable.
//
//go:linkname nanotime runtime.nanotime
func nanotime() int64

type monoSource struct{}

// Mono returns the runtime monotonic clock.
//
// This is the default source for gates and timers: one call costs a
// few nanoseconds and is unaffected by wall clock adjustments.
func Mono() Source {
	return monoSource{}
}

func (monoSource) Now() Sample {
	return Sample(nanotime())
}

// WallSource reads time.Now and reports the distance from a fixed origin.
// time.Since subtracts the monotonic readings carried by time.Time, so
// wall clock steps do not leak in.
type WallSource struct {
	origin time.Time
}

// Wall returns a source backed by time.Now.
func Wall() *WallSource {
	return &WallSource{origin: time.Now()}
}

// Now returns the monotonic nanoseconds since the source was created.
func (w *WallSource) Now() Sample {
	return Sample(time.Since(w.origin))
}
