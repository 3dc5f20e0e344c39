//go:build amd64

package clock

import (
	"fmt"
	"time"
)

// rdtsc reads the CPU's Time Stamp Counter.
// Implemented in tsc_amd64.s
func rdtsc() uint64

// CalibrateTSC measures CPU cycles per nanosecond.
//
// This performs a ~10ms calibration by comparing TSC ticks against
// the runtime monotonic clock. The result is approximate and can vary with:
//   - CPU frequency scaling (Turbo Boost, SpeedStep)
//   - Power management states
//   - Thermal throttling
func CalibrateTSC() (float64, error) {
	// Warm up the TSC path
	rdtsc()
	rdtsc()

	start := rdtsc()
	t1 := nanotime()
	time.Sleep(10 * time.Millisecond)
	end := rdtsc()
	t2 := nanotime()

	if end <= start || t2 <= t1 {
		return 0, fmt.Errorf("%w: TSC did not advance during calibration", ErrClockUnavailable)
	}
	return float64(end-start) / float64(t2-t1), nil
}

// TSC converts the CPU's Time Stamp Counter into nanosecond Samples.
//
// This is the cheapest read on x86, bypassing the OS entirely, but it
// requires calibration and may drift with CPU frequency changes.
type TSC struct {
	origin      uint64
	cyclesPerNs float64
}

// NewTSC calibrates and returns a TSC source. Blocks for ~10ms.
func NewTSC() (*TSC, error) {
	ratio, err := CalibrateTSC()
	if err != nil {
		return nil, err
	}
	return NewTSCWithRatio(ratio)
}

// NewTSCWithRatio returns a TSC source using a pre-measured
// cycles-per-nanosecond ratio (e.g., 3.0 for a 3GHz CPU).
func NewTSCWithRatio(cyclesPerNs float64) (*TSC, error) {
	if !(cyclesPerNs > 0) {
		return nil, fmt.Errorf("%w: invalid TSC ratio %v", ErrClockUnavailable, cyclesPerNs)
	}
	return &TSC{origin: rdtsc(), cyclesPerNs: cyclesPerNs}, nil
}

// Now returns nanoseconds since the source was created.
func (t *TSC) Now() Sample {
	return Sample(float64(rdtsc()-t.origin) / t.cyclesPerNs)
}

// CyclesPerNs returns the calibrated cycles-per-nanosecond ratio.
func (t *TSC) CyclesPerNs() float64 {
	return t.cyclesPerNs
}
