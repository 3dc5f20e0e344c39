package clock_test

import (
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randomizedcoder/pollgate/internal/clock"
)

func TestSample_Sub(t *testing.T) {
	a := clock.Sample(1_500_000_000)
	b := clock.Sample(250_000_000)
	assert.Equal(t, 1250*time.Millisecond, a.Sub(b))
	assert.Equal(t, -1250*time.Millisecond, b.Sub(a))
	assert.InDelta(t, 1.25, clock.Seconds(b, a), 1e-12)
}

func TestSources_Monotonic(t *testing.T) {
	tsc, tscErr := clock.NewTSC()

	sources := []struct {
		name string
		src  clock.Source
	}{
		{"Mono", clock.Mono()},
		{"Wall", clock.Wall()},
	}
	if tscErr == nil {
		sources = append(sources, struct {
			name string
			src  clock.Source
		}{"TSC", tsc})
	}

	for _, s := range sources {
		t.Run(s.name, func(t *testing.T) {
			require.NoError(t, clock.Verify(s.src))

			prev := s.src.Now()
			for i := 0; i < 10000; i++ {
				now := s.src.Now()
				require.GreaterOrEqual(t, int64(now), int64(prev))
				prev = now
			}

			start := s.src.Now()
			time.Sleep(20 * time.Millisecond)
			elapsed := s.src.Now().Sub(start)
			assert.GreaterOrEqual(t, elapsed, 15*time.Millisecond)
			assert.Less(t, elapsed, time.Second)
		})
	}
}

func TestTSC_Availability(t *testing.T) {
	src, err := clock.NewTSC()
	if runtime.GOARCH != "amd64" {
		require.ErrorIs(t, err, clock.ErrClockUnavailable)
		return
	}
	require.NoError(t, err)

	// Sanity check: should be between 0.5 and 10 cycles/ns
	// (500MHz to 10GHz CPUs)
	r := src.CyclesPerNs()
	if r < 0.5 || r > 10 {
		t.Errorf("CyclesPerNs() = %f, expected between 0.5 and 10", r)
	}
	t.Logf("Calibrated TSC: %.2f cycles/ns", r)
}

func TestNewTSCWithRatio_Invalid(t *testing.T) {
	_, err := clock.NewTSCWithRatio(0)
	require.ErrorIs(t, err, clock.ErrClockUnavailable)
}

func TestVerify(t *testing.T) {
	require.ErrorIs(t, clock.Verify(nil), clock.ErrClockUnavailable)
	require.ErrorIs(t, clock.Verify(&flipFlop{}), clock.ErrClockUnavailable)
	require.NoError(t, clock.Verify(clock.NewFake()))
}

func TestFake(t *testing.T) {
	f := clock.NewFake()
	assert.Equal(t, clock.Sample(0), f.Now())

	f.Advance(3 * time.Millisecond)
	assert.Equal(t, clock.Sample(3*time.Millisecond), f.Now())

	f.Advance(-time.Second)
	assert.Equal(t, clock.Sample(3*time.Millisecond), f.Now(), "Advance must not go backwards")

	f.Set(42)
	assert.Equal(t, clock.Sample(42), f.Now())
}

// flipFlop runs backwards on every second read.
type flipFlop struct{ n int64 }

func (f *flipFlop) Now() clock.Sample {
	f.n++
	if f.n%2 == 0 {
		return clock.Sample(-f.n)
	}
	return clock.Sample(f.n)
}
