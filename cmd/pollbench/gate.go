package main

import (
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/urfave/cli"
	"golang.org/x/time/rate"

	"github.com/randomizedcoder/pollgate/internal/clock"
	"github.com/randomizedcoder/pollgate/internal/tick"
)

// Low so Poll never fires: we measure check overhead, not frames.
const benchFreq = 1.0 / 3600

// limiterTicker adapts a token bucket to the Ticker interface so it can
// be measured next to the gates.
type limiterTicker struct {
	lim *rate.Limiter
}

func newLimiterTicker(freqHz float64) *limiterTicker {
	return &limiterTicker{lim: rate.NewLimiter(rate.Limit(freqHz), 1)}
}

func (l *limiterTicker) Tick() bool { return l.lim.Allow() }
func (l *limiterTicker) Reset() {}
func (l *limiterTicker) Stop() {}

type gateInfo struct {
	name   string
	create func() (tick.Ticker, error)
}

func runGate(c *cli.Context) error {
	n, err := iterations(c)
	if err != nil {
		return err
	}

	fmt.Printf("Benchmarking gate poll (%d iterations)\n", n)
	fmt.Printf("Architecture: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	fmt.Println("─────────────────────────────────────────────────")

	gates := []gateInfo{
		{"Gate(mono)", func() (tick.Ticker, error) { return tick.New(benchFreq) }},
		{"Gate(wall)", func() (tick.Ticker, error) { return tick.New(benchFreq, tick.WithClock(clock.Wall())) }},
		{"Batch(1000)", func() (tick.Ticker, error) { return tick.NewBatch(benchFreq, 1000) }},
		{"Shared(mono)", func() (tick.Ticker, error) { return tick.NewShared(benchFreq) }},
		{"rate.Limiter", func() (tick.Ticker, error) { return newLimiterTicker(benchFreq), nil }},
	}

	// TSC only where the CPU counter is usable
	if tsc, err := clock.NewTSC(); err == nil {
		gates = append(gates, gateInfo{
			"Gate(tsc)",
			func() (tick.Ticker, error) { return tick.New(benchFreq, tick.WithClock(tsc)) },
		})
	} else {
		slog.Info("Skipping TSC gate", "error", err)
	}

	results := make([]result, 0, len(gates))
	for _, info := range gates {
		t, err := info.create()
		if err != nil {
			return fmt.Errorf("%s: %w", info.name, err)
		}
		start := time.Now()
		for j := 0; j < n; j++ {
			_ = t.Tick()
		}
		results = append(results, result{info.name, time.Since(start)})
		t.Stop()
	}

	printResults(results, n)
	fmt.Printf("\nNote: Batch only reads the clock every N polls, so overhead is amortized.\n")
	return nil
}
