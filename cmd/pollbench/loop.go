package main

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli"

	"github.com/randomizedcoder/pollgate/internal/cancel"
	"github.com/randomizedcoder/pollgate/internal/clock"
	"github.com/randomizedcoder/pollgate/internal/tick"
)

type loopInfo struct {
	name   string
	create func() (cancel.Canceler, tick.Ticker, error)
}

func runLoop(c *cli.Context) error {
	n, err := iterations(c)
	if err != nil {
		return err
	}

	fmt.Printf("Benchmarking stop check + poll (%d iterations)\n", n)
	fmt.Println("─────────────────────────────────────────────────────────")
	fmt.Println()
	fmt.Println("Every busy loop pays this on each iteration:")
	fmt.Println()
	fmt.Println("  for !stop.Done() {")
	fmt.Println("      if gate.Poll() { drawFrame() }")
	fmt.Println("  }")
	fmt.Println()

	loops := []loopInfo{
		{"Context + Gate", func() (cancel.Canceler, tick.Ticker, error) {
			g, err := tick.New(benchFreq)
			return cancel.NewContext(context.Background()), g, err
		}},
		{"Deadline + Gate", func() (cancel.Canceler, tick.Ticker, error) {
			g, err := tick.New(benchFreq)
			return cancel.NewDeadline(clock.Mono(), time.Hour), g, err
		}},
		{"Atomic + Gate", func() (cancel.Canceler, tick.Ticker, error) {
			g, err := tick.New(benchFreq)
			return cancel.NewAtomic(), g, err
		}},
		{"Atomic + Batch(1000)", func() (cancel.Canceler, tick.Ticker, error) {
			b, err := tick.NewBatch(benchFreq, 1000)
			return cancel.NewAtomic(), b, err
		}},
	}

	results := make([]result, 0, len(loops))
	for _, info := range loops {
		stop, t, err := info.create()
		if err != nil {
			return fmt.Errorf("%s: %w", info.name, err)
		}
		start := time.Now()
		for i := 0; i < n; i++ {
			_ = stop.Done()
			_ = t.Tick()
		}
		results = append(results, result{info.name, time.Since(start)})
	}
	printResults(results, n)

	// Impact analysis
	fmt.Println()
	fmt.Println("Impact Analysis:")
	fmt.Println("─────────────────────────────────────────────────────────")
	first := float64(results[0].dur.Nanoseconds()) / float64(n)
	best := float64(results[len(results)-1].dur.Nanoseconds()) / float64(n)
	savedNs := first - best
	fmt.Printf("  Savings per iteration: %.2f ns\n", savedNs)
	for _, rate := range []int{100_000, 1_000_000, 10_000_000} {
		savedPerSec := savedNs * float64(rate) / 1e9
		fmt.Printf("  At %dK polls/sec: save %.2f ms/sec (%.2f%% of 1 core)\n",
			rate/1000, savedPerSec*1000, savedPerSec*100)
	}
	return nil
}
