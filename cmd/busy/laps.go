package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/urfave/cli"

	"github.com/randomizedcoder/pollgate/internal/anim"
	"github.com/randomizedcoder/pollgate/internal/busy"
	"github.com/randomizedcoder/pollgate/internal/cancel"
	"github.com/randomizedcoder/pollgate/internal/config"
	"github.com/randomizedcoder/pollgate/internal/laptimer"
	"github.com/randomizedcoder/pollgate/internal/tick"
)

const defaultLapInterval = time.Second

// runLaps spins on one goroutine while another records a lap every
// interval. Both write to the terminal through a shared sink.
func runLaps(c *cli.Context) error {
	cfg, err := loadConfig(c, config.StyleSpinner)
	if err != nil {
		return err
	}
	log := newLogger(cfg.Log.Level)

	count := c.Int("count")
	every := c.Duration("every")
	if count < 1 || every <= 0 {
		return fmt.Errorf("laps: --count and --every must be positive")
	}

	src, err := clockSource(cfg.Loop.Clock)
	if err != nil {
		return err
	}
	policy, err := newPolicy(cfg)
	if err != nil {
		return err
	}
	if configured := cfg.Output.Sink; configured != config.SinkShared {
		if err := lapSink(cfg, c.IsSet("sink")); err != nil {
			return err
		}
		log.Debug("Using shared sink for laps", "configured", configured)
	}
	out, err := openOutput(cfg, os.Stdout, 2)
	if err != nil {
		return err
	}

	spinner, err := anim.New(cfg.Animation.Frequency, policy, out.writers[0],
		anim.WithClock(src),
		anim.WithStyle(frameStyle(cfg, os.Stdout)))
	if err != nil {
		out.close()
		return err
	}
	lapGate, err := tick.New(1/every.Seconds(), tick.WithClock(src))
	if err != nil {
		out.close()
		return err
	}

	timer, err := laptimer.New(laptimer.WithClock(src))
	if err != nil {
		out.close()
		return err
	}

	stopped, stopSignals := stopper(context.Background(), src, cfg.Loop.Duration.Duration)
	defer stopSignals()
	finished := cancel.NewCountdown(int64(count))
	done := cancel.Any(stopped, finished)

	lapOut := out.writers[1]
	recordLap := func() {
		d := timer.Lap()
		fmt.Fprintf(lapOut, "\rlap %-3d %8.3fs  elapsed %8.3fs\n", len(timer.Laps()), d, timer.Elapsed())
		if finished.Count() {
			log.Debug("Recorded all laps", "count", count)
		}
	}

	pause := cfg.Loop.PollInterval.Duration
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		loop := busy.Loop{Cancel: done, Pause: pause, Clock: src, Logger: log}
		loop.Run(spinner)
		spinner.Clear()
	}()

	timer.Start()
	loop := busy.Loop{Cancel: done, Pause: pause, Clock: src, Logger: log}
	loop.Run(busy.OnFire(lapGate, recordLap))
	timer.Stop()
	wg.Wait()

	if err := out.close(); err != nil {
		return err
	}
	printLapSummary(os.Stdout, timer.Laps())
	return spinner.Err()
}

// lapSink switches cfg to the shared sink, which laps need for their two
// writers. An explicit --sink naming another mode is an error.
func lapSink(cfg *config.Config, explicit bool) error {
	if explicit && cfg.Output.Sink != config.SinkShared {
		return fmt.Errorf("laps: --sink %q not supported, laps always use the shared sink", cfg.Output.Sink)
	}
	cfg.Output.Sink = config.SinkShared
	return nil
}

func printLapSummary(w io.Writer, laps []float64) {
	if len(laps) == 0 {
		fmt.Fprintln(w, "no laps recorded")
		return
	}
	lo, hi, total := laps[0], laps[0], 0.0
	for _, l := range laps {
		lo = min(lo, l)
		hi = max(hi, l)
		total += l
	}
	fmt.Fprintf(w, "%d laps  total %.3fs  mean %.3fs  min %.3fs  max %.3fs\n",
		len(laps), total, total/float64(len(laps)), lo, hi)
}
