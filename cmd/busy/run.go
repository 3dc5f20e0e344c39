package main

import (
	"context"
	"os"
	"syscall"
	"time"

	"github.com/urfave/cli"

	"github.com/randomizedcoder/pollgate/internal/anim"
	"github.com/randomizedcoder/pollgate/internal/busy"
	"github.com/randomizedcoder/pollgate/internal/cancel"
	"github.com/randomizedcoder/pollgate/internal/clock"
)

// stopper is done on SIGINT/SIGTERM or, if d > 0, after d on src.
// The returned func releases the signal handler.
func stopper(parent context.Context, src clock.Source, d time.Duration) (cancel.Canceler, func()) {
	sig := cancel.NewSignal(parent, os.Interrupt, syscall.SIGTERM)
	c := cancel.Canceler(sig)
	if d > 0 {
		c = cancel.Any(c, cancel.NewDeadline(src, d))
	}
	return c, sig.Cancel
}

func runAnimation(c *cli.Context, style string) error {
	cfg, err := loadConfig(c, style)
	if err != nil {
		return err
	}
	log := newLogger(cfg.Log.Level)

	src, err := clockSource(cfg.Loop.Clock)
	if err != nil {
		return err
	}
	policy, err := newPolicy(cfg)
	if err != nil {
		return err
	}
	out, err := openOutput(cfg, os.Stdout, 1)
	if err != nil {
		return err
	}

	a, err := anim.New(cfg.Animation.Frequency, policy, out.writers[0],
		anim.WithClock(src),
		anim.WithStyle(frameStyle(cfg, os.Stdout)))
	if err != nil {
		out.close()
		return err
	}

	done, stop := stopper(context.Background(), src, cfg.Loop.Duration.Duration)
	defer stop()

	log.Debug("Starting animation",
		"style", cfg.Animation.Style,
		"frequency", cfg.Animation.Frequency,
		"sink", cfg.Output.Sink,
		"clock", cfg.Loop.Clock)

	loop := busy.Loop{
		Cancel: done,
		Pause:  cfg.Loop.PollInterval.Duration,
		Clock:  src,
		Logger: log,
	}
	st := loop.Run(a)

	clearErr := a.Clear()
	closeErr := out.close()
	log.Info("Animation stopped",
		"frames", st.Fires,
		"iterations", st.Iterations,
		"elapsed", st.Elapsed)

	if err := a.Err(); err != nil {
		return err
	}
	if clearErr != nil {
		return clearErr
	}
	return closeErr
}
