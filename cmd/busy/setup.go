package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"github.com/urfave/cli"
	"golang.org/x/term"

	"github.com/randomizedcoder/pollgate/internal/anim"
	"github.com/randomizedcoder/pollgate/internal/clock"
	"github.com/randomizedcoder/pollgate/internal/config"
	"github.com/randomizedcoder/pollgate/internal/queue"
	"github.com/randomizedcoder/pollgate/internal/sink"
)

// loadConfig reads the configuration and applies command line overrides.
func loadConfig(c *cli.Context, style string) (*config.Config, error) {
	cfg, err := config.Load(c.GlobalString("config"))
	if err != nil {
		return nil, err
	}
	if style != "" {
		cfg.Animation.Style = style
	}
	if c.IsSet("freq") {
		cfg.Animation.Frequency = c.Float64("freq")
	}
	if c.IsSet("duration") {
		cfg.Loop.Duration.Duration = c.Duration("duration")
	}
	if c.IsSet("glyphs") {
		cfg.Animation.Glyphs = c.String("glyphs")
	}
	if c.IsSet("template") {
		cfg.Animation.Template = c.String("template")
	}
	if c.IsSet("color") {
		cfg.Animation.Color = c.String("color")
	}
	if c.IsSet("sink") {
		cfg.Output.Sink = c.String("sink")
	}
	if c.IsSet("clock") {
		cfg.Loop.Clock = c.String("clock")
	}
	if c.GlobalBool("debug") {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger installs a text logger on stderr as the default logger.
func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)
	return logger
}

func clockSource(name string) (clock.Source, error) {
	switch name {
	case config.ClockWall:
		return clock.Wall(), nil
	case config.ClockTSC:
		src, err := clock.NewTSC()
		if err != nil {
			return nil, err
		}
		return src, nil
	default:
		return clock.Mono(), nil
	}
}

func newPolicy(cfg *config.Config) (anim.Policy, error) {
	if cfg.Animation.Style == config.StyleDotter {
		return anim.NewDotter(cfg.Animation.Template)
	}
	return anim.NewSpinner(cfg.Animation.Glyphs)
}

// frameStyle returns plain frames unless stdout is a colour terminal.
func frameStyle(cfg *config.Config, out *os.File) anim.Style {
	if cfg.Output.NoColor || !term.IsTerminal(int(out.Fd())) {
		return anim.Style{}
	}
	return anim.Style{
		Foreground: cfg.Animation.Color,
		Bold:       cfg.Animation.Bold,
		Profile:    termenv.ColorProfile(),
	}
}

// output is where frames go, with the function that releases it.
type output struct {
	writers []io.Writer
	close   func() error
}

// openOutput builds the configured sink over stdout for n producers.
// Only the shared sink gives each producer its own writer; direct and
// async hand the same writer to every producer, so n must be 1 for them.
func openOutput(cfg *config.Config, stdout io.Writer, n int) (*output, error) {
	bw := bufio.NewWriter(stdout)
	switch cfg.Output.Sink {
	case config.SinkAsync:
		if n != 1 {
			return nil, fmt.Errorf("async sink supports one producer, got %d", n)
		}
		q, err := queue.New[[]byte](cfg.Output.Queue, cfg.Output.QueueSize)
		if err != nil {
			return nil, err
		}
		a := sink.NewAsync(bw, q)
		return &output{writers: []io.Writer{a}, close: a.Close}, nil
	case config.SinkShared:
		s, err := sink.NewShared(bw, uint64(cfg.Output.QueueSize)*uint64(n), uint64(n))
		if err != nil {
			return nil, err
		}
		o := &output{close: s.Close}
		for i := 0; i < n; i++ {
			o.writers = append(o.writers, s.Producer(uint64(i)))
		}
		return o, nil
	default:
		if n != 1 {
			return nil, fmt.Errorf("direct sink supports one producer, got %d", n)
		}
		return &output{writers: []io.Writer{bw}, close: bw.Flush}, nil
	}
}
