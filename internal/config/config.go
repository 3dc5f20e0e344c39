// Package config loads settings for the busy command.
//
// Settings come from, in order of precedence:
//   - environment variables (POLLGATE_FREQ, POLLGATE_STYLE, NO_COLOR)
//   - a TOML file given with --config
//   - built-in defaults
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Animation styles.
const (
	StyleSpinner = "spinner"
	StyleDotter  = "dotter"
)

// Sink modes.
const (
	SinkDirect = "direct"
	SinkAsync  = "async"
	SinkShared = "shared"
)

// Clock sources.
const (
	ClockMono = "mono"
	ClockWall = "wall"
	ClockTSC  = "tsc"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("config: invalid")

// Config is the complete configuration.
type Config struct {
	Animation AnimationConfig `toml:"animation"`
	Loop      LoopConfig      `toml:"loop"`
	Output    OutputConfig    `toml:"output"`
	Log       LogConfig       `toml:"log"`
}

// AnimationConfig selects what is drawn and how often.
type AnimationConfig struct {
	// Style is "spinner" or "dotter".
	Style string `toml:"style"`
	// Frequency is frames per second.
	Frequency float64 `toml:"frequency"`
	// Glyphs overrides the spinner rotation, one glyph per rune.
	Glyphs string `toml:"glyphs"`
	// Template overrides the dotter template, one glyph per rune.
	Template string `toml:"template"`
	// Color is an ANSI index or #rrggbb; empty for no colour.
	Color string `toml:"color"`
	Bold  bool   `toml:"bold"`
}

// LoopConfig controls the poll loop.
type LoopConfig struct {
	// Duration stops the loop after this long; zero runs until interrupted.
	Duration Duration `toml:"duration"`
	// PollInterval is slept between polls; zero busy-spins.
	PollInterval Duration `toml:"poll_interval"`
	// Clock is "mono", "wall" or "tsc".
	Clock string `toml:"clock"`
}

// OutputConfig controls how frames reach the terminal.
type OutputConfig struct {
	// Sink is "direct", "async" or "shared".
	Sink string `toml:"sink"`
	// Queue is the async queue kind, "ring" or "channel".
	Queue string `toml:"queue"`
	// QueueSize is the async/shared queue capacity in frames.
	QueueSize int `toml:"queue_size"`
	// NoColor disables styling.
	NoColor bool `toml:"no_color"`
}

// LogConfig controls slog output on stderr.
type LogConfig struct {
	// Level is "debug", "info", "warn" or "error".
	Level string `toml:"level"`
}

// Duration is a time.Duration read from a TOML string such as "250ms".
type Duration struct {
	time.Duration
}

// UnmarshalText parses a Go duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText formats the duration.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Animation: AnimationConfig{
			Style:     StyleSpinner,
			Frequency: 10,
		},
		Loop: LoopConfig{
			PollInterval: Duration{time.Millisecond},
			Clock:        ClockMono,
		},
		Output: OutputConfig{
			Sink:      SinkDirect,
			Queue:     "ring",
			QueueSize: 64,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads path over the defaults, applies environment overrides and
// validates. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, err
		}
	}
	if err := cfg.ApplyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadTOML decodes a TOML file into cfg. Unknown keys are an error.
func LoadTOML(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("config: decode %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return fmt.Errorf("%w: unknown keys in %s: %s", ErrInvalid, path, strings.Join(keys, ", "))
	}
	return nil
}

// ApplyEnvOverrides applies POLLGATE_FREQ, POLLGATE_STYLE and NO_COLOR.
func (c *Config) ApplyEnvOverrides() error {
	if v := os.Getenv("POLLGATE_FREQ"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%w: POLLGATE_FREQ=%q: %v", ErrInvalid, v, err)
		}
		c.Animation.Frequency = f
	}
	if v := os.Getenv("POLLGATE_STYLE"); v != "" {
		c.Animation.Style = strings.ToLower(v)
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		c.Output.NoColor = true
	}
	return nil
}

// Validate checks every field.
func (c *Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	a := c.Animation
	switch a.Style {
	case StyleSpinner, StyleDotter:
	default:
		bad("animation.style %q (want spinner or dotter)", a.Style)
	}
	if math.IsNaN(a.Frequency) || math.IsInf(a.Frequency, 0) || a.Frequency <= 0 {
		bad("animation.frequency %v must be positive", a.Frequency)
	}

	if c.Loop.Duration.Duration < 0 {
		bad("loop.duration %v must not be negative", c.Loop.Duration)
	}
	if c.Loop.PollInterval.Duration < 0 {
		bad("loop.poll_interval %v must not be negative", c.Loop.PollInterval)
	}
	switch c.Loop.Clock {
	case ClockMono, ClockWall, ClockTSC:
	default:
		bad("loop.clock %q (want mono, wall or tsc)", c.Loop.Clock)
	}

	switch c.Output.Sink {
	case SinkDirect, SinkAsync, SinkShared:
	default:
		bad("output.sink %q (want direct, async or shared)", c.Output.Sink)
	}
	switch c.Output.Queue {
	case "ring", "channel":
	default:
		bad("output.queue %q (want ring or channel)", c.Output.Queue)
	}
	if c.Output.QueueSize < 1 {
		bad("output.queue_size %d must be positive", c.Output.QueueSize)
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		bad("log.level %q", c.Log.Level)
	}
	return errors.Join(errs...)
}
