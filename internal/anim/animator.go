package anim

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/randomizedcoder/pollgate/internal/clock"
	"github.com/randomizedcoder/pollgate/internal/tick"
)

// Flusher is implemented by writers that buffer, such as *bufio.Writer.
type Flusher interface {
	Flush() error
}

// Option configures an Animator.
type Option func(*Animator)

// WithClock sets the gate's time source.
func WithClock(src clock.Source) Option {
	return func(a *Animator) { a.src = src }
}

// WithStyle sets the frame style.
func WithStyle(s Style) Option {
	return func(a *Animator) { a.style = s }
}

// Animator emits one frame of a Policy per gate fire.
//
// Animator is not safe for concurrent use.
type Animator struct {
	gate   *tick.Gate
	policy Policy
	style  Style
	src    clock.Source
	w      io.Writer

	buf   []byte
	width int // terminal cells used by the last frame
	err   error
}

// New creates an Animator drawing policy at freqHz frames per second.
func New(freqHz float64, policy Policy, w io.Writer, opts ...Option) (*Animator, error) {
	if policy == nil || w == nil {
		return nil, fmt.Errorf("%w: nil policy or writer", tick.ErrInvalidArgument)
	}
	a := &Animator{policy: policy, src: clock.Mono(), w: w}
	for _, opt := range opts {
		opt(a)
	}
	g, err := tick.New(freqHz, tick.WithClock(a.src), tick.WithStep(policy.Step()))
	if err != nil {
		return nil, err
	}
	a.gate = g
	return a, nil
}

// Poll reports whether this call produced a frame.
//
// A fire is reported even if writing the frame failed; the write error
// is kept and returned by Err, and nothing more is written after it.
func (a *Animator) Poll() bool {
	t := a.gate.Ticks()
	if !a.gate.Poll() {
		return false
	}
	if a.err == nil {
		a.err = a.draw(t)
	}
	return true
}

func (a *Animator) draw(t uint64) error {
	body := a.policy.Frame(t)
	a.buf = append(a.buf[:0], ' ')
	a.buf = append(a.buf, a.style.Render(body)...)
	a.buf = append(a.buf, ' ', '\r')
	a.width = runewidth.StringWidth(body) + 2

	if _, err := a.w.Write(a.buf); err != nil {
		return fmt.Errorf("anim: write frame: %w", err)
	}
	return a.flush()
}

func (a *Animator) flush() error {
	if f, ok := a.w.(Flusher); ok {
		if err := f.Flush(); err != nil {
			return fmt.Errorf("anim: flush: %w", err)
		}
	}
	return nil
}

// Clear blanks the last frame and leaves the cursor at the line start.
func (a *Animator) Clear() error {
	if a.err != nil {
		return a.err
	}
	if a.width == 0 {
		return nil
	}
	line := "\r" + strings.Repeat(" ", a.width) + "\r"
	if _, err := io.WriteString(a.w, line); err != nil {
		a.err = fmt.Errorf("anim: clear: %w", err)
		return a.err
	}
	a.width = 0
	if err := a.flush(); err != nil {
		a.err = err
	}
	return a.err
}

// Err returns the first write error, if any.
func (a *Animator) Err() error {
	return a.err
}

// Ticks returns the gate's tick counter.
func (a *Animator) Ticks() uint64 {
	return a.gate.Ticks()
}

// Gate returns the underlying gate.
func (a *Animator) Gate() *tick.Gate {
	return a.gate
}
