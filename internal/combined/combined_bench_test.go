package combined_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/muesli/termenv"

	"github.com/randomizedcoder/pollgate/internal/anim"
	"github.com/randomizedcoder/pollgate/internal/cancel"
	"github.com/randomizedcoder/pollgate/internal/clock"
	"github.com/randomizedcoder/pollgate/internal/queue"
	"github.com/randomizedcoder/pollgate/internal/sink"
	"github.com/randomizedcoder/pollgate/internal/tick"
)

// Sink variables
var sinkBool bool
var sinkUint uint64

// Low enough that the gate never fires during a run.
const idleFreq = 1.0 / 3600

// ============================================================================
// Stop check + idle poll
// ============================================================================

// BenchmarkCombined_StopPoll_Context measures the per-iteration cost of
// a loop stopped by a context and gated by a Gate on the runtime clock.
func BenchmarkCombined_StopPoll_Context(b *testing.B) {
	stop := cancel.NewContext(context.Background())
	g, err := tick.New(idleFreq)
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()

	var done, fired bool
	for i := 0; i < b.N; i++ {
		done = stop.Done()
		fired = g.Poll()
	}
	sinkBool = done || fired
}

// BenchmarkCombined_StopPoll_Atomic uses an atomic flag and a Batch
// gate, the cheapest pairing.
func BenchmarkCombined_StopPoll_Atomic(b *testing.B) {
	stop := cancel.NewAtomic()
	g, err := tick.NewBatch(idleFreq, 1000)
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()

	var done, fired bool
	for i := 0; i < b.N; i++ {
		done = stop.Done()
		fired = g.Poll()
	}
	sinkBool = done || fired
}

// BenchmarkCombined_StopPoll_Deadline stops on a deadline, which reads
// the clock a second time per iteration.
func BenchmarkCombined_StopPoll_Deadline(b *testing.B) {
	src := clock.Mono()
	stop := cancel.NewDeadline(src, time.Hour)
	g, err := tick.New(idleFreq, tick.WithClock(src))
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()

	var done, fired bool
	for i := 0; i < b.N; i++ {
		done = stop.Done()
		fired = g.Poll()
	}
	sinkBool = done || fired
}

// ============================================================================
// Firing animator: every poll draws a frame
// ============================================================================

func firingAnimator(b *testing.B, p anim.Policy, w io.Writer) (*anim.Animator, *clock.Fake) {
	b.Helper()
	fake := clock.NewFake()
	a, err := anim.New(10, p, w, anim.WithClock(fake))
	if err != nil {
		b.Fatal(err)
	}
	return a, fake
}

// BenchmarkCombined_Frame_Spinner measures a full fire: poll, render,
// write to io.Discard.
func BenchmarkCombined_Frame_Spinner(b *testing.B) {
	p, err := anim.NewSpinner("")
	if err != nil {
		b.Fatal(err)
	}
	a, fake := firingAnimator(b, p, io.Discard)
	b.ReportAllocs()
	b.ResetTimer()

	var fired bool
	for i := 0; i < b.N; i++ {
		fake.Advance(200 * time.Millisecond)
		fired = a.Poll()
	}
	sinkBool = fired
	sinkUint = a.Ticks()
}

// BenchmarkCombined_Frame_Dotter is the same with the 4-glyph window.
func BenchmarkCombined_Frame_Dotter(b *testing.B) {
	p, err := anim.NewDotter("")
	if err != nil {
		b.Fatal(err)
	}
	a, fake := firingAnimator(b, p, io.Discard)
	b.ReportAllocs()
	b.ResetTimer()

	var fired bool
	for i := 0; i < b.N; i++ {
		fake.Advance(200 * time.Millisecond)
		fired = a.Poll()
	}
	sinkBool = fired
	sinkUint = a.Ticks()
}

// BenchmarkCombined_Frame_Styled adds ANSI colour rendering.
func BenchmarkCombined_Frame_Styled(b *testing.B) {
	p, err := anim.NewSpinner("")
	if err != nil {
		b.Fatal(err)
	}
	fake := clock.NewFake()
	a, err := anim.New(10, p, io.Discard,
		anim.WithClock(fake),
		anim.WithStyle(anim.Style{Foreground: "2", Bold: true, Profile: termenv.ANSI}),
	)
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		fake.Advance(200 * time.Millisecond)
		sinkBool = a.Poll()
	}
}

// ============================================================================
// Full loop: stop check + firing animator + async sink
// ============================================================================

func benchFullLoop(b *testing.B, q queue.Queue[[]byte]) {
	s := sink.NewAsync(io.Discard, q)
	p, err := anim.NewSpinner("")
	if err != nil {
		b.Fatal(err)
	}
	a, fake := firingAnimator(b, p, s)
	stop := cancel.NewAtomic()
	b.ReportAllocs()
	b.ResetTimer()

	var fired bool
	for i := 0; i < b.N && !stop.Done(); i++ {
		fake.Advance(200 * time.Millisecond)
		fired = a.Poll()
	}
	b.StopTimer()
	sinkBool = fired
	if err := s.Close(); err != nil {
		b.Fatal(err)
	}
}

// BenchmarkCombined_FullLoop_Channel hands frames to a channel-backed sink.
func BenchmarkCombined_FullLoop_Channel(b *testing.B) {
	benchFullLoop(b, queue.NewChannel[[]byte](1024))
}

// BenchmarkCombined_FullLoop_Ring hands frames to the SPSC ring sink.
func BenchmarkCombined_FullLoop_Ring(b *testing.B) {
	benchFullLoop(b, queue.NewRingBuffer[[]byte](1024))
}
