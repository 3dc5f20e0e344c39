package combined_test

import (
	"io"
	"sync/atomic"
	"testing"

	ring "github.com/randomizedcoder/go-lock-free-ring"

	"github.com/randomizedcoder/pollgate/internal/queue"
	"github.com/randomizedcoder/pollgate/internal/sink"
)

// ============================================================================
// Frame hand-off: channel vs our SPSC ring vs go-lock-free-ring (MPSC)
// ============================================================================
//
// KEY DIFFERENCE:
// - sink.Async over queue.RingBuffer: one polling goroutine only
// - sink.Shared over go-lock-free-ring: one shard per polling goroutine
//
// A full queue drops the frame, so these measure hand-off cost, not
// terminal throughput.

var frame = []byte(" / \r")

var sinkStats sink.Stats

// ============================================================================
// One producer
// ============================================================================

func benchAsync(b *testing.B, q queue.Queue[[]byte]) {
	s := sink.NewAsync(io.Discard, q)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = s.Write(frame)
	}
	b.StopTimer()
	if err := s.Close(); err != nil {
		b.Fatal(err)
	}
	sinkStats = s.Stats()
}

// BenchmarkLFR_1P_AsyncChannel - baseline channel queue
func BenchmarkLFR_1P_AsyncChannel(b *testing.B) {
	benchAsync(b, queue.NewChannel[[]byte](1024))
}

// BenchmarkLFR_1P_AsyncRing - our SPSC ring
func BenchmarkLFR_1P_AsyncRing(b *testing.B) {
	benchAsync(b, queue.NewRingBuffer[[]byte](1024))
}

// BenchmarkLFR_1P_Shared1 - go-lock-free-ring with 1 shard
func BenchmarkLFR_1P_Shared1(b *testing.B) {
	s, err := sink.NewShared(io.Discard, 1024, 1)
	if err != nil {
		b.Fatal(err)
	}
	w := s.Producer(0)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = w.Write(frame)
	}
	b.StopTimer()
	if err := s.Close(); err != nil {
		b.Fatal(err)
	}
	sinkStats = s.Stats()
}

// BenchmarkLFR_1P_RawRing - go-lock-free-ring without the sink around it
func BenchmarkLFR_1P_RawRing(b *testing.B) {
	r, err := ring.NewShardedRing(1024, 1)
	if err != nil {
		b.Fatal(err)
	}
	done := make(chan struct{})
	consumerDone := make(chan struct{})

	go func() {
		defer close(consumerDone)
		for {
			select {
			case <-done:
				return
			default:
				r.TryRead()
			}
		}
	}()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for !r.Write(0, frame) {
		}
	}
	b.StopTimer()
	close(done)
	<-consumerDone
}

// ============================================================================
// N producers (several animations sharing one terminal)
// ============================================================================

// The channel queue is safe for many producers; the SPSC ring is not,
// so it is left out here.
func benchChannelNP(b *testing.B, producers int) {
	s := sink.NewAsync(io.Discard, queue.NewChannel[[]byte](1024))
	b.SetParallelism(producers)
	b.ReportAllocs()
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_, _ = s.Write(frame)
		}
	})

	b.StopTimer()
	if err := s.Close(); err != nil {
		b.Fatal(err)
	}
	sinkStats = s.Stats()
}

func benchSharedNP(b *testing.B, producers int) {
	s, err := sink.NewShared(io.Discard, uint64(256*producers), uint64(producers))
	if err != nil {
		b.Fatal(err)
	}
	var producerID atomic.Uint64
	b.SetParallelism(producers)
	b.ReportAllocs()
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		w := s.Producer(producerID.Add(1) - 1)
		for pb.Next() {
			_, _ = w.Write(frame)
		}
	})

	b.StopTimer()
	if err := s.Close(); err != nil {
		b.Fatal(err)
	}
	sinkStats = s.Stats()
}

// BenchmarkLFR_4P_AsyncChannel - 4 producers using a channel
func BenchmarkLFR_4P_AsyncChannel(b *testing.B) { benchChannelNP(b, 4) }

// BenchmarkLFR_4P_Shared4 - 4 producers, 4 shards
func BenchmarkLFR_4P_Shared4(b *testing.B) { benchSharedNP(b, 4) }

// BenchmarkLFR_8P_AsyncChannel - 8 producers using a channel
func BenchmarkLFR_8P_AsyncChannel(b *testing.B) { benchChannelNP(b, 8) }

// BenchmarkLFR_8P_Shared8 - 8 producers, 8 shards
func BenchmarkLFR_8P_Shared8(b *testing.B) { benchSharedNP(b, 8) }
