package main

import (
	"fmt"
	"io"
	"time"

	"github.com/urfave/cli"

	"github.com/randomizedcoder/pollgate/internal/queue"
	"github.com/randomizedcoder/pollgate/internal/sink"
)

var benchFrame = []byte(" / \r")

type sinkInfo struct {
	name   string
	create func(size int) (io.Writer, func() error, error)
}

func runSink(c *cli.Context) error {
	n, err := iterations(c)
	if err != nil {
		return err
	}
	size := c.Int("size")
	if size < 1 {
		return fmt.Errorf("-size must be positive, got %d", size)
	}

	fmt.Printf("Benchmarking frame hand-off (%d frames, size=%d)\n", n, size)
	fmt.Println("─────────────────────────────────────────────────")

	sinks := []sinkInfo{
		{"Direct(discard)", func(int) (io.Writer, func() error, error) {
			return io.Discard, func() error { return nil }, nil
		}},
		{"Async(channel)", func(size int) (io.Writer, func() error, error) {
			a := sink.NewAsync(io.Discard, queue.NewChannel[[]byte](size))
			return a, a.Close, nil
		}},
		{"Async(ring)", func(size int) (io.Writer, func() error, error) {
			a := sink.NewAsync(io.Discard, queue.NewRingBuffer[[]byte](size))
			return a, a.Close, nil
		}},
		{"Shared(1 shard)", func(size int) (io.Writer, func() error, error) {
			s, err := sink.NewShared(io.Discard, uint64(size), 1)
			if err != nil {
				return nil, nil, err
			}
			return s.Producer(0), s.Close, nil
		}},
	}

	results := make([]result, 0, len(sinks))
	for _, info := range sinks {
		w, closeFn, err := info.create(size)
		if err != nil {
			return fmt.Errorf("%s: %w", info.name, err)
		}
		start := time.Now()
		for i := 0; i < n; i++ {
			_, _ = w.Write(benchFrame)
		}
		dur := time.Since(start)
		if err := closeFn(); err != nil {
			return fmt.Errorf("%s: %w", info.name, err)
		}
		results = append(results, result{info.name, dur})

		if st, ok := w.(interface{ Stats() sink.Stats }); ok {
			fmt.Printf("  %-20s written %d, dropped %d\n", info.name, st.Stats().Written, st.Stats().Dropped)
		}
	}

	printResults(results, n)
	fmt.Printf("\nNote: full queues drop frames instead of blocking the poller.\n")
	return nil
}
