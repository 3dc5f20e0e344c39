// Package sink moves frame writes off polling goroutines.
//
// A poller that writes straight to a terminal stalls whenever the terminal
// does. The sinks here copy each frame into a non-blocking queue and a
// single writer goroutine drains it to the real writer, flushing after
// each batch. A busy animation only ever needs its latest frames, so a
// full queue never blocks the poller.
//
//   - Async: one producer, backed by a queue.Queue (SPSC ring or
//     channel); a full queue evicts its oldest frames
//   - Shared: many producers, backed by a sharded MPSC ring; a full
//     shard drops the new frame
package sink

import (
	"io"
	"sync"
	"sync/atomic"
)

// Flusher is implemented by buffered writers such as *bufio.Writer.
type Flusher interface {
	Flush() error
}

// Stats counts frames handled by a sink.
type Stats struct {
	Written uint64
	Dropped uint64
}

// drainer is the writer-goroutine half shared by Async and Shared.
type drainer struct {
	w       io.Writer
	wake    chan struct{}
	quit    chan struct{}
	stopped chan struct{}
	once    sync.Once

	written atomic.Uint64
	dropped atomic.Uint64

	mu  sync.Mutex
	err error
}

func (d *drainer) init(w io.Writer) {
	d.w = w
	d.wake = make(chan struct{}, 1)
	d.quit = make(chan struct{})
	d.stopped = make(chan struct{})
}

// run drains via pop until quit is closed, then drains once more.
func (d *drainer) run(pop func() ([]byte, bool)) {
	defer close(d.stopped)
	for {
		select {
		case <-d.wake:
			d.drain(pop)
		case <-d.quit:
			d.drain(pop)
			return
		}
	}
}

func (d *drainer) drain(pop func() ([]byte, bool)) {
	n := 0
	for {
		f, ok := pop()
		if !ok {
			break
		}
		if d.Err() != nil {
			d.dropped.Add(1)
			continue
		}
		if _, err := d.w.Write(f); err != nil {
			d.setErr(err)
			continue
		}
		n++
	}
	if n == 0 {
		return
	}
	d.written.Add(uint64(n))
	if fl, ok := d.w.(Flusher); ok {
		if err := fl.Flush(); err != nil {
			d.setErr(err)
		}
	}
}

func (d *drainer) notify() {
	select {
	case d.wake <- struct{}{}:
	default:
	}
}

func (d *drainer) setErr(err error) {
	d.mu.Lock()
	if d.err == nil {
		d.err = err
	}
	d.mu.Unlock()
}

// Err returns the first error from the underlying writer.
func (d *drainer) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.err
}

// Stats returns frame counters.
func (d *drainer) Stats() Stats {
	return Stats{Written: d.written.Load(), Dropped: d.dropped.Load()}
}

func (d *drainer) close() error {
	d.once.Do(func() { close(d.quit) })
	<-d.stopped
	return d.Err()
}

func clone(p []byte) []byte {
	f := make([]byte, len(p))
	copy(f, p)
	return f
}
