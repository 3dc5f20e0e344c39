package sink

import (
	"io"

	"github.com/randomizedcoder/pollgate/internal/queue"
)

// Async is an io.Writer for one polling goroutine.
type Async struct {
	drainer
	q queue.Queue[[]byte]
}

// NewAsync starts a writer goroutine draining q into w.
// With a queue.RingBuffer only one goroutine may call Write.
func NewAsync(w io.Writer, q queue.Queue[[]byte]) *Async {
	a := &Async{q: q}
	a.init(w)
	go a.run(q.Pop)
	return a
}

// Write queues a copy of p. It never blocks; when the queue is full the
// oldest queued frames are given up so p still gets drawn. Once the
// underlying writer has failed, Write returns its error.
func (a *Async) Write(p []byte) (int, error) {
	if err := a.Err(); err != nil {
		return 0, err
	}
	a.q.PushLatest(clone(p))
	a.notify()
	return len(p), nil
}

// Stats returns frame counters. Dropped includes frames the queue evicted.
func (a *Async) Stats() Stats {
	st := a.drainer.Stats()
	st.Dropped += a.q.Evicted()
	return st
}

// Close writes out queued frames and stops the writer goroutine.
// Write must not be called after Close.
func (a *Async) Close() error {
	return a.close()
}
