package sink

import (
	"fmt"
	"io"

	ring "github.com/randomizedcoder/go-lock-free-ring"
)

// Shared is a frame sink for several polling goroutines.
//
// Each producer gets its own shard of the ring, so producers never
// contend with each other. Frame order is kept per producer only.
type Shared struct {
	drainer
	r         *ring.ShardedRing
	producers uint64
}

// NewShared starts a writer goroutine for up to producers writers,
// holding up to capacity frames in total.
func NewShared(w io.Writer, capacity, producers uint64) (*Shared, error) {
	if producers == 0 {
		return nil, fmt.Errorf("sink: producers must be at least 1")
	}
	r, err := ring.NewShardedRing(capacity, producers)
	if err != nil {
		return nil, fmt.Errorf("sink: %w", err)
	}
	s := &Shared{r: r, producers: producers}
	s.init(w)
	go s.run(s.pop)
	return s, nil
}

// pop returns the next frame. Items that are not frames are counted as
// dropped and skipped, so they never end a drain early.
func (s *Shared) pop() ([]byte, bool) {
	for {
		v, ok := s.r.TryRead()
		if !ok {
			return nil, false
		}
		if f, ok := v.([]byte); ok {
			return f, true
		}
		s.dropped.Add(1)
	}
}

// Producer returns the writer for producer id. Ids wrap modulo the
// producer count; goroutines that share a shard contend on it.
func (s *Shared) Producer(id uint64) io.Writer {
	return producer{s: s, id: id % s.producers}
}

// Close writes out queued frames and stops the writer goroutine.
func (s *Shared) Close() error {
	return s.close()
}

type producer struct {
	s  *Shared
	id uint64
}

func (p producer) Write(b []byte) (int, error) {
	if err := p.s.Err(); err != nil {
		return 0, err
	}
	if !p.s.r.Write(p.id, clone(b)) {
		p.s.dropped.Add(1)
		return len(b), nil
	}
	p.s.notify()
	return len(b), nil
}
