package queue

import "sync/atomic"

// ChannelQueue wraps a buffered channel as a Queue.
//
// Unlike RingBuffer it tolerates several pollers pushing at once, at the
// cost of channel locking. PushLatest evicts from the producer side by
// receiving the oldest item itself.
type ChannelQueue[T any] struct {
	ch      chan T
	evicted atomic.Uint64
}

// NewChannel creates a ChannelQueue holding size items; size < 1 means 1.
func NewChannel[T any](size int) *ChannelQueue[T] {
	return &ChannelQueue[T]{ch: make(chan T, max(size, 1))}
}

// Push adds v without blocking. Returns false if the queue is full.
func (q *ChannelQueue[T]) Push(v T) bool {
	select {
	case q.ch <- v:
		return true
	default:
		return false
	}
}

// PushLatest adds v, receiving and discarding the oldest item until v
// fits. The consumer may win a race for the oldest item; then nothing is
// evicted and the send is retried.
func (q *ChannelQueue[T]) PushLatest(v T) {
	for !q.Push(v) {
		select {
		case <-q.ch:
			q.evicted.Add(1)
		default:
		}
	}
}

// Pop removes and returns the oldest item without blocking.
// Returns false if the queue is empty.
func (q *ChannelQueue[T]) Pop() (T, bool) {
	select {
	case v := <-q.ch:
		return v, true
	default:
		var zero T
		return zero, false
	}
}

// Evicted returns how many items PushLatest has discarded.
func (q *ChannelQueue[T]) Evicted() uint64 {
	return q.evicted.Load()
}

// Len returns the current number of items in the queue.
func (q *ChannelQueue[T]) Len() int {
	return len(q.ch)
}

// Cap returns the capacity of the queue.
func (q *ChannelQueue[T]) Cap() int {
	return cap(q.ch)
}
