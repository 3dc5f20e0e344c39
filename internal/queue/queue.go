// Package queue provides non-blocking SPSC queues for handing rendered
// frames from a polling goroutine to a writer goroutine.
//
// This package offers two implementations of the Queue interface:
//   - ChannelQueue: buffered channel with select/default
//   - RingBuffer: lock-free ring buffer
//
// # RingBuffer Safety (IMPORTANT)
//
// RingBuffer is a Single-Producer Single-Consumer (SPSC) queue.
// It is NOT safe for multiple goroutines to call Push() or Pop() concurrently.
//
// The implementation includes runtime guards that panic on misuse.
// This catches bugs early but adds ~1-2ns overhead per operation.
//
// Correct usage:
//   - Exactly ONE goroutine calls Push() (the poller)
//   - Exactly ONE goroutine calls Pop() (the writer)
package queue

import (
	"errors"
	"fmt"
)

// Queue is a single-producer single-consumer queue.
//
// Implementations are non-blocking: Push returns false if full,
// Pop returns false if empty.
type Queue[T any] interface {
	// Push adds an item to the queue.
	// Returns false if the queue is full.
	Push(T) bool

	// Pop removes and returns an item from the queue.
	// Returns false if the queue is empty.
	Pop() (T, bool)

	// PushLatest adds an item and never fails: when the queue is full the
	// oldest items are given up instead. Frames use this, since only the
	// newest one is worth drawing.
	PushLatest(T)

	// Evicted returns how many items PushLatest has given up.
	Evicted() uint64
}

// Kinds accepted by New.
const (
	KindRing    = "ring"
	KindChannel = "channel"
)

// ErrUnknownKind is returned by New for an unsupported queue kind.
var ErrUnknownKind = errors.New("queue: unknown kind")

// New returns a queue of the given kind holding at least size items.
func New[T any](kind string, size int) (Queue[T], error) {
	if size < 1 {
		return nil, fmt.Errorf("queue: size %d must be positive", size)
	}
	switch kind {
	case KindRing, "":
		return NewRingBuffer[T](size), nil
	case KindChannel:
		return NewChannel[T](size), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

// Drain pops until q is empty, calling fn for each item in FIFO order,
// and returns the number of items popped. Consumer side only.
func Drain[T any](q Queue[T], fn func(T)) int {
	n := 0
	for {
		v, ok := q.Pop()
		if !ok {
			return n
		}
		fn(v)
		n++
	}
}
