package queue

import (
	"sync/atomic"
)

// RingBuffer is a lock-free SPSC (Single-Producer Single-Consumer) queue.
//
// A poller pushes frames without ever blocking on the terminal. When the
// writer falls behind, Push reports full; PushLatest instead parks the
// frame in an overflow slot and the consumer evicts everything queued
// before it on its next Pop. The producer never touches tail, so the
// SPSC contract holds.
//
// WARNING: This queue is NOT safe for multiple producers or multiple consumers.
// The runtime guards panic if the SPSC contract is violated.
type RingBuffer[T any] struct {
	buf  []T
	mask uint64

	// Cache line padding to prevent false sharing
	_pad0 [56]byte //nolint:unused

	head atomic.Uint64 // Written by producer, read by consumer

	_pad1 [56]byte //nolint:unused

	tail atomic.Uint64 // Written by consumer, read by producer

	_pad2 [56]byte //nolint:unused

	// SPSC guards: detect concurrent misuse
	pushActive atomic.Uint32
	popActive  atomic.Uint32

	// Newest item that did not fit. Set only by the producer, cleared
	// only by the consumer.
	latest  atomic.Pointer[parked[T]]
	evicted atomic.Uint64
}

// parked is an overflow item and the head index at the time it was
// parked: every ring item below before is older than it.
type parked[T any] struct {
	v      T
	before uint64
}

// NewRingBuffer creates a RingBuffer with the specified size.
// Size will be rounded up to the next power of 2.
func NewRingBuffer[T any](size int) *RingBuffer[T] {
	if size < 1 {
		size = 1
	}
	// Round up to power of 2
	n := uint64(1)
	for n < uint64(size) {
		n <<= 1
	}

	return &RingBuffer[T]{
		buf:  make([]T, n),
		mask: n - 1,
	}
}

// Push adds an item to the queue.
// Returns false if the queue is full.
//
// SPSC CONTRACT: Only ONE goroutine may call Push().
func (r *RingBuffer[T]) Push(v T) bool {
	// SPSC guard: panic if concurrent Push detected
	if !r.pushActive.CompareAndSwap(0, 1) {
		panic("queue: concurrent Push on SPSC RingBuffer - only one producer allowed")
	}
	defer r.pushActive.Store(0)

	head := r.head.Load()
	tail := r.tail.Load()

	// Check if full
	if head-tail >= uint64(len(r.buf)) {
		return false
	}

	// Write value
	r.buf[head&r.mask] = v

	// Publish (store-release semantics via atomic)
	r.head.Store(head + 1)

	return true
}

// PushLatest adds v, or parks it in the overflow slot when the ring is
// full. While an item is parked every newer item replaces it, so the ring
// only ever holds items older than the parked one.
//
// SPSC CONTRACT: Only the Push() goroutine may call PushLatest().
func (r *RingBuffer[T]) PushLatest(v T) {
	if r.latest.Load() == nil && r.Push(v) {
		return
	}
	// head only moves on this goroutine, so it is stable here
	if r.latest.Swap(&parked[T]{v: v, before: r.head.Load()}) != nil {
		r.evicted.Add(1)
	}
}

// Pop removes and returns an item from the queue.
// Returns false if the queue is empty.
//
// If PushLatest parked an item, Pop evicts every item queued before it
// and returns the parked item.
//
// SPSC CONTRACT: Only ONE goroutine may call Pop().
func (r *RingBuffer[T]) Pop() (T, bool) {
	// SPSC guard: panic if concurrent Pop detected
	if !r.popActive.CompareAndSwap(0, 1) {
		panic("queue: concurrent Pop on SPSC RingBuffer - only one consumer allowed")
	}
	defer r.popActive.Store(0)

	tail := r.tail.Load()

	// Items pushed after the Swap sit at or above p.before and stay.
	if p := r.latest.Swap(nil); p != nil {
		var zero T
		for i := tail; i < p.before; i++ {
			r.buf[i&r.mask] = zero
		}
		r.evicted.Add(p.before - tail)
		r.tail.Store(p.before)
		return p.v, true
	}

	head := r.head.Load()

	// Check if empty
	if tail >= head {
		var zero T
		return zero, false
	}

	// Read value and release the slot's reference
	v := r.buf[tail&r.mask]
	var zero T
	r.buf[tail&r.mask] = zero

	// Consume (store-release semantics via atomic)
	r.tail.Store(tail + 1)

	return v, true
}

// Evicted returns how many items PushLatest has given up.
func (r *RingBuffer[T]) Evicted() uint64 {
	return r.evicted.Load()
}

// Len returns the current number of items in the queue, counting a
// parked item. This is an approximation and may be slightly stale.
func (r *RingBuffer[T]) Len() int {
	head := r.head.Load()
	tail := r.tail.Load()
	n := int(head - tail)
	if r.latest.Load() != nil {
		n++
	}
	return n
}

// Cap returns the capacity of the queue.
func (r *RingBuffer[T]) Cap() int {
	return len(r.buf)
}
