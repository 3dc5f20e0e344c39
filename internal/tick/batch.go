package tick

// Batch is a Gate that reads the clock only every N calls to Tick().
//
// This reduces the overhead of time checks by amortizing them across
// multiple loop iterations. Useful in loops that poll millions of times
// per second and can tolerate a fire landing up to N polls late.
//
// Example: With every=1000 at 10Hz, the clock is read once per 1000
// polls, and the gate fires if ~100ms have passed.
type Batch struct {
	gate  *Gate
	every int
	count int
}

// NewBatch creates a Batch gate that checks the clock every N polls.
//
// Parameters:
//   - freqHz: target fire frequency
//   - every: read the clock only every N calls to Tick(); values below 1 mean 1
func NewBatch(freqHz float64, every int, opts ...Option) (*Batch, error) {
	g, err := New(freqHz, opts...)
	if err != nil {
		return nil, err
	}
	if every < 1 {
		every = 1
	}
	return &Batch{gate: g, every: every}, nil
}

// Tick reports whether the gate fired on this call.
//
// The clock is only read every N calls (as specified by 'every').
// On other calls, this returns false immediately.
func (b *Batch) Tick() bool {
	b.count++
	if b.count < b.every {
		return false
	}
	b.count = 0
	return b.gate.Poll()
}

// Poll is Tick.
func (b *Batch) Poll() bool {
	return b.Tick()
}

// Reset clears the batch count and restarts the period.
func (b *Batch) Reset() {
	b.count = 0
	b.gate.Reset()
}

// Stop is a no-op for Batch (no resources to release).
func (b *Batch) Stop() {}

// Every returns the batch size.
func (b *Batch) Every() int {
	return b.every
}

// Ticks returns the tick counter of the underlying gate.
func (b *Batch) Ticks() uint64 {
	return b.gate.Ticks()
}
