package cancel

import (
	"context"
	"os"
	"os/signal"
)

// ContextCanceler is done when its context is.
//
// The Done channel is captured at construction, so each Done() is a
// non-blocking receive with no interface call on the context.
type ContextCanceler struct {
	ctx  context.Context
	done <-chan struct{}
	stop context.CancelFunc
}

// NewContext creates a ContextCanceler from a parent context.
// It is done when the parent is done or Cancel is called.
func NewContext(parent context.Context) *ContextCanceler {
	ctx, cancel := context.WithCancel(parent)
	return &ContextCanceler{ctx: ctx, done: ctx.Done(), stop: cancel}
}

// NewSignal creates a ContextCanceler that is also done when the process
// receives one of sigs. Cancel unregisters the signal handler, so call
// it once the loop has stopped.
func NewSignal(parent context.Context, sigs ...os.Signal) *ContextCanceler {
	sctx, unregister := signal.NotifyContext(parent, sigs...)
	ctx, cancel := context.WithCancel(sctx)
	return &ContextCanceler{
		ctx:  ctx,
		done: ctx.Done(),
		stop: func() {
			cancel()
			unregister()
		},
	}
}

// Done returns true if the context has been cancelled.
func (c *ContextCanceler) Done() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

// Cancel cancels the context and releases any signal registration.
func (c *ContextCanceler) Cancel() {
	c.stop()
}

// Err reports why the canceler is done, or nil while it is not.
func (c *ContextCanceler) Err() error {
	return c.ctx.Err()
}

// Context returns the underlying context.Context.
func (c *ContextCanceler) Context() context.Context {
	return c.ctx
}
