package tap

import (
	"errors"

	"github.com/interpose/common/types/event"
)

var ErrDeferredFull = errors.New("deferred sink is full")

// Deferred accepts derived asynchronous events for out-of-line processing.
//
// The scheduler that drains the sink is not part of this library; embedders
// bring their own worker pool or task queue.
type Deferred interface {
	Enqueue(ev *event.Event) error
}

// ChanDeferred is a channel-backed Deferred for embedders that drain the
// queue themselves.
type ChanDeferred struct {
	ch chan *event.Event
}

func NewChanDeferred() *ChanDeferred {
	return &ChanDeferred{
		ch: make(chan *event.Event, DeferredChanBuffer),
	}
}

// Enqueue hands an event to the queue without blocking.
// Returns ErrDeferredFull when the buffer is exhausted.
func (c *ChanDeferred) Enqueue(ev *event.Event) error {
	select {
	case c.ch <- ev:
		return nil
	default:
		return ErrDeferredFull
	}
}

// Queue exposes the receive side for the embedder's workers.
func (c *ChanDeferred) Queue() <-chan *event.Event {
	return c.ch
}

var _ Deferred = &ChanDeferred{}
