package tap

import (
	"log/slog"
	"slices"
	"sync"

	"github.com/interpose/common/types/actor"
	"github.com/interpose/common/types/event"
	"github.com/interpose/common/types/packet"
)

// Registration is the handle returned by Register, used to unregister the
// listener again.
type Registration struct {
	l Listener
	p Priority
}

// Dispatcher runs intercepted packets through the registered listener chain.
//
// One Dispatcher serves one pipeline; packets are published on the caller's
// goroutine, one at a time per event. The listener chain runs strictly in
// priority order, and in registration order within the same priority.
type Dispatcher struct {
	mu        sync.RWMutex
	listeners map[Priority][]*Registration

	deferred Deferred
}

// NewDispatcher creates a dispatcher that forks deferred events into sink.
// A nil sink is allowed; events with a marker attached are then dropped from
// the deferred path with a warning.
func NewDispatcher(sink Deferred) *Dispatcher {
	return &Dispatcher{
		listeners: make(map[Priority][]*Registration),
		deferred:  sink,
	}
}

// Register adds a listener at the given priority.
func (d *Dispatcher) Register(l Listener, p Priority) *Registration {
	d.mu.Lock()
	defer d.mu.Unlock()

	r := &Registration{l: l, p: p}
	d.listeners[p] = append(d.listeners[p], r)
	return r
}

// Unregister removes a previously registered listener.
func (d *Dispatcher) Unregister(r *Registration) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.listeners[r.p] = slices.DeleteFunc(d.listeners[r.p], func(cur *Registration) bool {
		return cur == r
	})
}

// ReceiveClientPacket publishes a client-originated packet transmission.
//
// Returns the event after the listener chain has run; the caller decides what
// Cancelled means for delivery.
func (d *Dispatcher) ReceiveClientPacket(pkt *packet.Container, a actor.Actor) *event.Event {
	return d.publish(event.FromClient(d, pkt, a))
}

// SendServerPacket publishes a server-originated packet transmission.
func (d *Dispatcher) SendServerPacket(pkt *packet.Container, a actor.Actor) *event.Event {
	return d.publish(event.FromServer(d, pkt, a))
}

func (d *Dispatcher) publish(ev *event.Event) *event.Event {
	d.mu.RLock()
	chain := make([]Listener, 0)
	for p := Lowest; p <= Monitor; p++ {
		for _, r := range d.listeners[p] {
			chain = append(chain, r.l)
		}
	}
	d.mu.RUnlock()

	for _, l := range chain {
		l.HandlePacket(ev)
	}

	if m := ev.ContinuationMarker(); m != nil {
		d.fork(ev, m)
	}

	return ev
}

// fork derives the asynchronous continuation and hands it off.
func (d *Dispatcher) fork(ev *event.Event, m event.ContinuationMarker) {
	async, err := event.DeriveAsynchronous(ev, m)
	if err != nil {
		// publish only ever sees synchronous events
		slog.Error("tap: cannot derive continuation", "error", err, "marker", m.Debug())
		return
	}

	if d.deferred == nil {
		slog.Warn("tap: no deferred sink, dropping continuation", "marker", m.Debug())
		return
	}

	if err := d.deferred.Enqueue(async); err != nil {
		slog.Warn("tap: deferred sink rejected continuation", "error", err, "marker", m.Debug())
	}
}
