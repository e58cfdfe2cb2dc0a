// Package event contains the packet event: the record of one intercepted
// packet transmission as it passes through the tap pipeline.
//
// Events follow a one-way typestate. Every event starts out synchronous and
// fully mutable. It can be forked exactly once, via DeriveAsynchronous, into
// an asynchronous continuation whose marker is frozen for the rest of its
// life. The fork copies state; the synchronous owner and the asynchronous
// worker never share a mutable instance afterwards.
package event

import (
	"github.com/interpose/common/types/actor"
	"github.com/interpose/common/types/packet"
)

// ContinuationMarker is an opaque token that signals a packet event should be
// processed out of line, on the deferred path.
//
// The event core stores and returns markers without interpreting them.
type ContinuationMarker interface {
	// Debug returns a single-line description for logging.
	Debug() string
}

// Event records one packet transmission.
//
// An Event instance is single-writer: the pipeline stage that currently owns
// it mutates it, nobody else. There is no internal locking.
type Event struct {
	// Transient structural link to the originating pipeline. Does not cross a
	// serialization boundary.
	source any

	pkt   *packet.Container
	actor actor.Actor

	serverOriginated bool
	cancelled        bool

	marker       ContinuationMarker
	asynchronous bool
}

// FromClient creates an event representing a client packet transmission.
func FromClient(source any, pkt *packet.Container, a actor.Actor) *Event {
	return &Event{
		source: source,
		pkt:    pkt,
		actor:  a,
	}
}

// FromServer creates an event representing a server packet transmission.
func FromServer(source any, pkt *packet.Container, a actor.Actor) *Event {
	return &Event{
		source:           source,
		pkt:              pkt,
		actor:            a,
		serverOriginated: true,
	}
}

// bareEvent creates a placeholder event that carries only a source.
//
// Scaffolding for package-internal tests; FromClient, FromServer and
// DeriveAsynchronous are the only supported construction paths.
func bareEvent(source any) *Event {
	return &Event{source: source}
}

// DeriveAsynchronous forks a synchronous event into its asynchronous
// continuation.
//
// The derived event copies packet, actor, direction and cancellation state at
// the moment of derivation. The packet is deep-copied, so the two instances
// share no mutable state: mutating one never affects the other. The marker of
// the derived event is frozen.
//
// Returns ErrAlreadyAsynchronous when orig has itself been derived; there is
// only one hop from synchronous to asynchronous.
func DeriveAsynchronous(orig *Event, m ContinuationMarker) (*Event, error) {
	if orig.asynchronous {
		return nil, ErrAlreadyAsynchronous
	}

	var pkt *packet.Container
	if orig.pkt != nil {
		pkt = orig.pkt.Clone()
	}

	return &Event{
		source:           orig.source,
		pkt:              pkt,
		actor:            orig.actor,
		serverOriginated: orig.serverOriginated,
		cancelled:        orig.cancelled,
		marker:           m,
		asynchronous:     true,
	}, nil
}

// Source returns the opaque origin handle. Nil after deserialization.
func (e *Event) Source() any {
	return e.source
}

// Packet returns the payload that will be delivered.
func (e *Event) Packet() *packet.Container {
	return e.pkt
}

// SetPacket replaces the payload that will be delivered instead.
func (e *Event) SetPacket(pkt *packet.Container) {
	e.pkt = pkt
}

// PacketID returns the packet type ID of the current payload.
//
// Returns ErrNoPacket when no payload is set.
func (e *Event) PacketID() (packet.ID, error) {
	if e.pkt == nil {
		return 0, ErrNoPacket
	}
	return e.pkt.ID(), nil
}

// Cancelled reports whether the packet should be dropped instead of
// delivered. The pipeline stage consuming the event is responsible for
// honoring this.
func (e *Event) Cancelled() bool {
	return e.cancelled
}

// SetCancelled sets whether the packet should be dropped.
func (e *Event) SetCancelled(cancelled bool) {
	e.cancelled = cancelled
}

// Actor returns the session actor that sent, or will receive, the packet.
//
// May be nil: the actor is a weak reference, and is absent after a
// deserialization whose resolution failed. A non-nil actor can still be
// stale; check Connected before trusting it.
func (e *Event) Actor() actor.Actor {
	return e.actor
}

// ServerOriginated reports whether the packet was created by the server.
//
// Fixed by the factory that created the event.
func (e *Event) ServerOriginated() bool {
	return e.serverOriginated
}

// ContinuationMarker returns the attached marker, or nil if none is set.
func (e *Event) ContinuationMarker() ContinuationMarker {
	return e.marker
}

// SetContinuationMarker attaches a continuation marker.
//
// A marker left attached at the end of synchronous processing tells the
// dispatcher to fork the event onto the deferred path.
//
// Returns ErrMarkerFrozen when the event is asynchronous: by then a worker
// may already be reading the marker, so it cannot change anymore.
func (e *Event) SetContinuationMarker(m ContinuationMarker) error {
	if e.asynchronous {
		return ErrMarkerFrozen
	}
	e.marker = m
	return nil
}

// Asynchronous reports whether this event was derived for out-of-line
// processing. Never reverts to false.
func (e *Event) Asynchronous() bool {
	return e.asynchronous
}
