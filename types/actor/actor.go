// Package actor defines the session-actor boundary of the tap pipeline.
//
// An actor is the live session/connection entity that sent, or will receive,
// an intercepted packet. The pipeline never owns an actor: packet events hold
// a weak reference that can go stale whenever the transport drops the session.
package actor

import (
	"net/netip"

	"github.com/interpose/common/types/identity"
)

type Actor interface {
	// Identity returns the durable identity of the session actor.
	Identity() identity.ActorPublic

	// Name returns the display name of the actor, empty if unknown.
	Name() string

	// RemoteAddr returns the remote address of the underlying session.
	RemoteAddr() netip.AddrPort

	// Connected reports whether the underlying session is still live.
	//
	// This can flip to false at any point after an actor reference has been
	// handed out; readers must tolerate stale actors.
	Connected() bool
}
