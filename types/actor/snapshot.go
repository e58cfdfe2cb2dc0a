package actor

import (
	"github.com/interpose/common/types/identity"
)

// Snapshot is a serializable stand-in for a live actor reference.
//
// It carries just enough to resolve the actor again on the other side of a
// serialization boundary; it is not itself a usable session.
type Snapshot struct {
	Identity identity.ActorPublic `bson:"identity"`
	Name     string               `bson:"name,omitempty"`
}

// SnapshotOf captures a resolvable snapshot of a live actor.
func SnapshotOf(a Actor) Snapshot {
	return Snapshot{
		Identity: a.Identity(),
		Name:     a.Name(),
	}
}

// Resolve looks the snapshot's identity back up through the registry.
//
// Returns the live actor, or false when the actor is no longer known.
func (s Snapshot) Resolve(reg Registry) (Actor, bool) {
	if reg == nil {
		return nil, false
	}
	return reg.Lookup(s.Identity)
}
