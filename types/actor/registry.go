package actor

import (
	"sync"

	"github.com/interpose/common/types/identity"
	"golang.org/x/exp/maps"
)

// Registry resolves durable actor identities back to live session actors.
//
// The transport layer that owns the sessions implements this; the pipeline
// only consults it when reconstructing serialized events.
type Registry interface {
	Lookup(id identity.ActorPublic) (Actor, bool)
}

// MemRegistry is a map-backed Registry for embedders that track their
// sessions in-process.
type MemRegistry struct {
	mu     sync.RWMutex
	actors map[identity.ActorPublic]Actor
}

func NewMemRegistry() *MemRegistry {
	return &MemRegistry{
		actors: make(map[identity.ActorPublic]Actor),
	}
}

func (r *MemRegistry) Add(a Actor) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.actors[a.Identity()] = a
}

func (r *MemRegistry) Remove(id identity.ActorPublic) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.actors, id)
}

func (r *MemRegistry) Lookup(id identity.ActorPublic) (Actor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.actors[id]
	return a, ok
}

// Identities returns the identities of all currently registered actors.
func (r *MemRegistry) Identities() []identity.ActorPublic {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return maps.Keys(r.actors)
}

var _ Registry = &MemRegistry{}
