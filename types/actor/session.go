package actor

import (
	"net/netip"
	"sync"

	"github.com/LukaGiorgadze/gonull"
	"github.com/interpose/common/types/identity"
)

// Session is a minimal in-process Actor implementation, for embedders that
// manage their sessions directly, and for the debug shell.
type Session struct {
	mu sync.Mutex

	id identity.ActorPublic

	name      string
	addr      netip.AddrPort
	connected bool
}

func NewSession(id identity.ActorPublic, name string, addr netip.AddrPort) *Session {
	return &Session{
		id:        id,
		name:      name,
		addr:      addr,
		connected: true,
	}
}

func (s *Session) Identity() identity.ActorPublic {
	return s.id
}

func (s *Session) Name() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.name
}

func (s *Session) RemoteAddr() netip.AddrPort {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.addr
}

func (s *Session) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.connected
}

// Disconnect marks the underlying session as gone. Actor references already
// handed out go stale, which readers have to tolerate.
func (s *Session) Disconnect() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.connected = false
}

// Update is a partial session update, all values nullable.
type Update struct {
	Name      gonull.Nullable[string]
	Addr      gonull.Nullable[netip.AddrPort]
	Connected gonull.Nullable[bool]
}

// Apply applies the set fields of the update to the session.
func (s *Session) Apply(u Update) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u.Name.Present {
		s.name = u.Name.Val
	}
	if u.Addr.Present {
		s.addr = u.Addr.Val
	}
	if u.Connected.Present {
		s.connected = u.Connected.Val
	}
}

var _ Actor = &Session{}
