package identity

import (
	"crypto/subtle"

	"github.com/interpose/common/types"
	"go4.org/mem"
	"golang.org/x/crypto/curve25519"
)

// ActorPrivate is the private half of a session actor's identity.
//
// It never leaves the transport process that owns the session; only the
// derived ActorPublic is shared with the pipeline.
type ActorPrivate struct {
	_   types.Incomparable
	key Token
}

// NewActorPrivate creates and returns a new actor private key.
func NewActorPrivate() ActorPrivate {
	var ret ActorPrivate
	rand(ret.key[:])
	clamp25519Private(ret.key[:])
	return ret
}

func ActorPrivateFrom(key Token) ActorPrivate {
	return ActorPrivate{key: key}
}

// Equal reports whether a and other are the same key.
func (a ActorPrivate) Equal(other ActorPrivate) bool {
	return subtle.ConstantTimeCompare(a.key[:], other.key[:]) == 1
}

// IsZero reports whether a is the zero value.
func (a ActorPrivate) IsZero() bool {
	return a.Equal(ActorPrivate{})
}

// Public returns the ActorPublic for a.
// Panics if ActorPrivate is zero.
func (a ActorPrivate) Public() ActorPublic {
	if a.IsZero() {
		panic("can't take the public key of a zero ActorPrivate")
	}
	var ret ActorPublic
	curve25519.ScalarBaseMult((*[32]byte)(&ret), (*[32]byte)(&a.key))
	return ret
}

// AppendText implements encoding.TextAppender.
func (a ActorPrivate) AppendText(b []byte) ([]byte, error) {
	return appendHexKey(b, actorPrivateHexPrefix, a.key[:]), nil
}

// MarshalText implements encoding.TextMarshaler.
func (a ActorPrivate) MarshalText() ([]byte, error) {
	return a.AppendText(nil)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *ActorPrivate) UnmarshalText(b []byte) error {
	return parseHex(a.key[:], mem.B(b), mem.S(actorPrivateHexPrefix))
}
