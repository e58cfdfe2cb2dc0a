package identity

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"go4.org/mem"
)

// ActorPublic is the durable public identity of a session actor.
//
// It is the one value about an actor that survives a serialization boundary:
// a live session reference is replaced by its ActorPublic, and resolved back
// through a registry on the other side.
type ActorPublic Token

func (a ActorPublic) Debug() string {
	return fmt.Sprintf("%x", a)
}

func (a ActorPublic) HexString() string {
	return hex.EncodeToString(a[:])
}

// IsZero reports whether a is the zero value.
func (a ActorPublic) IsZero() bool {
	return a == ActorPublic{}
}

// AppendText implements encoding.TextAppender. It appends a typed prefix
// followed by hex encoded represtation of a to b.
func (a ActorPublic) AppendText(b []byte) ([]byte, error) {
	return appendHexKey(b, actorPublicHexPrefix, a[:]), nil
}

// MarshalText implements encoding.TextMarshaler. It returns a typed prefix
// followed by a hex encoded representation of a.
func (a ActorPublic) MarshalText() ([]byte, error) {
	return a.AppendText(nil)
}

// UnmarshalText implements encoding.TextUnmarshaler. It expects a typed prefix
// followed by a hex encoded representation of a.
func (a *ActorPublic) UnmarshalText(b []byte) error {
	return parseHex(a[:], mem.B(b), mem.S(actorPublicHexPrefix))
}

// MakeActorPublic parses a 32-byte raw value as an ActorPublic.
//
// This should be used only when deserializing an ActorPublic from a
// binary protocol.
func MakeActorPublic(raw [32]byte) ActorPublic {
	return raw
}

func (a ActorPublic) ToByteSlice() []byte {
	return a[:]
}

func UnmarshalActorPublic(s string) (*ActorPublic, error) {
	if !strings.HasSuffix(s, "\"") && !strings.HasPrefix(s, "\"") {
		s = fmt.Sprintf("\"%s\"", s)
	}

	pub := new(ActorPublic)

	if err := json.Unmarshal([]byte(s), pub); err != nil {
		return nil, err
	}

	return pub, nil
}

func (a ActorPublic) Marshal() string {
	b, _ := json.Marshal(a)
	return string(b)
}
