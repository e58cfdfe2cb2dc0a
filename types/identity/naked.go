// Package identity contains the durable identity values that session actors
// carry across serialization and reconnection boundaries.
package identity

import (
	"encoding/hex"
	"fmt"
)

const Len = 32

// Token is the 32-byte underlying identity value.
//
// Only ever used for public interfaces, very dangerous to use directly, due to the security implications.
type Token [Len]byte

func (t Token) Debug() string {
	return fmt.Sprintf("%x", t)
}

func (t Token) HexString() string {
	return hex.EncodeToString(t[:])
}

// IsZero reports whether t is the zero value.
func (t Token) IsZero() bool {
	return t == Token{}
}
