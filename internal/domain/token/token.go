// Package token defines the semantic rendezvous token (SRT): the shared
// secret both peers hold. The secret is exchanged out of band and treated
// as opaque, trusted input; this package only enforces its shape.
package token

import (
	"encoding/hex"
	"fmt"
)

// Size is the exact byte length of a rendezvous token.
const Size = 32

// HexSize is the length of the hex encoding of a token.
const HexSize = Size * 2

// Token is a fixed-length shared secret. The zero value is a valid (all-zero)
// token; construction through FromBytes/FromHex enforces the length invariant
// for external material. Token is immutable after construction and is never
// written to logs or derived outputs: its Stringer redacts the value.
type Token struct {
	b [Size]byte
}

// FromBytes builds a Token from exactly Size raw bytes.
func FromBytes(b []byte) (Token, error) {
	if len(b) != Size {
		return Token{}, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidFormat, Size, len(b))
	}
	var t Token
	copy(t.b[:], b)
	return t, nil
}

// FromHex builds a Token from a 64-character hex string.
func FromHex(s string) (Token, error) {
	if len(s) != HexSize {
		return Token{}, fmt.Errorf("%w: expected %d hex characters, got %d", ErrInvalidFormat, HexSize, len(s))
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return Token{}, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return FromBytes(raw)
}

// Bytes returns a copy of the raw secret. Callers are expected to hand the
// result straight to the derivation keyed hash and not retain it.
func (t Token) Bytes() []byte {
	out := make([]byte, Size)
	copy(out, t.b[:])
	return out
}

// Hex returns the hex encoding of the secret. This is an explicit opt-in;
// fmt and log paths go through String and see only the redacted form.
func (t Token) Hex() string {
	return hex.EncodeToString(t.b[:])
}

// String implements fmt.Stringer with a redacted representation so tokens
// cannot leak through log fields or error messages by accident.
func (t Token) String() string {
	return "srt(redacted)"
}
