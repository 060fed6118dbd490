// Package derive maps (token, salt) pairs onto target patterns through a
// keyed hash. Given the same secret and the same oracle state (time bucket,
// session identifier, any shared public context) both peers compute the same
// target without exchanging anything.
package derive

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"

	"github.com/kiloran/phenrv/internal/domain/pattern"
	"github.com/kiloran/phenrv/internal/domain/token"
)

// Mapping fixes how digest byte offsets feed the nine axis segments. It is a
// protocol constant: a revision may introduce a new table, but an existing
// version must never change, or peers on different builds silently diverge.
type Mapping struct {
	version int
	// offsets[a] is the digest byte offset of axis a's big-endian uint16 segment.
	offsets [pattern.AxisCount]int
}

// V1 reads nine non-overlapping 2-byte segments from the first 18 bytes of
// the 32-byte digest, one per axis in protocol axis order.
var V1 = Mapping{
	version: 1,
	offsets: [pattern.AxisCount]int{0, 2, 4, 6, 8, 10, 12, 14, 16},
}

// Version returns the protocol revision of the mapping.
func (m Mapping) Version() int {
	return m.version
}

// Offset returns the digest byte offset of the given axis's segment.
func (m Mapping) Offset(a pattern.Axis) int {
	return m.offsets[a]
}

// Segments partitions a digest into the nine 16-bit axis segments.
func (m Mapping) Segments(digest [sha256.Size]byte) [pattern.AxisCount]uint16 {
	var segs [pattern.AxisCount]uint16
	for _, a := range pattern.Axes() {
		off := m.offsets[a]
		segs[a] = binary.BigEndian.Uint16(digest[off : off+2])
	}
	return segs
}

// FromToken derives the target pattern for (t, salt) under the current
// protocol mapping. The function is total and deterministic: identical
// inputs always produce bit-identical patterns, and flipping any input bit
// yields an unrelated-looking pattern through the hash.
func FromToken(t token.Token, salt []byte) pattern.Pattern {
	return FromTokenWithMapping(V1, t, salt)
}

// FromTokenWithMapping derives a target pattern under an explicit mapping
// revision. digest = HMAC-SHA256(key = token, message = salt); each segment
// is quantized into its axis's declared range.
func FromTokenWithMapping(m Mapping, t token.Token, salt []byte) pattern.Pattern {
	mac := hmac.New(sha256.New, t.Bytes())
	mac.Write(salt)
	var digest [sha256.Size]byte
	mac.Sum(digest[:0])

	segs := m.Segments(digest)
	var vals [pattern.AxisCount]float64
	for _, a := range pattern.Axes() {
		vals[a] = a.Quantize(segs[a])
	}
	return pattern.FromValues(vals)
}
