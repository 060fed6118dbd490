package derive_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiloran/phenrv/internal/domain/derive"
	"github.com/kiloran/phenrv/internal/domain/pattern"
	"github.com/kiloran/phenrv/internal/domain/token"
)

const sequentialTokenHex = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

// Cross-implementation conformance vectors. These values are protocol
// constants: any change to the hash, the segment mapping, or the axis
// ranges shows up here first.
func TestDerivationVectorAlpha(t *testing.T) {
	tok, err := token.FromHex(sequentialTokenHex)
	require.NoError(t, err)

	got := derive.FromToken(tok, []byte("alpha"))

	const tol = 1e-3
	assert.InDelta(t, 0.6505379, got.Brightness, tol)
	assert.InDelta(t, 8464.454, got.ColorTemp, tol*pattern.ColorTemp.Range().Span())
	assert.InDelta(t, 0.1207599, got.FocalDistance, tol)
	assert.InDelta(t, 0.4094301, got.Volume, tol)
	assert.InDelta(t, 119.63836, got.Tempo, tol*pattern.Tempo.Range().Span())
	assert.InDelta(t, 15938.757, got.Pitch, tol*pattern.Pitch.Range().Span())
	assert.InDelta(t, 25.549553, got.Temperature, tol*pattern.Temperature.Range().Span())
	assert.InDelta(t, 0.30618754, got.Movement, tol)
	assert.InDelta(t, 0.6899062, got.Arousal, tol)
}

func TestDerivationVectorBeta(t *testing.T) {
	tok, err := token.FromHex(sequentialTokenHex)
	require.NoError(t, err)

	got := derive.FromToken(tok, []byte("beta"))

	const tol = 1e-3
	assert.InDelta(t, 0.043427177, got.Brightness, tol)
	assert.InDelta(t, 4914.473, got.ColorTemp, tol*pattern.ColorTemp.Range().Span())
	assert.InDelta(t, 0.5757839, got.FocalDistance, tol)
	assert.InDelta(t, 0.5407492, got.Volume, tol)
	assert.InDelta(t, 179.16228, got.Tempo, tol*pattern.Tempo.Range().Span())
	assert.InDelta(t, 14068.652, got.Pitch, tol*pattern.Pitch.Range().Span())
	assert.InDelta(t, 33.150837, got.Temperature, tol*pattern.Temperature.Range().Span())
	assert.InDelta(t, 0.7570611, got.Movement, tol)
	assert.InDelta(t, 0.7669337, got.Arousal, tol)
}

// The zero-token vector pins the exact float64 outputs, not just the
// truncated published values.
func TestDerivationVectorZeroToken(t *testing.T) {
	got := derive.FromToken(token.Token{}, []byte("example-salt"))

	const tol = 1e-9
	assert.InDelta(t, 0.6030975814450293, got.Brightness, tol)
	assert.InDelta(t, 4788.128480964369, got.ColorTemp, tol*1e4)
	assert.InDelta(t, 0.14685282673380637, got.FocalDistance, tol)
	assert.InDelta(t, 0.3727779049362936, got.Volume, tol)
	assert.InDelta(t, 95.82513160906385, got.Tempo, tol*1e3)
	assert.InDelta(t, 15736.014648661021, got.Pitch, tol*1e5)
	assert.InDelta(t, 31.747310597390708, got.Temperature, tol*1e2)
	assert.InDelta(t, 0.8011444266422523, got.Movement, tol)
	assert.InDelta(t, 0.434531166552224, got.Arousal, tol)
}

func TestDerivationDeterminism(t *testing.T) {
	tok, err := token.FromHex(sequentialTokenHex)
	require.NoError(t, err)

	salt := []byte("oracle-state")
	first := derive.FromToken(tok, salt)
	second := derive.FromToken(tok, salt)
	assert.Equal(t, first, second, "identical inputs must yield bit-identical patterns")
}

func TestDerivationOutputsAreInRange(t *testing.T) {
	tok, err := token.FromHex(sequentialTokenHex)
	require.NoError(t, err)

	for _, salt := range []string{"", "a", "alpha", "beta", "example-salt", "2026-08-30T12:00"} {
		got := derive.FromToken(tok, []byte(salt))
		require.NoError(t, got.Validate(), "salt %q produced an out-of-range pattern", salt)
	}
}

func TestDerivationSaltSensitivity(t *testing.T) {
	tok, err := token.FromHex(sequentialTokenHex)
	require.NoError(t, err)

	a := derive.FromToken(tok, []byte("bucket-1"))
	b := derive.FromToken(tok, []byte("bucket-2"))
	assert.NotEqual(t, a, b, "different salts must produce different patterns")
}

func TestDerivationTokenSensitivity(t *testing.T) {
	tokA, err := token.FromHex(sequentialTokenHex)
	require.NoError(t, err)
	tokB := token.Token{}

	salt := []byte("shared-context")
	assert.NotEqual(t, derive.FromToken(tokA, salt), derive.FromToken(tokB, salt))
}

func TestMappingV1(t *testing.T) {
	assert.Equal(t, 1, derive.V1.Version())

	// v1 reads nine non-overlapping big-endian segments from the first
	// 18 digest bytes, in protocol axis order.
	for _, a := range pattern.Axes() {
		assert.Equal(t, int(a)*2, derive.V1.Offset(a))
	}
}

func TestMappingSegments(t *testing.T) {
	var digest [32]byte
	for i := range digest {
		digest[i] = byte(i)
	}
	segs := derive.V1.Segments(digest)
	assert.Equal(t, uint16(0x0001), segs[pattern.Brightness])
	assert.Equal(t, uint16(0x0203), segs[pattern.ColorTemp])
	assert.Equal(t, uint16(0x1011), segs[pattern.Arousal])
}
