package curve

import (
	"bytes"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func repeatByte(b byte, n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = b
	}
	return out
}

func generatorCommitment(t *testing.T) *bn254.G1Affine {
	t.Helper()
	var p bn254.G1Affine
	p.X.SetUint64(1)
	p.Y.SetUint64(2)
	require.True(t, p.IsOnCurve())
	return &p
}

// The expected coordinates are the published regression vector shared with
// the on-chain verifier of the attestation scheme. Any change to the packed
// preimage, the hash, or the curve mapping breaks this test.
func TestAttestationPoint_GoldenVector(t *testing.T) {
	var root [32]byte
	copy(root[:], repeatByte(0x11, 32))

	point := AttestationPoint(root, 1, 2, generatorCommitment(t))

	var expected bn254.G1Affine
	_, err := expected.X.SetString("3104132272622526655068902279970515367044771064982988265068273751564440697689")
	require.NoError(t, err)
	_, err = expected.Y.SetString("14983672482514514723382346054400511740670770934276906876175822994665721348371")
	require.NoError(t, err)

	assert.True(t, point.Equal(&expected), "attestation point drifted from the published vector: got (%s, %s)", point.X.String(), point.Y.String())
	assert.True(t, point.IsOnCurve())
	assert.True(t, point.IsInSubGroup())
}

func TestAttestationPoint_Deterministic(t *testing.T) {
	var root [32]byte
	copy(root[:], repeatByte(0xab, 32))
	commitment := generatorCommitment(t)

	a := AttestationPoint(root, 7, 3, commitment)
	b := AttestationPoint(root, 7, 3, commitment)
	assert.True(t, a.Equal(b))

	// Every input participates in the preimage.
	assert.False(t, a.Equal(AttestationPoint(root, 8, 3, commitment)))
	assert.False(t, a.Equal(AttestationPoint(root, 7, 4, commitment)))
	var otherRoot [32]byte
	copy(otherRoot[:], repeatByte(0xac, 32))
	assert.False(t, a.Equal(AttestationPoint(otherRoot, 7, 3, commitment)))
}

func TestMapToCurve_LandsOnCurve(t *testing.T) {
	for i := byte(0); i < 16; i++ {
		var digest [32]byte
		copy(digest[:], repeatByte(i, 32))
		p := MapToCurve(digest)
		assert.True(t, p.IsOnCurve(), "digest %d", i)
		assert.True(t, p.IsInSubGroup(), "digest %d", i)
	}
}

func TestDecodeStorageRoot(t *testing.T) {
	tests := []struct {
		name    string
		input   []byte
		wantErr bool
	}{
		{name: "exact length", input: repeatByte(0x42, 32)},
		{name: "too short", input: repeatByte(0x42, 31), wantErr: true},
		{name: "too long", input: repeatByte(0x42, 33), wantErr: true},
		{name: "empty", input: nil, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, err := DecodeStorageRoot(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidRootLength)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, root[:])
		})
	}
}

func TestDecodeCommitment_RoundTrip(t *testing.T) {
	commitment := generatorCommitment(t)
	encoded := EncodePoint(commitment)
	require.Len(t, encoded, PointSize)

	decoded, err := DecodeCommitment(encoded)
	require.NoError(t, err)
	assert.True(t, decoded.Equal(commitment))
}

func TestDecodeCommitment_Rejections(t *testing.T) {
	notOnCurve := make([]byte, PointSize)
	notOnCurve[31] = 1 // (1, 0) does not satisfy y^2 = x^3 + 3

	nonCanonical := bytes.Repeat([]byte{0xff}, PointSize) // x >= p

	tests := []struct {
		name  string
		input []byte
	}{
		{name: "wrong length", input: repeatByte(0x01, 63)},
		{name: "zero point", input: make([]byte, PointSize)},
		{name: "not on curve", input: notOnCurve},
		{name: "non-canonical field element", input: nonCanonical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeCommitment(tt.input)
			assert.Error(t, err)
		})
	}
}

func TestEncodePoint_ZeroForInfinity(t *testing.T) {
	var infinity bn254.G1Affine
	assert.Equal(t, make([]byte, PointSize), EncodePoint(&infinity))
}
