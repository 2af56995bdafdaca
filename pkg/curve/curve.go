// Package curve provides the BN254 wire codec and the hash-to-curve scheme
// used by the DA signer. Commitments and signatures travel as uncompressed
// affine points in EVM precompile layout (two 32-byte big-endian field
// elements, no flag byte), so every value produced here can be checked by the
// on-chain verifier without re-encoding.
package curve

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fp"
	"github.com/ethereum/go-ethereum/crypto"
)

// PointSize is the wire size of an uncompressed affine G1 point.
const PointSize = 64

// StorageRootSize is the wire size of a blob storage root.
const StorageRootSize = 32

var (
	// ErrInvalidRootLength is returned when a storage root is not exactly 32 bytes.
	ErrInvalidRootLength = errors.New("storage root must be 32 bytes")
	// ErrPointNotOnCurve is returned when decoded coordinates do not satisfy
	// the curve equation.
	ErrPointNotOnCurve = errors.New("point is not on curve")
	// ErrPointNotInSubgroup is returned when a decoded point lies outside the
	// prime-order subgroup.
	ErrPointNotInSubgroup = errors.New("point is not in the prime-order subgroup")
)

// DecodeStorageRoot validates and copies a caller-supplied storage root.
func DecodeStorageRoot(b []byte) ([32]byte, error) {
	var root [32]byte
	if len(b) != StorageRootSize {
		return root, fmt.Errorf("%w: got %d", ErrInvalidRootLength, len(b))
	}
	copy(root[:], b)
	return root, nil
}

// DecodeCommitment deserializes an erasure commitment from its 64-byte
// precompile-format encoding. The checks run in a fixed order: canonical
// field encoding, curve membership, subgroup membership. All three failures
// are reported as malformed input; callers log the individual cause.
func DecodeCommitment(b []byte) (*bn254.G1Affine, error) {
	if len(b) != PointSize {
		return nil, fmt.Errorf("erasure commitment must be %d bytes, got %d", PointSize, len(b))
	}

	var p bn254.G1Affine
	if err := p.X.SetBytesCanonical(b[:32]); err != nil {
		return nil, fmt.Errorf("commitment x coordinate: %w", err)
	}
	if err := p.Y.SetBytesCanonical(b[32:]); err != nil {
		return nil, fmt.Errorf("commitment y coordinate: %w", err)
	}

	// The encoding carries no infinity flag; all-zero coordinates are not a
	// valid commitment even though gnark treats them as the identity.
	if p.IsInfinity() || !p.IsOnCurve() {
		return nil, ErrPointNotOnCurve
	}
	// BN254 G1 has cofactor one, so an on-curve point cannot escape the
	// subgroup; the check stays to keep the decode path curve-agnostic.
	if !p.IsInSubGroup() {
		return nil, ErrPointNotInSubgroup
	}
	return &p, nil
}

// EncodePoint serializes an affine G1 point into precompile format. The point
// at infinity encodes as 64 zero bytes.
func EncodePoint(p *bn254.G1Affine) []byte {
	out := make([]byte, PointSize)
	x := p.X.Bytes()
	y := p.Y.Bytes()
	copy(out[:32], x[:])
	copy(out[32:], y[:])
	return out
}

// AttestationPoint hashes (root, epoch, quorumID, commitment) onto G1. The
// preimage is the solidity abi.encodePacked layout the on-chain verifier
// rebuilds:
//
//	root (32B) || uint256(epoch) || uint256(quorumID) || uint256(cx) || uint256(cy)
//
// keccak256 of those 160 bytes is then mapped to the curve with MapToCurve.
// The function is pure; identical inputs always produce the identical point.
func AttestationPoint(root [32]byte, epoch uint64, quorumID uint64, commitment *bn254.G1Affine) *bn254.G1Affine {
	buf := make([]byte, 0, 160)
	buf = append(buf, root[:]...)
	buf = appendUint256(buf, new(big.Int).SetUint64(epoch))
	buf = appendUint256(buf, new(big.Int).SetUint64(quorumID))
	cx := commitment.X.Bytes()
	cy := commitment.Y.Bytes()
	buf = append(buf, cx[:]...)
	buf = append(buf, cy[:]...)

	var digest [32]byte
	copy(digest[:], crypto.Keccak256(buf))
	return MapToCurve(digest)
}

// MapToCurve maps a 32-byte digest deterministically onto G1 using the
// try-and-increment construction shared with the solidity verifier: interpret
// the digest as x mod p and walk x upward until x^3 + 3 is a quadratic
// residue, taking the principal square root as y.
func MapToCurve(digest [32]byte) *bn254.G1Affine {
	modulus := fp.Modulus()
	one := big.NewInt(1)
	three := big.NewInt(3)

	x := new(big.Int).SetBytes(digest[:])
	x.Mod(x, modulus)

	for {
		// beta = x^3 + 3 mod p
		beta := new(big.Int).Exp(x, three, modulus)
		beta.Add(beta, three)
		beta.Mod(beta, modulus)

		if y := new(big.Int).ModSqrt(beta, modulus); y != nil {
			var p bn254.G1Affine
			p.X.SetBigInt(x)
			p.Y.SetBigInt(y)
			return &p
		}
		x.Add(x, one)
		x.Mod(x, modulus)
	}
}

func appendUint256(buf []byte, v *big.Int) []byte {
	var word [32]byte
	v.FillBytes(word[:])
	return append(buf, word[:]...)
}
