package encoding

import (
	"errors"
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	merkletree "github.com/wealdtech/go-merkletree/v2"
	"github.com/wealdtech/go-merkletree/v2/keccak256"
)

// ISliceVerifier is the cryptographic capability that checks one encoded
// slice against the blob's erasure commitment and storage root. The signing
// pipeline treats the check as opaque; implementations decide how much of
// the erasure-code proof they recompute.
type ISliceVerifier interface {
	// VerifySlice returns nil iff the slice is a valid fragment of the blob
	// identified by (commitment, root).
	VerifySlice(slice *EncodedSlice, commitment *bn254.G1Affine, root [32]byte) error
}

// MerkleSliceVerifier checks a slice's embedded keccak inclusion proof
// against the storage root. The polynomial opening against the erasure
// commitment is performed by the uploading pipeline before the blob reaches
// the signer; here the commitment is only required to be a valid group
// element, which the wire codec has already enforced.
type MerkleSliceVerifier struct{}

// NewMerkleSliceVerifier creates a MerkleSliceVerifier.
func NewMerkleSliceVerifier() *MerkleSliceVerifier {
	return &MerkleSliceVerifier{}
}

// VerifySlice implements ISliceVerifier.
func (v *MerkleSliceVerifier) VerifySlice(slice *EncodedSlice, commitment *bn254.G1Affine, root [32]byte) error {
	if commitment == nil {
		return errors.New("nil erasure commitment")
	}
	if len(slice.Payload) == 0 {
		return errors.New("empty slice payload")
	}

	proof := &merkletree.Proof{
		Hashes: slice.Proof,
		Index:  slice.Index,
	}
	ok, err := merkletree.VerifyProofUsing(slice.Payload, false, proof, [][]byte{root[:]}, keccak256.New())
	if err != nil {
		return fmt.Errorf("inclusion proof for slice %d: %w", slice.Index, err)
	}
	if !ok {
		return fmt.Errorf("slice %d payload is not committed under the storage root", slice.Index)
	}
	return nil
}
