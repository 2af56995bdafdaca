package encoding

import (
	"fmt"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	merkletree "github.com/wealdtech/go-merkletree/v2"
	"github.com/wealdtech/go-merkletree/v2/keccak256"
)

func testCommitment(t *testing.T) *bn254.G1Affine {
	t.Helper()
	var p bn254.G1Affine
	p.X.SetUint64(1)
	p.Y.SetUint64(2)
	require.True(t, p.IsOnCurve())
	return &p
}

// buildCommittedSlices builds a keccak merkle tree over leafCount payloads and
// returns the root together with one provable slice per leaf.
func buildCommittedSlices(t *testing.T, leafCount int) ([32]byte, []*EncodedSlice) {
	t.Helper()

	data := make([][]byte, leafCount)
	for i := range data {
		data[i] = []byte(fmt.Sprintf("slice-payload-%03d", i))
	}

	tree, err := merkletree.NewTree(
		merkletree.WithData(data),
		merkletree.WithHashType(keccak256.New()),
	)
	require.NoError(t, err)

	var root [32]byte
	copy(root[:], tree.Root())

	slices := make([]*EncodedSlice, leafCount)
	for i := range data {
		proof, err := tree.GenerateProofWithIndex(uint64(i), 0)
		require.NoError(t, err)
		slices[i] = &EncodedSlice{
			Index:   uint64(i),
			Payload: data[i],
			Proof:   proof.Hashes,
		}
	}
	return root, slices
}

func TestMerkleSliceVerifier_Valid(t *testing.T) {
	root, slices := buildCommittedSlices(t, 8)
	verifier := NewMerkleSliceVerifier()

	for _, slice := range slices {
		assert.NoError(t, verifier.VerifySlice(slice, testCommitment(t), root), "slice %d", slice.Index)
	}
}

func TestMerkleSliceVerifier_Rejections(t *testing.T) {
	root, slices := buildCommittedSlices(t, 8)
	verifier := NewMerkleSliceVerifier()

	t.Run("tampered payload", func(t *testing.T) {
		slice := &EncodedSlice{
			Index:   slices[2].Index,
			Payload: append([]byte{}, slices[2].Payload...),
			Proof:   slices[2].Proof,
		}
		slice.Payload[0] ^= 0x01
		assert.Error(t, verifier.VerifySlice(slice, testCommitment(t), root))
	})

	t.Run("proof for another leaf", func(t *testing.T) {
		slice := &EncodedSlice{
			Index:   slices[2].Index,
			Payload: slices[2].Payload,
			Proof:   slices[5].Proof,
		}
		assert.Error(t, verifier.VerifySlice(slice, testCommitment(t), root))
	})

	t.Run("wrong root", func(t *testing.T) {
		var wrongRoot [32]byte
		wrongRoot[0] = 0xde
		assert.Error(t, verifier.VerifySlice(slices[0], testCommitment(t), wrongRoot))
	})

	t.Run("empty payload", func(t *testing.T) {
		slice := &EncodedSlice{Index: 0, Payload: nil, Proof: slices[0].Proof}
		assert.Error(t, verifier.VerifySlice(slice, testCommitment(t), root))
	})

	t.Run("nil commitment", func(t *testing.T) {
		assert.Error(t, verifier.VerifySlice(slices[0], nil, root))
	})
}
