package blsSigner

import (
	"math/big"
	"testing"

	cryptobn254 "github.com/Layr-Labs/crypto-libs/pkg/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryBLSSigner_RejectsEmptySecrets(t *testing.T) {
	_, err := NewInMemoryBLSSigner(nil)
	assert.Error(t, err)

	_, err = NewInMemoryBLSSignerFromScalar(nil)
	assert.Error(t, err)

	_, err = NewInMemoryBLSSignerFromScalar(big.NewInt(0))
	assert.Error(t, err)
}

// Signing with scalar one is the identity map, which pins the group
// operation without needing a second implementation to compare against.
func TestInMemoryBLSSigner_IdentityScalar(t *testing.T) {
	signer, err := NewInMemoryBLSSignerFromScalar(big.NewInt(1))
	require.NoError(t, err)

	_, _, g1, g2 := bn254.Generators()
	sig, err := signer.SignPoint(&g1)
	require.NoError(t, err)
	assert.True(t, sig.Equal(&g1))

	pub, err := signer.GetPublicKey()
	require.NoError(t, err)
	assert.True(t, pub.Equal(&g2))
}

func TestInMemoryBLSSigner_SignatureVerifiesByPairing(t *testing.T) {
	signer, err := NewInMemoryBLSSignerFromScalar(big.NewInt(123456789))
	require.NoError(t, err)

	_, _, g1, g2 := bn254.Generators()
	var point bn254.G1Affine
	point.ScalarMultiplication(&g1, big.NewInt(31337))

	sig, err := signer.SignPoint(&point)
	require.NoError(t, err)
	pub, err := signer.GetPublicKey()
	require.NoError(t, err)

	// e(sig, G2) == e(point, pub)
	var negG2 bn254.G2Affine
	negG2.Neg(&g2)
	ok, err := bn254.PairingCheck(
		[]bn254.G1Affine{*sig, point},
		[]bn254.G2Affine{negG2, *pub},
	)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestInMemoryBLSSigner_FromPrivateKey(t *testing.T) {
	privateKey, err := cryptobn254.NewPrivateKeyFromBytes(big.NewInt(424242).Bytes())
	require.NoError(t, err)

	fromKey, err := NewInMemoryBLSSigner(privateKey)
	require.NoError(t, err)
	fromScalar, err := NewInMemoryBLSSignerFromScalar(big.NewInt(424242))
	require.NoError(t, err)

	keyPub, err := fromKey.GetPublicKey()
	require.NoError(t, err)
	scalarPub, err := fromScalar.GetPublicKey()
	require.NoError(t, err)
	assert.True(t, keyPub.Equal(scalarPub))
}

func TestInMemoryBLSSigner_NilPoint(t *testing.T) {
	signer, err := NewInMemoryBLSSignerFromScalar(big.NewInt(7))
	require.NoError(t, err)

	_, err = signer.SignPoint(nil)
	assert.Error(t, err)
}
