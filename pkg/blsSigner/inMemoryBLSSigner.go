package blsSigner

import (
	"fmt"
	"math/big"

	cryptobn254 "github.com/Layr-Labs/crypto-libs/pkg/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// InMemoryBLSSigner implements IBLSSigner with the secret scalar held in
// process memory. Suitable for development and for deployments where the key
// is injected through the environment; production setups with stricter key
// handling use the AWS Secrets Manager variant.
type InMemoryBLSSigner struct {
	secret    fr.Element
	secretInt big.Int
	publicKey bn254.G2Affine
}

var _ IBLSSigner = (*InMemoryBLSSigner)(nil)

// NewInMemoryBLSSigner creates an InMemoryBLSSigner from a crypto-libs BN254
// private key. The G2 public key is derived once and cached.
func NewInMemoryBLSSigner(privateKey *cryptobn254.PrivateKey) (*InMemoryBLSSigner, error) {
	if privateKey == nil {
		return nil, fmt.Errorf("private key cannot be nil")
	}
	return NewInMemoryBLSSignerFromScalar(new(big.Int).SetBytes(privateKey.Bytes()))
}

// NewInMemoryBLSSignerFromScalar creates an InMemoryBLSSigner directly from
// the secret scalar.
func NewInMemoryBLSSignerFromScalar(secret *big.Int) (*InMemoryBLSSigner, error) {
	if secret == nil || secret.Sign() == 0 {
		return nil, fmt.Errorf("secret scalar cannot be zero")
	}

	s := &InMemoryBLSSigner{}
	s.secret.SetBigInt(secret)
	s.secret.BigInt(&s.secretInt)
	if s.secretInt.Sign() == 0 {
		return nil, fmt.Errorf("secret scalar reduces to zero")
	}

	_, _, _, g2 := bn254.Generators()
	s.publicKey.ScalarMultiplication(&g2, &s.secretInt)
	return s, nil
}

// SignPoint implements IBLSSigner.
func (s *InMemoryBLSSigner) SignPoint(point *bn254.G1Affine) (*bn254.G1Affine, error) {
	if point == nil {
		return nil, fmt.Errorf("point cannot be nil")
	}
	var sig bn254.G1Affine
	sig.ScalarMultiplication(point, &s.secretInt)
	return &sig, nil
}

// GetPublicKey implements IBLSSigner.
func (s *InMemoryBLSSigner) GetPublicKey() (*bn254.G2Affine, error) {
	pub := s.publicKey
	return &pub, nil
}
