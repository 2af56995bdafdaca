// Package blsSigner provides the BLS signing capability of the DA signer.
// The signing pipeline hashes each verified blob onto the BN254 G1 curve
// itself, so unlike a general message signer the capability here signs a
// prepared curve point: signature = H * sk.
package blsSigner

import "github.com/consensys/gnark-crypto/ecc/bn254"

// IBLSSigner defines the signing interface consumed by the batch signing
// pipeline. Implementations never see the preimage of the point; they only
// perform the scalar multiplication with the operator's secret.
type IBLSSigner interface {
	// SignPoint multiplies the prepared G1 message point by the signer's
	// secret scalar and returns the affine signature point.
	SignPoint(point *bn254.G1Affine) (*bn254.G1Affine, error)

	// GetPublicKey returns the signer's G2 public key, used by aggregators to
	// verify the attestation via pairing.
	GetPublicKey() (*bn254.G2Affine, error)
}
