// Package awsSMBLSSigner implements the IBLSSigner capability with the BLS
// keystore held in AWS Secrets Manager. The key is fetched per operation and
// never cached, trading latency for not keeping the scalar resident between
// signatures.
package awsSMBLSSigner

import (
	"fmt"

	"github.com/Layr-Labs/crypto-libs/pkg/keystore"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/secretsmanager"
	"github.com/consensys/gnark-crypto/ecc/bn254"
	"go.uber.org/zap"

	"github.com/Layr-Labs/da-signer-go/pkg/blsSigner"
)

// AWSSMBLSSignerConfig locates the keystore secret.
type AWSSMBLSSignerConfig struct {
	// Region is the AWS region holding the secret.
	Region string
	// SecretName names the Secrets Manager secret containing the BLS keystore JSON.
	SecretName string
}

// AWSSMBLSSigner implements blsSigner.IBLSSigner backed by AWS Secrets Manager.
type AWSSMBLSSigner struct {
	logger *zap.Logger
	config *AWSSMBLSSignerConfig
}

var _ blsSigner.IBLSSigner = (*AWSSMBLSSigner)(nil)

// NewAWSSMBLSSigner creates a signer reading the keystore named by config.
func NewAWSSMBLSSigner(config *AWSSMBLSSignerConfig, logger *zap.Logger) (*AWSSMBLSSigner, error) {
	if config == nil || config.SecretName == "" {
		return nil, fmt.Errorf("secret name must be configured")
	}
	return &AWSSMBLSSigner{
		logger: logger,
		config: config,
	}, nil
}

// getSigner retrieves the keystore from Secrets Manager and materializes an
// in-memory signer for one operation.
func (a *AWSSMBLSSigner) getSigner() (blsSigner.IBLSSigner, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(a.config.Region),
	})
	if err != nil {
		return nil, err
	}

	svc := secretsmanager.New(sess)
	result, err := svc.GetSecretValue(&secretsmanager.GetSecretValueInput{
		SecretId:     aws.String(a.config.SecretName),
		VersionStage: aws.String("AWSCURRENT"),
	})
	if err != nil {
		return nil, err
	}
	if result.SecretString == nil {
		return nil, fmt.Errorf("secret string is nil")
	}

	ks, err := keystore.ParseKeystoreJSON(*result.SecretString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse keystore JSON: %w", err)
	}
	pk, err := ks.GetBN254PrivateKey("")
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt BN254 private key: %w", err)
	}
	return blsSigner.NewInMemoryBLSSigner(pk)
}

// SignPoint implements blsSigner.IBLSSigner.
func (a *AWSSMBLSSigner) SignPoint(point *bn254.G1Affine) (*bn254.G1Affine, error) {
	signer, err := a.getSigner()
	if err != nil {
		return nil, fmt.Errorf("failed to get secret: %w", err)
	}
	return signer.SignPoint(point)
}

// GetPublicKey implements blsSigner.IBLSSigner.
func (a *AWSSMBLSSigner) GetPublicKey() (*bn254.G2Affine, error) {
	signer, err := a.getSigner()
	if err != nil {
		return nil, fmt.Errorf("failed to get secret: %w", err)
	}
	return signer.GetPublicKey()
}
