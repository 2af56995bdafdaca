// hashpoint computes the attestation point (and optionally the signature)
// for a blob, for cross-checking the hash-to-curve scheme against the
// on-chain verifier.
package main

import (
	"fmt"
	"os"

	"github.com/Layr-Labs/crypto-libs/pkg/bn254"
	"github.com/ethereum/go-ethereum/common/hexutil"
	cli "github.com/urfave/cli/v2"

	"github.com/Layr-Labs/da-signer-go/pkg/blsSigner"
	"github.com/Layr-Labs/da-signer-go/pkg/curve"
)

func main() {
	app := &cli.App{
		Name:  "hashpoint",
		Usage: "Compute the DA attestation point for a blob",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "root",
				Usage:    "32-byte storage root (hex)",
				Required: true,
			},
			&cli.Uint64Flag{
				Name:     "epoch",
				Required: true,
			},
			&cli.Uint64Flag{
				Name:     "quorum",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "commitment",
				Usage:    "64-byte uncompressed erasure commitment (hex)",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "bls-private-key",
				Usage: "Also print the signature for this key (hex)",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	rootBytes, err := hexutil.Decode(c.String("root"))
	if err != nil {
		return fmt.Errorf("invalid root: %w", err)
	}
	root, err := curve.DecodeStorageRoot(rootBytes)
	if err != nil {
		return err
	}

	commitmentBytes, err := hexutil.Decode(c.String("commitment"))
	if err != nil {
		return fmt.Errorf("invalid commitment: %w", err)
	}
	commitment, err := curve.DecodeCommitment(commitmentBytes)
	if err != nil {
		return err
	}

	point := curve.AttestationPoint(root, c.Uint64("epoch"), c.Uint64("quorum"), commitment)
	fmt.Printf("Attestation point: %s\n", hexutil.Encode(curve.EncodePoint(point)))
	fmt.Printf("  x = %s\n", point.X.String())
	fmt.Printf("  y = %s\n", point.Y.String())

	if key := c.String("bls-private-key"); key != "" {
		scheme := bn254.NewScheme()
		genericPk, err := scheme.NewPrivateKeyFromHexString(key)
		if err != nil {
			return fmt.Errorf("failed to parse BLS private key: %w", err)
		}
		pk, err := bn254.NewPrivateKeyFromBytes(genericPk.Bytes())
		if err != nil {
			return fmt.Errorf("failed to convert BLS private key: %w", err)
		}
		signer, err := blsSigner.NewInMemoryBLSSigner(pk)
		if err != nil {
			return err
		}
		signature, err := signer.SignPoint(point)
		if err != nil {
			return err
		}
		fmt.Printf("Signature: %s\n", hexutil.Encode(curve.EncodePoint(signature)))
	}
	return nil
}
