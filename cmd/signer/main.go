package main

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/Layr-Labs/crypto-libs/pkg/bn254"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/ethclient"
	cli "github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/Layr-Labs/da-signer-go/pkg/blsSigner"
	"github.com/Layr-Labs/da-signer-go/pkg/blsSigner/awsSMBLSSigner"
	"github.com/Layr-Labs/da-signer-go/pkg/chainState"
	"github.com/Layr-Labs/da-signer-go/pkg/encoding"
	"github.com/Layr-Labs/da-signer-go/pkg/logger"
	"github.com/Layr-Labs/da-signer-go/pkg/rpc"
	"github.com/Layr-Labs/da-signer-go/pkg/signer"
	"github.com/Layr-Labs/da-signer-go/pkg/storage"
)

func main() {
	app := &cli.App{
		Name:  "signer",
		Usage: "DA network batch signer",
		Description: `The signer serves the BatchSign RPC of a data-availability network: it
verifies that uploaded erasure-coded slices match the quorum assignment
recorded on chain and, on success, signs a BN254 attestation of blob
availability and persists the verified slices.`,
		Version: "1.0.0",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "debug",
				Aliases: []string{"d"},
				Usage:   "Enable debug logging",
				EnvVars: []string{"DEBUG"},
			},
			&cli.StringFlag{
				Name:    "listen",
				Aliases: []string{"l"},
				Usage:   "Address the gRPC server listens on",
				Value:   "0.0.0.0:50051",
				EnvVars: []string{"LISTEN_ADDRESS"},
			},
			&cli.StringFlag{
				Name:     "db-path",
				Usage:    "Directory of the signer's LevelDB database",
				Required: true,
				EnvVars:  []string{"DB_PATH"},
			},
			&cli.StringFlag{
				Name:     "eth-rpc-url",
				Usage:    "Ethereum JSON-RPC endpoint for DA registry reads",
				Required: true,
				EnvVars:  []string{"ETH_RPC_URL"},
			},
			&cli.StringFlag{
				Name:     "da-registry",
				Usage:    "DA registry contract address",
				Required: true,
				EnvVars:  []string{"DA_REGISTRY_ADDRESS"},
			},
			&cli.Uint64Flag{
				Name:    "max-ongoing-sign-requests",
				Usage:   "Cap on concurrently admitted BatchSign calls",
				Value:   10,
				EnvVars: []string{"MAX_ONGOING_SIGN_REQUESTS"},
			},
			&cli.IntFlag{
				Name:    "verify-workers",
				Usage:   "Slice verification workers per request (defaults to CPU count)",
				EnvVars: []string{"VERIFY_WORKERS"},
			},
			// BLS signing options
			&cli.StringFlag{
				Name:    "bls-private-key",
				Usage:   "BLS private key for attestation signing (hex format, with or without 0x prefix)",
				EnvVars: []string{"BLS_PRIVATE_KEY"},
			},
			&cli.StringFlag{
				Name:    "bls-aws-secret-name",
				Usage:   "AWS Secrets Manager secret name containing the BLS keystore",
				EnvVars: []string{"BLS_AWS_SECRET_NAME"},
			},
			&cli.StringFlag{
				Name:    "bls-aws-region",
				Usage:   "AWS region for the BLS keystore secret",
				Value:   "us-east-1",
				EnvVars: []string{"BLS_AWS_REGION"},
			},
		},
		Before: validateFlags,
		Action: runAction,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func validateFlags(c *cli.Context) error {
	blsPrivateKey := c.String("bls-private-key")
	blsAWSSecretName := c.String("bls-aws-secret-name")

	if blsPrivateKey == "" && blsAWSSecretName == "" {
		return fmt.Errorf("must specify either --bls-private-key or --bls-aws-secret-name for attestation signing")
	}
	if blsPrivateKey != "" && blsAWSSecretName != "" {
		return fmt.Errorf("cannot specify both --bls-private-key and --bls-aws-secret-name")
	}
	return nil
}

func setupLogger(c *cli.Context) (*zap.Logger, error) {
	return logger.NewLogger(&logger.LoggerConfig{
		Debug: c.Bool("debug"),
	})
}

func setupBLSSigner(c *cli.Context, l *zap.Logger) (blsSigner.IBLSSigner, error) {
	if privateKey := c.String("bls-private-key"); privateKey != "" {
		scheme := bn254.NewScheme()
		genericPk, err := scheme.NewPrivateKeyFromHexString(privateKey)
		if err != nil {
			return nil, fmt.Errorf("failed to parse BLS private key: %w", err)
		}
		pk, err := bn254.NewPrivateKeyFromBytes(genericPk.Bytes())
		if err != nil {
			return nil, fmt.Errorf("failed to convert BLS private key: %w", err)
		}
		return blsSigner.NewInMemoryBLSSigner(pk)
	}

	return awsSMBLSSigner.NewAWSSMBLSSigner(&awsSMBLSSigner.AWSSMBLSSignerConfig{
		Region:     c.String("bls-aws-region"),
		SecretName: c.String("bls-aws-secret-name"),
	}, l)
}

func setupChainState(c *cli.Context, l *zap.Logger) (*chainState.ChainState, error) {
	client, err := ethclient.Dial(c.String("eth-rpc-url"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RPC URL %s: %w", c.String("eth-rpc-url"), err)
	}
	registryCaller, err := chainState.NewDARegistryCaller(common.HexToAddress(c.String("da-registry")), client)
	if err != nil {
		return nil, fmt.Errorf("failed to bind DA registry caller: %w", err)
	}
	return chainState.NewChainState(registryCaller, l), nil
}

func runAction(c *cli.Context) error {
	l, err := setupLogger(c)
	if err != nil {
		return fmt.Errorf("failed to setup logger: %w", err)
	}

	blsSig, err := setupBLSSigner(c, l)
	if err != nil {
		return fmt.Errorf("failed to setup BLS signer: %w", err)
	}
	publicKey, err := blsSig.GetPublicKey()
	if err != nil {
		return fmt.Errorf("failed to derive signer public key: %w", err)
	}

	chain, err := setupChainState(c, l)
	if err != nil {
		return fmt.Errorf("failed to setup chain state: %w", err)
	}

	store, err := storage.NewLevelDBStore(c.String("db-path"))
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer store.Close()

	svc, err := signer.NewSignerService(&signer.Config{
		MaxOngoingSignRequests: c.Uint64("max-ongoing-sign-requests"),
		VerifyWorkers:          c.Int("verify-workers"),
	}, store, chain, encoding.NewMerkleSliceVerifier(), blsSig, l)
	if err != nil {
		return fmt.Errorf("failed to create signer service: %w", err)
	}

	server := rpc.NewServer(l)
	rpc.RegisterSignerServer(server, rpc.NewService(svc, l))

	listener, err := net.Listen("tcp", c.String("listen"))
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", c.String("listen"), err)
	}

	l.Sugar().Infow("Signer listening",
		zap.String("address", listener.Addr().String()),
		zap.String("publicKey", hexutil.Encode(publicKey.Marshal())),
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Serve(listener)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		l.Sugar().Infow("Shutting down", zap.String("signal", sig.String()))
		server.GracefulStop()
		return nil
	case err := <-errCh:
		return fmt.Errorf("server stopped: %w", err)
	}
}
