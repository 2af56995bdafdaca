// Package signer implements the batch verification-and-signing pipeline of a
// DA signer node. A batch is all-or-nothing: every request must decode,
// pass the blob lifecycle gate, match its quorum's slice assignment, and
// verify cryptographically before a single signature is returned.
package signer

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"go.uber.org/zap"

	"github.com/Layr-Labs/da-signer-go/pkg/admission"
	"github.com/Layr-Labs/da-signer-go/pkg/blsSigner"
	"github.com/Layr-Labs/da-signer-go/pkg/chainState"
	"github.com/Layr-Labs/da-signer-go/pkg/curve"
	"github.com/Layr-Labs/da-signer-go/pkg/encoding"
	"github.com/Layr-Labs/da-signer-go/pkg/storage"
)

// SignRequest is one unit of signing work: the blob identity plus the wire
// encodings of its erasure commitment and assigned slices.
type SignRequest struct {
	Epoch             uint64
	QuorumID          uint64
	StorageRoot       []byte
	ErasureCommitment []byte
	EncodedSlices     [][]byte
}

// Config tunes the SignerService.
type Config struct {
	// MaxOngoingSignRequests caps concurrently admitted batch calls.
	// Zero selects admission.DefaultMaxOngoingRequests.
	MaxOngoingSignRequests uint64
	// VerifyWorkers sizes the per-request slice verification pool.
	// Zero selects runtime.NumCPU().
	VerifyWorkers int
}

// SignerService orchestrates the pipeline:
// decode -> status gate -> assignment/crypto verification -> sign -> persist.
type SignerService struct {
	logger    *zap.Logger
	store     storage.IStore
	chain     chainState.IChainState
	verifier  encoding.ISliceVerifier
	blsSigner blsSigner.IBLSSigner
	admission *admission.Controller
	workers   int
}

// NewSignerService wires the pipeline from its capabilities.
func NewSignerService(
	cfg *Config,
	store storage.IStore,
	chain chainState.IChainState,
	verifier encoding.ISliceVerifier,
	blsSig blsSigner.IBLSSigner,
	logger *zap.Logger,
) (*SignerService, error) {
	if store == nil || chain == nil || verifier == nil || blsSig == nil {
		return nil, fmt.Errorf("all capabilities must be non-nil")
	}
	if cfg == nil {
		cfg = &Config{}
	}
	workers := cfg.VerifyWorkers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &SignerService{
		logger:    logger,
		store:     store,
		chain:     chain,
		verifier:  verifier,
		blsSigner: blsSig,
		admission: admission.NewController(cfg.MaxOngoingSignRequests),
		workers:   workers,
	}, nil
}

// BatchSign verifies and signs every request in the batch, returning one
// 64-byte signature per request in submission order. The admission gate is
// released on every path, including caller cancellation.
func (s *SignerService) BatchSign(ctx context.Context, requests []*SignRequest) ([][]byte, error) {
	if err := s.admission.Enter(); err != nil {
		return nil, err
	}
	defer s.admission.Exit()

	return s.batchSignInner(ctx, requests)
}

func (s *SignerService) batchSignInner(ctx context.Context, requests []*SignRequest) ([][]byte, error) {
	start := time.Now()
	signatures := make([][]byte, 0, len(requests))

	for i, req := range requests {
		sig, err := s.processRequest(ctx, req)
		if err != nil {
			return nil, &RequestError{RequestIndex: i, Err: err}
		}
		signatures = append(signatures, sig)
	}

	s.logger.Sugar().Infow("Signed batch",
		zap.Int("requests", len(requests)),
		zap.Duration("duration", time.Since(start)),
	)
	return signatures, nil
}

func (s *SignerService) processRequest(ctx context.Context, req *SignRequest) ([]byte, error) {
	root, err := curve.DecodeStorageRoot(req.StorageRoot)
	if err != nil {
		return nil, &MalformedRequestError{Field: "storage root", Err: err}
	}
	commitment, err := curve.DecodeCommitment(req.ErasureCommitment)
	if err != nil {
		// The wire, on-curve, and subgroup failures share one externally
		// visible error kind; the log keeps them apart.
		s.logger.Sugar().Debugw("Rejected erasure commitment",
			zap.Uint64("epoch", req.Epoch),
			zap.Uint64("quorumId", req.QuorumID),
			zap.Error(err),
		)
		return nil, &MalformedRequestError{Field: "erasure commitment", Err: err}
	}

	if err := s.checkBlobStatus(req.Epoch, req.QuorumID, root); err != nil {
		return nil, err
	}

	slices, err := decodeEncodedSlices(req.EncodedSlices)
	if err != nil {
		return nil, err
	}

	if err := s.verifyEncodedSlices(ctx, req.Epoch, req.QuorumID, root, commitment, slices); err != nil {
		return nil, err
	}

	hash := curve.AttestationPoint(root, req.Epoch, req.QuorumID, commitment)
	signature, err := s.blsSigner.SignPoint(hash)
	if err != nil {
		return nil, &DependencyError{Op: "sign attestation point", Err: err}
	}

	if err := s.store.PutSlices(req.Epoch, req.QuorumID, root, slices); err != nil {
		return nil, &DependencyError{Op: "put slices", Err: err}
	}

	return curve.EncodePoint(signature), nil
}

// checkBlobStatus gates signing on the blob lifecycle: only blobs in the
// Uploaded state may be signed for, exactly once.
func (s *SignerService) checkBlobStatus(epoch uint64, quorumID uint64, root [32]byte) error {
	status, found, err := s.store.GetBlobStatus(epoch, quorumID, root)
	if err != nil {
		return &DependencyError{Op: "get blob status", Err: err}
	}
	switch {
	case !found:
		return ErrBlobNotFound
	case status == storage.BlobStatusVerified:
		return ErrBlobAlreadyVerified
	default:
		return nil
	}
}

func decodeEncodedSlices(raw [][]byte) ([]*encoding.EncodedSlice, error) {
	slices := make([]*encoding.EncodedSlice, 0, len(raw))
	for i, data := range raw {
		slice, err := encoding.DecodeSlice(data)
		if err != nil {
			return nil, &MalformedRequestError{Field: fmt.Sprintf("encoded slice %d", i), Err: err}
		}
		slices = append(slices, slice)
	}
	return slices, nil
}

// verifyEncodedSlices checks the request against the quorum registry and the
// commitment: quorum bound, assignment presence, strict positional index
// correspondence, then the per-slice cryptographic check.
func (s *SignerService) verifyEncodedSlices(
	ctx context.Context,
	epoch uint64,
	quorumID uint64,
	root [32]byte,
	commitment *bn254.G1Affine,
	slices []*encoding.EncodedSlice,
) error {
	quorumCount, err := s.chain.QuorumCount(ctx, epoch)
	if err != nil {
		return &DependencyError{Op: "fetch quorum count", Err: err}
	}
	if quorumID >= quorumCount {
		return ErrQuorumOutOfBound
	}

	assigned, found, err := s.store.GetAssignedSlices(epoch, quorumID)
	if err != nil {
		return &DependencyError{Op: "get assigned slices", Err: err}
	}
	if !found {
		return ErrQuorumNotFound
	}

	return s.verifyAssignedSlices(root, commitment, assigned, slices)
}

// verifyAssignedSlices fans the positional and cryptographic checks out over
// the verification pool. Slices are independent; results land in a
// per-position slot and the first failure is chosen by position, not by
// completion order, so errors are deterministic.
func (s *SignerService) verifyAssignedSlices(
	root [32]byte,
	commitment *bn254.G1Affine,
	assigned []uint64,
	slices []*encoding.EncodedSlice,
) error {
	if len(assigned) != len(slices) {
		return ErrSliceMismatch
	}

	results := make([]error, len(slices))
	jobs := make(chan int)
	var wg sync.WaitGroup

	workers := s.workers
	if workers > len(slices) {
		workers = len(slices)
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for pos := range jobs {
				results[pos] = s.verifySliceAt(root, commitment, assigned[pos], slices[pos])
			}
		}()
	}
	for pos := range slices {
		jobs <- pos
	}
	close(jobs)
	wg.Wait()

	// Lowest position wins, regardless of which worker finished first.
	for _, err := range results {
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *SignerService) verifySliceAt(root [32]byte, commitment *bn254.G1Affine, expectedIndex uint64, slice *encoding.EncodedSlice) error {
	if expectedIndex != slice.Index {
		return ErrSliceMismatch
	}
	if err := s.verifier.VerifySlice(slice, commitment, root); err != nil {
		return &IncorrectSliceError{Index: slice.Index, Err: err}
	}
	return nil
}
