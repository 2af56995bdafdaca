package rpc

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Layr-Labs/da-signer-go/pkg/admission"
	"github.com/Layr-Labs/da-signer-go/pkg/signer"
	"github.com/Layr-Labs/da-signer-go/pkg/util"
)

// Service adapts the signing pipeline to the signer.Signer gRPC surface.
// Domain errors are translated to transport status codes here and nowhere
// else.
type Service struct {
	logger *zap.Logger
	signer *signer.SignerService
}

var _ SignerServer = (*Service)(nil)

// NewService wraps the signing pipeline for serving.
func NewService(svc *signer.SignerService, l *zap.Logger) *Service {
	return &Service{
		logger: l,
		signer: svc,
	}
}

// BatchSign implements SignerServer.
func (s *Service) BatchSign(ctx context.Context, req *BatchSignRequest) (*BatchSignReply, error) {
	requests := util.Map(req.Requests, func(r *SignRequest, _ uint64) *signer.SignRequest {
		return &signer.SignRequest{
			Epoch:             r.Epoch,
			QuorumID:          r.QuorumId,
			StorageRoot:       r.StorageRoot,
			ErasureCommitment: r.ErasureCommitment,
			EncodedSlices:     r.EncodedSlice,
		}
	})

	signatures, err := s.signer.BatchSign(ctx, requests)
	if err != nil {
		return nil, statusFromError(err)
	}
	return &BatchSignReply{Signatures: signatures}, nil
}

// statusFromError maps the pipeline's error taxonomy onto RPC status codes:
// admission pressure is retryable ResourceExhausted, anything the caller can
// fix is InvalidArgument, the rest is Internal.
func statusFromError(err error) error {
	if errors.Is(err, admission.ErrPoolFull) {
		return status.Error(codes.ResourceExhausted, err.Error())
	}

	var (
		malformed *signer.MalformedRequestError
		incorrect *signer.IncorrectSliceError
	)
	switch {
	case errors.As(err, &malformed),
		errors.As(err, &incorrect),
		errors.Is(err, signer.ErrSliceMismatch),
		errors.Is(err, signer.ErrQuorumOutOfBound):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
