package rpc

import (
	"context"

	"go.uber.org/zap"
	"google.golang.org/grpc"

	"github.com/Layr-Labs/da-signer-go/pkg/logger"
)

// SignerServer is the server API of the signer.Signer service.
type SignerServer interface {
	// BatchSign verifies and signs a batch of requests. The reply carries one
	// signature per request in submission order, or the call fails as a whole.
	BatchSign(ctx context.Context, req *BatchSignRequest) (*BatchSignReply, error)
}

var signerServiceDesc = grpc.ServiceDesc{
	ServiceName: "signer.Signer",
	HandlerType: (*SignerServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "BatchSign",
			Handler:    batchSignHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "proto/signer.proto",
}

func batchSignHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(BatchSignRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SignerServer).BatchSign(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/signer.Signer/BatchSign",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(SignerServer).BatchSign(ctx, req.(*BatchSignRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// RegisterSignerServer registers srv on the given gRPC registrar.
func RegisterSignerServer(s grpc.ServiceRegistrar, srv SignerServer) {
	s.RegisterService(&signerServiceDesc, srv)
}

// NewServer creates a gRPC server wired with the signer codec and request
// logging. Additional server options are appended after the defaults.
func NewServer(l *zap.Logger, opts ...grpc.ServerOption) *grpc.Server {
	base := []grpc.ServerOption{
		grpc.ForceServerCodec(Codec{}),
		grpc.ChainUnaryInterceptor(logger.UnaryLoggerInterceptor(l)),
	}
	return grpc.NewServer(append(base, opts...)...)
}
