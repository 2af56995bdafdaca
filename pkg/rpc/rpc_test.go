package rpc

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/Layr-Labs/da-signer-go/pkg/admission"
	"github.com/Layr-Labs/da-signer-go/pkg/signer"
)

func TestBatchSignRequest_RoundTrip(t *testing.T) {
	msg := &BatchSignRequest{
		Requests: []*SignRequest{
			{
				Epoch:             1,
				QuorumId:          2,
				StorageRoot:       bytes.Repeat([]byte{0x11}, 32),
				ErasureCommitment: bytes.Repeat([]byte{0x22}, 64),
				EncodedSlice:      [][]byte{{0x01}, {0x02, 0x03}},
			},
			{
				// Zero scalars are omitted on the wire and must come back as
				// zero values.
				Epoch:       0,
				QuorumId:    0,
				StorageRoot: bytes.Repeat([]byte{0x33}, 32),
			},
		},
	}

	data, err := msg.MarshalBinary()
	require.NoError(t, err)

	var decoded BatchSignRequest
	require.NoError(t, decoded.UnmarshalBinary(data))
	assert.Equal(t, msg, &decoded)
}

func TestBatchSignReply_RoundTrip(t *testing.T) {
	msg := &BatchSignReply{
		Signatures: [][]byte{
			bytes.Repeat([]byte{0xaa}, 64),
			bytes.Repeat([]byte{0xbb}, 64),
		},
	}
	data, err := msg.MarshalBinary()
	require.NoError(t, err)

	var decoded BatchSignReply
	require.NoError(t, decoded.UnmarshalBinary(data))
	assert.Equal(t, msg, &decoded)
}

// Unknown fields from newer schema revisions are skipped, not rejected.
func TestSignRequest_SkipsUnknownFields(t *testing.T) {
	var data []byte
	data = protowire.AppendTag(data, 1, protowire.VarintType)
	data = protowire.AppendVarint(data, 9)
	data = protowire.AppendTag(data, 99, protowire.BytesType)
	data = protowire.AppendBytes(data, []byte("future field"))
	data = protowire.AppendTag(data, 2, protowire.VarintType)
	data = protowire.AppendVarint(data, 4)

	var decoded SignRequest
	require.NoError(t, decoded.UnmarshalBinary(data))
	assert.Equal(t, uint64(9), decoded.Epoch)
	assert.Equal(t, uint64(4), decoded.QuorumId)
}

func TestSignRequest_RejectsGarbage(t *testing.T) {
	var decoded SignRequest
	assert.Error(t, decoded.UnmarshalBinary([]byte{0xff}))
}

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code codes.Code
	}{
		{name: "pool full", err: admission.ErrPoolFull, code: codes.ResourceExhausted},
		{
			name: "pool full wrapped",
			err:  &signer.RequestError{RequestIndex: 0, Err: admission.ErrPoolFull},
			code: codes.ResourceExhausted,
		},
		{
			name: "malformed request",
			err:  &signer.MalformedRequestError{Field: "storage root", Err: errors.New("short")},
			code: codes.InvalidArgument,
		},
		{
			name: "incorrect slice",
			err:  &signer.RequestError{RequestIndex: 1, Err: &signer.IncorrectSliceError{Index: 7, Err: errors.New("bad proof")}},
			code: codes.InvalidArgument,
		},
		{
			name: "slice mismatch",
			err:  &signer.RequestError{RequestIndex: 0, Err: signer.ErrSliceMismatch},
			code: codes.InvalidArgument,
		},
		{name: "quorum out of bound", err: signer.ErrQuorumOutOfBound, code: codes.InvalidArgument},
		{name: "quorum not found", err: signer.ErrQuorumNotFound, code: codes.Internal},
		{name: "blob not found", err: signer.ErrBlobNotFound, code: codes.Internal},
		{name: "blob already verified", err: signer.ErrBlobAlreadyVerified, code: codes.Internal},
		{
			name: "dependency failure",
			err:  &signer.DependencyError{Op: "fetch quorum count", Err: errors.New("rpc down")},
			code: codes.Internal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, ok := status.FromError(statusFromError(tt.err))
			require.True(t, ok)
			assert.Equal(t, tt.code, st.Code())
		})
	}
}

func TestCodec_RoundTrip(t *testing.T) {
	codec := Codec{}
	assert.Equal(t, "proto", codec.Name())

	msg := &BatchSignReply{Signatures: [][]byte{{0x01, 0x02}}}
	data, err := codec.Marshal(msg)
	require.NoError(t, err)

	var decoded BatchSignReply
	require.NoError(t, codec.Unmarshal(data, &decoded))
	assert.Equal(t, msg, &decoded)

	_, err = codec.Marshal("not a message")
	assert.Error(t, err)
	assert.Error(t, codec.Unmarshal(data, "not a message"))
}
