// Package rpc serves the signer's BatchSign endpoint over gRPC. The three
// message types are marshaled by hand with protowire against the schema in
// proto/signer.proto, and plugged into grpc-go through a codec; the wire
// bytes are identical to what a stock protobuf client of the same schema
// produces.
package rpc

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// SignRequest mirrors message signer.SignRequest.
type SignRequest struct {
	Epoch             uint64   // field 1
	QuorumId          uint64   // field 2
	StorageRoot       []byte   // field 3
	ErasureCommitment []byte   // field 4
	EncodedSlice      [][]byte // field 5
}

// BatchSignRequest mirrors message signer.BatchSignRequest.
type BatchSignRequest struct {
	Requests []*SignRequest // field 1
}

// BatchSignReply mirrors message signer.BatchSignReply.
type BatchSignReply struct {
	Signatures [][]byte // field 1
}

func (m *SignRequest) appendTo(b []byte) []byte {
	if m.Epoch != 0 {
		b = protowire.AppendTag(b, 1, protowire.VarintType)
		b = protowire.AppendVarint(b, m.Epoch)
	}
	if m.QuorumId != 0 {
		b = protowire.AppendTag(b, 2, protowire.VarintType)
		b = protowire.AppendVarint(b, m.QuorumId)
	}
	if len(m.StorageRoot) > 0 {
		b = protowire.AppendTag(b, 3, protowire.BytesType)
		b = protowire.AppendBytes(b, m.StorageRoot)
	}
	if len(m.ErasureCommitment) > 0 {
		b = protowire.AppendTag(b, 4, protowire.BytesType)
		b = protowire.AppendBytes(b, m.ErasureCommitment)
	}
	for _, s := range m.EncodedSlice {
		b = protowire.AppendTag(b, 5, protowire.BytesType)
		b = protowire.AppendBytes(b, s)
	}
	return b
}

// MarshalBinary serializes the message in protobuf wire format.
func (m *SignRequest) MarshalBinary() ([]byte, error) {
	return m.appendTo(nil), nil
}

// UnmarshalBinary parses the protobuf wire format, skipping unknown fields.
func (m *SignRequest) UnmarshalBinary(b []byte) error {
	*m = SignRequest{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		switch {
		case num == 1 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.Epoch = v
			b = b[n:]
		case num == 2 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.QuorumId = v
			b = b[n:]
		case num == 3 && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.StorageRoot = append([]byte(nil), v...)
			b = b[n:]
		case num == 4 && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.ErasureCommitment = append([]byte(nil), v...)
			b = b[n:]
		case num == 5 && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.EncodedSlice = append(m.EncodedSlice, append([]byte(nil), v...))
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			b = b[n:]
		}
	}
	return nil
}

// MarshalBinary serializes the message in protobuf wire format.
func (m *BatchSignRequest) MarshalBinary() ([]byte, error) {
	var b []byte
	for _, req := range m.Requests {
		if req == nil {
			return nil, fmt.Errorf("nil request in batch")
		}
		b = protowire.AppendTag(b, 1, protowire.BytesType)
		b = protowire.AppendBytes(b, req.appendTo(nil))
	}
	return b, nil
}

// UnmarshalBinary parses the protobuf wire format, skipping unknown fields.
func (m *BatchSignRequest) UnmarshalBinary(b []byte) error {
	*m = BatchSignRequest{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		if num == 1 && typ == protowire.BytesType {
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			req := new(SignRequest)
			if err := req.UnmarshalBinary(v); err != nil {
				return err
			}
			m.Requests = append(m.Requests, req)
			b = b[n:]
			continue
		}
		n = protowire.ConsumeFieldValue(num, typ, b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
	}
	return nil
}

// MarshalBinary serializes the message in protobuf wire format.
func (m *BatchSignReply) MarshalBinary() ([]byte, error) {
	var b []byte
	for _, sig := range m.Signatures {
		b = protowire.AppendTag(b, 1, protowire.BytesType)
		b = protowire.AppendBytes(b, sig)
	}
	return b, nil
}

// UnmarshalBinary parses the protobuf wire format, skipping unknown fields.
func (m *BatchSignReply) UnmarshalBinary(b []byte) error {
	*m = BatchSignReply{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		if num == 1 && typ == protowire.BytesType {
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.Signatures = append(m.Signatures, append([]byte(nil), v...))
			b = b[n:]
			continue
		}
		n = protowire.ConsumeFieldValue(num, typ, b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
	}
	return nil
}
