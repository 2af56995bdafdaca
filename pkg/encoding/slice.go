// Package encoding defines the wire format of erasure-coded slices and the
// slice verification capability the signing pipeline consumes.
package encoding

import (
	"encoding/binary"
	"errors"
	"fmt"
)

const (
	sliceHeaderSize = 8 + 4 + 2
	proofHashSize   = 32

	// MaxSlicePayloadSize caps a single decoded payload; anything larger is
	// rejected before allocation.
	MaxSlicePayloadSize = 1 << 24
)

// ErrMalformedSlice is returned when slice bytes cannot be decoded.
var ErrMalformedSlice = errors.New("malformed encoded slice")

// EncodedSlice is one erasure-coded fragment of a blob. Index identifies the
// fragment within the blob's erasure coding; Proof carries the inclusion
// proof material the verifier checks against the storage root.
type EncodedSlice struct {
	Index   uint64
	Payload []byte
	Proof   [][]byte
}

// DecodeSlice parses the wire form of an encoded slice:
//
//	index (8B BE) || payloadLen (4B BE) || payload || proofCount (2B BE) || proofCount * 32B hashes
//
// Truncated or trailing bytes are rejected.
func DecodeSlice(b []byte) (*EncodedSlice, error) {
	if len(b) < sliceHeaderSize {
		return nil, fmt.Errorf("%w: %d bytes is shorter than the fixed header", ErrMalformedSlice, len(b))
	}

	index := binary.BigEndian.Uint64(b[:8])
	payloadLen := binary.BigEndian.Uint32(b[8:12])
	if payloadLen == 0 || payloadLen > MaxSlicePayloadSize {
		return nil, fmt.Errorf("%w: payload length %d out of range", ErrMalformedSlice, payloadLen)
	}

	rest := b[12:]
	if uint64(len(rest)) < uint64(payloadLen)+2 {
		return nil, fmt.Errorf("%w: truncated payload", ErrMalformedSlice)
	}
	payload := make([]byte, payloadLen)
	copy(payload, rest[:payloadLen])
	rest = rest[payloadLen:]

	proofCount := binary.BigEndian.Uint16(rest[:2])
	rest = rest[2:]
	if len(rest) != int(proofCount)*proofHashSize {
		return nil, fmt.Errorf("%w: expected %d proof hashes, have %d trailing bytes", ErrMalformedSlice, proofCount, len(rest))
	}

	proof := make([][]byte, proofCount)
	for i := range proof {
		h := make([]byte, proofHashSize)
		copy(h, rest[i*proofHashSize:(i+1)*proofHashSize])
		proof[i] = h
	}

	return &EncodedSlice{
		Index:   index,
		Payload: payload,
		Proof:   proof,
	}, nil
}

// Encode serializes the slice into its wire form.
func (s *EncodedSlice) Encode() []byte {
	out := make([]byte, 0, sliceHeaderSize+len(s.Payload)+len(s.Proof)*proofHashSize)
	out = binary.BigEndian.AppendUint64(out, s.Index)
	out = binary.BigEndian.AppendUint32(out, uint32(len(s.Payload)))
	out = append(out, s.Payload...)
	out = binary.BigEndian.AppendUint16(out, uint16(len(s.Proof)))
	for _, h := range s.Proof {
		out = append(out, h...)
	}
	return out
}
