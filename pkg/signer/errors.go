package signer

import (
	"errors"
	"fmt"
)

// Domain errors of the verification pipeline. Mapping to transport status
// codes happens at the RPC boundary, never here.
var (
	// ErrSliceMismatch reports a length or positional-index mismatch between
	// the received slices and the quorum's assignment. Correspondence is
	// positional: the same index set in a different order still mismatches.
	ErrSliceMismatch = errors.New("received slices and assigned slices are mismatch")

	// ErrQuorumOutOfBound reports a quorum id at or beyond the epoch's
	// registered quorum count.
	ErrQuorumOutOfBound = errors.New("quorum id out of bound")

	// ErrQuorumNotFound reports a missing assignment record for the quorum,
	// meaning chain synchronization has not populated it.
	ErrQuorumNotFound = errors.New("quorum not found")

	// ErrBlobNotFound reports that no upload record exists for the blob.
	ErrBlobNotFound = errors.New("blob not found")

	// ErrBlobAlreadyVerified refuses to re-sign a blob whose availability was
	// already attested.
	ErrBlobAlreadyVerified = errors.New("blob verified already")
)

// MalformedRequestError wraps a wire decoding failure with the field that
// failed to decode.
type MalformedRequestError struct {
	Field string
	Err   error
}

func (e *MalformedRequestError) Error() string {
	return fmt.Sprintf("failed to decode %s: %v", e.Field, e.Err)
}

func (e *MalformedRequestError) Unwrap() error { return e.Err }

// IncorrectSliceError wraps a cryptographic slice verification failure with
// the offending slice index.
type IncorrectSliceError struct {
	Index uint64
	Err   error
}

func (e *IncorrectSliceError) Error() string {
	return fmt.Sprintf("verification failed for slice %d: %v", e.Index, e.Err)
}

func (e *IncorrectSliceError) Unwrap() error { return e.Err }

// DependencyError wraps a failure of an external collaborator: chain state,
// status or assignment storage, or slice persistence.
type DependencyError struct {
	Op  string
	Err error
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *DependencyError) Unwrap() error { return e.Err }

// RequestError attributes a pipeline failure to the position of the request
// inside the batch, for caller diagnostics.
type RequestError struct {
	RequestIndex int
	Err          error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request %d: %v", e.RequestIndex, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }
