// Package storage persists the signer's view of blob lifecycle state, quorum
// slice assignments, and verified slices. The signer only ever reads blob
// status and assignments; both are written by the upload and chain-sync
// collaborators through the same store handle, which is what keeps reads and
// writes on a single consistency domain.
package storage

import (
	"github.com/Layr-Labs/da-signer-go/pkg/encoding"
)

// BlobStatus is the lifecycle state of a blob within one (epoch, quorum).
type BlobStatus uint8

const (
	// BlobStatusUploaded marks a blob whose slices have been uploaded and may
	// be signed for.
	BlobStatusUploaded BlobStatus = iota
	// BlobStatusVerified marks a blob whose availability has already been
	// attested; signing again is refused. The Uploaded to Verified transition
	// is driven by the aggregation component, never by the signer.
	BlobStatusVerified
)

// IBlobStatusStore reads and writes blob lifecycle state keyed by
// (epoch, quorumID, storage root).
type IBlobStatusStore interface {
	GetBlobStatus(epoch uint64, quorumID uint64, root [32]byte) (BlobStatus, bool, error)
	SetBlobStatus(epoch uint64, quorumID uint64, root [32]byte, status BlobStatus) error
}

// IQuorumAssignmentStore reads and writes the ordered slice index list a
// quorum is responsible for, keyed by (epoch, quorumID). Populated by chain
// synchronization.
type IQuorumAssignmentStore interface {
	GetAssignedSlices(epoch uint64, quorumID uint64) ([]uint64, bool, error)
	SetAssignedSlices(epoch uint64, quorumID uint64, indices []uint64) error
}

// ISliceStore persists verified slices keyed by (epoch, quorumID, root).
type ISliceStore interface {
	PutSlices(epoch uint64, quorumID uint64, root [32]byte, slices []*encoding.EncodedSlice) error
	GetSlice(epoch uint64, quorumID uint64, root [32]byte, index uint64) (*encoding.EncodedSlice, bool, error)
}

// IStore is the full persistence surface of a signer node.
type IStore interface {
	IBlobStatusStore
	IQuorumAssignmentStore
	ISliceStore
	Close() error
}
