package storage

import (
	"encoding/binary"
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"
	leveldbstorage "github.com/syndtr/goleveldb/leveldb/storage"

	"github.com/Layr-Labs/da-signer-go/pkg/encoding"
)

// Key prefixes, one per record family.
const (
	prefixBlobStatus byte = 's'
	prefixAssignment byte = 'q'
	prefixSlice      byte = 'e'
)

// LevelDBStore implements IStore on top of LevelDB. LevelDB serializes its
// own writes, so a single handle is safe for concurrent batch-sign calls.
type LevelDBStore struct {
	db *leveldb.DB
}

var _ IStore = (*LevelDBStore)(nil)

// NewLevelDBStore opens or creates the database at path. An empty path opens
// an in-memory database, used by tests.
func NewLevelDBStore(path string) (*LevelDBStore, error) {
	var (
		db  *leveldb.DB
		err error
	)
	if path == "" {
		db, err = leveldb.Open(leveldbstorage.NewMemStorage(), nil)
	} else {
		db, err = leveldb.OpenFile(path, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open database at %q: %w", path, err)
	}
	return &LevelDBStore{db: db}, nil
}

// NewMemoryStore opens an in-memory LevelDBStore.
func NewMemoryStore() (*LevelDBStore, error) {
	return NewLevelDBStore("")
}

// Close releases the underlying database.
func (s *LevelDBStore) Close() error {
	return s.db.Close()
}

// GetBlobStatus implements IBlobStatusStore.
func (s *LevelDBStore) GetBlobStatus(epoch uint64, quorumID uint64, root [32]byte) (BlobStatus, bool, error) {
	data, err := s.db.Get(blobStatusKey(epoch, quorumID, root), nil)
	if err == leveldb.ErrNotFound {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("get blob status: %w", err)
	}
	if len(data) != 1 || BlobStatus(data[0]) > BlobStatusVerified {
		return 0, false, fmt.Errorf("corrupt blob status record: %x", data)
	}
	return BlobStatus(data[0]), true, nil
}

// SetBlobStatus implements IBlobStatusStore.
func (s *LevelDBStore) SetBlobStatus(epoch uint64, quorumID uint64, root [32]byte, status BlobStatus) error {
	return s.db.Put(blobStatusKey(epoch, quorumID, root), []byte{byte(status)}, nil)
}

// GetAssignedSlices implements IQuorumAssignmentStore.
func (s *LevelDBStore) GetAssignedSlices(epoch uint64, quorumID uint64) ([]uint64, bool, error) {
	data, err := s.db.Get(assignmentKey(epoch, quorumID), nil)
	if err == leveldb.ErrNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get assigned slices: %w", err)
	}
	if len(data)%8 != 0 {
		return nil, false, fmt.Errorf("corrupt assignment record of %d bytes", len(data))
	}
	indices := make([]uint64, len(data)/8)
	for i := range indices {
		indices[i] = binary.BigEndian.Uint64(data[i*8:])
	}
	return indices, true, nil
}

// SetAssignedSlices implements IQuorumAssignmentStore.
func (s *LevelDBStore) SetAssignedSlices(epoch uint64, quorumID uint64, indices []uint64) error {
	data := make([]byte, 0, len(indices)*8)
	for _, idx := range indices {
		data = binary.BigEndian.AppendUint64(data, idx)
	}
	return s.db.Put(assignmentKey(epoch, quorumID), data, nil)
}

// PutSlices implements ISliceStore. Slices of one request are written in a
// single batch so a crash never persists half a request.
func (s *LevelDBStore) PutSlices(epoch uint64, quorumID uint64, root [32]byte, slices []*encoding.EncodedSlice) error {
	batch := new(leveldb.Batch)
	for _, slice := range slices {
		batch.Put(sliceKey(epoch, quorumID, root, slice.Index), slice.Encode())
	}
	if err := s.db.Write(batch, nil); err != nil {
		return fmt.Errorf("put slices: %w", err)
	}
	return nil
}

// GetSlice implements ISliceStore.
func (s *LevelDBStore) GetSlice(epoch uint64, quorumID uint64, root [32]byte, index uint64) (*encoding.EncodedSlice, bool, error) {
	data, err := s.db.Get(sliceKey(epoch, quorumID, root, index), nil)
	if err == leveldb.ErrNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get slice: %w", err)
	}
	slice, err := encoding.DecodeSlice(data)
	if err != nil {
		return nil, false, fmt.Errorf("corrupt slice record: %w", err)
	}
	return slice, true, nil
}

func blobStatusKey(epoch uint64, quorumID uint64, root [32]byte) []byte {
	key := make([]byte, 0, 1+8+8+32)
	key = append(key, prefixBlobStatus)
	key = binary.BigEndian.AppendUint64(key, epoch)
	key = binary.BigEndian.AppendUint64(key, quorumID)
	return append(key, root[:]...)
}

func assignmentKey(epoch uint64, quorumID uint64) []byte {
	key := make([]byte, 0, 1+8+8)
	key = append(key, prefixAssignment)
	key = binary.BigEndian.AppendUint64(key, epoch)
	return binary.BigEndian.AppendUint64(key, quorumID)
}

func sliceKey(epoch uint64, quorumID uint64, root [32]byte, index uint64) []byte {
	key := make([]byte, 0, 1+8+8+32+8)
	key = append(key, prefixSlice)
	key = binary.BigEndian.AppendUint64(key, epoch)
	key = binary.BigEndian.AppendUint64(key, quorumID)
	key = append(key, root[:]...)
	return binary.BigEndian.AppendUint64(key, index)
}
