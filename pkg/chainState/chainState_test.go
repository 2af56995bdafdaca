package chainState

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubRegistryCaller struct {
	counts map[uint64]*big.Int
	err    error
	calls  int
}

func (s *stubRegistryCaller) QuorumCount(_ context.Context, epoch *big.Int) (*big.Int, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	count, ok := s.counts[epoch.Uint64()]
	if !ok {
		return big.NewInt(0), nil
	}
	return count, nil
}

func TestChainState_QuorumCount(t *testing.T) {
	caller := &stubRegistryCaller{counts: map[uint64]*big.Int{42: big.NewInt(5)}}
	state := NewChainState(caller, zap.NewNop())

	count, err := state.QuorumCount(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), count)
	assert.Equal(t, 1, caller.calls)

	// Second lookup is served from the cache.
	count, err = state.QuorumCount(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), count)
	assert.Equal(t, 1, caller.calls)
}

func TestChainState_UnknownEpoch(t *testing.T) {
	caller := &stubRegistryCaller{counts: map[uint64]*big.Int{}}
	state := NewChainState(caller, zap.NewNop())

	_, err := state.QuorumCount(context.Background(), 7)
	assert.ErrorContains(t, err, "no quorum registered for epoch 7")

	// A zero count is not cached; the registry is asked again.
	_, err = state.QuorumCount(context.Background(), 7)
	assert.Error(t, err)
	assert.Equal(t, 2, caller.calls)
}

func TestChainState_CallerError(t *testing.T) {
	callErr := errors.New("rpc unavailable")
	caller := &stubRegistryCaller{err: callErr}
	state := NewChainState(caller, zap.NewNop())

	_, err := state.QuorumCount(context.Background(), 1)
	assert.ErrorIs(t, err, callErr)
}
