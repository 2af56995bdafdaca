// Package chainState exposes the signer's read-only view of on-chain DA
// registry state. The only fact the signing pipeline needs from the chain is
// the number of quorums registered for an epoch; it is fetched lazily and
// cached forever, since quorum membership is fixed once an epoch is sealed.
package chainState

import (
	"context"
	"fmt"
	"math/big"
	"sync"

	"go.uber.org/zap"
)

// IChainState defines the chain-backed capability consumed by the signing
// pipeline.
type IChainState interface {
	// QuorumCount returns the number of quorums registered for the epoch.
	// It fails if the epoch is unknown to the registry.
	QuorumCount(ctx context.Context, epoch uint64) (uint64, error)
}

// ChainState implements IChainState with a per-epoch cache in front of a DA
// registry contract.
type ChainState struct {
	logger *zap.Logger
	caller IDARegistryCaller

	mu           sync.RWMutex
	quorumCounts map[uint64]uint64
}

// NewChainState creates a ChainState reading through the given registry
// caller.
func NewChainState(caller IDARegistryCaller, logger *zap.Logger) *ChainState {
	return &ChainState{
		logger:       logger,
		caller:       caller,
		quorumCounts: make(map[uint64]uint64),
	}
}

// QuorumCount implements IChainState.
func (c *ChainState) QuorumCount(ctx context.Context, epoch uint64) (uint64, error) {
	c.mu.RLock()
	count, ok := c.quorumCounts[epoch]
	c.mu.RUnlock()
	if ok {
		return count, nil
	}

	raw, err := c.caller.QuorumCount(ctx, new(big.Int).SetUint64(epoch))
	if err != nil {
		return 0, fmt.Errorf("failed to fetch quorum count for epoch %d: %w", epoch, err)
	}
	if !raw.IsUint64() || raw.Sign() == 0 {
		return 0, fmt.Errorf("no quorum registered for epoch %d", epoch)
	}
	count = raw.Uint64()

	c.mu.Lock()
	c.quorumCounts[epoch] = count
	c.mu.Unlock()

	c.logger.Sugar().Debugw("Cached quorum count",
		zap.Uint64("epoch", epoch),
		zap.Uint64("quorumCount", count),
	)
	return count, nil
}
