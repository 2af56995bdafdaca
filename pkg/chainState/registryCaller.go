package chainState

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
)

// daRegistryABI is the read surface of the DA registry contract the signer
// depends on.
const daRegistryABI = `[{"type":"function","name":"quorumCount","stateMutability":"view","inputs":[{"name":"epoch","type":"uint256"}],"outputs":[{"name":"","type":"uint256"}]}]`

// IDARegistryCaller abstracts the registry contract read so tests can stub
// the chain away.
type IDARegistryCaller interface {
	QuorumCount(ctx context.Context, epoch *big.Int) (*big.Int, error)
}

// DARegistryCaller reads the DA registry contract through a bound contract
// instance.
type DARegistryCaller struct {
	contract *bind.BoundContract
}

var _ IDARegistryCaller = (*DARegistryCaller)(nil)

// NewDARegistryCaller binds the registry contract at address over the given
// caller backend.
func NewDARegistryCaller(address common.Address, backend bind.ContractCaller) (*DARegistryCaller, error) {
	parsed, err := abi.JSON(strings.NewReader(daRegistryABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse DA registry ABI: %w", err)
	}
	return &DARegistryCaller{
		contract: bind.NewBoundContract(address, parsed, backend, nil, nil),
	}, nil
}

// QuorumCount implements IDARegistryCaller.
func (c *DARegistryCaller) QuorumCount(ctx context.Context, epoch *big.Int) (*big.Int, error) {
	var out []interface{}
	err := c.contract.Call(&bind.CallOpts{Context: ctx}, &out, "quorumCount", epoch)
	if err != nil {
		return nil, fmt.Errorf("quorumCount call: %w", err)
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}
