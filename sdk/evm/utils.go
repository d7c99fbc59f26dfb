package evm

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	chainsel "github.com/smartcontractkit/chain-selectors"

	sdkerrors "github.com/smartcontractkit/ntt-setup/sdk/errors"
	"github.com/smartcontractkit/ntt-setup/types"
)

type ContractDeployBackend interface {
	bind.ContractBackend
	bind.DeployBackend
}

// ChainIDFromSelector returns the EVM chain ID for the given chain selector.
func ChainIDFromSelector(sel types.ChainSelector) (*big.Int, error) {
	chain, ok := chainsel.ChainBySelector(uint64(sel))
	if !ok || chain.EvmChainID == 0 {
		return nil, sdkerrors.NewConfigurationErrorf("chainSelector", "%d is not a known EVM chain selector", sel)
	}

	return new(big.Int).SetUint64(chain.EvmChainID), nil
}
