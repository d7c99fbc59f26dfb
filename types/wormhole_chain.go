package types //nolint:revive,nolintlint // allow pkg name 'types'

import (
	"fmt"

	chainsel "github.com/smartcontractkit/chain-selectors"
)

// WormholeChain identifies a chain both by its Wormhole chain id, which is what NTT contracts
// store in their peer registries, and by its chain selector, which is what the submitters are
// keyed by.
type WormholeChain struct {
	Name          string
	ID            uint16
	ChainSelector ChainSelector
}

// Family returns the chain family of the chain.
func (c WormholeChain) Family() (string, error) {
	return GetChainSelectorFamily(c.ChainSelector)
}

// wormholeChains maps a Wormhole chain name to its id and per network chain selector.
//
// https://wormhole.com/docs/build/reference/chain-ids/
var wormholeChains = map[string]struct {
	id        uint16
	selectors map[Network]uint64
}{
	"Solana": {id: 1, selectors: map[Network]uint64{
		NetworkMainnet: chainsel.SOLANA_MAINNET.Selector,
		NetworkTestnet: chainsel.SOLANA_DEVNET.Selector,
	}},
	"Ethereum": {id: 2, selectors: map[Network]uint64{
		NetworkMainnet: chainsel.ETHEREUM_MAINNET.Selector,
	}},
	"Arbitrum": {id: 23, selectors: map[Network]uint64{
		NetworkMainnet: chainsel.ETHEREUM_MAINNET_ARBITRUM_1.Selector,
	}},
	"Optimism": {id: 24, selectors: map[Network]uint64{
		NetworkMainnet: chainsel.ETHEREUM_MAINNET_OPTIMISM_1.Selector,
	}},
	"Base": {id: 30, selectors: map[Network]uint64{
		NetworkMainnet: chainsel.ETHEREUM_MAINNET_BASE_1.Selector,
	}},
	"Sepolia": {id: 10002, selectors: map[Network]uint64{
		NetworkTestnet: chainsel.ETHEREUM_TESTNET_SEPOLIA.Selector,
	}},
	"ArbitrumSepolia": {id: 10003, selectors: map[Network]uint64{
		NetworkTestnet: chainsel.ETHEREUM_TESTNET_SEPOLIA_ARBITRUM_1.Selector,
	}},
	"BaseSepolia": {id: 10004, selectors: map[Network]uint64{
		NetworkTestnet: chainsel.ETHEREUM_TESTNET_SEPOLIA_BASE_1.Selector,
	}},
	"OptimismSepolia": {id: 10005, selectors: map[Network]uint64{
		NetworkTestnet: chainsel.ETHEREUM_TESTNET_SEPOLIA_OPTIMISM_1.Selector,
	}},
}

// LookupWormholeChain resolves a Wormhole chain name on the given network.
func LookupWormholeChain(network Network, name string) (WormholeChain, error) {
	entry, ok := wormholeChains[name]
	if !ok {
		return WormholeChain{}, fmt.Errorf("unknown wormhole chain %q", name)
	}

	selector, ok := entry.selectors[network]
	if !ok {
		return WormholeChain{}, fmt.Errorf("wormhole chain %q is not available on %s", name, network)
	}

	return WormholeChain{
		Name:          name,
		ID:            entry.id,
		ChainSelector: ChainSelector(selector),
	}, nil
}
