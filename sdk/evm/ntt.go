package evm

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// NttManagerABI is the subset of the NttManager interface used to link a peer manager.
const NttManagerABI = `[
	{
		"type": "function",
		"name": "setPeer",
		"stateMutability": "nonpayable",
		"inputs": [
			{"name": "peerChainId", "type": "uint16"},
			{"name": "peerContract", "type": "bytes32"},
			{"name": "decimals", "type": "uint8"},
			{"name": "inboundLimit", "type": "uint256"}
		],
		"outputs": []
	}
]`

// WormholeTransceiverABI is the subset of the WormholeTransceiver interface used to link a peer
// transceiver. setWormholePeer publishes a Wormhole message, so it may require the core bridge
// message fee as value.
const WormholeTransceiverABI = `[
	{
		"type": "function",
		"name": "setWormholePeer",
		"stateMutability": "payable",
		"inputs": [
			{"name": "chainId", "type": "uint16"},
			{"name": "peerContract", "type": "bytes32"}
		],
		"outputs": []
	}
]`

var (
	nttManagerABI          = mustParseABI(NttManagerABI)
	wormholeTransceiverABI = mustParseABI(WormholeTransceiverABI)
)

// MaxUint256 is the largest inbound limit the manager accepts.
var MaxUint256 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1)) //nolint:mnd

// EncodeSetPeer returns the calldata of NttManager.setPeer.
func EncodeSetPeer(chainID uint16, peer [32]byte, decimals uint8, inboundLimit *big.Int) ([]byte, error) {
	if inboundLimit == nil || inboundLimit.Sign() < 0 || inboundLimit.Cmp(MaxUint256) > 0 {
		return nil, fmt.Errorf("inbound limit %v out of uint256 range", inboundLimit)
	}

	return nttManagerABI.Pack("setPeer", chainID, peer, decimals, inboundLimit)
}

// EncodeSetWormholePeer returns the calldata of WormholeTransceiver.setWormholePeer.
func EncodeSetWormholePeer(chainID uint16, peer [32]byte) ([]byte, error) {
	return wormholeTransceiverABI.Pack("setWormholePeer", chainID, peer)
}

func mustParseABI(def string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(def))
	if err != nil {
		panic(err)
	}

	return parsed
}
