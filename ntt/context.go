// Package ntt defines the steps that configure a Wormhole NTT manager on Solana and link it to
// a peer deployment on another chain.
package ntt

import (
	"math/big"

	"github.com/gagliardetto/solana-go"

	solanasdk "github.com/smartcontractkit/ntt-setup/sdk/solana"
	"github.com/smartcontractkit/ntt-setup/types"
)

// Context is the read-only input shared by every step of a setup run.
type Context struct {
	// Solana is the chain the manager is deployed on.
	Solana types.WormholeChain

	// Payer pays for and signs every Solana transaction. It is also the manager owner and must be
	// the upgrade authority of the manager program.
	Payer solana.PublicKey

	ManagerProgram solana.PublicKey
	// CoreBridge is the Wormhole core bridge the transceiver posts its messages to.
	CoreBridge     solana.PublicKey
	Mint           solana.PublicKey
	TokenProgram   solana.PublicKey
	Mode           solanasdk.Mode
	OutboundLimit  uint64

	Peer Peer

	// EVM is set when the peer side should be linked back to the Solana deployment as well.
	EVM *EVMPeer
}

// Peer is the remote NTT deployment. Addresses are kept in their native text form and parsed by
// the steps that use them, so a malformed address fails that step's validation.
type Peer struct {
	Chain              types.WormholeChain
	ManagerAddress     string
	TransceiverAddress string
	Decimals           uint8
	InboundLimit       uint64
}

// EVMPeer holds the inputs of the steps that run on an EVM peer chain.
type EVMPeer struct {
	// SolanaDecimals are the token decimals on Solana, registered with the EVM manager.
	SolanaDecimals uint8
	// InboundLimit is the rate limit of transfers from Solana into the EVM chain.
	InboundLimit *big.Int
	// TransceiverPeerValue is sent with setWormholePeer to pay the core bridge message fee.
	TransceiverPeerValue *big.Int
}
