package solana

import (
	"encoding/binary"
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/smartcontractkit/ntt-setup/types"
)

// Seed prefixes of the accounts owned by the NTT manager program.
const (
	configSeed                = "config"
	outboxRateLimitSeed       = "outbox_rate_limit"
	inboxRateLimitSeed        = "inbox_rate_limit"
	tokenAuthoritySeed        = "token_authority"
	peerSeed                  = "peer"
	transceiverPeerSeed       = "transceiver_peer"
	registeredTransceiverSeed = "registered_transceiver"
	emitterSeed               = "emitter"
)

// Seed prefixes of the Wormhole core bridge accounts used when posting a message.
const (
	wormholeBridgeSeed       = "Bridge"
	wormholeFeeCollectorSeed = "fee_collector"
	wormholeSequenceSeed     = "Sequence"
)

// Wormhole core bridge program ids.
var (
	CoreBridgeMainnet = solana.MustPublicKeyFromBase58("worm2ZoG2kUd4vFXhvjh93UUH596ayRfgQ2MgjNMTth")
	CoreBridgeTestnet = solana.MustPublicKeyFromBase58("3u8hJUVTA4jH1wYAyUur7FFZVQ8H635K3tSHHF4ssjQ5")
)

// CoreBridgeForNetwork returns the core bridge program id deployed on Solana for network.
func CoreBridgeForNetwork(network types.Network) solana.PublicKey {
	if network == types.NetworkMainnet {
		return CoreBridgeMainnet
	}

	return CoreBridgeTestnet
}

func FindConfigPDA(programID solana.PublicKey) (solana.PublicKey, error) {
	return findPDA(programID, [][]byte{[]byte(configSeed)})
}

func FindOutboxRateLimitPDA(programID solana.PublicKey) (solana.PublicKey, error) {
	return findPDA(programID, [][]byte{[]byte(outboxRateLimitSeed)})
}

func FindTokenAuthorityPDA(programID solana.PublicKey) (solana.PublicKey, error) {
	return findPDA(programID, [][]byte{[]byte(tokenAuthoritySeed)})
}

// FindEmitterPDA returns the Wormhole emitter of the transceiver. This is the address a remote
// transceiver registers as its Solana peer.
func FindEmitterPDA(programID solana.PublicKey) (solana.PublicKey, error) {
	return findPDA(programID, [][]byte{[]byte(emitterSeed)})
}

func FindPeerPDA(programID solana.PublicKey, chainID uint16) (solana.PublicKey, error) {
	return findPDA(programID, [][]byte{[]byte(peerSeed), chainIDSeed(chainID)})
}

func FindInboxRateLimitPDA(programID solana.PublicKey, chainID uint16) (solana.PublicKey, error) {
	return findPDA(programID, [][]byte{[]byte(inboxRateLimitSeed), chainIDSeed(chainID)})
}

func FindTransceiverPeerPDA(programID solana.PublicKey, chainID uint16) (solana.PublicKey, error) {
	return findPDA(programID, [][]byte{[]byte(transceiverPeerSeed), chainIDSeed(chainID)})
}

func FindRegisteredTransceiverPDA(programID solana.PublicKey, transceiver solana.PublicKey) (solana.PublicKey, error) {
	return findPDA(programID, [][]byte{[]byte(registeredTransceiverSeed), transceiver.Bytes()})
}

// FindWormholeBridgePDA returns the core bridge config account.
func FindWormholeBridgePDA(coreBridge solana.PublicKey) (solana.PublicKey, error) {
	return findPDA(coreBridge, [][]byte{[]byte(wormholeBridgeSeed)})
}

func FindWormholeFeeCollectorPDA(coreBridge solana.PublicKey) (solana.PublicKey, error) {
	return findPDA(coreBridge, [][]byte{[]byte(wormholeFeeCollectorSeed)})
}

// FindWormholeSequencePDA returns the account the core bridge keeps the next message sequence of
// emitter in.
func FindWormholeSequencePDA(coreBridge, emitter solana.PublicKey) (solana.PublicKey, error) {
	return findPDA(coreBridge, [][]byte{[]byte(wormholeSequenceSeed), emitter.Bytes()})
}

// FindProgramDataPDA returns the program data account the upgradeable loader keeps for the
// program. The manager checks the deployer against its upgrade authority on initialize.
func FindProgramDataPDA(programID solana.PublicKey) (solana.PublicKey, error) {
	pda, _, err := solana.FindProgramAddress([][]byte{programID.Bytes()}, solana.BPFLoaderUpgradeableProgramID)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("unable to find program data pda: %w", err)
	}

	return pda, nil
}

// FindCustodyAddress returns the associated token account of the token authority, which holds
// locked tokens. The token program is part of the derivation so Token-2022 mints are supported.
func FindCustodyAddress(tokenAuthority, mint, tokenProgram solana.PublicKey) (solana.PublicKey, error) {
	pda, _, err := solana.FindProgramAddress(
		[][]byte{tokenAuthority.Bytes(), tokenProgram.Bytes(), mint.Bytes()},
		solana.SPLAssociatedTokenAccountProgramID,
	)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("unable to find custody address: %w", err)
	}

	return pda, nil
}

func findPDA(programID solana.PublicKey, seeds [][]byte) (solana.PublicKey, error) {
	pda, _, err := solana.FindProgramAddress(seeds, programID)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("unable to find %s pda: %w", string(seeds[0]), err)
	}

	return pda, nil
}

// chainIDSeed encodes a Wormhole chain id the way the program uses it in seeds (big endian).
func chainIDSeed(chainID uint16) []byte {
	seed := make([]byte, 2) //nolint:mnd
	binary.BigEndian.PutUint16(seed, chainID)

	return seed
}
