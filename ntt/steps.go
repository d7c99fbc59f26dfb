package ntt

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/gagliardetto/solana-go"
	chainsel "github.com/smartcontractkit/chain-selectors"

	nttsetup "github.com/smartcontractkit/ntt-setup"
	sdkerrors "github.com/smartcontractkit/ntt-setup/sdk/errors"
	"github.com/smartcontractkit/ntt-setup/sdk/evm"
	solanasdk "github.com/smartcontractkit/ntt-setup/sdk/solana"
	"github.com/smartcontractkit/ntt-setup/types"
)

// Step names, in the order they run.
const (
	StepInitializeManager     = "initialize-manager"
	StepRegisterTransceiver   = "register-transceiver"
	StepSetManagerPeer        = "set-manager-peer"
	StepSetTransceiverPeer    = "set-transceiver-peer"
	StepEVMSetManagerPeer     = "evm-set-manager-peer"
	StepEVMSetTransceiverPeer = "evm-set-transceiver-peer"
)

const (
	contractTypeManager     = "NttManager"
	contractTypeTransceiver = "WormholeTransceiver"
)

// Steps returns the setup steps for c. The EVM steps are only included when c.EVM is set.
func Steps(c Context) []nttsetup.Step[Context] {
	steps := []nttsetup.Step[Context]{
		{
			Name:       StepInitializeManager,
			Reentrancy: "fails on chain if the manager is already initialized; skip it with --from when re-running",
			Validate:   validateSolana,
			Build:      buildInitializeManager,
		},
		{
			Name:       StepRegisterTransceiver,
			DependsOn:  []string{StepInitializeManager},
			Reentrancy: "fails on chain if the transceiver is already registered",
			Validate:   validateSolana,
			Build:      buildRegisterTransceiver,
		},
		{
			Name:       StepSetManagerPeer,
			DependsOn:  []string{StepInitializeManager},
			Reentrancy: "safe to re-run: overwrites the peer address, decimals and inbound limit",
			Validate: func(c Context) error {
				_, err := peerManagerAddress(c)
				return err
			},
			Build: buildSetManagerPeer,
		},
		{
			Name:       StepSetTransceiverPeer,
			DependsOn:  []string{StepRegisterTransceiver},
			Reentrancy: "fails on chain if a transceiver peer is already registered for the chain",
			Validate: func(c Context) error {
				_, err := peerTransceiverAddress(c)
				return err
			},
			Build: buildSetTransceiverPeer,
		},
	}

	if c.EVM == nil {
		return steps
	}

	return append(steps,
		nttsetup.Step[Context]{
			Name:       StepEVMSetManagerPeer,
			DependsOn:  []string{StepInitializeManager},
			Reentrancy: "safe to re-run: overwrites the Solana peer on the EVM manager",
			Validate: func(c Context) error {
				_, err := peerManagerEVMAddress(c)
				return err
			},
			Build: buildEVMSetManagerPeer,
		},
		nttsetup.Step[Context]{
			Name:       StepEVMSetTransceiverPeer,
			DependsOn:  []string{StepRegisterTransceiver},
			Reentrancy: "reverts if the EVM transceiver already has a Solana peer",
			Validate: func(c Context) error {
				_, err := peerTransceiverEVMAddress(c)
				return err
			},
			Build: buildEVMSetTransceiverPeer,
		},
	)
}

// NewPlan returns the ordered plan of the setup steps for c.
func NewPlan(c Context) (*nttsetup.Plan[Context], error) {
	return nttsetup.NewPlan(Steps(c)...)
}

func validateSolana(c Context) error {
	switch {
	case c.Payer.IsZero():
		return sdkerrors.NewConfigurationError("solana.keypair_path", "payer must be set")
	case c.ManagerProgram.IsZero():
		return sdkerrors.NewConfigurationError("solana.manager_program_id", "must be set")
	case c.CoreBridge.IsZero():
		return sdkerrors.NewConfigurationError("solana.core_bridge", "must be set")
	case c.Mint.IsZero():
		return sdkerrors.NewConfigurationError("solana.token_mint", "must be set")
	}

	return nil
}

func buildInitializeManager(c Context) ([]types.Transaction, error) {
	ix, err := solanasdk.NewInitializeInstruction(c.ManagerProgram, solanasdk.InitializeParams{
		Payer:         c.Payer,
		Deployer:      c.Payer,
		Mint:          c.Mint,
		TokenProgram:  c.TokenProgram,
		ChainID:       c.Solana.ID,
		OutboundLimit: c.OutboundLimit,
		Mode:          c.Mode,
	})
	if err != nil {
		return nil, err
	}

	return solanaBatch(c, ix, contractTypeManager, StepInitializeManager)
}

// buildRegisterTransceiver registers the manager program as its own Wormhole transceiver and
// announces the transceiver in the same transaction.
func buildRegisterTransceiver(c Context) ([]types.Transaction, error) {
	ix, err := solanasdk.NewRegisterTransceiverInstruction(c.ManagerProgram, c.ManagerProgram, c.Payer, c.Payer)
	if err != nil {
		return nil, err
	}
	broadcast, ephemeral, err := solanasdk.NewBroadcastWormholeIDInstruction(
		c.ManagerProgram, c.CoreBridge, c.Payer, c.Mint)
	if err != nil {
		return nil, err
	}

	return solanaBatchWithBroadcast(c, ix, contractTypeManager, broadcast, ephemeral, StepRegisterTransceiver)
}

func buildSetManagerPeer(c Context) ([]types.Transaction, error) {
	address, err := peerManagerAddress(c)
	if err != nil {
		return nil, err
	}

	ix, err := solanasdk.NewSetPeerInstruction(c.ManagerProgram, solanasdk.SetPeerParams{
		Payer:         c.Payer,
		Owner:         c.Payer,
		ChainID:       c.Peer.Chain.ID,
		Address:       address,
		InboundLimit:  c.Peer.InboundLimit,
		TokenDecimals: c.Peer.Decimals,
	})
	if err != nil {
		return nil, err
	}

	return solanaBatch(c, ix, contractTypeManager, StepSetManagerPeer)
}

func buildSetTransceiverPeer(c Context) ([]types.Transaction, error) {
	address, err := peerTransceiverAddress(c)
	if err != nil {
		return nil, err
	}

	ix, err := solanasdk.NewSetWormholePeerInstruction(c.ManagerProgram, c.Payer, c.Payer, c.Peer.Chain.ID, address)
	if err != nil {
		return nil, err
	}
	broadcast, ephemeral, err := solanasdk.NewBroadcastWormholePeerInstruction(
		c.ManagerProgram, c.CoreBridge, c.Payer, c.Peer.Chain.ID)
	if err != nil {
		return nil, err
	}

	return solanaBatchWithBroadcast(c, ix, contractTypeTransceiver, broadcast, ephemeral, StepSetTransceiverPeer)
}

func buildEVMSetManagerPeer(c Context) ([]types.Transaction, error) {
	to, err := peerManagerEVMAddress(c)
	if err != nil {
		return nil, err
	}

	data, err := evm.EncodeSetPeer(c.Solana.ID, c.ManagerProgram, c.EVM.SolanaDecimals, c.EVM.InboundLimit)
	if err != nil {
		return nil, sdkerrors.NewConfigurationErrorf("evm.inbound_limit", "%v", err)
	}

	tx, err := evm.NewTransaction(c.Peer.Chain.ChainSelector, to, data, nil, contractTypeManager,
		[]string{StepEVMSetManagerPeer})
	if err != nil {
		return nil, err
	}

	return []types.Transaction{tx}, nil
}

// buildEVMSetTransceiverPeer registers the Solana emitter, which is the address Solana
// transceiver messages are published from.
func buildEVMSetTransceiverPeer(c Context) ([]types.Transaction, error) {
	to, err := peerTransceiverEVMAddress(c)
	if err != nil {
		return nil, err
	}

	emitter, err := solanasdk.FindEmitterPDA(c.ManagerProgram)
	if err != nil {
		return nil, err
	}

	data, err := evm.EncodeSetWormholePeer(c.Solana.ID, emitter)
	if err != nil {
		return nil, err
	}

	tx, err := evm.NewTransaction(c.Peer.Chain.ChainSelector, to, data, c.EVM.TransceiverPeerValue,
		contractTypeTransceiver, []string{StepEVMSetTransceiverPeer})
	if err != nil {
		return nil, err
	}

	return []types.Transaction{tx}, nil
}

func solanaBatch(c Context, ix solana.Instruction, contractType string, step string) ([]types.Transaction, error) {
	tx, err := solanasdk.NewTransactionFromInstruction(c.Solana.ChainSelector, ix, contractType, []string{step})
	if err != nil {
		return nil, err
	}

	return []types.Transaction{tx}, nil
}

// solanaBatchWithBroadcast pairs ix with the Wormhole broadcast that announces its effect. Both
// land in one Solana transaction.
func solanaBatchWithBroadcast(
	c Context, ix solana.Instruction, contractType string, broadcast solana.Instruction, ephemeral []int, step string,
) ([]types.Transaction, error) {
	batch, err := solanaBatch(c, ix, contractType, step)
	if err != nil {
		return nil, err
	}

	tx, err := solanasdk.NewTransactionWithEphemeralSigners(c.Solana.ChainSelector, broadcast, ephemeral,
		contractTypeTransceiver, []string{step})
	if err != nil {
		return nil, err
	}

	return append(batch, tx), nil
}

func peerManagerAddress(c Context) (types.UniversalAddress, error) {
	return parsePeerAddress(c.Peer.Chain, "peer.manager_address", c.Peer.ManagerAddress)
}

func peerTransceiverAddress(c Context) (types.UniversalAddress, error) {
	return parsePeerAddress(c.Peer.Chain, "peer.transceiver_address", c.Peer.TransceiverAddress)
}

func peerManagerEVMAddress(c Context) (common.Address, error) {
	return parseEVMAddress(c.Peer.Chain, "peer.manager_address", c.Peer.ManagerAddress)
}

func peerTransceiverEVMAddress(c Context) (common.Address, error) {
	return parseEVMAddress(c.Peer.Chain, "peer.transceiver_address", c.Peer.TransceiverAddress)
}

func parsePeerAddress(chain types.WormholeChain, field string, s string) (types.UniversalAddress, error) {
	family, err := chain.Family()
	if err != nil {
		return types.UniversalAddress{}, sdkerrors.NewConfigurationErrorf("peer.chain", "%v", err)
	}

	address, err := types.ParseUniversalAddress(family, s)
	if err != nil {
		return types.UniversalAddress{}, sdkerrors.NewConfigurationErrorf(field, "%v", err)
	}

	return address, nil
}

// parseEVMAddress parses a peer address that a transaction is sent to, so it must be a 20 byte
// EVM address.
func parseEVMAddress(chain types.WormholeChain, field string, s string) (common.Address, error) {
	family, err := chain.Family()
	if err != nil {
		return common.Address{}, sdkerrors.NewConfigurationErrorf("peer.chain", "%v", err)
	}
	if family != chainsel.FamilyEVM {
		return common.Address{}, sdkerrors.NewConfigurationErrorf("peer.chain",
			"%s is not an EVM chain", chain.Name)
	}

	address, err := parsePeerAddress(chain, field, s)
	if err != nil {
		return common.Address{}, err
	}
	if address != types.UniversalAddress(common.BytesToHash(address[12:])) {
		return common.Address{}, sdkerrors.NewConfigurationErrorf(field, "%s is not a 20 byte address", address)
	}

	return common.BytesToAddress(address[12:]), nil
}
