package solana

import (
	"crypto/sha256"
	"fmt"
	"strings"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// Mode is how the manager moves tokens across chains.
type Mode uint8

const (
	// ModeLocking locks tokens in the custody account on transfer out.
	ModeLocking Mode = iota
	// ModeBurning burns tokens on transfer out; the token authority must be the mint authority.
	ModeBurning
)

func (m Mode) String() string {
	switch m {
	case ModeLocking:
		return "locking"
	case ModeBurning:
		return "burning"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// ParseMode parses "locking" or "burning".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "locking":
		return ModeLocking, nil
	case "burning":
		return ModeBurning, nil
	default:
		return 0, fmt.Errorf("unknown mode %q (expected locking or burning)", s)
	}
}

// ParseTokenProgram resolves the token program by name ("spl-token", "token-2022") or base58 id.
func ParseTokenProgram(s string) (solana.PublicKey, error) {
	switch strings.ToLower(s) {
	case "", "spl-token":
		return solana.TokenProgramID, nil
	case "token-2022":
		return solana.Token2022ProgramID, nil
	default:
		key, err := solana.PublicKeyFromBase58(s)
		if err != nil {
			return solana.PublicKey{}, fmt.Errorf("invalid token program %q: %w", s, err)
		}

		return key, nil
	}
}

// Anchor instruction names of the NTT manager program.
const (
	ixInitialize          = "initialize"
	ixRegisterTransceiver = "register_transceiver"
	ixSetPeer             = "set_peer"
	ixSetWormholePeer     = "set_wormhole_peer"
	ixBroadcastID         = "broadcast_wormhole_id"
	ixBroadcastPeer       = "broadcast_wormhole_peer"
)

// broadcastMessageAccount is the index of the wormhole message account in both broadcast
// instructions.
const broadcastMessageAccount = 3

// anchorDiscriminator returns the 8 byte prefix anchor uses to dispatch instructions and to tag
// accounts: the first bytes of sha256("<namespace>:<name>").
func anchorDiscriminator(namespace string, name string) [8]byte {
	sum := sha256.Sum256([]byte(namespace + ":" + name))

	var d [8]byte
	copy(d[:], sum[:8])

	return d
}

func instructionData(name string, args any) ([]byte, error) {
	d := anchorDiscriminator("global", name)
	if args == nil {
		return d[:], nil
	}

	encoded, err := bin.MarshalBorsh(args)
	if err != nil {
		return nil, fmt.Errorf("unable to encode %s arguments: %w", name, err)
	}

	return append(d[:], encoded...), nil
}

type initializeArgs struct {
	ChainID uint16
	Limit   uint64
	Mode    Mode
}

type setPeerArgs struct {
	ChainID       uint16
	Address       [32]byte
	Limit         uint64
	TokenDecimals uint8
}

type setTransceiverPeerArgs struct {
	ChainID uint16
	Address [32]byte
}

type broadcastPeerArgs struct {
	ChainID uint16
}

// InitializeParams are the inputs of the manager initialize instruction.
type InitializeParams struct {
	Payer         solana.PublicKey
	Deployer      solana.PublicKey
	Mint          solana.PublicKey
	TokenProgram  solana.PublicKey
	ChainID       uint16
	OutboundLimit uint64
	Mode          Mode
}

// NewInitializeInstruction creates the manager config, the outbox rate limit and the custody
// account. It fails on chain if the manager is already initialized.
func NewInitializeInstruction(programID solana.PublicKey, p InitializeParams) (solana.Instruction, error) {
	configPDA, err := FindConfigPDA(programID)
	if err != nil {
		return nil, err
	}
	rateLimitPDA, err := FindOutboxRateLimitPDA(programID)
	if err != nil {
		return nil, err
	}
	tokenAuthority, err := FindTokenAuthorityPDA(programID)
	if err != nil {
		return nil, err
	}
	programData, err := FindProgramDataPDA(programID)
	if err != nil {
		return nil, err
	}
	custody, err := FindCustodyAddress(tokenAuthority, p.Mint, p.TokenProgram)
	if err != nil {
		return nil, err
	}

	data, err := instructionData(ixInitialize, initializeArgs{ChainID: p.ChainID, Limit: p.OutboundLimit, Mode: p.Mode})
	if err != nil {
		return nil, err
	}

	accounts := solana.AccountMetaSlice{
		solana.Meta(p.Payer).WRITE().SIGNER(),
		solana.Meta(p.Deployer).SIGNER(),
		solana.Meta(programData),
		solana.Meta(configPDA).WRITE(),
		solana.Meta(p.Mint),
		solana.Meta(rateLimitPDA).WRITE(),
		solana.Meta(tokenAuthority),
		solana.Meta(custody).WRITE(),
		solana.Meta(p.TokenProgram),
		solana.Meta(solana.SPLAssociatedTokenAccountProgramID),
		solana.Meta(solana.BPFLoaderUpgradeableProgramID),
		solana.Meta(solana.SystemProgramID),
	}

	return solana.NewInstruction(programID, accounts, data), nil
}

// NewRegisterTransceiverInstruction registers a transceiver program with the manager. The
// manager program doubles as its own Wormhole transceiver.
func NewRegisterTransceiverInstruction(
	programID, transceiver, owner, payer solana.PublicKey,
) (solana.Instruction, error) {
	configPDA, err := FindConfigPDA(programID)
	if err != nil {
		return nil, err
	}
	registered, err := FindRegisteredTransceiverPDA(programID, transceiver)
	if err != nil {
		return nil, err
	}

	data, err := instructionData(ixRegisterTransceiver, nil)
	if err != nil {
		return nil, err
	}

	accounts := solana.AccountMetaSlice{
		solana.Meta(configPDA).WRITE(),
		solana.Meta(owner).SIGNER(),
		solana.Meta(payer).WRITE().SIGNER(),
		solana.Meta(transceiver),
		solana.Meta(registered).WRITE(),
		solana.Meta(solana.SystemProgramID),
	}

	return solana.NewInstruction(programID, accounts, data), nil
}

// SetPeerParams are the inputs of the set peer instruction.
type SetPeerParams struct {
	Payer         solana.PublicKey
	Owner         solana.PublicKey
	ChainID       uint16
	Address       [32]byte
	InboundLimit  uint64
	TokenDecimals uint8
}

// NewSetPeerInstruction registers the manager of a remote chain and its inbound rate limit.
func NewSetPeerInstruction(programID solana.PublicKey, p SetPeerParams) (solana.Instruction, error) {
	configPDA, err := FindConfigPDA(programID)
	if err != nil {
		return nil, err
	}
	peerPDA, err := FindPeerPDA(programID, p.ChainID)
	if err != nil {
		return nil, err
	}
	inboxPDA, err := FindInboxRateLimitPDA(programID, p.ChainID)
	if err != nil {
		return nil, err
	}

	data, err := instructionData(ixSetPeer, setPeerArgs{
		ChainID:       p.ChainID,
		Address:       p.Address,
		Limit:         p.InboundLimit,
		TokenDecimals: p.TokenDecimals,
	})
	if err != nil {
		return nil, err
	}

	accounts := solana.AccountMetaSlice{
		solana.Meta(p.Payer).WRITE().SIGNER(),
		solana.Meta(p.Owner).SIGNER(),
		solana.Meta(configPDA),
		solana.Meta(peerPDA).WRITE(),
		solana.Meta(inboxPDA).WRITE(),
		solana.Meta(solana.SystemProgramID),
	}

	return solana.NewInstruction(programID, accounts, data), nil
}

// NewSetWormholePeerInstruction registers the Wormhole transceiver of a remote chain.
func NewSetWormholePeerInstruction(
	programID, payer, owner solana.PublicKey, chainID uint16, address [32]byte,
) (solana.Instruction, error) {
	configPDA, err := FindConfigPDA(programID)
	if err != nil {
		return nil, err
	}
	peerPDA, err := FindTransceiverPeerPDA(programID, chainID)
	if err != nil {
		return nil, err
	}

	data, err := instructionData(ixSetWormholePeer, setTransceiverPeerArgs{ChainID: chainID, Address: address})
	if err != nil {
		return nil, err
	}

	accounts := solana.AccountMetaSlice{
		solana.Meta(configPDA),
		solana.Meta(owner).SIGNER(),
		solana.Meta(payer).WRITE().SIGNER(),
		solana.Meta(peerPDA).WRITE(),
		solana.Meta(solana.SystemProgramID),
	}

	return solana.NewInstruction(programID, accounts, data), nil
}

// NewBroadcastWormholeIDInstruction posts the Wormhole message announcing the transceiver to the
// other chains. The message account is a placeholder: the returned indices name the accounts
// the submitter fills with a fresh keypair that co-signs the transaction.
func NewBroadcastWormholeIDInstruction(
	programID, coreBridge, payer, mint solana.PublicKey,
) (solana.Instruction, []int, error) {
	configPDA, err := FindConfigPDA(programID)
	if err != nil {
		return nil, nil, err
	}
	wormhole, err := wormholeAccounts(programID, coreBridge)
	if err != nil {
		return nil, nil, err
	}

	data, err := instructionData(ixBroadcastID, nil)
	if err != nil {
		return nil, nil, err
	}

	accounts := append(solana.AccountMetaSlice{
		solana.Meta(payer).WRITE().SIGNER(),
		solana.Meta(configPDA),
		solana.Meta(mint),
		solana.Meta(solana.PublicKey{}).WRITE().SIGNER(),
	}, wormhole...)

	return solana.NewInstruction(programID, accounts, data), []int{broadcastMessageAccount}, nil
}

// NewBroadcastWormholePeerInstruction posts the Wormhole message announcing the transceiver peer
// of chainID. The message account is filled in at submission, as for
// NewBroadcastWormholeIDInstruction.
func NewBroadcastWormholePeerInstruction(
	programID, coreBridge, payer solana.PublicKey, chainID uint16,
) (solana.Instruction, []int, error) {
	configPDA, err := FindConfigPDA(programID)
	if err != nil {
		return nil, nil, err
	}
	peerPDA, err := FindTransceiverPeerPDA(programID, chainID)
	if err != nil {
		return nil, nil, err
	}
	wormhole, err := wormholeAccounts(programID, coreBridge)
	if err != nil {
		return nil, nil, err
	}

	data, err := instructionData(ixBroadcastPeer, broadcastPeerArgs{ChainID: chainID})
	if err != nil {
		return nil, nil, err
	}

	accounts := append(solana.AccountMetaSlice{
		solana.Meta(payer).WRITE().SIGNER(),
		solana.Meta(configPDA),
		solana.Meta(peerPDA),
		solana.Meta(solana.PublicKey{}).WRITE().SIGNER(),
	}, wormhole...)

	return solana.NewInstruction(programID, accounts, data), []int{broadcastMessageAccount}, nil
}

// wormholeAccounts returns the emitter followed by the core bridge accounts the transceiver
// passes to post_message.
func wormholeAccounts(programID, coreBridge solana.PublicKey) (solana.AccountMetaSlice, error) {
	emitter, err := FindEmitterPDA(programID)
	if err != nil {
		return nil, err
	}
	bridge, err := FindWormholeBridgePDA(coreBridge)
	if err != nil {
		return nil, err
	}
	feeCollector, err := FindWormholeFeeCollectorPDA(coreBridge)
	if err != nil {
		return nil, err
	}
	sequence, err := FindWormholeSequencePDA(coreBridge, emitter)
	if err != nil {
		return nil, err
	}

	return solana.AccountMetaSlice{
		solana.Meta(emitter),
		solana.Meta(bridge).WRITE(),
		solana.Meta(feeCollector).WRITE(),
		solana.Meta(sequence).WRITE(),
		solana.Meta(coreBridge),
		solana.Meta(solana.SystemProgramID),
		solana.Meta(solana.SysVarClockPubkey),
		solana.Meta(solana.SysVarRentPubkey),
	}, nil
}
