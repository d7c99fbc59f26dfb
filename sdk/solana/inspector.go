package solana

import (
	"context"
	"errors"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	solanaCommon "github.com/smartcontractkit/chainlink-ccip/chains/solana/utils/common"
)

// ManagerConfig is the config account of an initialized NTT manager. Fields are declared in
// their on-chain borsh order.
type ManagerConfig struct {
	Bump                uint8
	Owner               solana.PublicKey
	PendingOwner        *solana.PublicKey
	Mint                solana.PublicKey
	TokenProgram        solana.PublicKey
	Mode                Mode
	ChainID             uint16
	NextTransceiverID   uint8
	Threshold           uint8
	EnabledTransceivers [16]byte
	Paused              bool
	Custody             solana.PublicKey
}

var configAccountDiscriminator = anchorDiscriminator("account", "Config")

// ErrAccountDiscriminatorMismatch is returned when an account holds data of another type.
var ErrAccountDiscriminatorMismatch = errors.New("account discriminator mismatch")

func (c ManagerConfig) MarshalWithEncoder(encoder *bin.Encoder) error {
	write := []func() error{
		func() error { return encoder.WriteBytes(configAccountDiscriminator[:], false) },
		func() error { return encoder.WriteUint8(c.Bump) },
		func() error { return encoder.WriteBytes(c.Owner.Bytes(), false) },
		func() error { return encoder.WriteBool(c.PendingOwner != nil) },
		func() error {
			if c.PendingOwner == nil {
				return nil
			}

			return encoder.WriteBytes(c.PendingOwner.Bytes(), false)
		},
		func() error { return encoder.WriteBytes(c.Mint.Bytes(), false) },
		func() error { return encoder.WriteBytes(c.TokenProgram.Bytes(), false) },
		func() error { return encoder.WriteUint8(uint8(c.Mode)) },
		func() error { return encoder.WriteUint16(c.ChainID, bin.LE) },
		func() error { return encoder.WriteUint8(c.NextTransceiverID) },
		func() error { return encoder.WriteUint8(c.Threshold) },
		func() error { return encoder.WriteBytes(c.EnabledTransceivers[:], false) },
		func() error { return encoder.WriteBool(c.Paused) },
		func() error { return encoder.WriteBytes(c.Custody.Bytes(), false) },
	}

	for _, w := range write {
		if err := w(); err != nil {
			return err
		}
	}

	return nil
}

func (c *ManagerConfig) UnmarshalWithDecoder(decoder *bin.Decoder) error {
	discriminator, err := decoder.ReadNBytes(len(configAccountDiscriminator))
	if err != nil {
		return fmt.Errorf("unable to read discriminator: %w", err)
	}
	if [8]byte(discriminator) != configAccountDiscriminator {
		return ErrAccountDiscriminatorMismatch
	}

	readKey := func(dst *solana.PublicKey) error {
		b, rerr := decoder.ReadNBytes(solana.PublicKeyLength)
		if rerr != nil {
			return rerr
		}
		*dst = solana.PublicKeyFromBytes(b)

		return nil
	}

	if c.Bump, err = decoder.ReadUint8(); err != nil {
		return err
	}
	if err = readKey(&c.Owner); err != nil {
		return err
	}
	hasPendingOwner, err := decoder.ReadBool()
	if err != nil {
		return err
	}
	if hasPendingOwner {
		var pending solana.PublicKey
		if err = readKey(&pending); err != nil {
			return err
		}
		c.PendingOwner = &pending
	}
	if err = readKey(&c.Mint); err != nil {
		return err
	}
	if err = readKey(&c.TokenProgram); err != nil {
		return err
	}
	mode, err := decoder.ReadUint8()
	if err != nil {
		return err
	}
	c.Mode = Mode(mode)
	if c.ChainID, err = decoder.ReadUint16(bin.LE); err != nil {
		return err
	}
	if c.NextTransceiverID, err = decoder.ReadUint8(); err != nil {
		return err
	}
	if c.Threshold, err = decoder.ReadUint8(); err != nil {
		return err
	}
	bitmap, err := decoder.ReadNBytes(len(c.EnabledTransceivers))
	if err != nil {
		return err
	}
	c.EnabledTransceivers = [16]byte(bitmap)
	if c.Paused, err = decoder.ReadBool(); err != nil {
		return err
	}

	return readKey(&c.Custody)
}

// Inspector reads the on-chain state of an NTT manager. It is used to check what a setup run
// would change before anything is sent.
type Inspector struct {
	client     *rpc.Client
	commitment rpc.CommitmentType
}

// NewInspector creates a new Inspector for Solana chains
func NewInspector(client *rpc.Client) *Inspector {
	return &Inspector{client: client, commitment: rpc.CommitmentConfirmed}
}

// GetManagerConfig returns the manager config, or nil when the manager is not initialized.
func (i *Inspector) GetManagerConfig(ctx context.Context, programID solana.PublicKey) (*ManagerConfig, error) {
	configPDA, err := FindConfigPDA(programID)
	if err != nil {
		return nil, err
	}

	var config ManagerConfig
	err = solanaCommon.GetAccountDataBorshInto(ctx, i.client, configPDA, i.commitment, &config)
	if errors.Is(err, rpc.ErrNotFound) {
		return nil, nil //nolint:nilnil
	}
	if err != nil {
		return nil, fmt.Errorf("unable to read manager config: %w", err)
	}

	return &config, nil
}

// IsPeerSet reports whether a manager peer is registered for the Wormhole chain.
func (i *Inspector) IsPeerSet(ctx context.Context, programID solana.PublicKey, chainID uint16) (bool, error) {
	pda, err := FindPeerPDA(programID, chainID)
	if err != nil {
		return false, err
	}

	return i.accountExists(ctx, pda)
}

// IsTransceiverPeerSet reports whether a transceiver peer is registered for the Wormhole chain.
func (i *Inspector) IsTransceiverPeerSet(ctx context.Context, programID solana.PublicKey, chainID uint16) (bool, error) {
	pda, err := FindTransceiverPeerPDA(programID, chainID)
	if err != nil {
		return false, err
	}

	return i.accountExists(ctx, pda)
}

// IsTransceiverRegistered reports whether the transceiver is registered with the manager.
func (i *Inspector) IsTransceiverRegistered(
	ctx context.Context, programID solana.PublicKey, transceiver solana.PublicKey,
) (bool, error) {
	pda, err := FindRegisteredTransceiverPDA(programID, transceiver)
	if err != nil {
		return false, err
	}

	return i.accountExists(ctx, pda)
}

func (i *Inspector) accountExists(ctx context.Context, account solana.PublicKey) (bool, error) {
	_, err := i.client.GetAccountInfoWithOpts(ctx, account, &rpc.GetAccountInfoOpts{
		Commitment: i.commitment,
	})
	if errors.Is(err, rpc.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("unable to get account info for %s: %w", account, err)
	}

	return true, nil
}
