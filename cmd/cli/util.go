package cli

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/joho/godotenv"

	"github.com/smartcontractkit/ntt-setup/internal/config"
	"github.com/smartcontractkit/ntt-setup/ntt"
	"github.com/smartcontractkit/ntt-setup/sdk"
	sdkerrors "github.com/smartcontractkit/ntt-setup/sdk/errors"
	"github.com/smartcontractkit/ntt-setup/sdk/evm"
	solanasdk "github.com/smartcontractkit/ntt-setup/sdk/solana"
	"github.com/smartcontractkit/ntt-setup/types"
)

// loadPrivateKey reads the EVM private key from the environment, after loading .env if present.
func loadPrivateKey(envName string) (*ecdsa.PrivateKey, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("unable to load .env: %w", err)
	}

	pk := os.Getenv(envName)
	if pk == "" {
		return nil, sdkerrors.NewConfigurationErrorf("evm.private_key_env", "%s is not set", envName)
	}

	key, err := crypto.HexToECDSA(strings.TrimPrefix(pk, "0x"))
	if err != nil {
		return nil, sdkerrors.NewConfigurationErrorf("evm.private_key_env", "%s is not a valid private key", envName)
	}

	return key, nil
}

type setup struct {
	cfg     *config.Config
	keypair solana.PrivateKey
	ctx     ntt.Context
}

// loadSetup loads the config and the Solana keypair and builds the step context.
func loadSetup(configPath string) (*setup, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	keypair, err := solanasdk.LoadKeypair(cfg.Solana.KeypairPath)
	if err != nil {
		return nil, sdkerrors.NewConfigurationError("solana.keypair_path", err.Error())
	}

	nttCtx, err := cfg.Context(keypair.PublicKey())
	if err != nil {
		return nil, err
	}

	return &setup{cfg: cfg, keypair: keypair, ctx: nttCtx}, nil
}

// buildSubmitters connects to every chain the plan sends transactions to.
func buildSubmitters(ctx context.Context, s *setup) (map[types.ChainSelector]sdk.Submitter, error) {
	solanaSubmitter := solanasdk.NewSubmitter(
		s.ctx.Solana.ChainSelector,
		rpc.New(s.cfg.Solana.RPCURL),
		s.keypair,
		solanasdk.WithCommitment(rpc.CommitmentType(s.cfg.Solana.Commitment)),
		solanasdk.WithConfirmationTimeout(s.cfg.Solana.ConfirmationTimeout),
		solanasdk.WithPollInterval(s.cfg.Solana.PollInterval),
	)

	submitters := map[types.ChainSelector]sdk.Submitter{
		solanaSubmitter.ChainSelector(): solanaSubmitter,
	}

	if s.cfg.EVM == nil {
		return submitters, nil
	}

	evmSubmitter, err := buildEVMSubmitter(ctx, s.cfg.EVM, s.ctx.Peer.Chain.ChainSelector)
	if err != nil {
		return nil, err
	}
	submitters[evmSubmitter.ChainSelector()] = evmSubmitter

	return submitters, nil
}

func buildEVMSubmitter(ctx context.Context, cfg *config.EVMConfig, sel types.ChainSelector) (*evm.Submitter, error) {
	key, err := loadPrivateKey(cfg.PrivateKeyEnv)
	if err != nil {
		return nil, err
	}

	chainID, err := evm.ChainIDFromSelector(sel)
	if err != nil {
		return nil, err
	}

	client, err := ethclient.DialContext(ctx, cfg.RPCURL)
	if err != nil {
		return nil, sdkerrors.NewNetworkUnavailableError(sel, err)
	}

	rpcChainID, err := client.ChainID(ctx)
	if err != nil {
		return nil, sdkerrors.NewNetworkUnavailableError(sel, fmt.Errorf("unable to get chain id: %w", err))
	}
	if rpcChainID.Cmp(chainID) != 0 {
		return nil, sdkerrors.NewConfigurationErrorf("evm.rpc_url", "endpoint serves chain id %s, expected %s", rpcChainID, chainID)
	}

	auth, err := bind.NewKeyedTransactorWithChainID(key, chainID)
	if err != nil {
		return nil, err
	}

	return evm.NewSubmitter(sel, client, auth,
		evm.WithConfirmationTimeout(cfg.ConfirmationTimeout),
		evm.WithPollInterval(cfg.PollInterval),
	), nil
}
