// Package config loads the setup configuration file and turns it into the ntt step context.
package config

import (
	"errors"
	"fmt"
	"math/big"
	"reflect"
	"strings"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/go-playground/validator/v10"
	chainsel "github.com/smartcontractkit/chain-selectors"
	"github.com/spf13/viper"

	"github.com/smartcontractkit/ntt-setup/internal/utils/safecast"
	"github.com/smartcontractkit/ntt-setup/ntt"
	sdkerrors "github.com/smartcontractkit/ntt-setup/sdk/errors"
	"github.com/smartcontractkit/ntt-setup/sdk/evm"
	solanasdk "github.com/smartcontractkit/ntt-setup/sdk/solana"
	"github.com/smartcontractkit/ntt-setup/types"
)

const (
	// EnvPrefix prefixes the environment variables that override file values, e.g.
	// NTT_SOLANA_RPC_URL overrides solana.rpc_url.
	EnvPrefix = "NTT"

	// DefaultPrivateKeyEnv is the environment variable holding the EVM private key.
	DefaultPrivateKeyEnv = "PRIVATE_KEY"
)

type Config struct {
	Network string       `mapstructure:"network" validate:"required"`
	Solana  SolanaConfig `mapstructure:"solana" validate:"required"`
	Peer    PeerConfig   `mapstructure:"peer" validate:"required"`
	EVM     *EVMConfig   `mapstructure:"evm"`
}

type SolanaConfig struct {
	RPCURL              string        `mapstructure:"rpc_url" validate:"required,url"`
	KeypairPath         string        `mapstructure:"keypair_path" validate:"required"`
	ManagerProgramID    string        `mapstructure:"manager_program_id" validate:"required"`
	TokenMint           string        `mapstructure:"token_mint" validate:"required"`
	TokenProgram        string        `mapstructure:"token_program"`
	CoreBridge          string        `mapstructure:"core_bridge"`
	Mode                string        `mapstructure:"mode" validate:"required,oneof=locking burning"`
	OutboundLimit       string        `mapstructure:"outbound_limit" validate:"required,number"`
	Commitment          string        `mapstructure:"commitment" validate:"oneof=processed confirmed finalized"`
	ConfirmationTimeout time.Duration `mapstructure:"confirmation_timeout" validate:"gt=0"`
	PollInterval        time.Duration `mapstructure:"poll_interval" validate:"gt=0"`
}

type PeerConfig struct {
	Chain              string `mapstructure:"chain" validate:"required"`
	ManagerAddress     string `mapstructure:"manager_address" validate:"required"`
	TransceiverAddress string `mapstructure:"transceiver_address" validate:"required"`
	Decimals           *int   `mapstructure:"decimals" validate:"required,gte=0,lte=255"`
	InboundLimit       string `mapstructure:"inbound_limit" validate:"required,number"`
}

type EVMConfig struct {
	RPCURL               string        `mapstructure:"rpc_url" validate:"required,url"`
	PrivateKeyEnv        string        `mapstructure:"private_key_env"`
	SolanaDecimals       *int          `mapstructure:"solana_decimals" validate:"required,gte=0,lte=255"`
	InboundLimit         string        `mapstructure:"inbound_limit" validate:"required,number"`
	TransceiverPeerValue string        `mapstructure:"transceiver_peer_value" validate:"omitempty,number"`
	ConfirmationTimeout  time.Duration `mapstructure:"confirmation_timeout" validate:"gte=0"`
	PollInterval         time.Duration `mapstructure:"poll_interval" validate:"gte=0"`
}

// Load reads the config file at path, applies environment overrides and validates the result.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("network", string(types.NetworkTestnet))
	v.SetDefault("solana.token_program", "spl-token")
	v.SetDefault("solana.commitment", string(rpc.CommitmentConfirmed))
	v.SetDefault("solana.confirmation_timeout", solanasdk.DefaultConfirmationTimeout)
	v.SetDefault("solana.poll_interval", solanasdk.DefaultPollInterval)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("unable to read config %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config %s: %w", path, err)
	}

	// evm defaults are applied here so the optional section is not created by viper
	if cfg.EVM != nil {
		if cfg.EVM.PrivateKeyEnv == "" {
			cfg.EVM.PrivateKeyEnv = DefaultPrivateKeyEnv
		}
		if cfg.EVM.ConfirmationTimeout == 0 {
			cfg.EVM.ConfirmationTimeout = evm.DefaultConfirmationTimeout
		}
		if cfg.EVM.PollInterval == 0 {
			cfg.EVM.PollInterval = evm.DefaultPollInterval
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the config structurally and semantically. Every failure is a
// *sdkerrors.ConfigurationError.
func (c *Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		return strings.SplitN(field.Tag.Get("mapstructure"), ",", 2)[0] //nolint:mnd
	})

	if err := validate.Struct(c); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
			fieldErr := validationErrs[0]
			field := strings.TrimPrefix(fieldErr.Namespace(), "Config.")

			return sdkerrors.NewConfigurationErrorf(field, "failed on the %q rule", fieldErr.Tag())
		}

		return sdkerrors.NewConfigurationError("config", err.Error())
	}

	_, err := c.resolve()

	return err
}

// ManagerProgramID returns the parsed manager program id.
func (c *Config) ManagerProgramID() (solana.PublicKey, error) {
	return parsePublicKey("solana.manager_program_id", c.Solana.ManagerProgramID)
}

// Chains returns the Solana chain and the peer chain on the configured network.
func (c *Config) Chains() (types.WormholeChain, types.WormholeChain, error) {
	network, err := types.ParseNetwork(c.Network)
	if err != nil {
		return types.WormholeChain{}, types.WormholeChain{}, sdkerrors.NewConfigurationError("network", err.Error())
	}

	solanaChain, err := types.LookupWormholeChain(network, "Solana")
	if err != nil {
		return types.WormholeChain{}, types.WormholeChain{}, sdkerrors.NewConfigurationError("network", err.Error())
	}

	peerChain, err := types.LookupWormholeChain(network, c.Peer.Chain)
	if err != nil {
		return types.WormholeChain{}, types.WormholeChain{}, sdkerrors.NewConfigurationError("peer.chain", err.Error())
	}
	if peerChain.ID == solanaChain.ID {
		return types.WormholeChain{}, types.WormholeChain{}, sdkerrors.NewConfigurationError("peer.chain",
			"peer must be a different chain than Solana")
	}

	return solanaChain, peerChain, nil
}

// Context builds the step context. payer is the public key of the loaded Solana keypair.
func (c *Config) Context(payer solana.PublicKey) (ntt.Context, error) {
	nttCtx, err := c.resolve()
	if err != nil {
		return ntt.Context{}, err
	}
	nttCtx.Payer = payer

	return nttCtx, nil
}

// resolve parses every value of the config except the payer, which comes from the keypair
// file, and the peer addresses, which the steps parse.
func (c *Config) resolve() (ntt.Context, error) {
	solanaChain, peerChain, err := c.Chains()
	if err != nil {
		return ntt.Context{}, err
	}

	programID, err := c.ManagerProgramID()
	if err != nil {
		return ntt.Context{}, err
	}
	mint, err := parsePublicKey("solana.token_mint", c.Solana.TokenMint)
	if err != nil {
		return ntt.Context{}, err
	}
	tokenProgram, err := solanasdk.ParseTokenProgram(c.Solana.TokenProgram)
	if err != nil {
		return ntt.Context{}, sdkerrors.NewConfigurationError("solana.token_program", err.Error())
	}
	mode, err := solanasdk.ParseMode(c.Solana.Mode)
	if err != nil {
		return ntt.Context{}, sdkerrors.NewConfigurationError("solana.mode", err.Error())
	}
	outboundLimit, err := parseUint64("solana.outbound_limit", c.Solana.OutboundLimit)
	if err != nil {
		return ntt.Context{}, err
	}
	inboundLimit, err := parseUint64("peer.inbound_limit", c.Peer.InboundLimit)
	if err != nil {
		return ntt.Context{}, err
	}
	decimals, err := parseDecimals("peer.decimals", c.Peer.Decimals)
	if err != nil {
		return ntt.Context{}, err
	}
	coreBridge, err := c.coreBridge()
	if err != nil {
		return ntt.Context{}, err
	}

	nttCtx := ntt.Context{
		Solana:         solanaChain,
		ManagerProgram: programID,
		CoreBridge:     coreBridge,
		Mint:           mint,
		TokenProgram:   tokenProgram,
		Mode:           mode,
		OutboundLimit:  outboundLimit,
		Peer: ntt.Peer{
			Chain:              peerChain,
			ManagerAddress:     c.Peer.ManagerAddress,
			TransceiverAddress: c.Peer.TransceiverAddress,
			Decimals:           decimals,
			InboundLimit:       inboundLimit,
		},
	}

	if c.EVM == nil {
		return nttCtx, nil
	}

	family, err := peerChain.Family()
	if err != nil || family != chainsel.FamilyEVM {
		return ntt.Context{}, sdkerrors.NewConfigurationErrorf("evm", "peer chain %s is not an EVM chain", peerChain.Name)
	}

	solanaDecimals, err := parseDecimals("evm.solana_decimals", c.EVM.SolanaDecimals)
	if err != nil {
		return ntt.Context{}, err
	}
	evmInboundLimit, err := parseUint256("evm.inbound_limit", c.EVM.InboundLimit)
	if err != nil {
		return ntt.Context{}, err
	}
	value := big.NewInt(0)
	if c.EVM.TransceiverPeerValue != "" {
		if value, err = parseUint256("evm.transceiver_peer_value", c.EVM.TransceiverPeerValue); err != nil {
			return ntt.Context{}, err
		}
	}

	nttCtx.EVM = &ntt.EVMPeer{
		SolanaDecimals:       solanaDecimals,
		InboundLimit:         evmInboundLimit,
		TransceiverPeerValue: value,
	}

	return nttCtx, nil
}

// coreBridge returns the configured core bridge, or the well known deployment for the network.
func (c *Config) coreBridge() (solana.PublicKey, error) {
	if c.Solana.CoreBridge != "" {
		return parsePublicKey("solana.core_bridge", c.Solana.CoreBridge)
	}

	network, err := types.ParseNetwork(c.Network)
	if err != nil {
		return solana.PublicKey{}, sdkerrors.NewConfigurationError("network", err.Error())
	}

	return solanasdk.CoreBridgeForNetwork(network), nil
}

func parsePublicKey(field string, s string) (solana.PublicKey, error) {
	key, err := solana.PublicKeyFromBase58(s)
	if err != nil {
		return solana.PublicKey{}, sdkerrors.NewConfigurationErrorf(field, "invalid public key %q: %v", s, err)
	}

	return key, nil
}

func parseBigInt(field string, s string) (*big.Int, error) {
	value, ok := new(big.Int).SetString(s, 10) //nolint:mnd
	if !ok {
		return nil, sdkerrors.NewConfigurationErrorf(field, "%q is not a decimal integer", s)
	}

	return value, nil
}

func parseUint64(field string, s string) (uint64, error) {
	value, err := parseBigInt(field, s)
	if err != nil {
		return 0, err
	}

	out, err := safecast.BigIntToUint64(value)
	if err != nil {
		return 0, sdkerrors.NewConfigurationError(field, err.Error())
	}

	return out, nil
}

func parseUint256(field string, s string) (*big.Int, error) {
	value, err := parseBigInt(field, s)
	if err != nil {
		return nil, err
	}
	if value.Sign() < 0 || value.Cmp(evm.MaxUint256) > 0 {
		return nil, sdkerrors.NewConfigurationErrorf(field, "value %s exceeds uint256 range", s)
	}

	return value, nil
}

func parseDecimals(field string, decimals *int) (uint8, error) {
	if decimals == nil {
		return 0, sdkerrors.NewConfigurationError(field, "must be set")
	}

	out, err := safecast.IntToUint8(*decimals)
	if err != nil {
		return 0, sdkerrors.NewConfigurationError(field, err.Error())
	}

	return out, nil
}
