package config

import (
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartcontractkit/ntt-setup/ntt"
	sdkerrors "github.com/smartcontractkit/ntt-setup/sdk/errors"
	solanasdk "github.com/smartcontractkit/ntt-setup/sdk/solana"
)

const baseConfig = `
network: Testnet
solana:
  rpc_url: https://api.devnet.solana.com
  keypair_path: /tmp/id.json
  manager_program_id: 6UmMZr5MEqiKWD5jqTJd1WCR5kT8oZuFYBLJFi1o6GQX
  token_mint: HzWdnV141bP1PXXce4NJ6NCJgd6jr3kMaySuevbpgwaV
  mode: burning
  outbound_limit: "100000000"
peer:
  chain: BaseSepolia
  manager_address: "0x5FbDB2315678afecb367f032d93F642f64180aa3"
  transceiver_address: "0xe7f1725E7734CE288F8367e1Bb143E90bb3F0512"
  decimals: 18
  inbound_limit: "1000000"
`

const evmSection = `
evm:
  rpc_url: https://sepolia.base.org
  solana_decimals: 9
  inbound_limit: "115792089237316195423570985008687907853269984665640564039457584007913129639935"
  confirmation_timeout: 30s
`

func writeConfig(t *testing.T, name string, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	t.Parallel()

	cfg, err := Load(writeConfig(t, "config.yaml", baseConfig))
	require.NoError(t, err)

	assert.Equal(t, "Testnet", cfg.Network)
	assert.Equal(t, "spl-token", cfg.Solana.TokenProgram)
	assert.Equal(t, string(rpc.CommitmentConfirmed), cfg.Solana.Commitment)
	assert.Equal(t, solanasdk.DefaultConfirmationTimeout, cfg.Solana.ConfirmationTimeout)
	assert.Equal(t, solanasdk.DefaultPollInterval, cfg.Solana.PollInterval)
	assert.Nil(t, cfg.EVM)

	payer := solana.MustPublicKeyFromBase58("GYWcPzXkdzY9DJLcbFs67phqyYzmJxeEKSTtqEoo8oKz")
	nttCtx, err := cfg.Context(payer)
	require.NoError(t, err)

	assert.Equal(t, payer, nttCtx.Payer)
	assert.Equal(t, uint16(1), nttCtx.Solana.ID)
	assert.Equal(t, uint16(10004), nttCtx.Peer.Chain.ID)
	assert.Equal(t, solanasdk.ModeBurning, nttCtx.Mode)
	assert.Equal(t, solana.TokenProgramID, nttCtx.TokenProgram)
	assert.Equal(t, uint64(100_000_000), nttCtx.OutboundLimit)
	assert.Equal(t, uint64(1_000_000), nttCtx.Peer.InboundLimit)
	assert.Equal(t, uint8(18), nttCtx.Peer.Decimals)
	assert.Equal(t, solanasdk.CoreBridgeTestnet, nttCtx.CoreBridge)
	assert.Nil(t, nttCtx.EVM)
}

func TestLoad_EVM(t *testing.T) {
	t.Parallel()

	cfg, err := Load(writeConfig(t, "config.yaml", baseConfig+evmSection))
	require.NoError(t, err)

	require.NotNil(t, cfg.EVM)
	assert.Equal(t, DefaultPrivateKeyEnv, cfg.EVM.PrivateKeyEnv)
	assert.Equal(t, 30*time.Second, cfg.EVM.ConfirmationTimeout)

	nttCtx, err := cfg.Context(solana.PublicKey{1})
	require.NoError(t, err)
	require.NotNil(t, nttCtx.EVM)
	assert.Equal(t, uint8(9), nttCtx.EVM.SolanaDecimals)
	assert.Equal(t, 0, big.NewInt(0).Cmp(nttCtx.EVM.TransceiverPeerValue))
	assert.Equal(t, 256, nttCtx.EVM.InboundLimit.BitLen())

	plan, err := ntt.NewPlan(nttCtx)
	require.NoError(t, err)
	assert.Equal(t, 6, plan.Len())
}

func TestLoad_JSON(t *testing.T) {
	t.Parallel()

	cfg, err := Load(writeConfig(t, "config.json", `{
		"network": "Mainnet",
		"solana": {
			"rpc_url": "https://api.mainnet-beta.solana.com",
			"keypair_path": "/tmp/id.json",
			"manager_program_id": "6UmMZr5MEqiKWD5jqTJd1WCR5kT8oZuFYBLJFi1o6GQX",
			"token_mint": "HzWdnV141bP1PXXce4NJ6NCJgd6jr3kMaySuevbpgwaV",
			"token_program": "token-2022",
			"mode": "locking",
			"outbound_limit": "5"
		},
		"peer": {
			"chain": "Ethereum",
			"manager_address": "0x5FbDB2315678afecb367f032d93F642f64180aa3",
			"transceiver_address": "0xe7f1725E7734CE288F8367e1Bb143E90bb3F0512",
			"decimals": 0,
			"inbound_limit": "5"
		}
	}`))
	require.NoError(t, err)

	nttCtx, err := cfg.Context(solana.PublicKey{1})
	require.NoError(t, err)
	assert.Equal(t, uint16(2), nttCtx.Peer.Chain.ID)
	assert.Equal(t, solana.Token2022ProgramID, nttCtx.TokenProgram)
	assert.Equal(t, solanasdk.ModeLocking, nttCtx.Mode)
	assert.Equal(t, uint8(0), nttCtx.Peer.Decimals)
	assert.Equal(t, solanasdk.CoreBridgeMainnet, nttCtx.CoreBridge)
}

func TestLoad_CoreBridgeOverride(t *testing.T) {
	t.Parallel()

	content := replace(baseConfig, "  mode: burning",
		"  core_bridge: HzWdnV141bP1PXXce4NJ6NCJgd6jr3kMaySuevbpgwaV\n  mode: burning")
	cfg, err := Load(writeConfig(t, "config.yaml", content))
	require.NoError(t, err)

	nttCtx, err := cfg.Context(solana.PublicKey{1})
	require.NoError(t, err)
	assert.Equal(t, solana.MustPublicKeyFromBase58("HzWdnV141bP1PXXce4NJ6NCJgd6jr3kMaySuevbpgwaV"), nttCtx.CoreBridge)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("NTT_SOLANA_RPC_URL", "http://localhost:8899")
	t.Setenv("NTT_PEER_INBOUND_LIMIT", "42")

	cfg, err := Load(writeConfig(t, "config.yaml", baseConfig))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8899", cfg.Solana.RPCURL)
	assert.Equal(t, "42", cfg.Peer.InboundLimit)
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		content   string
		wantField string
	}{
		{
			name:      "missing rpc url",
			content:   replace(baseConfig, "  rpc_url: https://api.devnet.solana.com\n", ""),
			wantField: "solana.rpc_url",
		},
		{
			name:      "unknown mode",
			content:   replace(baseConfig, "mode: burning", "mode: minting"),
			wantField: "solana.mode",
		},
		{
			name:      "missing decimals",
			content:   replace(baseConfig, "  decimals: 18\n", ""),
			wantField: "peer.decimals",
		},
		{
			name:      "decimals out of range",
			content:   replace(baseConfig, "decimals: 18", "decimals: 256"),
			wantField: "peer.decimals",
		},
		{
			name:      "non numeric limit",
			content:   replace(baseConfig, `outbound_limit: "100000000"`, `outbound_limit: "lots"`),
			wantField: "solana.outbound_limit",
		},
		{
			name:      "outbound limit exceeds u64",
			content:   replace(baseConfig, `outbound_limit: "100000000"`, `outbound_limit: "18446744073709551616"`),
			wantField: "solana.outbound_limit",
		},
		{
			name:      "unknown network",
			content:   replace(baseConfig, "network: Testnet", "network: Devnet"),
			wantField: "network",
		},
		{
			name:      "peer chain not on network",
			content:   replace(baseConfig, "chain: BaseSepolia", "chain: Base"),
			wantField: "peer.chain",
		},
		{
			name:      "peer chain is solana",
			content:   replace(baseConfig, "chain: BaseSepolia", "chain: Solana"),
			wantField: "peer.chain",
		},
		{
			name:      "malformed program id",
			content:   replace(baseConfig, "6UmMZr5MEqiKWD5jqTJd1WCR5kT8oZuFYBLJFi1o6GQX", "0xabc"),
			wantField: "solana.manager_program_id",
		},
		{
			name:      "malformed core bridge",
			content:   replace(baseConfig, "  mode: burning", "  core_bridge: nope\n  mode: burning"),
			wantField: "solana.core_bridge",
		},
		{
			name: "evm inbound limit exceeds uint256",
			content: baseConfig + replace(evmSection,
				"115792089237316195423570985008687907853269984665640564039457584007913129639935",
				"115792089237316195423570985008687907853269984665640564039457584007913129639936"),
			wantField: "evm.inbound_limit",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Load(writeConfig(t, "config.yaml", tt.content))

			var cfgErr *sdkerrors.ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.wantField, cfgErr.Field)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorContains(t, err, "unable to read config")
}

func replace(s, old, replacement string) string {
	return strings.Replace(s, old, replacement, 1)
}
