// package evmsim implements a simulated EVM chain for testing purposes.
package evmsim

import (
	"crypto/ecdsa"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	gethTypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient/simulated"
	"github.com/stretchr/testify/require"
)

const (
	// DefaultGasLimit is the default gas limit for each transaction in the simulated chain
	DefaultGasLimit = uint64(8000000)

	// DefaultBalance is the default balance for each account in the simulated chain
	DefaultBalance = 1e18

	// SimulatedChainID is the chain ID used for the simulated chain. EVM Simulated chains always use 1337
	//
	// https://pkg.go.dev/github.com/ethereum/go-ethereum/ethclient/simulated#NewBackend
	SimulatedChainID = 1337
)

// Runtime bytecode of minimal contracts installed at genesis.
var (
	// StopCode accepts any call.
	StopCode = []byte{0x00}
	// RevertCode reverts any call (PUSH1 0 PUSH1 0 REVERT).
	RevertCode = []byte{0x60, 0x00, 0x60, 0x00, 0xfd}
)

// SimulatedChain represents a simulated chain with a backend and a list of signers.
type SimulatedChain struct {
	Backend *simulated.Backend
	Signers []*Signer
}

// Signer represents a signer with a private key.
type Signer struct {
	PrivateKey *ecdsa.PrivateKey
}

// NewTransactOpts creates a new transact options with the signer's private key and sets default
// values.
func (s *Signer) NewTransactOpts(t *testing.T) *bind.TransactOpts {
	t.Helper()

	auth, err := bind.NewKeyedTransactorWithChainID(s.PrivateKey, big.NewInt(SimulatedChainID))
	require.NoError(t, err)

	auth.GasLimit = DefaultGasLimit

	return auth
}

// Address extracts the address from the signer's private key.
func (s *Signer) Address(t *testing.T) common.Address {
	t.Helper()

	publicKeyECDSA, ok := s.PrivateKey.Public().(*ecdsa.PublicKey)
	if !ok {
		t.Fatal("error casting public key from crypto to ecdsa")
	}

	return crypto.PubkeyToAddress(*publicKeyECDSA)
}

// NewSimulatedChain creates a new simulated chain with the given number of signers and contract
// code installed at the given addresses. The backend is closed when the test ends.
func NewSimulatedChain(t *testing.T, numSigners uint64, contracts map[common.Address][]byte) SimulatedChain {
	t.Helper()

	signers := make([]*Signer, 0, numSigners)
	for range numSigners {
		key, err := crypto.GenerateKey()
		require.NoError(t, err)

		signers = append(signers, &Signer{PrivateKey: key})
	}

	genesisAlloc := gethTypes.GenesisAlloc{}
	for _, s := range signers {
		genesisAlloc[s.Address(t)] = gethTypes.Account{
			Balance: big.NewInt(DefaultBalance),
		}
	}
	for addr, code := range contracts {
		genesisAlloc[addr] = gethTypes.Account{Code: code, Balance: big.NewInt(0)}
	}

	sim := simulated.NewBackend(genesisAlloc,
		simulated.WithBlockGasLimit(DefaultGasLimit*4), //nolint:mnd
	)
	t.Cleanup(func() {
		require.NoError(t, sim.Close())
	})

	return SimulatedChain{
		Backend: sim,
		Signers: signers,
	}
}

// AutoCommit mines a block every interval until the test ends.
func (s *SimulatedChain) AutoCommit(t *testing.T, interval time.Duration) {
	t.Helper()

	done := make(chan struct{})
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				s.Backend.Commit()
			}
		}
	}()

	t.Cleanup(func() {
		close(done)
		<-stopped
	})
}
