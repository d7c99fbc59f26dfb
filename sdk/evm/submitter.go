package evm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	gethTypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rpc"
	chainsel "github.com/smartcontractkit/chain-selectors"

	"github.com/smartcontractkit/ntt-setup/sdk"
	sdkerrors "github.com/smartcontractkit/ntt-setup/sdk/errors"
	"github.com/smartcontractkit/ntt-setup/types"
)

const (
	DefaultConfirmationTimeout = 2 * time.Minute
	DefaultPollInterval        = time.Second
)

var _ sdk.Submitter = (*Submitter)(nil)

// Submitter is a Submitter implementation for EVM chains. EVM has no atomic multi-call
// transaction, so the transactions of a batch are sent one after the other and each one must be
// mined successfully before the next is sent.
type Submitter struct {
	client              ContractDeployBackend
	auth                *bind.TransactOpts
	chainSelector       types.ChainSelector
	confirmationTimeout time.Duration
	pollInterval        time.Duration
}

type SubmitterOption func(*Submitter)

// WithConfirmationTimeout bounds how long Submit waits for each receipt after broadcasting.
func WithConfirmationTimeout(timeout time.Duration) SubmitterOption {
	return func(s *Submitter) {
		s.confirmationTimeout = timeout
	}
}

func WithPollInterval(interval time.Duration) SubmitterOption {
	return func(s *Submitter) {
		s.pollInterval = interval
	}
}

// NewSubmitter creates a new Submitter. auth must be bound to the chain id of chainSelector.
func NewSubmitter(
	chainSelector types.ChainSelector, client ContractDeployBackend, auth *bind.TransactOpts, opts ...SubmitterOption,
) *Submitter {
	s := &Submitter{
		client:              client,
		auth:                auth,
		chainSelector:       chainSelector,
		confirmationTimeout: DefaultConfirmationTimeout,
		pollInterval:        DefaultPollInterval,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Submitter) ChainSelector() types.ChainSelector {
	return s.chainSelector
}

// Submit sends every transaction of the batch and waits for its receipt. The result carries the
// hash and receipt of the last transaction.
func (s *Submitter) Submit(ctx context.Context, batch []types.Transaction) (types.TransactionResult, error) {
	if err := sdk.ValidateBatch(s.chainSelector, batch); err != nil {
		return types.TransactionResult{}, err
	}

	for i, tx := range batch {
		if !common.IsHexAddress(tx.To) {
			return types.TransactionResult{}, fmt.Errorf("transaction %d: invalid address %q", i, tx.To)
		}
		if _, err := parseAdditionalFields(tx.AdditionalFields); err != nil {
			return types.TransactionResult{}, fmt.Errorf("transaction %d: %w", i, err)
		}
	}

	var result types.TransactionResult
	for _, tx := range batch {
		sent, err := s.send(ctx, tx)
		if err != nil {
			return types.TransactionResult{}, err
		}

		receipt, err := s.waitMined(ctx, sent.Hash())
		if err != nil {
			return types.TransactionResult{}, err
		}

		result = types.NewTransactionResult(sent.Hash().Hex(), chainsel.FamilyEVM, receipt)
	}

	return result, nil
}

func (s *Submitter) send(ctx context.Context, tx types.Transaction) (*gethTypes.Transaction, error) {
	fields, err := parseAdditionalFields(tx.AdditionalFields)
	if err != nil {
		return nil, err
	}

	to := common.HexToAddress(tx.To)
	code, err := s.client.PendingCodeAt(ctx, to)
	if err != nil {
		return nil, sdkerrors.NewNetworkUnavailableError(s.chainSelector, fmt.Errorf("unable to get code at %s: %w", to, err))
	}
	if len(code) == 0 {
		return nil, sdkerrors.NewSubmissionRejectedError(s.chainSelector, "", fmt.Errorf("no contract code at %s", to))
	}

	contract := bind.NewBoundContract(to, abi.ABI{}, s.client, s.client, s.client)

	opts := *s.auth
	opts.Context = ctx
	opts.Value = fields.Value

	sent, err := contract.RawTransact(&opts, tx.Data)
	if err != nil {
		var rpcErr rpc.Error
		if errors.As(err, &rpcErr) {
			return nil, sdkerrors.NewSubmissionRejectedError(s.chainSelector, "", err)
		}

		return nil, sdkerrors.NewNetworkUnavailableError(s.chainSelector, fmt.Errorf("unable to send transaction: %w", err))
	}

	return sent, nil
}

func (s *Submitter) waitMined(parent context.Context, hash common.Hash) (*gethTypes.Receipt, error) {
	ctx, cancel := context.WithTimeout(parent, s.confirmationTimeout)
	defer cancel()

	queryTicker := time.NewTicker(s.pollInterval)
	defer queryTicker.Stop()

	lggr := sdk.LoggerFrom(parent)
	for {
		receipt, err := s.client.TransactionReceipt(ctx, hash)
		if err == nil {
			if receipt.Status != gethTypes.ReceiptStatusSuccessful {
				return nil, sdkerrors.NewSubmissionRejectedError(s.chainSelector, hash.Hex(),
					fmt.Errorf("transaction reverted in block %v", receipt.BlockNumber))
			}

			return receipt, nil
		}

		if errors.Is(err, ethereum.NotFound) {
			lggr.Debugf("Transaction %s not yet mined", hash)
		} else {
			lggr.Debugf("Receipt retrieval failed for %s: %v", hash, err)
		}

		select {
		case <-ctx.Done():
			if parent.Err() != nil {
				return nil, fmt.Errorf("confirmation of %s interrupted: %w", hash, parent.Err())
			}

			return nil, sdkerrors.NewConfirmationTimeoutError(s.chainSelector, hash.Hex(), s.confirmationTimeout)
		case <-queryTicker.C:
		}
	}
}
