package solana

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/jsonrpc"
	chainsel "github.com/smartcontractkit/chain-selectors"

	"github.com/smartcontractkit/ntt-setup/sdk"
	sdkerrors "github.com/smartcontractkit/ntt-setup/sdk/errors"
	"github.com/smartcontractkit/ntt-setup/types"
)

const (
	DefaultConfirmationTimeout = 60 * time.Second
	DefaultPollInterval        = time.Second
)

var _ sdk.Submitter = (*Submitter)(nil)

// Submitter is a Submitter implementation for Solana chains. A batch is sent as a single
// transaction, so its instructions succeed or fail together.
type Submitter struct {
	client              *rpc.Client
	auth                solana.PrivateKey
	chainSelector       types.ChainSelector
	commitment          rpc.CommitmentType
	confirmationTimeout time.Duration
	pollInterval        time.Duration
}

type SubmitterOption func(*Submitter)

// WithCommitment sets the commitment level a transaction must reach to count as confirmed.
func WithCommitment(commitment rpc.CommitmentType) SubmitterOption {
	return func(s *Submitter) {
		s.commitment = commitment
	}
}

// WithConfirmationTimeout bounds how long Submit waits for confirmation after broadcasting.
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

// NewSubmitter creates a new Submitter signing with auth, which pays for and owns every
// transaction it sends.
func NewSubmitter(
	chainSelector types.ChainSelector, client *rpc.Client, auth solana.PrivateKey, opts ...SubmitterOption,
) *Submitter {
	s := &Submitter{
		client:              client,
		auth:                auth,
		chainSelector:       chainSelector,
		commitment:          rpc.CommitmentConfirmed,
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

// Submit signs the batch as one transaction, sends it with preflight checks and waits for the
// configured commitment. Accounts marked as ephemeral signers get a fresh keypair that co-signs.
func (s *Submitter) Submit(ctx context.Context, batch []types.Transaction) (types.TransactionResult, error) {
	if err := sdk.ValidateBatch(s.chainSelector, batch); err != nil {
		return types.TransactionResult{}, err
	}

	instructions := make([]solana.Instruction, 0, len(batch))
	signers := map[solana.PublicKey]solana.PrivateKey{s.auth.PublicKey(): s.auth}
	for i, tx := range batch {
		instruction, ephemeral, err := instructionWithEphemeralSigners(tx)
		if err != nil {
			return types.TransactionResult{}, fmt.Errorf("unable to decode transaction %d: %w", i, err)
		}
		instructions = append(instructions, instruction)
		for _, key := range ephemeral {
			signers[key.PublicKey()] = key
		}
	}

	recent, err := s.client.GetLatestBlockhash(ctx, rpc.CommitmentFinalized)
	if err != nil {
		return types.TransactionResult{}, sdkerrors.NewNetworkUnavailableError(s.chainSelector,
			fmt.Errorf("unable to get latest blockhash: %w", err))
	}

	tx, err := solana.NewTransaction(instructions, recent.Value.Blockhash, solana.TransactionPayer(s.auth.PublicKey()))
	if err != nil {
		return types.TransactionResult{}, fmt.Errorf("unable to create transaction: %w", err)
	}

	_, err = tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if signer, ok := signers[key]; ok {
			return &signer
		}

		return nil
	})
	if err != nil {
		return types.TransactionResult{}, fmt.Errorf("unable to sign transaction: %w", err)
	}

	signature, err := s.client.SendTransactionWithOpts(ctx, tx, rpc.TransactionOpts{
		PreflightCommitment: s.commitment,
	})
	if err != nil {
		var rpcErr *jsonrpc.RPCError
		if errors.As(err, &rpcErr) {
			return types.TransactionResult{}, sdkerrors.NewSubmissionRejectedError(s.chainSelector, "", err)
		}

		return types.TransactionResult{}, sdkerrors.NewNetworkUnavailableError(s.chainSelector,
			fmt.Errorf("unable to send transaction: %w", err))
	}

	return s.waitForConfirmation(ctx, signature)
}

func (s *Submitter) waitForConfirmation(
	parent context.Context, signature solana.Signature,
) (types.TransactionResult, error) {
	ctx, cancel := context.WithTimeout(parent, s.confirmationTimeout)
	defer cancel()

	queryTicker := time.NewTicker(s.pollInterval)
	defer queryTicker.Stop()

	lggr := sdk.LoggerFrom(parent)
	for {
		statuses, err := s.client.GetSignatureStatuses(ctx, true, signature)
		switch {
		case err != nil:
			lggr.Debugf("Signature status retrieval failed for %s: %v", signature, err)
		case statuses == nil || len(statuses.Value) == 0 || statuses.Value[0] == nil:
			lggr.Debugf("Transaction %s not yet seen", signature)
		case statuses.Value[0].Err != nil:
			return types.TransactionResult{}, sdkerrors.NewSubmissionRejectedError(s.chainSelector, signature.String(),
				fmt.Errorf("transaction failed: %v", statuses.Value[0].Err))
		case commitmentReached(statuses.Value[0].ConfirmationStatus, s.commitment):
			return types.NewTransactionResult(signature.String(), chainsel.FamilySolana, statuses.Value[0]), nil
		default:
			lggr.Debugf("Transaction %s is %s", signature, statuses.Value[0].ConfirmationStatus)
		}

		select {
		case <-ctx.Done():
			if parent.Err() != nil {
				return types.TransactionResult{}, fmt.Errorf("confirmation of %s interrupted: %w", signature, parent.Err())
			}

			return types.TransactionResult{}, sdkerrors.NewConfirmationTimeoutError(s.chainSelector,
				signature.String(), s.confirmationTimeout)
		case <-queryTicker.C:
		}
	}
}

var commitmentRank = map[string]int{
	string(rpc.CommitmentProcessed): 1,
	string(rpc.CommitmentConfirmed): 2, //nolint:mnd
	string(rpc.CommitmentFinalized): 3, //nolint:mnd
}

func commitmentReached(status rpc.ConfirmationStatusType, want rpc.CommitmentType) bool {
	got, ok := commitmentRank[string(status)]
	if !ok {
		return false
	}

	return got >= commitmentRank[string(want)]
}
