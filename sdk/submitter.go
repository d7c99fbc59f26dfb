package sdk

import (
	"context"

	"github.com/smartcontractkit/ntt-setup/types"
)

// Submitter signs a batch of transactions, broadcasts it and blocks until the chain confirms it
// or the confirmation budget is exhausted.
//
// This must be implemented by any chain. Implementations make exactly one attempt: errors are
// reported as sdkerrors.SubmissionRejectedError, sdkerrors.ConfirmationTimeoutError or
// sdkerrors.NetworkUnavailableError and never retried.
type Submitter interface {
	// ChainSelector returns the chain the submitter sends transactions to.
	ChainSelector() types.ChainSelector

	// Submit returns the confirmation identifier of the batch.
	Submit(ctx context.Context, batch []types.Transaction) (types.TransactionResult, error)
}
