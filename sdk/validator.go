package sdk

import (
	sdkerrors "github.com/smartcontractkit/ntt-setup/sdk/errors"
	"github.com/smartcontractkit/ntt-setup/types"
)

// ValidateBatch checks that a batch is non-empty and that every transaction targets sel.
func ValidateBatch(sel types.ChainSelector, batch []types.Transaction) error {
	if len(batch) == 0 {
		return sdkerrors.ErrEmptyBatch
	}

	for _, tx := range batch {
		if tx.ChainSelector != sel {
			return sdkerrors.NewChainMismatchError(sel, tx.ChainSelector)
		}
	}

	return nil
}
