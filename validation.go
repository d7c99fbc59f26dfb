package nttsetup

import (
	"encoding/json"

	chainsel "github.com/smartcontractkit/chain-selectors"

	"github.com/smartcontractkit/ntt-setup/sdk/evm"
	"github.com/smartcontractkit/ntt-setup/sdk/solana"
	"github.com/smartcontractkit/ntt-setup/types"
)

func validateAdditionalFields(additionalFields json.RawMessage, csel types.ChainSelector) error {
	chainFamily, err := types.GetChainSelectorFamily(csel)
	if err != nil {
		return err
	}

	switch chainFamily {
	case chainsel.FamilyEVM:
		return evm.ValidateAdditionalFields(additionalFields)

	case chainsel.FamilySolana:
		return solana.ValidateAdditionalFields(additionalFields)
	}

	return nil
}
