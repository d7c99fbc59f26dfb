package evm

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/smartcontractkit/ntt-setup/types"
)

func ValidateAdditionalFields(additionalFields json.RawMessage) error {
	_, err := parseAdditionalFields(additionalFields)

	return err
}

type AdditionalFields struct {
	Value *big.Int `json:"value"`
}

// Validate ensures the EVM-specific fields are correct
func (f AdditionalFields) Validate() error {
	if f.Value == nil || f.Value.Sign() < 0 {
		return fmt.Errorf("invalid EVM value: %v", f.Value)
	}

	return nil
}

func parseAdditionalFields(additionalFields json.RawMessage) (AdditionalFields, error) {
	fields := AdditionalFields{
		Value: big.NewInt(0),
	}
	if len(additionalFields) != 0 {
		if err := json.Unmarshal(additionalFields, &fields); err != nil {
			return AdditionalFields{}, fmt.Errorf("failed to unmarshal EVM additional fields: %w", err)
		}
	}

	if err := fields.Validate(); err != nil {
		return AdditionalFields{}, err
	}

	return fields, nil
}

func NewTransaction(
	sel types.ChainSelector,
	to common.Address,
	data []byte,
	value *big.Int,
	contractType string,
	tags []string,
) (types.Transaction, error) {
	if value == nil {
		value = big.NewInt(0)
	}

	marshalledAdditionalFields, err := json.Marshal(AdditionalFields{Value: value})
	if err != nil {
		return types.Transaction{}, fmt.Errorf("unable to marshal additional fields: %w", err)
	}

	return types.Transaction{
		ChainSelector:    sel,
		To:               to.Hex(),
		Data:             data,
		AdditionalFields: marshalledAdditionalFields,
		OperationMetadata: types.OperationMetadata{
			ContractType: contractType,
			Tags:         tags,
		},
	}, nil
}
