package types //nolint:revive,nolintlint // allow pkg name 'types'

import "encoding/json"

// OperationMetadata contains human readable metadata about a transaction.
type OperationMetadata struct {
	ContractType string   `json:"contractType"`
	Tags         []string `json:"tags"`
}

// Transaction is an unsigned, chain targeted unit of work produced by a setup step.
//
// The meaning of To, Data and AdditionalFields is owned by the chain family SDK: for Solana To is
// the program id and AdditionalFields carries the account metas; for EVM To is the contract
// address and AdditionalFields carries the value.
type Transaction struct {
	ChainSelector    ChainSelector   `json:"chainSelector"`
	To               string          `json:"to"`
	Data             []byte          `json:"data"`
	AdditionalFields json.RawMessage `json:"additionalFields"`
	OperationMetadata
}

// TransactionResult is the confirmation of a submitted batch.
// Users of this struct should cast RawData to the chain specific receipt type.
type TransactionResult struct {
	Hash        string `json:"hash"`
	ChainFamily string `json:"chainFamily"`
	RawData     any    `json:"rawData,omitempty"`
}

// NewTransactionResult creates a TransactionResult.
func NewTransactionResult(hash string, family string, rawData any) TransactionResult {
	return TransactionResult{Hash: hash, ChainFamily: family, RawData: rawData}
}
