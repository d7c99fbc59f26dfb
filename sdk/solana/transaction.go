package solana

import (
	"encoding/json"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/go-playground/validator/v10"

	"github.com/smartcontractkit/ntt-setup/types"
)

func ValidateAdditionalFields(additionalFields json.RawMessage) error {
	var fields AdditionalFields
	if err := json.Unmarshal(additionalFields, &fields); err != nil {
		return fmt.Errorf("failed to unmarshal solana additional fields: %w", err)
	}

	return fields.Validate()
}

type AdditionalFields struct {
	Accounts []*solana.AccountMeta `json:"accounts" validate:"required,min=1,dive,required"`

	// EphemeralSigners are indices into Accounts of accounts the transaction creates. Their keys
	// are generated at submission and the generated keypairs co-sign the transaction.
	EphemeralSigners []int `json:"ephemeralSigners,omitempty" validate:"omitempty,dive,gte=0"`
}

// Validate ensures the solana-specific fields are correct
func (f AdditionalFields) Validate() error {
	if err := validator.New().Struct(f); err != nil {
		return err
	}

	for _, i := range f.EphemeralSigners {
		if i >= len(f.Accounts) {
			return fmt.Errorf("ephemeral signer index %d out of range of %d accounts", i, len(f.Accounts))
		}
		if !f.Accounts[i].IsSigner {
			return fmt.Errorf("ephemeral account %d is not a signer", i)
		}
	}

	return nil
}

func NewTransaction(
	sel types.ChainSelector,
	programID string,
	data []byte,
	accounts []*solana.AccountMeta,
	contractType string,
	tags []string,
) (types.Transaction, error) {
	key, err := solana.PublicKeyFromBase58(programID)
	if err != nil {
		return types.Transaction{}, err
	}

	return newTransaction(sel, key, data, AdditionalFields{Accounts: accounts}, contractType, tags)
}

func newTransaction(
	sel types.ChainSelector,
	programID solana.PublicKey,
	data []byte,
	fields AdditionalFields,
	contractType string,
	tags []string,
) (types.Transaction, error) {
	if err := fields.Validate(); err != nil {
		return types.Transaction{}, fmt.Errorf("invalid additional fields: %w", err)
	}

	marshalledAdditionalFields, err := json.Marshal(fields)
	if err != nil {
		return types.Transaction{}, fmt.Errorf("unable to marshal additional fields: %w", err)
	}

	return types.Transaction{
		ChainSelector:    sel,
		To:               programID.String(),
		Data:             data,
		AdditionalFields: marshalledAdditionalFields,
		OperationMetadata: types.OperationMetadata{
			ContractType: contractType,
			Tags:         tags,
		},
	}, nil
}

func NewTransactionFromInstruction(
	sel types.ChainSelector,
	instruction solana.Instruction,
	contractType string,
	tags []string,
) (types.Transaction, error) {
	data, err := instruction.Data()
	if err != nil {
		return types.Transaction{}, fmt.Errorf("unable to get instruction data: %w", err)
	}

	return NewTransaction(sel, instruction.ProgramID().String(), data, instruction.Accounts(), contractType, tags)
}

// NewTransactionWithEphemeralSigners is NewTransactionFromInstruction for instructions that
// create accounts signed for by keypairs generated at submission. ephemeral indexes the
// instruction accounts.
func NewTransactionWithEphemeralSigners(
	sel types.ChainSelector,
	instruction solana.Instruction,
	ephemeral []int,
	contractType string,
	tags []string,
) (types.Transaction, error) {
	data, err := instruction.Data()
	if err != nil {
		return types.Transaction{}, fmt.Errorf("unable to get instruction data: %w", err)
	}

	fields := AdditionalFields{Accounts: instruction.Accounts(), EphemeralSigners: ephemeral}

	return newTransaction(sel, instruction.ProgramID(), data, fields, contractType, tags)
}

// InstructionFromTransaction rebuilds the instruction a Transaction was created from.
func InstructionFromTransaction(tx types.Transaction) (solana.Instruction, error) {
	programID, err := solana.PublicKeyFromBase58(tx.To)
	if err != nil {
		return nil, fmt.Errorf("unable to parse program id %q: %w", tx.To, err)
	}

	var fields AdditionalFields
	if err = json.Unmarshal(tx.AdditionalFields, &fields); err != nil {
		return nil, fmt.Errorf("unable to unmarshal additional fields: %w", err)
	}
	if err = fields.Validate(); err != nil {
		return nil, fmt.Errorf("invalid additional fields: %w", err)
	}

	return solana.NewInstruction(programID, fields.Accounts, tx.Data), nil
}

// instructionWithEphemeralSigners rebuilds the instruction of tx with a freshly generated key in
// place of every ephemeral account and returns the generated keypairs.
func instructionWithEphemeralSigners(tx types.Transaction) (solana.Instruction, []solana.PrivateKey, error) {
	programID, err := solana.PublicKeyFromBase58(tx.To)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to parse program id %q: %w", tx.To, err)
	}

	var fields AdditionalFields
	if err = json.Unmarshal(tx.AdditionalFields, &fields); err != nil {
		return nil, nil, fmt.Errorf("unable to unmarshal additional fields: %w", err)
	}
	if err = fields.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid additional fields: %w", err)
	}

	signers := make([]solana.PrivateKey, 0, len(fields.EphemeralSigners))
	for _, i := range fields.EphemeralSigners {
		key, kerr := solana.NewRandomPrivateKey()
		if kerr != nil {
			return nil, nil, fmt.Errorf("unable to generate ephemeral signer: %w", kerr)
		}
		fields.Accounts[i] = solana.Meta(key.PublicKey()).WRITE().SIGNER()
		signers = append(signers, key)
	}

	return solana.NewInstruction(programID, fields.Accounts, tx.Data), signers, nil
}
