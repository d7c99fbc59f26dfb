package sdkerrors

import (
	"errors"
	"fmt"
	"time"

	"github.com/smartcontractkit/ntt-setup/types"
)

// ConfigurationError is returned when an input is malformed, out of range or missing. It is
// always detected before anything is submitted.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration for %s: %s", e.Field, e.Reason)
}

func NewConfigurationError(field string, reason string) *ConfigurationError {
	return &ConfigurationError{Field: field, Reason: reason}
}

// NewConfigurationErrorf creates a ConfigurationError with a formatted reason.
func NewConfigurationErrorf(field string, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// SubmissionRejectedError is returned when the remote chain refused a transaction, either at
// preflight (invalid account state, insufficient funds) or by failing it on chain.
type SubmissionRejectedError struct {
	ChainSelector types.ChainSelector
	Hash          string
	Cause         error
}

func (e *SubmissionRejectedError) Error() string {
	if e.Hash != "" {
		return fmt.Sprintf("submission rejected on chain %d (tx %s): %v", e.ChainSelector, e.Hash, e.Cause)
	}

	return fmt.Sprintf("submission rejected on chain %d: %v", e.ChainSelector, e.Cause)
}

func (e *SubmissionRejectedError) Unwrap() error {
	return e.Cause
}

func NewSubmissionRejectedError(sel types.ChainSelector, hash string, cause error) *SubmissionRejectedError {
	return &SubmissionRejectedError{ChainSelector: sel, Hash: hash, Cause: cause}
}

// ConfirmationTimeoutError is returned when a transaction was broadcast but its confirmation was
// not observed within the configured budget. The transaction may still land.
type ConfirmationTimeoutError struct {
	ChainSelector types.ChainSelector
	Hash          string
	Timeout       time.Duration
}

func (e *ConfirmationTimeoutError) Error() string {
	return fmt.Sprintf("transaction %s on chain %d not confirmed within %s", e.Hash, e.ChainSelector, e.Timeout)
}

func NewConfirmationTimeoutError(sel types.ChainSelector, hash string, timeout time.Duration) *ConfirmationTimeoutError {
	return &ConfirmationTimeoutError{ChainSelector: sel, Hash: hash, Timeout: timeout}
}

// NetworkUnavailableError is returned on transport level failures before a broadcast happened.
type NetworkUnavailableError struct {
	ChainSelector types.ChainSelector
	Cause         error
}

func (e *NetworkUnavailableError) Error() string {
	return fmt.Sprintf("network unavailable for chain %d: %v", e.ChainSelector, e.Cause)
}

func (e *NetworkUnavailableError) Unwrap() error {
	return e.Cause
}

func NewNetworkUnavailableError(sel types.ChainSelector, cause error) *NetworkUnavailableError {
	return &NetworkUnavailableError{ChainSelector: sel, Cause: cause}
}

// ChainMismatchError is returned when a submitter receives a transaction for another chain.
type ChainMismatchError struct {
	Expected types.ChainSelector
	Received types.ChainSelector
}

func (e *ChainMismatchError) Error() string {
	return fmt.Sprintf("transaction targets chain %d but submitter serves chain %d", e.Received, e.Expected)
}

func NewChainMismatchError(expected, received types.ChainSelector) *ChainMismatchError {
	return &ChainMismatchError{Expected: expected, Received: received}
}

// ErrEmptyBatch is returned when a submitter is handed no transactions.
var ErrEmptyBatch = errors.New("batch must contain at least one transaction")

// IsConfigurationError reports whether err carries a ConfigurationError.
func IsConfigurationError(err error) bool {
	var target *ConfigurationError
	return errors.As(err, &target)
}
