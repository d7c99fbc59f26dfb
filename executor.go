package nttsetup

import (
	"context"
	"errors"
	"fmt"
	"maps"

	"github.com/smartcontractkit/ntt-setup/sdk"
	sdkerrors "github.com/smartcontractkit/ntt-setup/sdk/errors"
	"github.com/smartcontractkit/ntt-setup/types"
)

// State is the lifecycle state of an Executor.
type State int

const (
	StatePending State = iota
	StateRunning
	StateCompleted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "Pending"
	case StateRunning:
		return "Running"
	case StateCompleted:
		return "Completed"
	case StateFailed:
		return "Failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Executor runs the steps of a plan one after the other and stops at the first failure.
//
// Every successful step permanently changes remote state. Nothing is rolled back when a later
// step fails, and nothing is retried: an operator resumes with Plan.From once the cause is fixed.
type Executor[C any] struct {
	plan       *Plan[C]
	execCtx    C
	submitters map[types.ChainSelector]sdk.Submitter

	state   State
	current int
	results []ExecutionResult
}

// NewExecutor creates an Executor in the Pending state.
func NewExecutor[C any](
	plan *Plan[C],
	execCtx C,
	submitters map[types.ChainSelector]sdk.Submitter,
) *Executor[C] {
	return &Executor[C]{
		plan:       plan,
		execCtx:    execCtx,
		submitters: maps.Clone(submitters),
		state:      StatePending,
		current:    -1,
	}
}

// State returns the current state.
func (e *Executor[C]) State() State {
	return e.state
}

// Current returns the index of the step that is running, or that failed. It is -1 before Run.
func (e *Executor[C]) Current() int {
	return e.current
}

// Run executes the plan. On failure the returned error is a *StepFailedError and the report
// holds the results up to and including the failed step.
func (e *Executor[C]) Run(ctx context.Context) (*Report, error) {
	if e.state != StatePending {
		return nil, ErrAlreadyRun
	}

	lggr := sdk.LoggerFrom(ctx)
	steps := e.plan.Steps()

	// inputs are checked for every step before anything is built or sent
	if err := e.plan.Validate(e.execCtx); err != nil {
		var stepErr *StepFailedError
		if errors.As(err, &stepErr) {
			return e.fail(ctx, stepErr.Index, stepErr.Name, 0, "", stepErr.Err)
		}

		return nil, err
	}

	lggr.Warnf("Applying %d setup steps. Each confirmed step permanently changes on-chain state and is not rolled back on later failures.", len(steps))

	for i, step := range steps {
		e.state = StateRunning
		e.current = i
		lggr.Infof("Running step %d/%d: %s", i+1, len(steps), step.Name)

		batch, sel, err := e.buildBatch(step)
		if err != nil {
			return e.fail(ctx, i, step.Name, sel, "", err)
		}

		submitter, ok := e.submitters[sel]
		if !ok {
			return e.fail(ctx, i, step.Name, sel, "", NewSubmitterNotFoundError(sel))
		}

		result, err := submitter.Submit(ctx, batch)
		if err != nil {
			hash := ""
			var timeoutErr *sdkerrors.ConfirmationTimeoutError
			if errors.As(err, &timeoutErr) {
				hash = timeoutErr.Hash
			}

			return e.fail(ctx, i, step.Name, sel, hash, err)
		}

		lggr.Infof("Step %s confirmed: %s", step.Name, result.Hash)
		e.results = append(e.results, ExecutionResult{
			Index:         i,
			Step:          step.Name,
			ChainSelector: sel,
			Status:        StatusSucceeded,
			Hash:          result.Hash,
		})
	}

	e.state = StateCompleted

	return e.report(), nil
}

// DryRun validates and builds every step without submitting anything. It does not change the
// executor state.
func (e *Executor[C]) DryRun(_ context.Context) ([]PlannedStep, error) {
	steps := e.plan.Steps()
	planned := make([]PlannedStep, 0, len(steps))

	if err := e.plan.Validate(e.execCtx); err != nil {
		return nil, err
	}

	for i, step := range steps {
		batch, _, err := e.buildBatch(step)
		if err != nil {
			return nil, NewStepFailedError(i, step.Name, err)
		}

		planned = append(planned, PlannedStep{
			Name:         step.Name,
			DependsOn:    step.DependsOn,
			Reentrancy:   step.Reentrancy,
			Transactions: batch,
		})
	}

	return planned, nil
}

// buildBatch builds the batch of step and checks it is submittable: non-empty, on a single chain
// and with well formed chain specific fields. The returned selector is zero when the batch is empty.
func (e *Executor[C]) buildBatch(step Step[C]) ([]types.Transaction, types.ChainSelector, error) {
	batch, err := step.Build(e.execCtx)
	if err != nil {
		return nil, 0, fmt.Errorf("unable to build transactions: %w", err)
	}
	if len(batch) == 0 {
		return nil, 0, ErrNoTransactionsInBatch
	}

	sel := batch[0].ChainSelector
	if err = sdk.ValidateBatch(sel, batch); err != nil {
		return nil, sel, err
	}

	for _, tx := range batch {
		if err = validateAdditionalFields(tx.AdditionalFields, sel); err != nil {
			return nil, sel, fmt.Errorf("invalid additional fields: %w", err)
		}
	}

	return batch, sel, nil
}

func (e *Executor[C]) fail(
	ctx context.Context, index int, name string, sel types.ChainSelector, hash string, err error,
) (*Report, error) {
	e.state = StateFailed
	e.current = index
	e.results = append(e.results, ExecutionResult{
		Index:         index,
		Step:          name,
		ChainSelector: sel,
		Status:        StatusFailed,
		Hash:          hash,
		Err:           err,
	})

	sdk.LoggerFrom(ctx).Errorf("Step %s failed, halting: %v", name, err)

	return e.report(), NewStepFailedError(index, name, err)
}

func (e *Executor[C]) report() *Report {
	return &Report{
		State:   e.state,
		Steps:   e.plan.Names(),
		Results: append([]ExecutionResult(nil), e.results...),
	}
}
