package nttsetup

import (
	"errors"
	"fmt"
	"strings"

	"github.com/smartcontractkit/ntt-setup/types"
)

var (
	// ErrEmptyPlan is returned when a plan is created without steps.
	ErrEmptyPlan = errors.New("plan must contain at least one step")

	// ErrNoTransactionsInBatch is returned when a step builds an empty batch.
	ErrNoTransactionsInBatch = errors.New("no transactions in batch")

	// ErrAlreadyRun is returned when Run is called on an executor that left the Pending state.
	ErrAlreadyRun = errors.New("executor has already run")
)

// InvalidStepError is returned when a step declaration is incomplete.
type InvalidStepError struct {
	Index  int
	Reason string
}

func (e *InvalidStepError) Error() string {
	return fmt.Sprintf("invalid step at index %d: %s", e.Index, e.Reason)
}

func NewInvalidStepError(index int, reason string) *InvalidStepError {
	return &InvalidStepError{Index: index, Reason: reason}
}

// DuplicateStepError is returned when two steps share a name.
type DuplicateStepError struct {
	Name string
}

func (e *DuplicateStepError) Error() string {
	return fmt.Sprintf("duplicate step name: %s", e.Name)
}

func NewDuplicateStepError(name string) *DuplicateStepError {
	return &DuplicateStepError{Name: name}
}

// UnknownDependencyError is returned when a step depends on a step that is not in the plan.
type UnknownDependencyError struct {
	Step       string
	Dependency string
}

func (e *UnknownDependencyError) Error() string {
	return fmt.Sprintf("step %s depends on unknown step %s", e.Step, e.Dependency)
}

func NewUnknownDependencyError(step, dependency string) *UnknownDependencyError {
	return &UnknownDependencyError{Step: step, Dependency: dependency}
}

// DependencyCycleError is returned when the dependencies of the steps cannot be ordered.
type DependencyCycleError struct {
	Steps []string
}

func (e *DependencyCycleError) Error() string {
	return "dependency cycle among steps: " + strings.Join(e.Steps, ", ")
}

func NewDependencyCycleError(steps []string) *DependencyCycleError {
	return &DependencyCycleError{Steps: steps}
}

// StepNotFoundError is returned when a step is referenced by a name not in the plan.
type StepNotFoundError struct {
	Name string
}

func (e *StepNotFoundError) Error() string {
	return fmt.Sprintf("step not found: %s", e.Name)
}

func NewStepNotFoundError(name string) *StepNotFoundError {
	return &StepNotFoundError{Name: name}
}

// SubmitterNotFoundError is returned when a batch targets a chain without a submitter.
type SubmitterNotFoundError struct {
	ChainSelector types.ChainSelector
}

func (e *SubmitterNotFoundError) Error() string {
	return fmt.Sprintf("submitter not provided for chain selector %d", e.ChainSelector)
}

func NewSubmitterNotFoundError(sel types.ChainSelector) *SubmitterNotFoundError {
	return &SubmitterNotFoundError{ChainSelector: sel}
}

// StepFailedError is returned when the executor halts. Index is the position of the failed step
// in the plan; every step before it has been applied and is not rolled back.
type StepFailedError struct {
	Index int
	Name  string
	Err   error
}

func (e *StepFailedError) Error() string {
	return fmt.Sprintf("step %d (%s) failed: %v", e.Index, e.Name, e.Err)
}

func (e *StepFailedError) Unwrap() error {
	return e.Err
}

func NewStepFailedError(index int, name string, err error) *StepFailedError {
	return &StepFailedError{Index: index, Name: name, Err: err}
}
