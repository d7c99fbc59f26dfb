package nttsetup

import "github.com/smartcontractkit/ntt-setup/types"

// Step describes one logical administrative action of a setup run.
//
// C is the execution context shared read-only by all steps of a run. Build must be a pure
// function of the context: given the same context twice it must produce structurally equal
// transactions. Nothing is sent until the Executor hands the batch to a submitter.
type Step[C any] struct {
	// Name identifies the step and must be unique within a plan.
	Name string

	// DependsOn lists the names of steps whose effects this step relies on.
	DependsOn []string

	// Reentrancy documents what happens when the step is applied a second time against the same
	// remote state, e.g. "fails cleanly: the manager config account already exists".
	Reentrancy string

	// Validate checks the step's inputs without building anything. It is optional.
	Validate func(C) error

	// Build produces the batch of transactions for the step.
	Build func(C) ([]types.Transaction, error)
}

// PlannedStep is a step together with the batch it built, as returned by a dry run.
type PlannedStep struct {
	Name         string              `json:"name" yaml:"name"`
	DependsOn    []string            `json:"dependsOn,omitempty" yaml:"dependsOn,omitempty"`
	Reentrancy   string              `json:"reentrancy,omitempty" yaml:"reentrancy,omitempty"`
	Transactions []types.Transaction `json:"transactions" yaml:"transactions"`
}
