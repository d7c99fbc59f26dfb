package nttsetup

import (
	"slices"

	"github.com/samber/lo"
)

// Plan is an ordered, validated set of steps.
type Plan[C any] struct {
	steps []Step[C]
}

// NewPlan validates the steps and orders them.
//
// Steps keep their declaration order unless a step depends on one declared after it, in which
// case the dependency is moved ahead. Among the steps that are ready at any point the earliest
// declared one always runs first, so the resulting order is deterministic.
func NewPlan[C any](steps ...Step[C]) (*Plan[C], error) {
	if len(steps) == 0 {
		return nil, ErrEmptyPlan
	}

	index := make(map[string]int, len(steps))
	for i, s := range steps {
		if s.Name == "" {
			return nil, NewInvalidStepError(i, "name is required")
		}
		if s.Build == nil {
			return nil, NewInvalidStepError(i, "build function is required")
		}
		if _, ok := index[s.Name]; ok {
			return nil, NewDuplicateStepError(s.Name)
		}
		index[s.Name] = i
	}

	for _, s := range steps {
		for _, dep := range s.DependsOn {
			if _, ok := index[dep]; !ok {
				return nil, NewUnknownDependencyError(s.Name, dep)
			}
			if dep == s.Name {
				return nil, NewDependencyCycleError([]string{s.Name})
			}
		}
	}

	ordered := make([]Step[C], 0, len(steps))
	done := make(map[string]bool, len(steps))
	for len(ordered) < len(steps) {
		next := slices.IndexFunc(steps, func(s Step[C]) bool {
			return !done[s.Name] && lo.EveryBy(s.DependsOn, func(dep string) bool { return done[dep] })
		})
		if next < 0 {
			remaining := lo.FilterMap(steps, func(s Step[C], _ int) (string, bool) {
				return s.Name, !done[s.Name]
			})

			return nil, NewDependencyCycleError(remaining)
		}

		done[steps[next].Name] = true
		ordered = append(ordered, steps[next])
	}

	return &Plan[C]{steps: ordered}, nil
}

// Steps returns the steps in execution order.
func (p *Plan[C]) Steps() []Step[C] {
	return slices.Clone(p.steps)
}

// Names returns the step names in execution order.
func (p *Plan[C]) Names() []string {
	return lo.Map(p.steps, func(s Step[C], _ int) string { return s.Name })
}

// Len returns the number of steps.
func (p *Plan[C]) Len() int {
	return len(p.steps)
}

// From returns the suffix of the plan starting at the named step. Steps before it are treated as
// already applied, which is how an operator resumes a run after a failure.
func (p *Plan[C]) From(name string) (*Plan[C], error) {
	i := slices.IndexFunc(p.steps, func(s Step[C]) bool { return s.Name == name })
	if i < 0 {
		return nil, NewStepNotFoundError(name)
	}

	return &Plan[C]{steps: slices.Clone(p.steps[i:])}, nil
}

// Validate runs the Validate function of every step against execCtx. The first failure is
// returned as a *StepFailedError.
func (p *Plan[C]) Validate(execCtx C) error {
	for i, s := range p.steps {
		if s.Validate == nil {
			continue
		}
		if err := s.Validate(execCtx); err != nil {
			return NewStepFailedError(i, s.Name, err)
		}
	}

	return nil
}
