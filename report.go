package nttsetup

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/smartcontractkit/ntt-setup/types"
)

// Status is the outcome of a single step.
type Status string

const (
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// ExecutionResult is the outcome of one step of a run.
type ExecutionResult struct {
	Index         int                 `json:"index" yaml:"index"`
	Step          string              `json:"step" yaml:"step"`
	ChainSelector types.ChainSelector `json:"chainSelector,omitempty" yaml:"chainSelector,omitempty"`
	Status        Status              `json:"status" yaml:"status"`
	Hash          string              `json:"hash,omitempty" yaml:"hash,omitempty"`
	Err           error               `json:"-" yaml:"-"`
}

// Report is the format neutral outcome of a run. Results are in execution order; steps of the
// plan that have no result never ran.
type Report struct {
	State   State             `json:"state" yaml:"state"`
	Steps   []string          `json:"steps" yaml:"steps"`
	Results []ExecutionResult `json:"results" yaml:"results"`
}

// Hashes returns the confirmation identifiers of the succeeded steps, in order.
func (r *Report) Hashes() []string {
	return lo.FilterMap(r.Results, func(res ExecutionResult, _ int) (string, bool) {
		return res.Hash, res.Status == StatusSucceeded
	})
}

// Failed returns the failed result, if any.
func (r *Report) Failed() (ExecutionResult, bool) {
	return lo.Find(r.Results, func(res ExecutionResult) bool { return res.Status == StatusFailed })
}

// NotRun returns the names of the steps that were never attempted.
func (r *Report) NotRun() []string {
	return lo.Filter(r.Steps, func(name string, _ int) bool {
		return !lo.ContainsBy(r.Results, func(res ExecutionResult) bool { return res.Step == name })
	})
}

// OutputFormat selects how a report is rendered.
type OutputFormat string

const (
	OutputText OutputFormat = "text"
	OutputJSON OutputFormat = "json"
	OutputYAML OutputFormat = "yaml"
)

type renderedResult struct {
	ExecutionResult `yaml:",inline"`
	Error           string `json:"error,omitempty" yaml:"error,omitempty"`
}

type renderedReport struct {
	State   State            `json:"state" yaml:"state"`
	Results []renderedResult `json:"results" yaml:"results"`
	NotRun  []string         `json:"notRun,omitempty" yaml:"notRun,omitempty"`
}

// Render writes the report to w in the given format.
func (r *Report) Render(w io.Writer, format OutputFormat) error {
	out := renderedReport{
		State:  r.State,
		NotRun: r.NotRun(),
		Results: lo.Map(r.Results, func(res ExecutionResult, _ int) renderedResult {
			rendered := renderedResult{ExecutionResult: res}
			if res.Err != nil {
				rendered.Error = res.Err.Error()
			}

			return rendered
		}),
	}

	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(out)
	case OutputYAML:
		enc := yaml.NewEncoder(w)
		defer enc.Close()

		return enc.Encode(out)
	case OutputText, "":
		return r.renderText(w, out)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

func (r *Report) renderText(w io.Writer, out renderedReport) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "STEP\tSTATUS\tCONFIRMATION\n")
	for _, res := range out.Results {
		detail := res.Hash
		if res.Error != "" {
			detail = res.Error
		}
		fmt.Fprintf(tw, "%d. %s\t%s\t%s\n", res.Index+1, res.Step, res.Status, detail)
	}
	for _, name := range out.NotRun {
		fmt.Fprintf(tw, "-  %s\tnot run\t\n", name)
	}
	fmt.Fprintf(tw, "\nstate: %s\n", out.State)

	return tw.Flush()
}

// ParseOutputFormat parses text, json or yaml.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(s); f {
	case OutputText, OutputJSON, OutputYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (expected text, json or yaml)", s)
	}
}

// RenderPlan writes planned steps to w in the given format. Text output lists the steps with
// their dependencies and the number of transactions each one builds.
func RenderPlan(w io.Writer, steps []PlannedStep, format OutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(steps)
	case OutputYAML:
		enc := yaml.NewEncoder(w)
		defer enc.Close()

		return enc.Encode(steps)
	case OutputText, "":
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintf(tw, "STEP\tDEPENDS ON\tTXS\tRE-RUN\n")
		for i, step := range steps {
			deps := strings.Join(step.DependsOn, ",")
			if deps == "" {
				deps = "-"
			}
			fmt.Fprintf(tw, "%d. %s\t%s\t%d\t%s\n", i+1, step.Name, deps, len(step.Transactions), step.Reentrancy)
		}

		return tw.Flush()
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}
