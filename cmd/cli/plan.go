package cli

import (
	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"

	nttsetup "github.com/smartcontractkit/ntt-setup"
	"github.com/smartcontractkit/ntt-setup/internal/config"
	"github.com/smartcontractkit/ntt-setup/ntt"
)

func buildPlanCmd(root *rootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "List the setup steps, their dependencies and whether they can be re-run",
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := nttsetup.ParseOutputFormat(output)
			if err != nil {
				return err
			}

			cfg, err := config.Load(root.configPath)
			if err != nil {
				return err
			}

			// the payer does not change which steps run
			nttCtx, err := cfg.Context(solana.PublicKey{})
			if err != nil {
				return err
			}

			plan, err := ntt.NewPlan(nttCtx)
			if err != nil {
				return err
			}

			steps := make([]nttsetup.PlannedStep, 0, plan.Len())
			for _, step := range plan.Steps() {
				steps = append(steps, nttsetup.PlannedStep{
					Name:       step.Name,
					DependsOn:  step.DependsOn,
					Reentrancy: step.Reentrancy,
				})
			}

			return nttsetup.RenderPlan(cmd.OutOrStdout(), steps, format)
		},
	}

	cmd.Flags().StringVar(&output, "output", string(nttsetup.OutputText), "Output format: text, json or yaml")

	return cmd
}
