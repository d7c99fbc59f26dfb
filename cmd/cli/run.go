package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	nttsetup "github.com/smartcontractkit/ntt-setup"
	"github.com/smartcontractkit/ntt-setup/ntt"
	"github.com/smartcontractkit/ntt-setup/sdk"
)

func buildRunCmd(root *rootOptions) *cobra.Command {
	var (
		dryRun bool
		from   string
		output string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the setup steps",
		Long: `Runs every setup step in order and stops at the first failure. Use --from to resume at the
failed step once its cause is fixed, and --dry-run to print the transactions without sending them.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := nttsetup.ParseOutputFormat(output)
			if err != nil {
				return err
			}

			s, err := loadSetup(root.configPath)
			if err != nil {
				return err
			}

			plan, err := ntt.NewPlan(s.ctx)
			if err != nil {
				return err
			}
			if from != "" {
				if plan, err = plan.From(from); err != nil {
					return err
				}
			}

			if dryRun {
				planned, derr := nttsetup.NewExecutor(plan, s.ctx, nil).DryRun(cmd.Context())
				if derr != nil {
					return derr
				}

				return nttsetup.RenderPlan(cmd.OutOrStdout(), planned, format)
			}

			// bad inputs fail here, before any RPC endpoint is contacted
			if err = plan.Validate(s.ctx); err != nil {
				return err
			}

			submitters, err := buildSubmitters(cmd.Context(), s)
			if err != nil {
				return err
			}

			sdk.LoggerFrom(cmd.Context()).Infof("Payer %s, manager %s, peer %s",
				s.ctx.Payer, s.ctx.ManagerProgram, s.ctx.Peer.Chain.Name)

			report, runErr := nttsetup.NewExecutor(plan, s.ctx, submitters).Run(cmd.Context())
			if report != nil {
				if err = report.Render(cmd.OutOrStdout(), format); err != nil {
					return err
				}
			}
			if runErr != nil {
				return fmt.Errorf("setup failed: %w", runErr)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Build and print the transactions without sending them")
	cmd.Flags().StringVar(&from, "from", "", "Start at the named step, skipping the ones before it")
	cmd.Flags().StringVar(&output, "output", string(nttsetup.OutputText), "Output format: text, json or yaml")

	return cmd
}
