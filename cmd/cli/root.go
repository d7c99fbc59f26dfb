package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/smartcontractkit/ntt-setup/sdk"
)

type rootOptions struct {
	configPath string
	verbose    bool
}

func BuildNTTSetupCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := cobra.Command{
		Use:   "ntt-setup",
		Short: "Configure a Wormhole NTT manager on Solana and link it to its peer",
		Long: `Runs the setup steps of a Solana NTT deployment in order: initialize the manager, register
the Wormhole transceiver, set the peer manager and set the peer transceiver. Every confirmed step
changes on-chain state permanently; a failed run halts and can be resumed with --from.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := newLogger(opts.verbose)
			if err != nil {
				return fmt.Errorf("unable to create logger: %w", err)
			}
			cmd.SetContext(sdk.WithLogger(cmd.Context(), logger.Sugar()))

			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "ntt-setup.yaml", "Path of the YAML or JSON setup config")
	cmd.PersistentFlags().BoolVar(&opts.verbose, "verbose", false, "Log debug output")

	cmd.AddCommand(buildRunCmd(opts))
	cmd.AddCommand(buildPlanCmd(opts))
	cmd.AddCommand(buildStatusCmd(opts))

	return &cmd
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}

	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()

	return cfg.Build()
}
