package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	nttsetup "github.com/smartcontractkit/ntt-setup"
	"github.com/smartcontractkit/ntt-setup/internal/config"
	solanasdk "github.com/smartcontractkit/ntt-setup/sdk/solana"
)

type managerStatus struct {
	ManagerProgram        string `json:"managerProgram" yaml:"managerProgram"`
	Initialized           bool   `json:"initialized" yaml:"initialized"`
	Owner                 string `json:"owner,omitempty" yaml:"owner,omitempty"`
	Mint                  string `json:"mint,omitempty" yaml:"mint,omitempty"`
	Mode                  string `json:"mode,omitempty" yaml:"mode,omitempty"`
	Paused                bool   `json:"paused" yaml:"paused"`
	TransceiverRegistered bool   `json:"transceiverRegistered" yaml:"transceiverRegistered"`
	PeerChain             string `json:"peerChain" yaml:"peerChain"`
	PeerSet               bool   `json:"peerSet" yaml:"peerSet"`
	TransceiverPeerSet    bool   `json:"transceiverPeerSet" yaml:"transceiverPeerSet"`
}

func buildStatusCmd(root *rootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show which setup steps are already applied on chain",
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := nttsetup.ParseOutputFormat(output)
			if err != nil {
				return err
			}

			cfg, err := config.Load(root.configPath)
			if err != nil {
				return err
			}

			nttCtx, err := cfg.Context(solana.PublicKey{})
			if err != nil {
				return err
			}

			inspector := solanasdk.NewInspector(rpc.New(cfg.Solana.RPCURL))
			program := nttCtx.ManagerProgram
			status := managerStatus{
				ManagerProgram: program.String(),
				PeerChain:      nttCtx.Peer.Chain.Name,
			}

			managerConfig, err := inspector.GetManagerConfig(cmd.Context(), program)
			if err != nil {
				return err
			}
			if managerConfig != nil {
				status.Initialized = true
				status.Owner = managerConfig.Owner.String()
				status.Mint = managerConfig.Mint.String()
				status.Mode = managerConfig.Mode.String()
				status.Paused = managerConfig.Paused
			}

			// the wormhole transceiver is built into the manager program
			if status.TransceiverRegistered, err = inspector.IsTransceiverRegistered(cmd.Context(), program, program); err != nil {
				return err
			}
			if status.PeerSet, err = inspector.IsPeerSet(cmd.Context(), program, nttCtx.Peer.Chain.ID); err != nil {
				return err
			}
			if status.TransceiverPeerSet, err = inspector.IsTransceiverPeerSet(cmd.Context(), program, nttCtx.Peer.Chain.ID); err != nil {
				return err
			}

			return renderStatus(cmd.OutOrStdout(), status, format)
		},
	}

	cmd.Flags().StringVar(&output, "output", string(nttsetup.OutputText), "Output format: text, json or yaml")

	return cmd
}

func renderStatus(w io.Writer, status managerStatus, format nttsetup.OutputFormat) error {
	switch format {
	case nttsetup.OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(status)
	case nttsetup.OutputYAML:
		enc := yaml.NewEncoder(w)
		defer enc.Close()

		return enc.Encode(status)
	default:
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0) //nolint:mnd
		fmt.Fprintf(tw, "manager program\t%s\n", status.ManagerProgram)
		fmt.Fprintf(tw, "initialized\t%t\n", status.Initialized)
		if status.Initialized {
			fmt.Fprintf(tw, "owner\t%s\n", status.Owner)
			fmt.Fprintf(tw, "mint\t%s\n", status.Mint)
			fmt.Fprintf(tw, "mode\t%s\n", status.Mode)
			fmt.Fprintf(tw, "paused\t%t\n", status.Paused)
		}
		fmt.Fprintf(tw, "transceiver registered\t%t\n", status.TransceiverRegistered)
		fmt.Fprintf(tw, "peer set (%s)\t%t\n", status.PeerChain, status.PeerSet)
		fmt.Fprintf(tw, "transceiver peer set (%s)\t%t\n", status.PeerChain, status.TransceiverPeerSet)

		return tw.Flush()
	}
}
