package main

import (
	"fmt"
	"os"

	"github.com/smartcontractkit/ntt-setup/cmd/cli"
)

func main() {
	rootCmd := cli.BuildNTTSetupCmd()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
