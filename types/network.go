package types //nolint:revive,nolintlint // allow pkg name 'types'

import (
	"fmt"
	"strings"
)

// Network selects the Wormhole environment a deployment lives in.
type Network string

const (
	NetworkMainnet Network = "Mainnet"
	NetworkTestnet Network = "Testnet"
)

// ParseNetwork parses a network name, case insensitively.
func ParseNetwork(s string) (Network, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mainnet":
		return NetworkMainnet, nil
	case "testnet":
		return NetworkTestnet, nil
	default:
		return "", fmt.Errorf("unknown network %q (expected Mainnet or Testnet)", s)
	}
}
