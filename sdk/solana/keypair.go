package solana

import (
	"crypto/ed25519"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// LoadKeypair reads a keypair file in the format written by `solana-keygen` (a JSON array of
// 64 bytes).
func LoadKeypair(path string) (solana.PrivateKey, error) {
	key, err := solana.PrivateKeyFromSolanaKeygenFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to load solana keypair from %s: %w", path, err)
	}

	if len(key) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("invalid solana keypair in %s: expected %d bytes, got %d", path, ed25519.PrivateKeySize, len(key))
	}

	return key, nil
}
