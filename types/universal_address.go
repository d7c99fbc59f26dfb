package types //nolint:revive,nolintlint // allow pkg name 'types'

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gagliardetto/solana-go"
	chainsel "github.com/smartcontractkit/chain-selectors"
)

// ErrZeroAddress is returned when an address parses to all zero bytes.
var ErrZeroAddress = errors.New("address must not be zero")

// UniversalAddress is the 32 byte, chain agnostic address format NTT contracts use to register
// peers. Shorter native addresses are left padded with zeros.
type UniversalAddress [32]byte

// ParseUniversalAddress parses a native address of the given chain family into its universal
// form.
//
// EVM addresses may be given as 20 byte hex addresses or as already padded 32 byte hex values.
// Solana addresses are base58 encoded public keys.
func ParseUniversalAddress(family string, s string) (UniversalAddress, error) {
	var out UniversalAddress

	switch family {
	case chainsel.FamilyEVM:
		switch {
		case common.IsHexAddress(s):
			copy(out[12:], common.HexToAddress(s).Bytes())
		case len(s) == 2+2*len(out) && strings.HasPrefix(s, "0x"):
			b, err := hexutil.Decode(s)
			if err != nil {
				return UniversalAddress{}, fmt.Errorf("invalid evm address %q: %w", s, err)
			}
			copy(out[:], b)
		default:
			return UniversalAddress{}, fmt.Errorf("invalid evm address %q", s)
		}
	case chainsel.FamilySolana:
		key, err := solana.PublicKeyFromBase58(s)
		if err != nil {
			return UniversalAddress{}, fmt.Errorf("invalid solana address %q: %w", s, err)
		}
		out = UniversalAddress(key)
	default:
		return UniversalAddress{}, fmt.Errorf("%w: %s", ErrUnsupportedChainFamily, family)
	}

	if out.IsZero() {
		return UniversalAddress{}, ErrZeroAddress
	}

	return out, nil
}

// IsZero reports whether all bytes of the address are zero.
func (a UniversalAddress) IsZero() bool {
	return a == UniversalAddress{}
}

// Hex returns the 0x prefixed hex encoding of the full 32 bytes.
func (a UniversalAddress) Hex() string {
	return hexutil.Encode(a[:])
}

// String implements fmt.Stringer.
func (a UniversalAddress) String() string {
	return a.Hex()
}
