// Package safecast implements functions to safely cast types to avoid panics
package safecast

import (
	"fmt"
	"math"
	"math/big"

	"github.com/spf13/cast"
)

// IntToUint8 safely converts an int to uint8 using cast and checks for overflow
func IntToUint8(value int) (uint8, error) {
	if value < 0 || value > math.MaxUint8 {
		return 0, fmt.Errorf("value %d exceeds uint8 range", value)
	}

	return cast.ToUint8E(value)
}

// BigIntToUint64 converts a big.Int to uint64 and checks for overflow
func BigIntToUint64(value *big.Int) (uint64, error) {
	if value == nil || !value.IsUint64() {
		return 0, fmt.Errorf("value %v exceeds uint64 range", value)
	}

	return cast.ToUint64E(value.Uint64())
}
