package math

import (
	"math/big"

	"github.com/dora-network/dora-safemath/errors"
)

const (
	Base10 = 10
)

func IsNegative(n *big.Int) bool {
	return n != nil && n.Sign() == -1
}

func GT(x, y *big.Int) bool {
	return x != nil && y != nil && x.Cmp(y) == 1
}

// ValidBigInt validates if the value is a valid big int.
func ValidBigInt(value string) (v *big.Int, err error) {
	v, ok := new(big.Int).SetString(value, Base10)
	if !ok {
		return nil, errors.Data("%s is not a valid big.Int", value)
	}
	return v, nil
}

// ValidNotNegativeBigInt validates if the value is a valid and not negative big int.
// Valid values: [0-∞].
func ValidNotNegativeBigInt(value string) (v *big.Int, err error) {
	v, err = ValidBigInt(value)
	if err != nil {
		return nil, err
	}
	if IsNegative(v) {
		return nil, errors.Data("%s is negative", value)
	}
	return v, nil
}

// ParseOperand validates that value is a base 10 integer within [0, w.Max()].
func ParseOperand(w Width, value string) (*big.Int, error) {
	v, err := ValidNotNegativeBigInt(value)
	if err != nil {
		return nil, err
	}
	if GT(v, w.Max()) {
		return nil, errors.Data("%s does not fit in %s", value, w)
	}
	return v, nil
}

// ParseExponent validates that value is a base 10 integer that fits in a uint32.
func ParseExponent(value string) (uint32, error) {
	v, err := ValidNotNegativeBigInt(value)
	if err != nil {
		return 0, err
	}
	if v.BitLen() > 32 {
		return 0, errors.Wrap(errors.InvalidInputError, errors.ErrExponentTooLarge, value)
	}
	return uint32(v.Uint64()), nil
}
