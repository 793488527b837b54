package validation

import (
	"github.com/govalues/decimal"

	"github.com/dora-network/dora-safemath/errors"
	"github.com/dora-network/dora-safemath/safemath"
)

// AssetID requires a non-empty asset identifier.
func AssetID(id string) error {
	if id == "" {
		return errors.ErrAssetIDMustBeInformed
	}
	return nil
}

// DecimalIsInt requires v to have no fractional part. Trailing zeros are ignored.
func DecimalIsInt(v decimal.Decimal) error {
	if !v.IsInt() {
		return errors.ErrValueMustBeExpressedAsInteger
	}
	return nil
}

// DecimalFitsScale requires v to be representable with at most scale fractional
// digits and returns v trimmed to its shortest form.
func DecimalFitsScale(v decimal.Decimal, scale int) (decimal.Decimal, error) {
	if scale == 0 {
		if err := DecimalIsInt(v); err != nil {
			return v, err
		}
	}
	v = v.Trim(0)
	if v.Scale() > scale {
		return v, errors.Data("%s has more than %d fractional digits", v, scale)
	}
	return v, nil
}

// DecimalNotNegative rejects negative values with safemath.ErrUnderflow, since they
// have no unsigned representation.
func DecimalNotNegative(v decimal.Decimal) error {
	if v.IsNeg() {
		return errors.Wrap(errors.ArithmeticErr, safemath.ErrUnderflow, "negative decimal")
	}
	return nil
}
