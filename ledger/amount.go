package ledger

import (
	"fmt"
	stdmath "math"

	"github.com/goccy/go-json"
	"github.com/govalues/decimal"

	"github.com/dora-network/dora-safemath/errors"
	"github.com/dora-network/dora-safemath/safemath"
	"github.com/dora-network/dora-safemath/validation"
)

const base10 = 10

type Amount struct {
	AssetID string `json:"asset_id"`
	Amount  uint64 `json:"amount"`
}

func ZeroAmount(assetID string) Amount {
	return NewAmount(assetID, 0)
}

func NewAmount(assetID string, amount uint64) Amount {
	return Amount{
		AssetID: assetID,
		Amount:  amount,
	}
}

// AmountFromDecimal converts a decimal quantity into raw units with scale fractional digits,
// e.g. 1.5 at scale 6 is 1_500000. It fails if d has more fractional digits than scale,
// is negative, or does not fit in a uint64.
func AmountFromDecimal(assetID string, d decimal.Decimal, scale int) (Amount, error) {
	if err := validation.DecimalNotNegative(d); err != nil {
		return Amount{}, err
	}
	d, err := validation.DecimalFitsScale(d, scale)
	if err != nil {
		return Amount{}, err
	}
	factor, err := safemath.Pow[uint64](base10, uint32(scale-d.Scale()))
	if err != nil {
		return Amount{}, errors.Wrap(errors.ArithmeticErr, err, "AmountFromDecimal")
	}
	raw, err := safemath.Mul(d.Coef(), factor)
	if err != nil {
		return Amount{}, errors.Wrap(errors.ArithmeticErr, err, "AmountFromDecimal")
	}
	return NewAmount(assetID, raw), nil
}

func (a *Amount) MarshalBinary() ([]byte, error) {
	return json.Marshal(a)
}

func (a *Amount) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, a)
}

// Equal returns true if one Amount is equal to another.
func (a Amount) Equal(x Amount) bool {
	return a.AssetID == x.AssetID && a.Amount == x.Amount
}

// Match returns true if two Amounts have the same AssetID
func (a Amount) Match(bal Amount) bool {
	return a.AssetID == bal.AssetID
}

// Add an Amount to this one, returning the result and an error if asset IDs do not match
// or the sum overflows.
func (a Amount) Add(amt Amount) (Amount, error) {
	if !a.Match(amt) {
		return Amount{}, errors.Wrap(errors.InternalError, errors.ErrAssetIDsDidNotMatch, "Amount.Add")
	}
	return a.AddUint64(amt.Amount)
}

// AddUint64 a uint64 amount to this Amount, returning the resulting Amount and an error if an overflow occurs.
// The assetID must be checked before calling this function.
func (a Amount) AddUint64(amt uint64) (Amount, error) {
	result, err := safemath.Add(a.Amount, amt)
	if err != nil {
		return Amount{}, errors.Wrap(errors.ArithmeticErr, err, "Amount.Add")
	}
	return NewAmount(a.AssetID, result), nil
}

// Sub an Amount from this one, returning the result and an error if asset IDs do not match.
// Also returns an error if the final amount would be negative.
func (a Amount) Sub(amt Amount) (Amount, error) {
	if !a.Match(amt) {
		return Amount{}, errors.Wrap(errors.InternalError, errors.ErrAssetIDsDidNotMatch, "Amount.Sub")
	}
	return a.SubUint64(amt.Amount)
}

// SubUint64 a uint64 amount from this Amount, returning the resulting Amount and an error if an underflow occurs.
// The assetID must be checked before calling this function.
func (a Amount) SubUint64(amt uint64) (Amount, error) {
	result, err := safemath.Sub(a.Amount, amt)
	if err != nil {
		return Amount{}, errors.Wrap(errors.ArithmeticErr, err, "Amount.Sub")
	}
	return NewAmount(a.AssetID, result), nil
}

// SubToZero subtracts amt, flooring at zero. It returns the result and the amount actually subtracted.
func (a Amount) SubToZero(amt Amount) (Amount, Amount, error) {
	if !a.Match(amt) {
		return Amount{}, Amount{}, errors.Wrap(errors.InternalError, errors.ErrAssetIDsDidNotMatch, "Amount.SubToZero")
	}
	result, subbed := a.SubToZeroUint64(amt.Amount)
	return result, NewAmount(a.AssetID, subbed), nil
}

// SubToZeroUint64 subtracts a uint64 amount from this Amount, returning the resulting Amount and the subtracted amount.
// If the result would be negative, it returns zero and the original amount instead of an error.
func (a Amount) SubToZeroUint64(amt uint64) (Amount, uint64) {
	result, err := safemath.Sub(a.Amount, amt)
	if err != nil {
		return ZeroAmount(a.AssetID), a.Amount
	}
	return NewAmount(a.AssetID, result), amt
}

// MulUint64 multiplies this Amount by a uint64 factor.
func (a Amount) MulUint64(factor uint64) (Amount, error) {
	result, err := safemath.Mul(a.Amount, factor)
	if err != nil {
		return Amount{}, errors.Wrap(errors.ArithmeticErr, err, "Amount.Mul")
	}
	return NewAmount(a.AssetID, result), nil
}

// DivUint64 divides this Amount by a uint64 divisor, truncating toward zero.
func (a Amount) DivUint64(divisor uint64) (Amount, error) {
	result, err := safemath.Div(a.Amount, divisor)
	if err != nil {
		return Amount{}, errors.Wrap(errors.ArithmeticErr, err, "Amount.Div")
	}
	return NewAmount(a.AssetID, result), nil
}

// Rescale converts the Amount between two exponents, e.g. from an asset with 4 decimals
// to one with 6 decimals multiplies by 10^2. Scaling down truncates.
func (a Amount) Rescale(fromExponent, toExponent uint32) (Amount, error) {
	if fromExponent == toExponent {
		return a, nil
	}
	diff := toExponent - fromExponent
	if fromExponent > toExponent {
		diff = fromExponent - toExponent
	}
	factor, err := safemath.Pow[uint64](base10, diff)
	if err != nil {
		return Amount{}, errors.Wrap(errors.ArithmeticErr, err, "Amount.Rescale")
	}
	if fromExponent > toExponent {
		return a.DivUint64(factor)
	}
	return a.MulUint64(factor)
}

// Decimal renders the raw Amount as a decimal with scale fractional digits.
func (a Amount) Decimal(scale int) (decimal.Decimal, error) {
	if a.Amount > stdmath.MaxInt64 {
		return decimal.Decimal{}, errors.Wrap(errors.ArithmeticErr, safemath.ErrOverflow, "Amount.Decimal")
	}
	d, err := decimal.New(int64(a.Amount), scale)
	if err != nil {
		return decimal.Decimal{}, errors.Wrap(errors.InvalidInputError, err, "Amount.Decimal")
	}
	return d, nil
}

// Validate requires a non-empty assetID.
func (a Amount) Validate() error {
	return validation.AssetID(a.AssetID)
}

// IsZero returns true if a Amount is zero.
func (a Amount) IsZero() bool {
	return a.Amount == 0
}

func (a Amount) String() string {
	return fmt.Sprintf("%d %s", a.Amount, a.AssetID)
}
