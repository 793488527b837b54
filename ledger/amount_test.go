package ledger_test

import (
	"math"
	"testing"

	"github.com/govalues/decimal"
	"github.com/stretchr/testify/require"

	"github.com/dora-network/dora-safemath/errors"
	"github.com/dora-network/dora-safemath/ledger"
	"github.com/dora-network/dora-safemath/safemath"
)

const (
	bondID   = "BOND"
	stableID = "USDC"
)

func TestAmount_Add(t *testing.T) {
	t.Parallel()

	tcs := []struct {
		title  string
		init   ledger.Amount
		add    ledger.Amount
		errMsg string
		kind   safemath.ErrorKind
		result ledger.Amount
	}{
		{
			title:  "diff assetID",
			init:   ledger.ZeroAmount(bondID),
			add:    ledger.NewAmount(stableID, 1),
			errMsg: "AssetIDs did not match",
		},
		{
			title:  "overflow",
			init:   ledger.NewAmount(stableID, math.MaxUint64),
			add:    ledger.NewAmount(stableID, 1),
			errMsg: "Amount.Add: overflow",
			kind:   safemath.Overflow,
		},
		{
			title:  "correct",
			init:   ledger.NewAmount(stableID, math.MaxUint64-1),
			add:    ledger.NewAmount(stableID, 1),
			result: ledger.NewAmount(stableID, math.MaxUint64),
		},
	}

	for _, tc := range tcs {
		t.Run(
			tc.title, func(t *testing.T) {
				result, err := tc.init.Add(tc.add)
				if len(tc.errMsg) > 0 {
					require.Error(t, err)
					require.Contains(t, err.Error(), tc.errMsg)
					if tc.kind != 0 {
						require.ErrorIs(t, err, tc.kind)
						require.True(t, errors.Is(err, errors.ArithmeticErr))
					}
					return
				}
				require.NoError(t, err)
				require.Equal(t, tc.result, result)
				require.True(t, tc.result.Equal(result))
			},
		)
	}
}

func TestAmount_Sub(t *testing.T) {
	t.Parallel()

	tcs := []struct {
		title  string
		init   ledger.Amount
		sub    ledger.Amount
		errMsg string
		result ledger.Amount
	}{
		{
			title:  "diff assetID",
			init:   ledger.NewAmount(bondID, 10),
			sub:    ledger.NewAmount(stableID, 1),
			errMsg: "AssetIDs did not match",
		},
		{
			title:  "underflow",
			init:   ledger.NewAmount(stableID, 1),
			sub:    ledger.NewAmount(stableID, 2),
			errMsg: "Amount.Sub: underflow",
		},
		{
			title:  "to zero",
			init:   ledger.NewAmount(stableID, 2),
			sub:    ledger.NewAmount(stableID, 2),
			result: ledger.ZeroAmount(stableID),
		},
	}

	for _, tc := range tcs {
		t.Run(
			tc.title, func(t *testing.T) {
				result, err := tc.init.Sub(tc.sub)
				if len(tc.errMsg) > 0 {
					require.Error(t, err)
					require.Contains(t, err.Error(), tc.errMsg)
					return
				}
				require.NoError(t, err)
				require.Equal(t, tc.result, result)
			},
		)
	}
}

func TestAmount_SubToZero(t *testing.T) {
	t.Parallel()

	result, subbed, err := ledger.NewAmount(bondID, 5).SubToZero(ledger.NewAmount(bondID, 7))
	require.NoError(t, err)
	require.Equal(t, ledger.ZeroAmount(bondID), result)
	require.Equal(t, ledger.NewAmount(bondID, 5), subbed)

	result, subbed, err = ledger.NewAmount(bondID, 7).SubToZero(ledger.NewAmount(bondID, 5))
	require.NoError(t, err)
	require.Equal(t, ledger.NewAmount(bondID, 2), result)
	require.Equal(t, ledger.NewAmount(bondID, 5), subbed)

	_, _, err = ledger.NewAmount(bondID, 7).SubToZero(ledger.NewAmount(stableID, 5))
	require.ErrorIs(t, err, errors.ErrAssetIDsDidNotMatch)
}

func TestAmount_MulDiv(t *testing.T) {
	t.Parallel()

	product, err := ledger.NewAmount(stableID, 1<<32).MulUint64(1 << 31)
	require.NoError(t, err)
	require.Equal(t, uint64(1<<63), product.Amount)

	_, err = ledger.NewAmount(stableID, 1<<32).MulUint64(1 << 32)
	require.ErrorIs(t, err, safemath.ErrOverflow)

	quo, err := ledger.NewAmount(stableID, 10).DivUint64(3)
	require.NoError(t, err)
	require.Equal(t, ledger.NewAmount(stableID, 3), quo)

	_, err = ledger.NewAmount(stableID, 10).DivUint64(0)
	require.ErrorIs(t, err, safemath.ErrDivisionByZero)
}

func TestAmount_Rescale(t *testing.T) {
	t.Parallel()

	tcs := []struct {
		title    string
		amount   uint64
		from, to uint32
		result   uint64
		kind     safemath.ErrorKind
	}{
		{"same exponent", 152, 6, 6, 152, 0},
		{"4 to 6 decimals", 1_0000, 4, 6, 1_000000, 0},
		{"6 to 4 decimals truncates", 152_123456, 6, 4, 152_1234, 0},
		{"factor overflows", 1, 0, 20, 0, safemath.Overflow},
		{"product overflows", math.MaxUint64 / 10, 0, 2, 0, safemath.Overflow},
	}

	for _, tc := range tcs {
		t.Run(
			tc.title, func(t *testing.T) {
				result, err := ledger.NewAmount(bondID, tc.amount).Rescale(tc.from, tc.to)
				if tc.kind != 0 {
					require.ErrorIs(t, err, tc.kind)
					return
				}
				require.NoError(t, err)
				require.Equal(t, tc.result, result.Amount)
			},
		)
	}
}

func TestAmount_Decimal(t *testing.T) {
	t.Parallel()

	d, err := ledger.NewAmount(stableID, 152_500000).Decimal(6)
	require.NoError(t, err)
	require.Equal(t, "152.500000", d.String())

	_, err = ledger.NewAmount(stableID, math.MaxUint64).Decimal(6)
	require.ErrorIs(t, err, safemath.ErrOverflow)

	amt, err := ledger.AmountFromDecimal(stableID, decimal.MustParse("1.5"), 6)
	require.NoError(t, err)
	require.Equal(t, ledger.NewAmount(stableID, 1_500000), amt)

	_, err = ledger.AmountFromDecimal(stableID, decimal.MustParse("1.1234567"), 6)
	require.True(t, errors.Is(err, errors.InvalidDataErr))

	_, err = ledger.AmountFromDecimal(stableID, decimal.MustParse("-1"), 6)
	require.ErrorIs(t, err, safemath.ErrUnderflow)

	_, err = ledger.AmountFromDecimal(stableID, decimal.MustParse("100000000000000"), 6)
	require.ErrorIs(t, err, safemath.ErrOverflow)
}

func TestAmount_Binary(t *testing.T) {
	t.Parallel()

	amt := ledger.NewAmount(bondID, 42)
	data, err := amt.MarshalBinary()
	require.NoError(t, err)
	require.JSONEq(t, `{"asset_id":"BOND","amount":42}`, string(data))

	var decoded ledger.Amount
	require.NoError(t, decoded.UnmarshalBinary(data))
	require.True(t, amt.Equal(decoded))
	require.Equal(t, "42 BOND", decoded.String())
}

func TestAmount_Validate(t *testing.T) {
	t.Parallel()

	require.NoError(t, ledger.NewAmount(bondID, 0).Validate())
	require.ErrorIs(t, ledger.Amount{}.Validate(), errors.ErrAssetIDMustBeInformed)
}
