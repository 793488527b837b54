package safemath_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"

	"github.com/dora-network/dora-safemath/safemath"
)

func TestErrorKind_Strings(t *testing.T) {
	t.Parallel()

	require.Equal(t, "overflow", safemath.Overflow.Error())
	require.Equal(t, "underflow", safemath.Underflow.Error())
	require.Equal(t, "division by zero", safemath.DivisionByZero.Error())
	require.Equal(t, "DivisionByZero", safemath.DivisionByZero.Name())
	require.Equal(t, "ErrorKind(9)", safemath.ErrorKind(9).Name())
	require.False(t, safemath.ErrorKind(0).Valid())
	require.Equal(t,
		[]safemath.ErrorKind{safemath.Overflow, safemath.Underflow, safemath.DivisionByZero},
		safemath.Kinds(),
	)
}

func TestErrorKind_Wrapped(t *testing.T) {
	t.Parallel()

	_, err := safemath.Sub[uint16](1, 2)
	wrapped := fmt.Errorf("debit: %w", err)

	require.True(t, errors.Is(wrapped, safemath.ErrUnderflow))
	require.False(t, errors.Is(wrapped, safemath.ErrOverflow))

	kind, ok := safemath.KindOf(wrapped)
	require.True(t, ok)
	require.Equal(t, safemath.Underflow, kind)

	_, ok = safemath.KindOf(errors.New("boom"))
	require.False(t, ok)

	_, ok = safemath.KindOf(nil)
	require.False(t, ok)
}

func TestErrorKind_JSON(t *testing.T) {
	t.Parallel()

	type payload struct {
		Kind safemath.ErrorKind `json:"kind"`
	}

	for _, kind := range safemath.Kinds() {
		data, err := json.Marshal(payload{Kind: kind})
		require.NoError(t, err)
		require.Equal(t, fmt.Sprintf(`{"kind":%q}`, kind.Name()), string(data))

		var decoded payload
		require.NoError(t, json.Unmarshal(data, &decoded))
		require.Equal(t, kind, decoded.Kind)
	}

	_, err := safemath.ErrorKind(0).MarshalText()
	require.Error(t, err)

	var kind safemath.ErrorKind
	require.Error(t, kind.UnmarshalText([]byte("sideways")))
	require.NoError(t, kind.UnmarshalText([]byte("division by zero")))
	require.Equal(t, safemath.DivisionByZero, kind)
}
