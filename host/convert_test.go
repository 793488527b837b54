package host_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"connectrpc.com/connect"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"

	"github.com/dora-network/dora-safemath/errors"
	"github.com/dora-network/dora-safemath/host"
	"github.com/dora-network/dora-safemath/safemath"
)

func TestStatus(t *testing.T) {
	t.Parallel()

	require.Nil(t, host.Status(nil))

	st := host.Status(fmt.Errorf("debit: %w", safemath.ErrUnderflow))
	require.Equal(t, codes.OutOfRange, st.Code())
	require.Equal(t, "debit: underflow (code 6001)", st.Message())

	st = host.Status(safemath.ErrDivisionByZero)
	require.Equal(t, codes.InvalidArgument, st.Code())

	st = host.Status(stderrors.New("boom"))
	require.Equal(t, codes.Unknown, st.Code())
}

func TestConnectError(t *testing.T) {
	t.Parallel()

	require.Nil(t, host.ConnectError(nil))

	ce := host.ConnectError(fmt.Errorf("credit: %w", safemath.ErrOverflow))
	require.Equal(t, connect.CodeOutOfRange, ce.Code())
	require.Equal(t, "6000", ce.Meta().Get(host.HeaderErrorCode))
	require.ErrorIs(t, ce, safemath.ErrOverflow)

	existing := connect.NewError(connect.CodeNotFound, stderrors.New("missing"))
	require.Same(t, existing, host.ConnectError(fmt.Errorf("wrapped: %w", existing)))

	require.Equal(t, connect.CodeUnknown, host.ConnectError(stderrors.New("boom")).Code())
}

func TestTyped(t *testing.T) {
	t.Parallel()

	require.NoError(t, host.Typed(nil))

	err := host.Typed(safemath.ErrDivisionByZero)
	require.True(t, errors.Is(err, errors.ArithmeticErr))
	require.ErrorIs(t, err, safemath.ErrDivisionByZero)
	require.Equal(t, "error code 6002: division by zero", err.Error())

	already := errors.Wrap(errors.InternalError, safemath.ErrOverflow, "ledger")
	require.Same(t, already, host.Typed(already))

	plain := stderrors.New("boom")
	require.Equal(t, plain, host.Typed(plain))
}

func TestFailure(t *testing.T) {
	t.Parallel()

	failure, ok := host.NewFailure(fmt.Errorf("pow: %w", safemath.ErrOverflow))
	require.True(t, ok)
	require.Equal(t, host.Failure{Kind: safemath.Overflow, Code: 6000, Message: "pow: overflow"}, failure)

	data, err := json.Marshal(failure)
	require.NoError(t, err)
	require.JSONEq(t, `{"kind":"Overflow","code":6000,"message":"pow: overflow"}`, string(data))

	_, ok = host.NewFailure(stderrors.New("boom"))
	require.False(t, ok)
}
