package host

import (
	stderrors "errors"
	"fmt"
	"strconv"

	"connectrpc.com/connect"
	"google.golang.org/grpc/status"

	"github.com/dora-network/dora-safemath/errors"
	"github.com/dora-network/dora-safemath/safemath"
)

// HeaderErrorCode carries Code(kind) on Connect errors.
const HeaderErrorCode = "Safemath-Error-Code"

// Failure is the serialisable description of an arithmetic failure.
type Failure struct {
	Kind    safemath.ErrorKind `json:"kind"`
	Code    uint32             `json:"code"`
	Message string             `json:"message"`
}

// NewFailure describes err if its chain contains a safemath.ErrorKind.
func NewFailure(err error) (Failure, bool) {
	kind, ok := safemath.KindOf(err)
	if !ok {
		return Failure{}, false
	}
	return Failure{Kind: kind, Code: Code(kind), Message: err.Error()}, true
}

// Status converts err to a gRPC status. Arithmetic errors get the code from GRPCCode;
// anything else is converted by status.Convert. A nil err gives a nil status.
func Status(err error) *status.Status {
	if err == nil {
		return nil
	}
	kind, ok := safemath.KindOf(err)
	if !ok {
		return status.Convert(err)
	}
	return status.New(GRPCCode(kind), fmt.Sprintf("%s (code %d)", err, Code(kind)))
}

// ConnectError converts err to a *connect.Error. Arithmetic errors get the code from
// ConnectCode and the HeaderErrorCode metadata; anything else is returned as
// connect.CodeUnknown unless it already is a *connect.Error.
func ConnectError(err error) *connect.Error {
	if err == nil {
		return nil
	}
	kind, ok := safemath.KindOf(err)
	if !ok {
		var ce *connect.Error
		if stderrors.As(err, &ce) {
			return ce
		}
		return connect.NewError(connect.CodeUnknown, err)
	}
	ce := connect.NewError(ConnectCode(kind), err)
	ce.Meta().Set(HeaderErrorCode, strconv.FormatUint(uint64(Code(kind)), 10))
	return ce
}

// Typed wraps arithmetic errors as errors.ArithmeticErr typed errors. Other errors,
// including ones that are already typed, are returned unchanged.
func Typed(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := errors.TypeOf(err); ok {
		return err
	}
	kind, ok := safemath.KindOf(err)
	if !ok {
		return err
	}
	return errors.Wrap(errors.ArithmeticErr, err, fmt.Sprintf("error code %d", Code(kind)))
}
