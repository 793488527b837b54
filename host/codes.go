package host

import (
	"connectrpc.com/connect"
	"google.golang.org/grpc/codes"

	"github.com/dora-network/dora-safemath/safemath"
)

// CodeBase is the first custom error code. Codes are assigned in the order of
// safemath.Kinds and must never be renumbered.
const CodeBase uint32 = 6000

// Code returns the stable numeric code for kind, or 0 if kind is not valid.
func Code(kind safemath.ErrorKind) uint32 {
	if !kind.Valid() {
		return 0
	}
	return CodeBase + uint32(kind) - 1
}

// KindFromCode is the inverse of Code.
func KindFromCode(code uint32) (safemath.ErrorKind, bool) {
	if code < CodeBase || code-CodeBase >= uint32(len(safemath.Kinds())) {
		return 0, false
	}
	return safemath.ErrorKind(code - CodeBase + 1), true
}

// GRPCCode maps kind to the gRPC status code a server should return.
func GRPCCode(kind safemath.ErrorKind) codes.Code {
	switch kind {
	case safemath.Overflow, safemath.Underflow:
		return codes.OutOfRange
	case safemath.DivisionByZero:
		return codes.InvalidArgument
	default:
		return codes.Unknown
	}
}

// ConnectCode maps kind to the Connect error code a handler should return.
func ConnectCode(kind safemath.ErrorKind) connect.Code {
	switch kind {
	case safemath.Overflow, safemath.Underflow:
		return connect.CodeOutOfRange
	case safemath.DivisionByZero:
		return connect.CodeInvalidArgument
	default:
		return connect.CodeUnknown
	}
}
