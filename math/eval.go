package math

import (
	stderrors "errors"
	"strconv"

	"github.com/dora-network/dora-safemath/errors"
	"github.com/dora-network/dora-safemath/safemath"
)

// native is the set of width types backed by a built-in unsigned integer.
type native[T any] interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
	safemath.SafeMath[T]
}

// Evaluator resolves operations and operands given as strings and runs them
// against the safemath type for the requested width.
type Evaluator struct {
	// LegacyMulUnderflow reports multiplication overflow as safemath.Underflow,
	// the kind older callers were built against.
	LegacyMulUnderflow bool
}

// Evaluate parses a and b for width w and applies op. For OpPow, b is the exponent
// and must fit in 32 bits regardless of w.
//
// Parse failures are returned as *errors.TypedError; arithmetic failures are
// returned as a bare safemath.ErrorKind.
func (e Evaluator) Evaluate(op Op, w Width, a, b string) (string, error) {
	if _, ok := opNames[op]; !ok {
		return "", errors.ErrUnknownOperation
	}

	var (
		result string
		err    error
	)
	switch w {
	case Width8:
		result, err = evaluateNative[safemath.U8](op, w, a, b)
	case Width16:
		result, err = evaluateNative[safemath.U16](op, w, a, b)
	case Width32:
		result, err = evaluateNative[safemath.U32](op, w, a, b)
	case Width64:
		result, err = evaluateNative[safemath.U64](op, w, a, b)
	case Width128:
		result, err = evaluate128(op, a, b)
	default:
		return "", errors.ErrUnknownWidth
	}

	if err != nil && e.LegacyMulUnderflow && op == OpMul && stderrors.Is(err, safemath.ErrOverflow) {
		return "", safemath.ErrUnderflow
	}
	return result, err
}

func evaluateNative[T native[T]](op Op, w Width, a, b string) (string, error) {
	x, err := ParseOperand(w, a)
	if err != nil {
		return "", err
	}
	lhs := T(x.Uint64())

	var result T
	if op == OpPow {
		exp, err := ParseExponent(b)
		if err != nil {
			return "", err
		}
		result, err = lhs.SafePow(exp)
		if err != nil {
			return "", err
		}
		return strconv.FormatUint(uint64(result), Base10), nil
	}

	y, err := ParseOperand(w, b)
	if err != nil {
		return "", err
	}
	rhs := T(y.Uint64())

	switch op {
	case OpAdd:
		result, err = lhs.SafeAdd(rhs)
	case OpSub:
		result, err = lhs.SafeSub(rhs)
	case OpMul:
		result, err = lhs.SafeMul(rhs)
	case OpDiv:
		result, err = lhs.SafeDiv(rhs)
	}
	if err != nil {
		return "", err
	}
	return strconv.FormatUint(uint64(result), Base10), nil
}

func evaluate128(op Op, a, b string) (string, error) {
	lhs, err := parse128(a)
	if err != nil {
		return "", err
	}

	var result safemath.Uint128
	if op == OpPow {
		exp, err := ParseExponent(b)
		if err != nil {
			return "", err
		}
		if result, err = lhs.SafePow(exp); err != nil {
			return "", err
		}
		return result.String(), nil
	}

	rhs, err := parse128(b)
	if err != nil {
		return "", err
	}

	switch op {
	case OpAdd:
		result, err = lhs.SafeAdd(rhs)
	case OpSub:
		result, err = lhs.SafeSub(rhs)
	case OpMul:
		result, err = lhs.SafeMul(rhs)
	case OpDiv:
		result, err = lhs.SafeDiv(rhs)
	}
	if err != nil {
		return "", err
	}
	return result.String(), nil
}

func parse128(value string) (safemath.Uint128, error) {
	v, err := ParseOperand(Width128, value)
	if err != nil {
		return safemath.Uint128{}, err
	}
	return safemath.Uint128FromBig(v)
}
