package safemath

import "golang.org/x/exp/constraints"

// Unsigned is the set of unsigned integer types the generic operations are
// defined for: constraints.Unsigned without uintptr.
type Unsigned interface {
	constraints.Unsigned
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Max returns the largest value representable by T.
func Max[T Unsigned]() T {
	return ^T(0)
}

// Add returns a+b, or Overflow if the sum does not fit in T.
func Add[T Unsigned](a, b T) (T, error) {
	sum := a + b
	if sum < a {
		return 0, ErrOverflow
	}
	return sum, nil
}

// Sub returns a-b, or Underflow if b is greater than a.
func Sub[T Unsigned](a, b T) (T, error) {
	if b > a {
		return 0, ErrUnderflow
	}
	return a - b, nil
}

// Mul returns a*b, or Overflow if the product does not fit in T.
func Mul[T Unsigned](a, b T) (T, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	if b > Max[T]()/a {
		return 0, ErrOverflow
	}
	return a * b, nil
}

// Div returns a/b truncated toward zero, or DivisionByZero if b is zero.
func Div[T Unsigned](a, b T) (T, error) {
	if b == 0 {
		return 0, ErrDivisionByZero
	}
	return a / b, nil
}

// Rem returns a%b, or DivisionByZero if b is zero.
func Rem[T Unsigned](a, b T) (T, error) {
	if b == 0 {
		return 0, ErrDivisionByZero
	}
	return a % b, nil
}

// Pow returns base**exp, or Overflow if the power does not fit in T.
// Pow(x, 0) is 1 for every x, including 0.
func Pow[T Unsigned](base T, exp uint32) (T, error) {
	result := T(1)
	for exp > 0 {
		var err error
		if exp&1 == 1 {
			if result, err = Mul(result, base); err != nil {
				return 0, ErrOverflow
			}
		}
		exp >>= 1
		if exp == 0 {
			break
		}
		// any remaining bit multiplies the result by at least base*base
		if base, err = Mul(base, base); err != nil {
			return 0, ErrOverflow
		}
	}
	return result, nil
}

// Sum adds values left to right and stops at the first overflow.
func Sum[T Unsigned](values ...T) (T, error) {
	var total T
	for _, v := range values {
		var err error
		if total, err = Add(total, v); err != nil {
			return 0, err
		}
	}
	return total, nil
}

// Convert narrows or widens v to To, returning Overflow if v does not fit.
func Convert[To, From Unsigned](v From) (To, error) {
	out := To(v)
	if From(out) != v {
		return 0, ErrOverflow
	}
	return out, nil
}
