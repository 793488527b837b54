package safemath

import (
	"fmt"
	"math"
	"math/big"
	"math/bits"
)

// Uint128 is an unsigned 128-bit integer stored as two 64-bit halves.
// Values are immutable: every operation returns a new Uint128.
type Uint128 struct {
	Hi uint64
	Lo uint64
}

// MaxUint128 is 2^128 - 1.
var MaxUint128 = Uint128{Hi: math.MaxUint64, Lo: math.MaxUint64}

var _ SafeMath[Uint128] = Uint128{}

// NewUint128 builds a value from its high and low halves.
func NewUint128(hi, lo uint64) Uint128 {
	return Uint128{Hi: hi, Lo: lo}
}

// Uint128From64 widens a uint64.
func Uint128From64(v uint64) Uint128 {
	return Uint128{Lo: v}
}

// Uint128FromBig converts v, returning Overflow if it is negative or wider than 128 bits.
func Uint128FromBig(v *big.Int) (Uint128, error) {
	if v.Sign() < 0 {
		return Uint128{}, ErrUnderflow
	}
	if v.BitLen() > 128 {
		return Uint128{}, ErrOverflow
	}
	lo := new(big.Int).And(v, new(big.Int).SetUint64(math.MaxUint64))
	hi := new(big.Int).Rsh(v, 64)
	return Uint128{Hi: hi.Uint64(), Lo: lo.Uint64()}, nil
}

// ParseUint128 parses a base 10 string.
func ParseUint128(s string) (Uint128, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return Uint128{}, fmt.Errorf("safemath: %q is not a valid uint128", s)
	}
	return Uint128FromBig(v)
}

// Big returns u as a new big.Int.
func (u Uint128) Big() *big.Int {
	v := new(big.Int).SetUint64(u.Hi)
	v.Lsh(v, 64)
	return v.Or(v, new(big.Int).SetUint64(u.Lo))
}

func (u Uint128) String() string {
	if u.Hi == 0 {
		return fmt.Sprintf("%d", u.Lo)
	}
	return u.Big().String()
}

func (u Uint128) IsZero() bool {
	return u.Hi == 0 && u.Lo == 0
}

// Cmp returns -1, 0 or +1 depending on whether u is less than, equal to or greater than v.
func (u Uint128) Cmp(v Uint128) int {
	switch {
	case u == v:
		return 0
	case u.Hi < v.Hi || (u.Hi == v.Hi && u.Lo < v.Lo):
		return -1
	default:
		return 1
	}
}

func (u Uint128) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

func (u *Uint128) UnmarshalText(text []byte) error {
	v, err := ParseUint128(string(text))
	if err != nil {
		return err
	}
	*u = v
	return nil
}

// SafeAdd returns u+v, or Overflow.
func (u Uint128) SafeAdd(v Uint128) (Uint128, error) {
	lo, carry := bits.Add64(u.Lo, v.Lo, 0)
	hi, carry := bits.Add64(u.Hi, v.Hi, carry)
	if carry != 0 {
		return Uint128{}, ErrOverflow
	}
	return Uint128{Hi: hi, Lo: lo}, nil
}

// SafeSub returns u-v, or Underflow if v is greater than u.
func (u Uint128) SafeSub(v Uint128) (Uint128, error) {
	lo, borrow := bits.Sub64(u.Lo, v.Lo, 0)
	hi, borrow := bits.Sub64(u.Hi, v.Hi, borrow)
	if borrow != 0 {
		return Uint128{}, ErrUnderflow
	}
	return Uint128{Hi: hi, Lo: lo}, nil
}

// SafeMul returns u*v, or Overflow.
func (u Uint128) SafeMul(v Uint128) (Uint128, error) {
	if u.Hi != 0 && v.Hi != 0 {
		return Uint128{}, ErrOverflow
	}
	hi, lo := bits.Mul64(u.Lo, v.Lo)
	crossHi, cross := bits.Mul64(u.Hi, v.Lo)
	if crossHi != 0 {
		return Uint128{}, ErrOverflow
	}
	var carry uint64
	if hi, carry = bits.Add64(hi, cross, 0); carry != 0 {
		return Uint128{}, ErrOverflow
	}
	crossHi, cross = bits.Mul64(u.Lo, v.Hi)
	if crossHi != 0 {
		return Uint128{}, ErrOverflow
	}
	if hi, carry = bits.Add64(hi, cross, 0); carry != 0 {
		return Uint128{}, ErrOverflow
	}
	return Uint128{Hi: hi, Lo: lo}, nil
}

// SafeDiv returns u/v truncated toward zero, or DivisionByZero.
func (u Uint128) SafeDiv(v Uint128) (Uint128, error) {
	if v.IsZero() {
		return Uint128{}, ErrDivisionByZero
	}
	q, _ := u.quoRem(v)
	return q, nil
}

// SafeRem returns u%v, or DivisionByZero.
func (u Uint128) SafeRem(v Uint128) (Uint128, error) {
	if v.IsZero() {
		return Uint128{}, ErrDivisionByZero
	}
	_, r := u.quoRem(v)
	return r, nil
}

// SafePow returns u**exp, or Overflow.
func (u Uint128) SafePow(exp uint32) (Uint128, error) {
	result, base := Uint128From64(1), u
	for exp > 0 {
		var err error
		if exp&1 == 1 {
			if result, err = result.SafeMul(base); err != nil {
				return Uint128{}, err
			}
		}
		exp >>= 1
		if exp == 0 {
			break
		}
		if base, err = base.SafeMul(base); err != nil {
			return Uint128{}, err
		}
	}
	return result, nil
}

// quoRem divides u by a non-zero v.
func (u Uint128) quoRem(v Uint128) (q, r Uint128) {
	if v.Hi == 0 {
		if u.Hi < v.Lo {
			lo, rem := bits.Div64(u.Hi, u.Lo, v.Lo)
			return Uint128{Lo: lo}, Uint128{Lo: rem}
		}
		hi, rem := bits.Div64(0, u.Hi, v.Lo)
		lo, rem := bits.Div64(rem, u.Lo, v.Lo)
		return Uint128{Hi: hi, Lo: lo}, Uint128{Lo: rem}
	}

	// normalise so the divisor's top bit is set, estimate the quotient from the
	// high words and correct it by at most one.
	n := uint(bits.LeadingZeros64(v.Hi))
	v1 := v.lsh(n)
	u1 := u.rsh1()
	tq, _ := bits.Div64(u1.Hi, u1.Lo, v1.Hi)
	tq >>= 63 - n
	if tq != 0 {
		tq--
	}
	q = Uint128{Lo: tq}
	r = u.wrappingSub(v.wrappingMul64(tq))
	if r.Cmp(v) >= 0 {
		q = Uint128{Lo: tq + 1}
		r = r.wrappingSub(v)
	}
	return q, r
}

func (u Uint128) lsh(n uint) Uint128 {
	if n == 0 {
		return u
	}
	return Uint128{Hi: u.Hi<<n | u.Lo>>(64-n), Lo: u.Lo << n}
}

func (u Uint128) rsh1() Uint128 {
	return Uint128{Hi: u.Hi >> 1, Lo: u.Lo>>1 | u.Hi<<63}
}

func (u Uint128) wrappingSub(v Uint128) Uint128 {
	lo, borrow := bits.Sub64(u.Lo, v.Lo, 0)
	hi, _ := bits.Sub64(u.Hi, v.Hi, borrow)
	return Uint128{Hi: hi, Lo: lo}
}

func (u Uint128) wrappingMul64(v uint64) Uint128 {
	hi, lo := bits.Mul64(u.Lo, v)
	return Uint128{Hi: hi + u.Hi*v, Lo: lo}
}
