// Package safemath provides checked arithmetic over fixed-width unsigned integers.
//
// Go's arithmetic operators wrap silently on overflow and panic on integer
// division by zero. The functions and methods in this package never do either:
// each returns the exact result, or one of three ErrorKind values.
//
//	total, err := safemath.U64(balance).SafeAdd(safemath.U64(amount))
//	if err != nil {
//		return err // safemath.Overflow
//	}
//
// The generic functions (Add, Sub, Mul, Div, Pow) work on any built-in unsigned
// type. U8, U16, U32, U64 and Uint128 implement SafeMath for method-style use.
//
// Multiplication that does not fit the width reports Overflow.
package safemath
