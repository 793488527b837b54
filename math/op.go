package math

import (
	"strings"

	"github.com/dora-network/dora-safemath/errors"
)

// Op names one of the checked operations.
type Op uint8

const (
	_ Op = iota
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpPow
)

var opNames = map[Op]string{
	OpAdd: "add",
	OpSub: "sub",
	OpMul: "mul",
	OpDiv: "div",
	OpPow: "pow",
}

var opSymbols = map[string]Op{
	"+":  OpAdd,
	"-":  OpSub,
	"*":  OpMul,
	"x":  OpMul,
	"/":  OpDiv,
	"**": OpPow,
	"^":  OpPow,
}

// Ops returns every operation in declaration order.
func Ops() []Op {
	return []Op{OpAdd, OpSub, OpMul, OpDiv, OpPow}
}

// ParseOp accepts "add", "safe_add" or "+" (and the same forms for the other operations).
func ParseOp(s string) (Op, error) {
	if op, ok := opSymbols[s]; ok {
		return op, nil
	}
	name := strings.TrimPrefix(strings.ToLower(s), "safe_")
	for op, n := range opNames {
		if n == name {
			return op, nil
		}
	}
	return 0, errors.Wrap(errors.InvalidInputError, errors.ErrUnknownOperation, s)
}

func (o Op) String() string {
	if name, ok := opNames[o]; ok {
		return name
	}
	return "unknown"
}
