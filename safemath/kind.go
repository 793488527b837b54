package safemath

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why a checked operation could not produce a value.
// It carries no payload and is itself an error, so callers can compare it
// directly or use errors.Is against the sentinels below.
type ErrorKind uint8

const (
	_ ErrorKind = iota
	// Overflow means the true result exceeds the maximum value of the width.
	Overflow
	// Underflow means the true result would be below zero.
	Underflow
	// DivisionByZero means the divisor was zero.
	DivisionByZero
)

var (
	ErrOverflow       error = Overflow
	ErrUnderflow      error = Underflow
	ErrDivisionByZero error = DivisionByZero
)

var kindNames = map[ErrorKind]string{
	Overflow:       "Overflow",
	Underflow:      "Underflow",
	DivisionByZero: "DivisionByZero",
}

var kindMessages = map[ErrorKind]string{
	Overflow:       "overflow",
	Underflow:      "underflow",
	DivisionByZero: "division by zero",
}

// Kinds returns every error kind in declaration order.
func Kinds() []ErrorKind {
	return []ErrorKind{Overflow, Underflow, DivisionByZero}
}

// Valid reports whether k is one of the declared kinds.
func (k ErrorKind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

// Name returns the identifier of the kind, e.g. "DivisionByZero".
func (k ErrorKind) Name() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ErrorKind(%d)", uint8(k))
}

func (k ErrorKind) String() string {
	if msg, ok := kindMessages[k]; ok {
		return msg
	}
	return fmt.Sprintf("unknown error kind %d", uint8(k))
}

// Error implements the error interface.
func (k ErrorKind) Error() string {
	return k.String()
}

func (k ErrorKind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("safemath: cannot marshal invalid error kind %d", uint8(k))
	}
	return []byte(k.Name()), nil
}

func (k *ErrorKind) UnmarshalText(text []byte) error {
	kind, err := ParseErrorKind(string(text))
	if err != nil {
		return err
	}
	*k = kind
	return nil
}

// ParseErrorKind accepts either the kind name ("Overflow") or its message ("overflow").
func ParseErrorKind(s string) (ErrorKind, error) {
	for _, k := range Kinds() {
		if s == kindNames[k] || s == kindMessages[k] {
			return k, nil
		}
	}
	return 0, fmt.Errorf("safemath: unknown error kind %q", s)
}

// KindOf returns the ErrorKind found in err's chain, if any.
func KindOf(err error) (ErrorKind, bool) {
	var kind ErrorKind
	if errors.As(err, &kind) && kind.Valid() {
		return kind, true
	}
	return 0, false
}
