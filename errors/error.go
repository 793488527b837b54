package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the type of error.
type ErrorType string

const (
	// NotFoundError indicates a not found error.
	NotFoundError ErrorType = "NotFound"
	// InvalidInputError indicates an invalid input error.
	InvalidInputError ErrorType = "InvalidInput"
	// InternalError indicates an internal error.
	InternalError ErrorType = "Internal"
	// ErrAccessDenied indicates an access denied error.
	ErrAccessDenied ErrorType = "AccessDenied"
	// InvalidDataErr indicates a data validation error.
	InvalidDataErr ErrorType = "DataInvalid"
	// RateLimitErr indicates a rate limit error.
	RateLimitErr ErrorType = "RateLimit"
	// DeprecatedErr indicates the feature is deprecated.
	DeprecatedErr ErrorType = "Deprecated"
	// ArithmeticErr indicates a checked arithmetic operation failed.
	ArithmeticErr ErrorType = "Arithmetic"
)

var (
	// ErrUnknownWidth error for when an integer width is not one of u8, u16, u32, u64, u128.
	ErrUnknownWidth = New(InvalidInputError, "unknown integer width")
	// ErrUnknownOperation error for when an operation name cannot be resolved.
	ErrUnknownOperation = New(InvalidInputError, "unknown operation")
	// ErrExponentTooLarge error for when a power exponent does not fit in 32 bits.
	ErrExponentTooLarge = New(InvalidInputError, "exponent must fit in 32 bits")
	// ErrAssetIDsDidNotMatch error for when two amounts of different assets are combined.
	ErrAssetIDsDidNotMatch = New(InternalError, "AssetIDs did not match")
	// ErrAssetIDMustBeInformed error for when an entry or amount has no asset.
	ErrAssetIDMustBeInformed = New(InvalidInputError, "assetID must be informed")

	ErrValueMustBeExpressedAsInteger = Data("value must be expressed as an integer")
)

// TypedError represents an error with a specific type.
type TypedError struct {
	Type ErrorType
	Err  error
}

// Is returns true if err's chain contains a *TypedError whose Type is the one specified.
func Is(err error, typ ErrorType) bool {
	t, ok := TypeOf(err)
	return ok && t == typ
}

// TypeOf returns the Type of the first *TypedError in err's chain.
func TypeOf(err error) (ErrorType, bool) {
	var e *TypedError
	if errors.As(err, &e) {
		return e.Type, true
	}
	return "", false
}

// Error implements the error interface for TypedError.
func (e *TypedError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *TypedError) Unwrap() error {
	return e.Err
}

// New creates a new TypedError with the given error type and message.
func New(errorType ErrorType, message string) *TypedError {
	return &TypedError{Type: errorType, Err: errors.New(message)}
}

// Newf creates a new TypedError with the given error type and message.
func Newf(errorType ErrorType, message string, a ...any) *TypedError {
	return &TypedError{Type: errorType, Err: fmt.Errorf(message, a...)}
}

// NewInternal creates a new internal error with the given message.
func NewInternal(message string) *TypedError {
	return &TypedError{Type: InternalError, Err: errors.New(message)}
}

// Wrap creates a new TypedError by wrapping an existing error with an additional message.
func Wrap(errorType ErrorType, err error, message string) *TypedError {
	return &TypedError{Type: errorType, Err: fmt.Errorf("%s: %w", message, err)}
}

// Data creates a new invalid data error
func Data(message string, a ...any) *TypedError {
	return &TypedError{Type: InvalidDataErr, Err: fmt.Errorf(message, a...)}
}
