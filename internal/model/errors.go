package model

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures so callers can decide whether a failed
// request aborts a whole batch or is skipped.
type ErrorKind int

const (
	// KindValidation marks bad input: octave count out of range or an
	// unsupported scale type.
	KindValidation ErrorKind = iota + 1

	// KindExternalTool marks a failure of the typesetter, the raster
	// converter or one of their artifacts.
	KindExternalTool

	// KindFileSystem marks a failed write or delete.
	KindFileSystem
)

// String returns a short lower-case name for the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindExternalTool:
		return "external tool"
	case KindFileSystem:
		return "file system"
	default:
		return "unknown"
	}
}

var (
	// ErrInvalidOctaves is returned when the octave count is outside [MinOctaves, MaxOctaves].
	ErrInvalidOctaves = fmt.Errorf("number of octaves must be an integer between %d and %d", MinOctaves, MaxOctaves)

	// ErrUnknownScaleType is returned for scale types missing from the generator's table.
	ErrUnknownScaleType = errors.New("scale type is not supported")
)

// Error is a classified failure.
//
// Op names the operation that failed (for example "compile" or "delete
// combined_practice.pdf") and Err holds the underlying cause.
type Error struct {
	Kind ErrorKind
	Op   string
	Err  error
}

// NewError wraps err with a kind and an operation name.
func NewError(kind ErrorKind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

func (e *Error) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%s error: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of the first *Error in err's chain, or 0.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}
