package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound         = errors.New("resource not found")
	ErrAnalysisNotFound = fmt.Errorf("%w: analysis", ErrNotFound)

	// Parse errors
	ErrEmptyFile     = errors.New("file has no usable lines")
	ErrMalformedFile = errors.New("malformed input file")

	// Analysis errors
	ErrInsufficientData    = errors.New("insufficient data for analysis")
	ErrNoNumericColumns    = fmt.Errorf("%w: fewer than 2 numeric columns", ErrInsufficientData)
	ErrUnknownMethod       = errors.New("unknown correlation method")
	ErrVariablePairUnset   = errors.New("variable pair not selected")
	ErrRemoteUnavailable   = errors.New("correlation service unavailable")
	ErrMalformedRemoteData = errors.New("malformed correlation service response")
)

// Error constructors with context
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

func NewValidationError(field string, reason string) error {
	return fmt.Errorf("validation failed for %s: %s", field, reason)
}

func NewParseError(reason string) error {
	return fmt.Errorf("%w: %s", ErrMalformedFile, reason)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsParseError(err error) bool {
	return errors.Is(err, ErrEmptyFile) || errors.Is(err, ErrMalformedFile)
}

func IsInsufficientDataError(err error) bool {
	return errors.Is(err, ErrInsufficientData)
}
