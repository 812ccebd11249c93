package domain

import (
	"errors"
	"fmt"
)

// InvalidInputError marks a preprocessing failure: malformed or
// inconsistent input discovered before the solver is ever invoked
// (taxonomy INVALID_INPUT). Ingestion, normalization and feasibility
// expansion return this type when they detect a violated invariant;
// internal/service maps it into the public OptimizeError taxonomy.
type InvalidInputError struct {
	msg string
}

func (e *InvalidInputError) Error() string { return e.msg }

func errInvalidInput(format string, args ...any) error {
	return &InvalidInputError{msg: fmt.Sprintf(format, args...)}
}

// NewInvalidInputError builds an InvalidInputError for use by packages
// outside domain (normalize, ingest, feasible, paramstore) that detect the
// same class of preprocessing failure.
func NewInvalidInputError(format string, args ...any) error {
	return errInvalidInput(format, args...)
}

// IsInvalidInput reports whether err (or anything it wraps) is an
// InvalidInputError.
func IsInvalidInput(err error) bool {
	var e *InvalidInputError
	return errors.As(err, &e)
}
