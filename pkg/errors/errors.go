// Package errors provides common domain error types for sdnscreen.
//
// This package defines sentinel errors for the conditions the resolution
// core distinguishes: absence is never an error (lookups return empty
// results), but caller contract violations and malformed input tables are.
// Using typed errors enables consistent handling with errors.Is() checks.
//
// Usage:
//
//	import sserrors "github.com/screenline/sdnscreen/pkg/errors"
//
//	// Return a domain error
//	return nil, fmt.Errorf("uid %q: %w", raw, sserrors.ErrValidation)
//
//	// Check for domain errors
//	if sserrors.IsValidation(err) {
//	    // handle caller contract violation
//	}
package errors

import "errors"

// Domain errors - common sentinel errors for domain conditions.
var (
	// ErrNotFound indicates the requested resource was not found.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates invalid input or a caller contract violation
	// (e.g. a non-numeric uid passed to profile lookup).
	ErrValidation = errors.New("validation error")

	// ErrSchema indicates a supplied table does not have the expected
	// columns. This is a hard failure for the whole operation.
	ErrSchema = errors.New("schema error")
)

// IsNotFound reports whether any error in err's chain is ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation reports whether any error in err's chain is ErrValidation.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsSchema reports whether any error in err's chain is ErrSchema.
func IsSchema(err error) bool {
	return errors.Is(err, ErrSchema)
}
