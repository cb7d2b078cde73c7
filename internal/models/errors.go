package models

import "errors"

var (
	// ErrValidation is returned for malformed input, rejected before any mutation.
	ErrValidation = errors.New("validation failed")

	// ErrConflict is returned when an alias or code is already taken.
	ErrConflict = errors.New("already exists")

	// ErrNotFound covers unknown codes and owner mismatches alike.
	ErrNotFound = errors.New("short url not found")

	// ErrExpired is returned by a resolve that found the mapping past its expiry.
	// Callers surface it exactly like ErrNotFound.
	ErrExpired = errors.New("short url expired")

	// ErrUnknownOperation is returned per item by bulk operations.
	ErrUnknownOperation = errors.New("unknown operation")

	// ErrCodeSpaceExhausted is returned when no free code was found within the retry bound.
	ErrCodeSpaceExhausted = errors.New("short code space exhausted")
)

// IsNotFound reports whether err should be presented as a missing link.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrExpired)
}
