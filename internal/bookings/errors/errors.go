package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	ErrInvalidID = errors.New("invalid booking ID format")

	// ErrNotActive signals a conditional write that matched no active
	// booking: the record is either missing or already cancelled.
	ErrNotActive = errors.New("booking is not active")
)
