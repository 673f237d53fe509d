package domain

import (
	"errors"
	"strings"
)

var (
	ErrInsufficientStock    = errors.New("insufficient stock")
	ErrInvalidQuantity      = errors.New("invalid quantity")
	ErrNotFound             = errors.New("not found")
	ErrForbidden            = errors.New("forbidden")
	ErrInvalidTransition    = errors.New("invalid status transition")
	ErrDuplicateOrderNumber = errors.New("duplicate order number")
	ErrAlreadySubscribed    = errors.New("email already subscribed")
)

// ValidationError collects the individual field problems found while
// validating a request, so handlers can return them all at once.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Problems, "; ")
}

func NewValidationError(problems ...string) *ValidationError {
	return &ValidationError{Problems: problems}
}
