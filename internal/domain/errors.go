package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUserAlreadyExists = errors.New("a user with this username already exists")
	ErrRecordNotFound    = errors.New("record not found")
	ErrEditConflict      = errors.New("edit conflict")
	ErrPaymentNotFound   = errors.New("payment not found or already processed")
	ErrInvalidReference  = errors.New("referenced movie or hall does not exist")

	ErrBalanceLimitExceeded = errors.New("balance limit exceeded")
)

// ValidationErrorKind groups validation failures the way callers report them.
type ValidationErrorKind string

const (
	KindRange    ValidationErrorKind = "range"
	KindCapacity ValidationErrorKind = "capacity"
	KindFunds    ValidationErrorKind = "funds"
	KindState    ValidationErrorKind = "state"
)

// ValidationError is a user-input failure that is terminal for the request.
// Field is empty when the error concerns the whole record.
type ValidationError struct {
	Kind    ValidationErrorKind
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}

	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func newValidationError(kind ValidationErrorKind, field, message string) *ValidationError {
	return &ValidationError{Kind: kind, Field: field, Message: message}
}

// AsValidationError reports whether err wraps a *ValidationError and returns it.
func AsValidationError(err error) (*ValidationError, bool) {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr, true
	}

	return nil, false
}

// IsValidationKind reports whether err is a validation error of the given kind.
func IsValidationKind(err error, kind ValidationErrorKind) bool {
	vErr, ok := AsValidationError(err)
	return ok && vErr.Kind == kind
}
