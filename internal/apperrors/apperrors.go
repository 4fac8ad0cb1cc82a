package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("resource not found")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("authentication required")
	ErrConflict     = errors.New("conflict")

	ErrRequestNotPending = fmt.Errorf("%w: request is already accepted or completed", ErrConflict)
	ErrDonorExists       = fmt.Errorf("%w: a donor profile with this email already exists", ErrConflict)
	ErrEmailExists       = fmt.Errorf("%w: user with this email already exists", ErrConflict)
	ErrPatientExists     = fmt.Errorf("%w: a patient with this email already exists", ErrConflict)

	ErrInvalidCredentials = fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
	ErrGoogleOnlyAccount  = fmt.Errorf("%w: please login with Google", ErrUnauthorized)
	ErrInvalidToken       = fmt.Errorf("%w: invalid or expired token", ErrUnauthorized)
)

// NotFoundError names the kind of entity that was looked up.
type NotFoundError struct{ Entity string }

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Entity)
}
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ForbiddenError carries the message shown to the caller.
type ForbiddenError struct{ Reason string }

func (e *ForbiddenError) Error() string { return e.Reason }
func (e *ForbiddenError) Is(target error) bool { return target == ErrForbidden }

func NotFound(entity string) error {
	return &NotFoundError{Entity: entity}
}

func Forbidden(reason string) error {
	return &ForbiddenError{Reason: reason}
}

// Invalid builds a validation error with a single message.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

var sentinels = []error{ErrValidation, ErrNotFound, ErrForbidden, ErrUnauthorized, ErrConflict}

// Message is the client-facing text of err with any sentinel prefix removed.
func Message(err error) string {
	msg := err.Error()
	for _, s := range sentinels {
		if rest, ok := strings.CutPrefix(msg, s.Error()+": "); ok {
			return rest
		}
	}
	return msg
}
