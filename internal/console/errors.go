package console

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("access denied")
	ErrInvalidCode        = errors.New("invalid code")
	ErrInvalidQuiz        = errors.New("invalid quiz")
	ErrInvalidInput       = errors.New("invalid input")
	ErrCodeExhausted      = errors.New("could not allocate a unique quiz code")
)

// StoreError wraps an unexpected persistence failure.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }

func (e *StoreError) Unwrap() error { return e.Err }

func storeErr(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}

// invalidQuiz annotates ErrInvalidQuiz with the offending field.
func invalidQuiz(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidQuiz, fmt.Sprintf(format, args...))
}
