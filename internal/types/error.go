package types

import (
	"errors"
	"fmt"
)

// Sentinel errors for the persistence core. Handlers map these to HTTP
// status codes; services never return a partially populated result
// alongside one of them.
var (
	ErrNotFound           = errors.New("not found")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%d: %s [type: %s]", e.Code, e.Message, e.Type)
}

// ConstraintError wraps a uniqueness or foreign-key violation raised by the
// database during a write. The whole unit of work has already rolled back
// when one of these surfaces.
type ConstraintError struct {
	Op  string
	Err error
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("%s: constraint violation: %v", e.Op, e.Err)
}

func (e *ConstraintError) Unwrap() error {
	return e.Err
}

// IsConstraint reports whether err is (or wraps) a ConstraintError
func IsConstraint(err error) bool {
	var ce *ConstraintError
	return errors.As(err, &ce)
}
