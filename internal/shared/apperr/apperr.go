package apperr

import (
	"errors"
	"fmt"
)

// Sentinel classes. Handlers map these to HTTP status codes; everything
// else is treated as internal and the original message is not exposed.
var (
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
)

func Validation(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrValidation}, args...)...)
}

func NotFound(what string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, what)
}

func Forbidden(what string) error {
	return fmt.Errorf("%w: %s", ErrForbidden, what)
}

func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
