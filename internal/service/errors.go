package service

import (
	"errors"
	"fmt"
)

// Error sentinel values. Handlers map these onto HTTP status codes with
// errors.Is; services wrap them with %w to add detail.
var (
	ErrValidation    = errors.New("invalid input")
	ErrAuthorization = errors.New("operation not allowed")
	ErrNotFound      = errors.New("not found")
)

func validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func authorizationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrAuthorization, fmt.Sprintf(format, args...))
}

func notFoundf(entity string, id uint) error {
	return fmt.Errorf("%w: %s %d", ErrNotFound, entity, id)
}

func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

func IsAuthorization(err error) bool {
	return errors.Is(err, ErrAuthorization)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
