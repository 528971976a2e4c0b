package fault

import (
	"errors"
	"fmt"
)

// The four recoverable error kinds every operation can fail with.
// Call sites wrap them with context; callers classify via errors.Is.
var (
	ErrValidation    = errors.New("validation error")
	ErrAuthorization = errors.New("authorization error")
	ErrState         = errors.New("state error")
	ErrNotFound      = errors.New("not found")
)

func Validationf(format string, args ...any) error {
	return wrapf(ErrValidation, format, args...)
}

func Authorizationf(format string, args ...any) error {
	return wrapf(ErrAuthorization, format, args...)
}

func Statef(format string, args ...any) error {
	return wrapf(ErrState, format, args...)
}

func NotFoundf(format string, args ...any) error {
	return wrapf(ErrNotFound, format, args...)
}

func wrapf(kind error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...))
}
