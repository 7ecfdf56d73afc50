package library

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a selector or index resolves to no item.
var ErrNotFound = errors.New("item not found")

// ErrNoLibrary is returned by the registry when no instance matches.
var ErrNoLibrary = errors.New("no library instances are loaded")

// ValidationError marks user-correctable input problems. Its message is safe
// to surface verbatim.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

// Validationf builds a ValidationError with a printf-style message.
func Validationf(format string, args ...any) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
