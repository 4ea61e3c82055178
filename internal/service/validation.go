package service

import "fmt"

// ValidationError marks input rejected before any write. Handlers treat
// it as a client error; every other failure from a service is either a
// repository sentinel or an opaque internal error.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func validationf(format string, args ...any) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}
