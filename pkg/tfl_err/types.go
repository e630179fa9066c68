// pkg/tfl_err/types.go

package tfl_err

import "fmt"

// UserError marks an error as expected and recoverable by the user.
type UserError struct {
	cause error
}

func (e *UserError) Error() string {
	return e.cause.Error()
}

func (e *UserError) Unwrap() error {
	return e.cause
}

// NewUserError formats a message and marks it as an expected user error.
func NewUserError(format string, args ...any) error {
	return &UserError{cause: fmt.Errorf(format, args...)}
}
