// Package service implements the application rules on top of the store:
// credential handling, session lifecycle, ownership checks and input
// validation. Handlers stay thin and talk only to this package.
package service

import "errors"

var (
	// ErrNoSession reports a missing, unknown or expired session.
	ErrNoSession = errors.New("no_session")
)

// ValidationError marks an input the caller can fix. Handlers translate it to
// a 400 with the wrapped message.
type ValidationError struct {
	Err error
}

func (e ValidationError) Error() string { return e.Err.Error() }
func (e ValidationError) Unwrap() error { return e.Err }

func invalid(err error) error { return ValidationError{Err: err} }
