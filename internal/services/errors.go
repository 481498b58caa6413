package services

import (
	"errors"

	"merchantgate/internal/identity"
	"merchantgate/internal/repositories"
)

// ErrAccessTokenRequired is returned before any provider or database call when the token is empty.
var ErrAccessTokenRequired = identity.ErrTokenRequired

// CallerInputError reports a request the caller has to fix: a missing or invalid field,
// a malformed token, or a token whose subject has no account.
type CallerInputError struct {
	Msg string
	Err error
}

func (e *CallerInputError) Error() string {
	return e.Msg
}

func (e *CallerInputError) Unwrap() error {
	return e.Err
}

// NewCallerInputError wraps err so the HTTP layer answers 400 with err's message.
func NewCallerInputError(err error) *CallerInputError {
	return &CallerInputError{Msg: err.Error(), Err: err}
}

// classify turns lower-level errors that are the caller's fault into CallerInputError.
func classify(err error) error {
	if errors.Is(err, identity.ErrTokenMalformed) || errors.Is(err, repositories.ErrUserNotFound) {
		return NewCallerInputError(err)
	}
	return err
}
