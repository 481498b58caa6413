package identity

import (
	"context"
	"errors"
)

// SubjectAttribute is the attribute the provider uses for the stable subject id.
const SubjectAttribute = "sub"

var (
	// ErrTokenRequired is returned when the caller supplied no access token.
	ErrTokenRequired = errors.New("Access token is required")
	// ErrTokenMalformed is returned when the access token is not a well-formed JWT.
	ErrTokenMalformed = errors.New("Access token is malformed")
	// ErrMissingSubject means the provider accepted the token but returned no sub attribute.
	ErrMissingSubject = errors.New("Unable to retrieve user sub from Cognito.")
)

// ProviderError carries a failure reported by the identity provider: rejected or expired token,
// or the provider being unreachable.
type ProviderError struct {
	Code    string
	Message string
	Err     error
}

func (e *ProviderError) Error() string {
	return e.Message
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Resolver turns an access token into the subject id of its owner.
// Implementations never cache; every call asks the provider.
type Resolver interface {
	Resolve(ctx context.Context, accessToken string) (string, error)
}
