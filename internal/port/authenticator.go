package port

import (
	"context"
	"errors"
)

var ErrInvalidToken = errors.New("invalid token")

// Identity is the resolved caller. Privileged is an explicit capability,
// never derived from comparing literal credentials.
type Identity struct {
	Email      string
	Privileged bool
}

type Authenticator interface {
	// Authenticate resolves a bearer credential to an identity, returning
	// ErrInvalidToken when the credential is unknown.
	Authenticate(ctx context.Context, token string) (Identity, error)
}
