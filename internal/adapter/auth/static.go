package auth

import (
	"context"
	"strings"

	"github.com/jayakishorers/jersey-backend/internal/port"
)

// StaticAuthenticator resolves bearer tokens from a fixed table loaded at
// startup. Privileged is an explicit per-token capability, so nothing in
// the system ever compares literal credentials to decide admin access.
type StaticAuthenticator struct {
	identities map[string]port.Identity
}

type Credential struct {
	Token      string
	Email      string
	Privileged bool
}

func NewStaticAuthenticator(creds []Credential) *StaticAuthenticator {
	identities := make(map[string]port.Identity, len(creds))
	for _, c := range creds {
		identities[c.Token] = port.Identity{
			Email:      strings.ToLower(c.Email),
			Privileged: c.Privileged,
		}
	}
	return &StaticAuthenticator{identities: identities}
}

func (a *StaticAuthenticator) Authenticate(ctx context.Context, token string) (port.Identity, error) {
	identity, ok := a.identities[token]
	if !ok {
		return port.Identity{}, port.ErrInvalidToken
	}
	return identity, nil
}
