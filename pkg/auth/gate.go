package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Gate failures. All of them are reported to clients as a single
// unauthorized/forbidden outcome; the distinction is for logs and tests.
var (
	ErrMissingCredential = errors.New("auth: missing credential")
	ErrUnsupportedScheme = errors.New("auth: unsupported authorization scheme")
	ErrInvalidToken      = errors.New("auth: invalid token")
	ErrRoleMismatch      = errors.New("auth: role mismatch")
)

// ErrPrincipalNotFound is returned by a Directory when no user has the id.
var ErrPrincipalNotFound = errors.New("auth: principal not found")

const bearerScheme = "Bearer"

// Principal is the acting user behind a verified identity.
type Principal struct {
	ID       string
	Username string
	Role     Role
}

// Directory resolves an identity to its user row.
type Directory interface {
	Principal(ctx context.Context, id string) (Principal, error)
}

// Verifier is satisfied by *Codec.
type Verifier interface {
	Verify(token string) (string, error)
}

// Gate turns a credential header into a verified acting identity.
type Gate struct {
	tokens Verifier
	users  Directory
}

// NewGate builds a Gate.
func NewGate(tokens Verifier, users Directory) *Gate {
	return &Gate{tokens: tokens, users: users}
}

// ResolveIdentity parses "Bearer <token>" and verifies the token.
func (g *Gate) ResolveIdentity(header string) (string, error) {
	if header == "" {
		return "", ErrMissingCredential
	}

	scheme, token, ok := strings.Cut(header, " ")
	if !ok || scheme != bearerScheme || token == "" || strings.Contains(token, " ") {
		return "", ErrUnsupportedScheme
	}

	identity, err := g.tokens.Verify(token)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	return identity, nil
}

// Lookup loads the user for identity. A token whose user no longer exists
// yields ErrPrincipalNotFound.
func (g *Gate) Lookup(ctx context.Context, identity string) (Principal, error) {
	return g.users.Principal(ctx, identity)
}

// RequireRole loads the user for identity and checks its role.
func (g *Gate) RequireRole(ctx context.Context, identity string, role Role) (Principal, error) {
	p, err := g.Lookup(ctx, identity)
	if err != nil {
		if errors.Is(err, ErrPrincipalNotFound) {
			return Principal{}, ErrRoleMismatch
		}
		return Principal{}, err
	}
	if p.Role != role {
		return Principal{}, ErrRoleMismatch
	}
	return p, nil
}

// Authorize is ResolveIdentity followed by RequireRole.
func (g *Gate) Authorize(ctx context.Context, header string, role Role) (Principal, error) {
	identity, err := g.ResolveIdentity(header)
	if err != nil {
		return Principal{}, err
	}
	return g.RequireRole(ctx, identity, role)
}
