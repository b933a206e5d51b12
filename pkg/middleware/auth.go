package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/shashiranjanraj/flowershop/pkg/auth"
	"github.com/shashiranjanraj/flowershop/pkg/logger"
	"github.com/shashiranjanraj/flowershop/pkg/response"
)

// Client-facing messages. The underlying reason is only logged.
const (
	MsgMissingCredential = "Authentication credentials were not provided"
	MsgInvalidToken      = "Invalid token"
)

type identityKey struct{}
type principalKey struct{}

// IdentityResolver is satisfied by *auth.Gate.
type IdentityResolver interface {
	ResolveIdentity(header string) (string, error)
}

// Authenticate verifies the bearer token and stores the identity in the
// request context. A missing header is a 401, anything else a 403.
func Authenticate(gate IdentityResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := gate.ResolveIdentity(r.Header.Get("Authorization"))
			if err != nil {
				logger.WithCtx(r.Context()).Debug("authentication failed", "error", err)
				if errors.Is(err, auth.ErrMissingCredential) {
					response.Unauthorized(w, MsgMissingCredential)
					return
				}
				response.Forbidden(w, MsgInvalidToken)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
		})
	}
}

// WithIdentity stores a verified identity in ctx.
func WithIdentity(ctx context.Context, identity string) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// IdentityFromCtx returns the identity stored by Authenticate.
func IdentityFromCtx(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(identityKey{}).(string)
	return id, ok && id != ""
}

// WithPrincipal stores a role-checked principal in ctx.
func WithPrincipal(ctx context.Context, p auth.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromCtx returns the principal stored by rbac.HasRole.
func PrincipalFromCtx(ctx context.Context) (auth.Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(auth.Principal)
	return p, ok
}
