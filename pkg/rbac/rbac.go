// Package rbac admits requests by the role of the authenticated user.
package rbac

import (
	"context"
	"errors"
	"net/http"

	"github.com/shashiranjanraj/flowershop/pkg/auth"
	"github.com/shashiranjanraj/flowershop/pkg/logger"
	"github.com/shashiranjanraj/flowershop/pkg/middleware"
	"github.com/shashiranjanraj/flowershop/pkg/response"
)

// MsgRoleMismatch is returned to callers whose role does not fit the route.
const MsgRoleMismatch = "You do not have permission to perform this action"

// Gate is satisfied by *auth.Gate.
type Gate interface {
	Lookup(ctx context.Context, identity string) (auth.Principal, error)
	RequireRole(ctx context.Context, identity string, role auth.Role) (auth.Principal, error)
}

// AnyRole admits every existing user and stores the principal in the
// request context. middleware.Authenticate must run first.
func AnyRole(gate Gate) func(http.Handler) http.Handler {
	return admit(func(ctx context.Context, identity string) (auth.Principal, error) {
		p, err := gate.Lookup(ctx, identity)
		if errors.Is(err, auth.ErrPrincipalNotFound) {
			return p, auth.ErrRoleMismatch
		}
		return p, err
	})
}

// HasRole admits only principals of the given role and stores the principal
// in the request context. middleware.Authenticate must run first.
func HasRole(gate Gate, role auth.Role) func(http.Handler) http.Handler {
	return admit(func(ctx context.Context, identity string) (auth.Principal, error) {
		return gate.RequireRole(ctx, identity, role)
	})
}

func admit(resolve func(context.Context, string) (auth.Principal, error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := middleware.IdentityFromCtx(r.Context())
			if !ok {
				response.Unauthorized(w, middleware.MsgMissingCredential)
				return
			}

			p, err := resolve(r.Context(), identity)
			switch {
			case errors.Is(err, auth.ErrRoleMismatch):
				response.Forbidden(w, MsgRoleMismatch)
				return
			case err != nil:
				logger.WithCtx(r.Context()).Error("principal lookup failed", "identity", identity, "error", err)
				response.Error(w, http.StatusInternalServerError, "Internal Server Error")
				return
			}

			next.ServeHTTP(w, r.WithContext(middleware.WithPrincipal(r.Context(), p)))
		})
	}
}
