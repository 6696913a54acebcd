package auth

import (
	"context"

	"github.com/goliatone/go-router"
)

var principalCtxKey = &contextKey{"principal"}

// PrincipalLocalsKey is the router locals key the authentication guard
// binds the request's principal under.
const PrincipalLocalsKey = "auth_principal"

type contextKey struct {
	name string
}

// WithPrincipal sets the Principal in the given context
func WithPrincipal(ctx context.Context, principal *Principal) context.Context {
	return context.WithValue(ctx, principalCtxKey, principal)
}

// PrincipalFromContext finds the principal from the standard context.
func PrincipalFromContext(ctx context.Context) (*Principal, bool) {
	raw, ok := ctx.Value(principalCtxKey).(*Principal)
	return raw, ok
}

// PrincipalFromRouterContext extracts the principal from the router context
func PrincipalFromRouterContext(c router.Context) (*Principal, bool) {
	raw := c.Locals(PrincipalLocalsKey)
	if raw == nil {
		return nil, false
	}
	principal, ok := raw.(*Principal)
	return principal, ok
}

func bindPrincipal(c router.Context, principal *Principal) {
	c.Locals(PrincipalLocalsKey, principal)
	c.SetContext(WithPrincipal(c.Context(), principal))
}
