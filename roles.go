package auth

import (
	"strings"

	"github.com/goliatone/go-router"
)

// IsValidAuthority checks if the role is one of the predefined valid roles
func IsValidAuthority(role string) bool {
	switch normalizeRole(role) {
	case AuthorityAdmin, AuthorityUser:
		return true
	default:
		return false
	}
}

func normalizeRole(role string) string {
	return strings.ToUpper(strings.TrimSpace(role))
}

func normalizeRoles(roles []string) []string {
	out := make([]string, 0, len(roles))
	for _, role := range roles {
		if r := normalizeRole(role); r != "" {
			out = append(out, r)
		}
	}
	return out
}

// RoleRegistry is the explicit route -> required-role table, populated at
// startup and consulted by the role guard as a plain lookup. An entry with
// an empty role set means authentication without further authorization.
type RoleRegistry struct {
	routes map[string][]string
}

// NewRoleRegistry builds an empty registry.
func NewRoleRegistry() *RoleRegistry {
	return &RoleRegistry{routes: map[string][]string{}}
}

// Require declares the role set for a method/path pair. Declarations are
// expected at startup, before the server accepts requests; the registry is
// read-only afterwards.
func (r *RoleRegistry) Require(method, path string, roles ...string) *RoleRegistry {
	r.routes[routeKey(method, path)] = normalizeRoles(roles)
	return r
}

// Lookup returns the declared role set for a route. A missing entry and an
// empty entry mean the same thing: no role requirement.
func (r *RoleRegistry) Lookup(method, path string) []string {
	if r == nil {
		return nil
	}
	return r.routes[routeKey(method, path)]
}

func routeKey(method, path string) string {
	return strings.ToUpper(strings.TrimSpace(method)) + " " + strings.TrimSpace(path)
}

// RequireRoles is the role authorization guard for one declared route. It
// runs strictly after the authentication guard and is a pure predicate: the
// principal's authority set must intersect the declared set. Comparison is
// case-insensitive and whitespace-trimmed on both sides. The required set
// is resolved from the registry once, at route registration.
func RequireRoles(registry *RoleRegistry, method, path string, errorHandler router.ErrorHandler) router.MiddlewareFunc {
	required := registry.Lookup(method, path)

	return func(next router.HandlerFunc) router.HandlerFunc {
		return func(c router.Context) error {
			if len(required) == 0 {
				return next(c)
			}

			principal, ok := PrincipalFromRouterContext(c)
			if !ok {
				return errorHandler(c, ErrUnableToFindSession)
			}

			if !intersects(principal.Authorities(), required) {
				return errorHandler(c, ErrForbidden)
			}

			return next(c)
		}
	}
}

func intersects(have, want []string) bool {
	for _, h := range have {
		for _, w := range want {
			if h == w {
				return true
			}
		}
	}
	return false
}
