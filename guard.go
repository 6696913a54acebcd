package auth

import (
	"crypto/subtle"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-router"
)

const bearerScheme = "Bearer"

// Authenticated is the request authentication guard. It extracts the access
// token, verifies signature and expiry, then re-loads the account and
// compares the token's embedded login key against the stored one. The store
// read is a deliberate latency trade: it is what makes logout and
// login-elsewhere actually revoke tokens whose signatures still verify.
//
// Every failure clears both session cookies before answering 401.
func (a *RouteAuthenticator) Authenticated() router.MiddlewareFunc {
	return func(next router.HandlerFunc) router.HandlerFunc {
		return func(c router.Context) error {
			raw, err := extractAccessToken(c)
			if err != nil {
				return a.failAuthentication(c, err)
			}

			claims, err := a.tokens.ValidateAccess(raw)
			if err != nil {
				return a.failAuthentication(c, err)
			}

			user, err := a.users.GetByUsername(c.Context(), claims.Username)
			if err != nil {
				if goerrors.IsNotFound(err) {
					return a.failAuthentication(c, ErrSessionRevoked)
				}
				return a.failAuthentication(c, wrapStoreError(err, "failed to load user during authentication"))
			}

			if !loginKeysMatch(claims.LoginKey, user.LoginKey) {
				return a.failAuthentication(c, ErrSessionRevoked)
			}

			bindPrincipal(c, principalFromClaims(claims))

			return next(c)
		}
	}
}

func (a *RouteAuthenticator) failAuthentication(c router.Context, err error) error {
	a.ClearSessionCookies(c)
	return a.AuthErrorHandler(c, err)
}

// extractAccessToken prefers the session cookie and falls back to an
// Authorization bearer header for non-browser clients.
func extractAccessToken(c router.Context) (string, error) {
	if raw := c.Cookies(AccessTokenCookie); raw != "" {
		return raw, nil
	}

	header := c.Header(router.HeaderAuthorization)
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], bearerScheme) && parts[1] != "" {
		return parts[1], nil
	}

	return "", ErrUnableToFindSession
}

// loginKeysMatch compares markers in constant time. An account whose key
// was cleared (logout) matches nothing: an empty stored key rejects every
// token, including one that somehow carries an empty marker.
func loginKeysMatch(tokenKey, storedKey string) bool {
	if storedKey == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(tokenKey), []byte(storedKey)) == 1
}
