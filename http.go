package auth

import (
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-router"
)

const (
	// AccessTokenCookie names the cookie carrying the access token
	AccessTokenCookie = "accessToken"
	// RefreshTokenCookie names the cookie carrying the refresh token
	RefreshTokenCookie = "refreshToken"
)

// HTTPAuthenticator is the transport-facing surface of the authenticator
type HTTPAuthenticator interface {
	Login(c router.Context, username, password string) error
	Logout(c router.Context) error
	Refresh(c router.Context) error
	Authenticated() router.MiddlewareFunc
	ClearSessionCookies(c router.Context)
}

type RouteAuthenticator struct {
	auth             Authenticator
	users            UserStore
	tokens           TokenService
	cfg              Config
	Logger           Logger
	AuthErrorHandler func(c router.Context, err error) error
}

var _ HTTPAuthenticator = (*RouteAuthenticator)(nil)

// NewHTTPAuthenticator wires the authenticator to the cookie transport. The
// user store is needed per request: signature verification alone cannot
// express revocation, so the guard re-reads the account's current login key.
func NewHTTPAuthenticator(auther *Auther, users UserStore, cfg Config) (*RouteAuthenticator, error) {
	if auther == nil {
		return nil, goerrors.New("authenticator is required", goerrors.CategoryInternal)
	}

	a := &RouteAuthenticator{
		auth:   auther,
		users:  users,
		tokens: auther.TokenService(),
		cfg:    cfg,
		Logger: defLogger{},
	}

	a.AuthErrorHandler = a.defaultAuthErrHandler

	return a, nil
}

func (a *RouteAuthenticator) WithLogger(logger Logger) *RouteAuthenticator {
	a.Logger = logger
	return a
}

// Login runs the credential flow and, on success, emits the token pair as
// session cookies. Tokens are never written to a response body.
func (a *RouteAuthenticator) Login(c router.Context, username, password string) error {
	pair, err := a.auth.Login(c.Context(), username, password, c.Referer())
	if err != nil {
		a.Logger.Error("Login error: %s", err)
		return err
	}

	a.setSessionCookie(c, AccessTokenCookie, pair.AccessToken, a.cfg.GetAccessTokenTTL())
	a.setSessionCookie(c, RefreshTokenCookie, pair.RefreshToken, a.cfg.GetRefreshTokenTTL())
	return nil
}

// Logout clears the account's login key and drops both cookies. The cookie
// clear happens regardless of whether the key write succeeded.
func (a *RouteAuthenticator) Logout(c router.Context) error {
	defer a.ClearSessionCookies(c)

	principal, ok := PrincipalFromRouterContext(c)
	if !ok {
		return ErrUnableToFindSession
	}

	return a.auth.Logout(c.Context(), principal.ID)
}

// Refresh exchanges the refresh cookie for a fresh access cookie.
func (a *RouteAuthenticator) Refresh(c router.Context) error {
	raw := c.Cookies(RefreshTokenCookie)
	if raw == "" {
		return ErrUnableToFindSession
	}

	access, err := a.auth.Refresh(c.Context(), raw)
	if err != nil {
		a.ClearSessionCookies(c)
		return err
	}

	a.setSessionCookie(c, AccessTokenCookie, access, a.cfg.GetAccessTokenTTL())
	return nil
}

// ClearSessionCookies expires both session cookies so the client is forced
// through a clean re-login instead of retry-looping a dead token.
func (a *RouteAuthenticator) ClearSessionCookies(c router.Context) {
	a.cookieDel(c, AccessTokenCookie)
	a.cookieDel(c, RefreshTokenCookie)
}

func (a *RouteAuthenticator) setSessionCookie(c router.Context, name, val string, duration time.Duration) {
	c.Cookie(&router.Cookie{
		Name:     name,
		Value:    val,
		Expires:  time.Now().Add(duration),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Strict",
	})
}

func (a *RouteAuthenticator) cookieDel(c router.Context, name string) {
	c.Cookie(&router.Cookie{
		Name:     name,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour * (24 * 365)),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Strict",
	})
}

func (a *RouteAuthenticator) defaultAuthErrHandler(c router.Context, err error) error {
	richErr := asRichError(err)

	a.Logger.Info(
		"Authentication error",
		"error", richErr.Message,
		"text_code", richErr.TextCode,
		"path", c.OriginalURL(),
	)

	return JSONError(c, richErr)
}
