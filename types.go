package auth

import (
	"context"
	"fmt"
	"time"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// Authenticator holds methods to deal with authentication
type Authenticator interface {
	Login(ctx context.Context, username, password, referrer string) (*TokenPair, error)
	Logout(ctx context.Context, userID int64) error
	Refresh(ctx context.Context, refreshToken string) (string, error)
}

// TokenPair is the access/refresh pair minted on a successful login. Both
// values are bearer credentials and are only ever transported as cookies.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// TokenService signs and validates the session token pair
type TokenService interface {
	SignAccessToken(user *User) (string, error)
	SignRefreshToken(userID int64) (string, error)
	ValidateAccess(token string) (*AccessClaims, error)
	ValidateRefresh(token string) (*RefreshClaims, error)
}

// UserStore ensure we have a store to retrieve and persist accounts
type UserStore interface {
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByNickname(ctx context.Context, nickname string) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	List(ctx context.Context, page, limit int) ([]*User, int, error)
	Create(ctx context.Context, user *User) (*User, error)
	Update(ctx context.Context, user *User) (*User, error)
	UpdateLoginKey(ctx context.Context, id int64, key string) error
	Delete(ctx context.Context, id int64) error
}

// PasswordAuthenticator authenticates passwords
type PasswordAuthenticator interface {
	HashPassword(password string) (string, error)
	ComparePasswordAndHash(password, hash string) error
}

// Config holds auth options
type Config interface {
	GetSigningKey() string
	GetSigningMethod() string
	GetAccessTokenTTL() time.Duration
	GetRefreshTokenTTL() time.Duration
	GetIssuer() string
	GetAudience() []string
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] AUTH "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] AUTH "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] AUTH "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] AUTH "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
