package auth

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// Auther orchestrates credential verification, login key rotation, and
// token issuance. One successful login per account is live at a time:
// every login rewrites the account's login key, which makes every token
// minted before it unverifiable on its next use.
type Auther struct {
	users         UserStore
	tokenService  TokenService
	loginRecorder LoginRecorder
	logger        Logger
}

// NewAuthenticator returns a new Authenticator
func NewAuthenticator(users UserStore, cfg Config) *Auther {
	return &Auther{
		users:         users,
		tokenService:  NewTokenService(cfg, defLogger{}),
		loginRecorder: noopLoginRecorder{},
		logger:        defLogger{},
	}
}

func (s *Auther) WithLogger(logger Logger) *Auther {
	s.logger = logger
	return s
}

// WithTokenService overrides the default token service.
func (s *Auther) WithTokenService(ts TokenService) *Auther {
	s.tokenService = ts
	return s
}

// WithLoginRecorder configures the audit sink for login attempts.
func (s *Auther) WithLoginRecorder(recorder LoginRecorder) *Auther {
	s.loginRecorder = normalizeLoginRecorder(recorder)
	return s
}

// TokenService returns the TokenService instance used by this Authenticator
func (s *Auther) TokenService() TokenService {
	return s.tokenService
}

// Login verifies the credentials and, on success, rotates the account's
// login key before minting a fresh token pair. Unknown usernames and wrong
// passwords collapse into the same opaque error; the distinction only
// survives in the server-side log and the audit trail.
func (s *Auther) Login(ctx context.Context, username, password, referrer string) (*TokenPair, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if goerrors.IsNotFound(err) {
			s.logger.Warn("Login user not found", "username", username)
			s.recordAttempt(ctx, newLoginLog(username, "", referrer, LoginResultError))
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("Login user lookup error", "username", username, "error", err)
		return nil, wrapStoreError(err, "failed to retrieve user during login")
	}

	if err := ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		if goerrors.Is(err, ErrMismatchedHashAndPassword) {
			s.logger.Warn("Login invalid password", "username", username)
			s.recordAttempt(ctx, newLoginLog(username, user.LoginKey, referrer, LoginResultError))
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	// Rotating the key here is the "logout everywhere on re-login" policy:
	// from this write forward no previously issued token verifies.
	loginKey := uuid.NewString()
	user.LoginKey = loginKey

	if err := s.users.UpdateLoginKey(ctx, user.ID, loginKey); err != nil {
		s.logger.Error("Login key rotation failed", "username", username, "error", err)
		return nil, wrapStoreError(err, "failed to rotate login key")
	}

	s.recordAttempt(ctx, newLoginLog(username, loginKey, referrer, LoginResultSuccess))

	access, err := s.tokenService.SignAccessToken(user)
	if err != nil {
		s.logger.Error("Login access token signing failed", "username", username, "error", err)
		return nil, err
	}

	refresh, err := s.tokenService.SignRefreshToken(user.ID)
	if err != nil {
		s.logger.Error("Login refresh token signing failed", "username", username, "error", err)
		return nil, err
	}

	s.logger.Info("Login successful", "username", username)

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Logout clears the account's login key, ending every outstanding session.
func (s *Auther) Logout(ctx context.Context, userID int64) error {
	if err := s.users.UpdateLoginKey(ctx, userID, ""); err != nil {
		s.logger.Error("Logout key clear failed", "user_id", userID, "error", err)
		return wrapStoreError(err, "failed to clear login key")
	}

	s.logger.Info("Logout successful", "user_id", userID)
	return nil
}

// Refresh exchanges a valid refresh token for a fresh access token. The new
// token embeds the account's current login key, so an account whose key was
// rotated or cleared since the refresh token was minted still ends up with
// a token that matches the stored key, and a deleted account gets nothing.
func (s *Auther) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.tokenService.ValidateRefresh(refreshToken)
	if err != nil {
		s.logger.Warn("Refresh token validation failed", "error", err)
		return "", err
	}

	user, err := s.users.GetByID(ctx, claims.UID)
	if err != nil {
		if goerrors.IsNotFound(err) {
			s.logger.Warn("Refresh for unknown account", "user_id", claims.UID)
			return "", ErrInvalidCredentials
		}
		return "", wrapStoreError(err, "failed to retrieve user during refresh")
	}

	return s.tokenService.SignAccessToken(user)
}

func (s *Auther) recordAttempt(ctx context.Context, entry LoginLog) {
	recorder := normalizeLoginRecorder(s.loginRecorder)
	if err := recorder.Record(ctx, entry); err != nil {
		s.logger.Warn("login recorder error: %v", err)
	}
}
