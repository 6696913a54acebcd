package auth

import (
	goerrors "github.com/goliatone/go-errors"
)

// ErrInvalidCredentials is returned for unknown usernames and wrong
// passwords alike. Callers must not be able to tell which one it was.
var ErrInvalidCredentials = goerrors.New("invalid username or password", goerrors.CategoryAuth).
	WithTextCode("INVALID_CREDENTIALS").
	WithCode(goerrors.CodeUnauthorized)

// ErrUnableToFindSession is the error when the request has no session cookie
var ErrUnableToFindSession = goerrors.New("unable to find session", goerrors.CategoryAuth).
	WithTextCode("SESSION_MISSING").
	WithCode(goerrors.CodeUnauthorized)

// ErrTokenExpired is returned when a token's signature verifies but its
// expiry has passed
var ErrTokenExpired = goerrors.New("session token is expired", goerrors.CategoryAuth).
	WithTextCode("TOKEN_EXPIRED").
	WithCode(goerrors.CodeUnauthorized)

// ErrTokenMalformed covers bad signatures and undecodable tokens
var ErrTokenMalformed = goerrors.New("session token is malformed", goerrors.CategoryAuth).
	WithTextCode("TOKEN_MALFORMED").
	WithCode(goerrors.CodeUnauthorized)

// ErrSessionRevoked is returned when a token's embedded login key no longer
// matches the account's current one. The signature is still valid; the
// session was ended by a logout, a newer login or an admin action.
var ErrSessionRevoked = goerrors.New("session has been revoked", goerrors.CategoryAuth).
	WithTextCode("SESSION_REVOKED").
	WithCode(goerrors.CodeUnauthorized)

// ErrForbidden is returned when an authenticated principal lacks a required role
var ErrForbidden = goerrors.New("insufficient role for this resource", goerrors.CategoryAuthz).
	WithTextCode("INSUFFICIENT_ROLE").
	WithCode(goerrors.CodeForbidden)

// ErrDuplicateUsername rejects registration on a taken username
var ErrDuplicateUsername = goerrors.New("username is already in use", goerrors.CategoryConflict).
	WithTextCode("USERNAME_TAKEN").
	WithCode(goerrors.CodeConflict)

// ErrDuplicateNickname rejects registration on a taken nickname
var ErrDuplicateNickname = goerrors.New("nickname is already in use", goerrors.CategoryConflict).
	WithTextCode("NICKNAME_TAKEN").
	WithCode(goerrors.CodeConflict)

// ErrNoEmptyString rejects empty plaintext passwords before hashing
var ErrNoEmptyString = goerrors.New("value must not be empty", goerrors.CategoryValidation).
	WithTextCode("EMPTY_VALUE").
	WithCode(goerrors.CodeBadRequest)

// ErrMismatchedHashAndPassword is the internal bcrypt mismatch marker. It is
// collapsed into ErrInvalidCredentials before leaving the authenticator.
var ErrMismatchedHashAndPassword = goerrors.New("password does not match", goerrors.CategoryAuth).
	WithTextCode("PASSWORD_MISMATCH").
	WithCode(goerrors.CodeUnauthorized)

// wrapStoreError normalizes unexpected store failures. Not-found flows are
// the caller's business and are left untouched.
func wrapStoreError(err error, msg string) error {
	if goerrors.IsNotFound(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryInternal, msg)
}
