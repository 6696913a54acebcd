package auth

import (
	"context"
	"time"
)

// LoginRecorder consumes login attempt records for auditing purposes.
// Recorders run best-effort: a failing recorder is logged and never blocks
// or rolls back the login that produced the record.
type LoginRecorder interface {
	Record(ctx context.Context, entry LoginLog) error
}

// LoginRecorderFunc adapts a function to the LoginRecorder interface.
type LoginRecorderFunc func(ctx context.Context, entry LoginLog) error

// Record implements LoginRecorder.
func (f LoginRecorderFunc) Record(ctx context.Context, entry LoginLog) error {
	if f == nil {
		return nil
	}
	return f(ctx, entry)
}

type noopLoginRecorder struct{}

func (noopLoginRecorder) Record(context.Context, LoginLog) error {
	return nil
}

func normalizeLoginRecorder(r LoginRecorder) LoginRecorder {
	if r == nil {
		return noopLoginRecorder{}
	}
	return r
}

func newLoginLog(username, loginKey, connectURL string, result LoginResult) LoginLog {
	now := time.Now()
	return LoginLog{
		Username:   username,
		LoginKey:   loginKey,
		ConnectURL: connectURL,
		Result:     result,
		CreatedAt:  &now,
	}
}
