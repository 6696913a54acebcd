package auth

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// LoginLogs is the append-only audit repository. There is deliberately no
// update or delete surface.
type LoginLogs interface {
	repository.Repository[*LoginLog]
	LoginRecorder
}

type loginLogs struct {
	repository.Repository[*LoginLog]
}

var _ LoginLogs = (*loginLogs)(nil)

// NewLoginLogsRepository returns the bun-backed login attempt log.
func NewLoginLogsRepository(db *bun.DB) LoginLogs {
	repo := repository.NewRepository[*LoginLog](db, repository.ModelHandlers[*LoginLog]{
		NewRecord: func() *LoginLog { return &LoginLog{} },
		GetID: func(l *LoginLog) uuid.UUID {
			if l == nil {
				return uuid.Nil
			}
			return l.ID
		},
		SetID: func(l *LoginLog, id uuid.UUID) {
			if l != nil {
				l.ID = id
			}
		},
		GetIdentifier: func() string {
			return "username"
		},
	})

	return &loginLogs{Repository: repo}
}

// Record implements LoginRecorder by appending one row per attempt.
func (a *loginLogs) Record(ctx context.Context, entry LoginLog) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}

	if _, err := a.Create(ctx, &entry); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "could not append login log")
	}

	return nil
}
