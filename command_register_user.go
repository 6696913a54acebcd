package auth

import (
	"context"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

type RegisterUserMessage struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Nickname string `json:"nickname"`
	Email    string `json:"email"`
}

func (e RegisterUserMessage) Type() string { return "user.register" }

// RegisterUserHandler creates a new account. Registration issues no tokens;
// a separate login call is required to start a session.
type RegisterUserHandler struct {
	repo RepositoryManager
}

func NewRegisterUserHandler(repo RepositoryManager) *RegisterUserHandler {
	return &RegisterUserHandler{repo: repo}
}

func (h *RegisterUserHandler) Execute(ctx context.Context, event RegisterUserMessage) error {
	select {
	case <-ctx.Done():
		return goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during user registration",
		)
	default:
		return h.execute(ctx, event)
	}
}

func (h *RegisterUserHandler) execute(ctx context.Context, event RegisterUserMessage) error {
	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	err := h.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		store := h.repo.UsersTx(tx)

		// Uniqueness checks run inside the same transaction as the insert.
		if _, err := store.GetByUsername(ctx, event.Username); err == nil {
			return ErrDuplicateUsername
		} else if !goerrors.IsNotFound(err) {
			return wrapStoreError(err, "failed to check username availability")
		}

		if _, err := store.GetByNickname(ctx, event.Nickname); err == nil {
			return ErrDuplicateNickname
		} else if !goerrors.IsNotFound(err) {
			return wrapStoreError(err, "failed to check nickname availability")
		}

		user := &User{
			Username:  event.Username,
			Nickname:  event.Nickname,
			Email:     event.Email,
			Authority: AuthorityUser,
		}
		user.SetPassword(event.Password)

		if _, err := store.Create(ctx, user); err != nil {
			var richErr *goerrors.Error
			if goerrors.As(err, &richErr) {
				return richErr
			}
			return goerrors.Wrap(err, goerrors.CategoryConflict, "could not create user")
		}

		return nil
	})

	if err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			return richErr
		}

		return goerrors.Wrap(err, goerrors.CategoryInternal, "user registration transaction failed")
	}

	return nil
}
