package auth

import (
	"context"
	"database/sql"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

type users struct {
	db bun.IDB
}

var _ UserStore = (*users)(nil)

// NewUsersRepository returns the bun-backed UserStore.
func NewUsersRepository(db bun.IDB) UserStore {
	return &users{db: db}
}

func (a *users) GetByUsername(ctx context.Context, username string) (*User, error) {
	return a.getOne(ctx, "usr.username = ?", username)
}

func (a *users) GetByNickname(ctx context.Context, nickname string) (*User, error) {
	return a.getOne(ctx, "usr.nickname = ?", nickname)
}

func (a *users) GetByID(ctx context.Context, id int64) (*User, error) {
	return a.getOne(ctx, "usr.id = ?", id)
}

func (a *users) getOne(ctx context.Context, where string, arg any) (*User, error) {
	user := &User{}
	err := a.db.NewSelect().
		Model(user).
		Where(where, arg).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if goerrors.Is(err, sql.ErrNoRows) {
			return nil, errUserNotFound(arg)
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "user lookup failed")
	}

	return user, nil
}

func (a *users) List(ctx context.Context, page, limit int) ([]*User, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	var records []*User
	total, err := a.db.NewSelect().
		Model(&records).
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		ScanAndCount(ctx)

	if err != nil {
		return nil, 0, goerrors.Wrap(err, goerrors.CategoryInternal, "user list failed")
	}

	return records, total, nil
}

func (a *users) Create(ctx context.Context, user *User) (*User, error) {
	if err := user.HashStagedPassword(); err != nil {
		return nil, err
	}

	if _, err := a.db.NewInsert().Model(user).Returning("*").Exec(ctx); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryConflict, "could not create user")
	}

	return user, nil
}

func (a *users) Update(ctx context.Context, user *User) (*User, error) {
	if err := user.HashStagedPassword(); err != nil {
		return nil, err
	}

	now := time.Now()
	user.UpdatedAt = &now

	res, err := a.db.NewUpdate().
		Model(user).
		WherePK().
		Returning("*").
		Exec(ctx)

	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "could not update user")
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return nil, errUserNotFound(user.ID)
	}

	return user, nil
}

func (a *users) UpdateLoginKey(ctx context.Context, id int64, key string) error {
	res, err := a.db.NewUpdate().
		Model((*User)(nil)).
		Set("login_key = ?", key).
		Set("updated_at = ?", time.Now()).
		Where("usr.id = ?", id).
		Exec(ctx)

	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "could not update login key")
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return errUserNotFound(id)
	}

	return nil
}

func (a *users) Delete(ctx context.Context, id int64) error {
	res, err := a.db.NewDelete().
		Model((*User)(nil)).
		Where("usr.id = ?", id).
		Exec(ctx)

	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "could not delete user")
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return errUserNotFound(id)
	}

	return nil
}

func errUserNotFound(identifier any) error {
	return goerrors.New("user not found", goerrors.CategoryNotFound).
		WithTextCode("USER_NOT_FOUND").
		WithMetadata(map[string]any{"identifier": identifier})
}
