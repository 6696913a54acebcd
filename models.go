package auth

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Authority is the user's role
type Authority = string

const (
	// AuthorityAdmin can manage accounts
	AuthorityAdmin Authority = "ADMIN"
	// AuthorityUser is the default role for new registrations
	AuthorityUser Authority = "USER"
)

// User is the account model. LoginKey is the revocation marker: a token is
// honored only while the key it carries equals this column, so rewriting it
// ends every outstanding session for the account at once.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            int64      `bun:"id,pk,autoincrement" json:"id,omitempty"`
	Username      string     `bun:"username,notnull,unique" json:"username,omitempty"`
	PasswordHash  string     `bun:"password_hash,notnull" json:"-"`
	Nickname      string     `bun:"nickname,notnull,unique" json:"nickname,omitempty"`
	Email         string     `bun:"email,notnull" json:"email,omitempty"`
	Authority     Authority  `bun:"authority,notnull" json:"authority,omitempty"`
	LoginKey      string     `bun:"login_key,notnull" json:"-"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`

	password      string
	passwordDirty bool
}

// SetPassword stages a plaintext password for hashing on the next persist.
// Updates that never call it keep the stored hash untouched, which is what
// prevents an already-hashed value from being hashed twice.
func (u *User) SetPassword(plaintext string) *User {
	u.password = plaintext
	u.passwordDirty = true
	return u
}

// PasswordChanged reports whether a new plaintext is staged.
func (u *User) PasswordChanged() bool {
	return u.passwordDirty
}

// HashStagedPassword hashes the staged plaintext into PasswordHash and
// clears the dirty flag. No-op when nothing is staged.
func (u *User) HashStagedPassword() error {
	if !u.passwordDirty {
		return nil
	}

	hash, err := HashPassword(u.password)
	if err != nil {
		return err
	}

	u.PasswordHash = hash
	u.password = ""
	u.passwordDirty = false
	return nil
}

// LoginResult is the outcome recorded for a login attempt
type LoginResult = string

const (
	// LoginResultSuccess marks attempts that produced a session
	LoginResultSuccess LoginResult = "SUCCESS"
	// LoginResultError marks attempts that failed for any reason
	LoginResultError LoginResult = "ERROR"
)

// LoginLog is an append-only audit row, one per login attempt regardless of
// outcome. Rows are never updated or deleted.
type LoginLog struct {
	bun.BaseModel `bun:"table:user_login_logs,alias:ull"`
	ID            uuid.UUID   `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Username      string      `bun:"username,notnull" json:"username,omitempty"`
	LoginKey      string      `bun:"login_key" json:"login_key,omitempty"`
	ConnectURL    string      `bun:"connect_url" json:"connect_url,omitempty"`
	Result        LoginResult `bun:"result,notnull" json:"result,omitempty"`
	CreatedAt     *time.Time  `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
}
