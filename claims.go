package auth

import (
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccessClaims is the payload of the short-lived access token. The field
// names are part of the wire contract and must not change.
type AccessClaims struct {
	jwt.RegisteredClaims
	UID       int64     `json:"id"`
	Username  string    `json:"username"`
	Nickname  string    `json:"nickname"`
	Email     string    `json:"email"`
	LoginKey  string    `json:"revocationMarker"`
	Authority Authority `json:"authority"`
}

// RefreshClaims is the payload of the long-lived refresh token. It is
// intentionally minimal: it can only re-derive a fresh access token, never
// authorize a request by itself.
type RefreshClaims struct {
	jwt.RegisteredClaims
	UID int64 `json:"id"`
}

// UserID returns the account id
func (c *AccessClaims) UserID() int64 {
	return c.UID
}

// Role returns the single authority claim as carried on the wire
func (c *AccessClaims) Role() Authority {
	return c.Authority
}

// Authorities returns the claim as a normalized role set. The wire shape is
// a single string today; consumers that compare roles should use this so a
// multi-valued authority model can ride on the same checks.
func (c *AccessClaims) Authorities() []string {
	return normalizeRoles(strings.Split(string(c.Authority), ","))
}

// HasAuthority checks the role set for a single role, ignoring case and
// surrounding whitespace
func (c *AccessClaims) HasAuthority(role string) bool {
	want := normalizeRole(role)
	for _, have := range c.Authorities() {
		if have == want {
			return true
		}
	}
	return false
}

// Expires returns the expiration time
func (c *AccessClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// IssuedAt returns the issued at time
func (c *AccessClaims) IssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}

func accessClaimsFromUser(user *User) *AccessClaims {
	return &AccessClaims{
		UID:       user.ID,
		Username:  user.Username,
		Nickname:  user.Nickname,
		Email:     user.Email,
		LoginKey:  user.LoginKey,
		Authority: user.Authority,
	}
}

func subjectFromID(id int64) string {
	return strconv.FormatInt(id, 10)
}
