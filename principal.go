package auth

// Principal is the authenticated identity bound to a single request. It is
// derived from validated access-token claims after the stored login key
// check passed, lives in the request context only, and is never persisted.
type Principal struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Nickname  string    `json:"nickname"`
	Email     string    `json:"email"`
	LoginKey  string    `json:"-"`
	Authority Authority `json:"authority"`
}

// Authorities returns the principal's normalized role set. The current data
// model carries a single authority; the set shape keeps role checks working
// unchanged if that ever becomes multi-valued.
func (p *Principal) Authorities() []string {
	if p == nil {
		return nil
	}

	claims := AccessClaims{Authority: p.Authority}
	return claims.Authorities()
}

// HasAuthority checks the role set for a single role, ignoring case and
// surrounding whitespace
func (p *Principal) HasAuthority(role string) bool {
	want := normalizeRole(role)
	for _, have := range p.Authorities() {
		if have == want {
			return true
		}
	}
	return false
}

func principalFromClaims(claims *AccessClaims) *Principal {
	if claims == nil {
		return nil
	}

	return &Principal{
		ID:        claims.UID,
		Username:  claims.Username,
		Nickname:  claims.Nickname,
		Email:     claims.Email,
		LoginKey:  claims.LoginKey,
		Authority: claims.Authority,
	}
}
