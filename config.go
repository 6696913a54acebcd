package auth

import "time"

// Cfg is the explicit configuration passed into the token service and
// authenticator constructors. Load it once at process start; business logic
// never reads configuration from ambient lookups.
type Cfg struct {
	SigningKey      string        `json:"signing_key" koanf:"signing_key"`
	SigningMethod   string        `json:"signing_method" koanf:"signing_method"`
	AccessTokenTTL  time.Duration `json:"access_token_ttl" koanf:"access_token_ttl"`
	RefreshTokenTTL time.Duration `json:"refresh_token_ttl" koanf:"refresh_token_ttl"`
	Issuer          string        `json:"issuer" koanf:"issuer"`
	Audience        []string      `json:"audience" koanf:"audience"`
}

var _ Config = (*Cfg)(nil)

// NewDefaultConfig applies the stock TTLs: 30 minutes of access, 24 hours
// of refresh.
func NewDefaultConfig(signingKey string) *Cfg {
	return &Cfg{
		SigningKey:      signingKey,
		SigningMethod:   "HS256",
		AccessTokenTTL:  30 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
	}
}

func (c *Cfg) GetSigningKey() string {
	return c.SigningKey
}

func (c *Cfg) GetSigningMethod() string {
	if c.SigningMethod == "" {
		return "HS256"
	}
	return c.SigningMethod
}

func (c *Cfg) GetAccessTokenTTL() time.Duration {
	if c.AccessTokenTTL <= 0 {
		return 30 * time.Minute
	}
	return c.AccessTokenTTL
}

func (c *Cfg) GetRefreshTokenTTL() time.Duration {
	if c.RefreshTokenTTL <= 0 {
		return 24 * time.Hour
	}
	return c.RefreshTokenTTL
}

func (c *Cfg) GetIssuer() string {
	return c.Issuer
}

func (c *Cfg) GetAudience() []string {
	return c.Audience
}
