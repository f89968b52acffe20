package auth

// SimpleConfig is a plain-struct Config implementation for callers that do
// not carry their own configuration layer.
type SimpleConfig struct {
	SigningKey      string
	TokenExpiration int
	Issuer          string
	Audience        []string
	DefaultRoleName string
}

var _ Config = &SimpleConfig{}

func (c *SimpleConfig) GetSigningKey() string {
	return c.SigningKey
}

// GetTokenExpiration is the token TTL in hours.
func (c *SimpleConfig) GetTokenExpiration() int {
	if c.TokenExpiration <= 0 {
		return 24
	}
	return c.TokenExpiration
}

func (c *SimpleConfig) GetIssuer() string {
	return c.Issuer
}

func (c *SimpleConfig) GetAudience() []string {
	return c.Audience
}

func (c *SimpleConfig) GetDefaultRoleName() string {
	if c.DefaultRoleName == "" {
		return DefaultRoleName
	}
	return c.DefaultRoleName
}
