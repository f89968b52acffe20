package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// AuthClaims is the JWT payload carried between requests. The perimeter
// validates it and rebuilds the SecurityContext from it; nothing about the
// session lives server-side.
type AuthClaims struct {
	jwt.RegisteredClaims
	Username string   `json:"username,omitempty"`
	Roles    []string `json:"roles,omitempty"`
	Email    string   `json:"email,omitempty"`
}

// SecurityContext rebuilds the per-request security context from validated
// claims.
func (c *AuthClaims) SecurityContext() *SecurityContext {
	claims := map[string]any{
		"uid": c.Subject,
	}
	if c.Email != "" {
		claims["email"] = c.Email
	}

	return &SecurityContext{
		Username: c.Username,
		Roles:    c.Roles,
		Claims:   claims,
	}
}

// HasRole reports whether the claims carry the named role.
func (c *AuthClaims) HasRole(name string) bool {
	for _, r := range c.Roles {
		if r == name {
			return true
		}
	}
	return false
}
