package auth

import (
	"context"
)

var securityCtxKey = &contextKey{"security_context"}

type contextKey struct {
	name string
}

// SecurityContext is the ephemeral record of the authenticated identity for
// a single request. It is always passed explicitly, never read from process
// wide state, and never persisted between requests.
type SecurityContext struct {
	Username string         `json:"username,omitempty"`
	Roles    []string       `json:"roles,omitempty"`
	Claims   map[string]any `json:"claims,omitempty"`
}

// HasRole reports whether the authenticated identity carries the named role.
func (s *SecurityContext) HasRole(name string) bool {
	if s == nil {
		return false
	}
	for _, r := range s.Roles {
		if r == name {
			return true
		}
	}
	return false
}

// Authenticated reports whether the context identifies someone.
func (s *SecurityContext) Authenticated() bool {
	return s != nil && s.Username != ""
}

// WithSecurityContext sets the SecurityContext in the given context
func WithSecurityContext(ctx context.Context, sctx *SecurityContext) context.Context {
	return context.WithValue(ctx, securityCtxKey, sctx)
}

// SecurityContextFrom finds the SecurityContext in the context.
func SecurityContextFrom(ctx context.Context) (*SecurityContext, bool) {
	raw, ok := ctx.Value(securityCtxKey).(*SecurityContext)
	if !ok || raw == nil {
		return nil, false
	}
	return raw, true
}
