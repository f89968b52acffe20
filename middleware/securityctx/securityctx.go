// Package securityctx rebuilds the per-request SecurityContext from a
// validated bearer token. It is the only bridge between the wire token and
// the identity the lifecycle operations consume; nothing is held between
// requests.
package securityctx

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/tasklist/go-auth"
)

// DefaultContextKey is the fiber.Ctx locals key the SecurityContext is
// stored under.
const DefaultContextKey = "security_context"

// DefaultAuthScheme is the expected Authorization scheme.
const DefaultAuthScheme = "Bearer"

// TokenValidator validates a raw token and returns its claims. Usually the
// auth.TokenService.
type TokenValidator interface {
	Validate(tokenString string) (*auth.AuthClaims, error)
}

// Config defines the middleware behavior.
type Config struct {
	// Skip defines a function to skip the middleware
	Skip func(c *fiber.Ctx) bool

	// Validator is required.
	Validator TokenValidator

	// Optional marks the token as non-mandatory: requests without one pass
	// through unauthenticated instead of being rejected.
	Optional bool

	// ContextKey overrides DefaultContextKey.
	ContextKey string

	// AuthScheme overrides DefaultAuthScheme.
	AuthScheme string

	// ErrorHandler renders rejections.
	ErrorHandler func(c *fiber.Ctx, err error) error
}

// New creates the middleware. It panics without a Validator; there is no
// sensible fallback for token validation.
func New(config ...Config) fiber.Handler {
	cfg := configDefault(config...)

	return func(c *fiber.Ctx) error {
		if cfg.Skip != nil && cfg.Skip(c) {
			return c.Next()
		}

		raw, ok := extractToken(c, cfg.AuthScheme)
		if !ok {
			if cfg.Optional {
				return c.Next()
			}
			return cfg.ErrorHandler(c, auth.ErrTokenMalformed)
		}

		claims, err := cfg.Validator.Validate(raw)
		if err != nil {
			return cfg.ErrorHandler(c, err)
		}

		sctx := claims.SecurityContext()
		c.Locals(cfg.ContextKey, sctx)
		c.SetUserContext(auth.WithSecurityContext(c.UserContext(), sctx))

		return c.Next()
	}
}

// FromCtx returns the SecurityContext installed by the middleware.
func FromCtx(c *fiber.Ctx) (*auth.SecurityContext, bool) {
	sctx, ok := c.Locals(DefaultContextKey).(*auth.SecurityContext)
	if !ok || sctx == nil {
		return nil, false
	}
	return sctx, true
}

func configDefault(config ...Config) Config {
	var cfg Config
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.Validator == nil {
		panic("securityctx: Validator is required")
	}
	if cfg.ContextKey == "" {
		cfg.ContextKey = DefaultContextKey
	}
	if cfg.AuthScheme == "" {
		cfg.AuthScheme = DefaultAuthScheme
	}
	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = defaultErrorHandler
	}

	return cfg
}

func defaultErrorHandler(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": "invalid or missing token",
	})
}

func extractToken(c *fiber.Ctx, scheme string) (string, bool) {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return "", false
	}

	prefix := scheme + " "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}

	return strings.TrimSpace(header[len(prefix):]), true
}
