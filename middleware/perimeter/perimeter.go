// Package perimeter enforces the request-boundary policy: encrypted
// transport on every request, no server-held sessions, no built-in
// credential prompts. It runs before any application handler.
package perimeter

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// DefaultCSRFHeaderName is the header checked when CSRF protection is on.
const DefaultCSRFHeaderName = "X-CSRF-Token"

// DefaultSessionCookieName is the legacy session cookie the perimeter
// actively expires on every response.
const DefaultSessionCookieName = "session_id"

// Config defines the perimeter policy.
type Config struct {
	// Skip defines a function to skip the middleware
	Skip func(c *fiber.Ctx) bool

	// AllowInsecureTransport turns off the TLS mandate. Only ever set in
	// tests; plain-transport requests are otherwise rejected before any
	// application logic runs.
	AllowInsecureTransport bool

	// TrustedNonBrowserClient records the topology decision that the calling
	// client is a separate, non-form-based application. When true, CSRF
	// checking is disabled at the perimeter. Re-evaluate this flag if the
	// client ever becomes a browser form.
	TrustedNonBrowserClient bool

	// CSRFHeaderName is the header consulted for state-changing requests
	// when TrustedNonBrowserClient is false.
	CSRFHeaderName string

	// SessionCookieName is the cookie name cleared on every response so no
	// stale server-session identifier survives.
	SessionCookieName string

	// ErrorHandler renders policy rejections.
	ErrorHandler func(c *fiber.Ctx, code int, message string) error
}

// ConfigDefault reflects the production posture: TLS mandated, stateless,
// CSRF delegated to the trusted non-browser client.
var ConfigDefault = Config{
	TrustedNonBrowserClient: true,
	CSRFHeaderName:          DefaultCSRFHeaderName,
	SessionCookieName:       DefaultSessionCookieName,
}

// New creates the perimeter middleware.
func New(config ...Config) fiber.Handler {
	cfg := configDefault(config...)

	return func(c *fiber.Ctx) error {
		if cfg.Skip != nil && cfg.Skip(c) {
			return c.Next()
		}

		if !cfg.AllowInsecureTransport && !c.Secure() {
			return cfg.ErrorHandler(c, fiber.StatusForbidden, "encrypted transport required")
		}

		if !cfg.TrustedNonBrowserClient && isStateChanging(c.Method()) {
			if c.Get(cfg.CSRFHeaderName) == "" {
				return cfg.ErrorHandler(c, fiber.StatusForbidden, "missing CSRF token")
			}
		}

		// statelessness: nothing about the session is stored or cached
		// server-side, and any lingering session cookie is expired
		c.Set(fiber.HeaderCacheControl, "no-store")
		if cfg.SessionCookieName != "" && c.Cookies(cfg.SessionCookieName) != "" {
			c.Cookie(&fiber.Cookie{
				Name:    cfg.SessionCookieName,
				Value:   "",
				Expires: time.Unix(0, 0),
			})
		}

		return c.Next()
	}
}

func configDefault(config ...Config) Config {
	cfg := ConfigDefault
	if len(config) > 0 {
		cfg = config[0]
	}
	if cfg.CSRFHeaderName == "" {
		cfg.CSRFHeaderName = DefaultCSRFHeaderName
	}
	if cfg.SessionCookieName == "" {
		cfg.SessionCookieName = DefaultSessionCookieName
	}
	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = defaultErrorHandler
	}
	return cfg
}

func defaultErrorHandler(c *fiber.Ctx, code int, message string) error {
	// never challenge: no WWW-Authenticate, no login form redirect
	return c.Status(code).JSON(fiber.Map{
		"error": message,
	})
}

func isStateChanging(method string) bool {
	switch method {
	case fiber.MethodGet, fiber.MethodHead, fiber.MethodOptions:
		return false
	default:
		return true
	}
}
