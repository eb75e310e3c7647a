package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/wortquiz/progression/internal/config"
	"github.com/wortquiz/progression/internal/services"
	"github.com/wortquiz/progression/internal/types"
)

// AuthUser validates that the request has user role authorization. When no
// authorizer is configured the middleware is a pass-through and handlers
// fall back to explicit user ids from the request.
func AuthUser(cfg *config.Config) fiber.Handler {
	if cfg.AuthzURL == "" {
		return func(c *fiber.Ctx) error {
			return c.Next()
		}
	}
	return func(c *fiber.Ctx) error {
		return authorize(c, cfg, []string{"user"}, "progression.authorization.user")
	}
}

// authorize performs the authorization check
func authorize(c *fiber.Ctx, cfg *config.Config, roles []string, errorType string) error {
	// The client is created lazily on the first authenticated request so the
	// redirect URL can be derived from the request itself
	if !services.IsAuthorizerInitialized() {
		if err := services.InitAuthorizer(cfg, c.Protocol(), c.Hostname()); err != nil {
			return types.Forbidden(errorType, "Authorizer unavailable: %v", err)
		}
	}

	// Get session cookie
	session := c.Cookies("cookie_session")
	if session == "" {
		return types.Forbidden(errorType, "Authorizer cookie %q not found", "cookie_session")
	}

	// Validate session
	data, err := services.ValidateSession(session, roles)
	if err != nil {
		return types.Forbidden(errorType, "Invalid session: %v", err)
	}

	// Set user data in context
	if user, ok := data["user"]; ok {
		c.Locals("user", user)
	}

	return c.Next()
}
