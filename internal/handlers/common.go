package handlers

import (
	"github.com/authorizerdev/authorizer-go"
	"github.com/gofiber/fiber/v2"
)

// sessionUserID extracts the authenticated user id placed in context by the
// auth middleware. Returns "" when the request is unauthenticated (auth
// disabled or public route).
func sessionUserID(c *fiber.Ctx) string {
	user := c.Locals("user")
	if user == nil {
		return ""
	}

	switch u := user.(type) {
	case *authorizer.User:
		return u.ID
	case map[string]interface{}:
		id, _ := u["id"].(string)
		return id
	}
	return ""
}

// requestUserID prefers the session identity over a caller-supplied id so an
// authenticated client cannot submit for someone else.
func requestUserID(c *fiber.Ctx, explicit string) string {
	if id := sessionUserID(c); id != "" {
		return id
	}
	return explicit
}
