package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/example/teapos/internal/config"
	"github.com/example/teapos/internal/session"
	"github.com/example/teapos/internal/utils"
)

const sessionContextKey = "currentSession"

// AuthMiddleware validates session tokens and loads the live session
// into the request context. Tokens for sessions that have been logged
// out are rejected even if the JWT itself is still valid.
func AuthMiddleware(cfg *config.Config, registry *session.Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing authorization header")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid authorization header")
		}

		sessionID, _, err := utils.ParseToken(cfg.JWTSecret, parts[1])
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		sess, ok := registry.Get(sessionID)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "session expired")
		}

		c.Locals(sessionContextKey, sess)
		return c.Next()
	}
}

// RequireManager restricts a route to manager sessions. Must run after
// AuthMiddleware.
func RequireManager() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, ok := GetCurrentSession(c)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
		}
		if sess.Role != session.RoleManager {
			return fiber.NewError(fiber.StatusForbidden, "manager access required")
		}
		return c.Next()
	}
}

// GetCurrentSession extracts the authenticated session from context.
func GetCurrentSession(c *fiber.Ctx) (*session.Session, bool) {
	value := c.Locals(sessionContextKey)
	if value == nil {
		return nil, false
	}

	if sess, ok := value.(*session.Session); ok {
		return sess, true
	}

	return nil, false
}
