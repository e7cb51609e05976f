package jwt

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// NewAuthMiddleware returns a Fiber middleware that validates Bearer JWT (HS256).
// On success sets the token subject (user id) into c.Locals("userId").
// Failures are returned as errors and translated at the boundary.
func NewAuthMiddleware(g *Generator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return ErrAuthHeaderMissing
		}
		// Support both "Bearer <token>" and "<token>" (no prefix).
		tokenStr := strings.TrimSpace(authHeader)
		if parts := strings.SplitN(authHeader, " ", 2); len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			tokenStr = strings.TrimSpace(parts[1])
		}
		if tokenStr == "" {
			return ErrTokenInvalid
		}
		subject, err := g.Subject(tokenStr)
		if err != nil {
			return err
		}
		c.Locals("userId", subject)
		return c.Next()
	}
}
