package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"lomba-poster/internal/service/auth"
)

const PanelContextKey = "panel"

// TokenValidator is the part of the auth service the middleware needs.
type TokenValidator interface {
	ValidateToken(token string) (*auth.Claims, error)
}

// PanelRequired rejects requests without a valid panel bearer token and
// stores the token claims in the request locals.
func PanelRequired(validator TokenValidator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return Unauthorized("Missing authorization header")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			return Unauthorized("Invalid authorization header format")
		}

		claims, err := validator.ValidateToken(parts[1])
		if err != nil {
			return Unauthorized("Invalid or expired token")
		}

		c.Locals(PanelContextKey, claims)
		return c.Next()
	}
}

func GetPanel(c *fiber.Ctx) *auth.Claims {
	claims, ok := c.Locals(PanelContextKey).(*auth.Claims)
	if !ok {
		return nil
	}
	return claims
}
