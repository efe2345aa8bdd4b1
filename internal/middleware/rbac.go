package middleware

import (
	"github.com/gofiber/fiber/v2"

	"lomba-poster/internal/domain"
)

// RequireRole must run after PanelRequired.
func RequireRole(roles ...domain.PanelRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		panel := GetPanel(c)
		if panel == nil {
			return Unauthorized("Panel login required")
		}

		for _, role := range roles {
			if panel.Role == role {
				return c.Next()
			}
		}
		return Forbidden("Insufficient permissions for this operation")
	}
}
