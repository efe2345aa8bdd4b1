package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"lomba-poster/internal/domain"
	"lomba-poster/internal/middleware"
	"lomba-poster/internal/service/auth"
)

type AuthHandler struct {
	authService auth.Service
}

func NewAuthHandler(authService auth.Service) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input domain.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	token, err := h.authService.Login(c.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			return middleware.Unauthorized("Invalid role or password")
		case errors.Is(err, auth.ErrRoleDisabled):
			return middleware.Forbidden("This panel role is disabled")
		}
		return validationError(err)
	}

	return c.Status(fiber.StatusOK).JSON(token)
}
