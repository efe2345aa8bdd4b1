package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"lomba-poster/internal/domain"
	"lomba-poster/internal/middleware"
	"lomba-poster/internal/service/artwork"
)

type ArtworkHandler struct {
	artworkService artwork.Service
}

func NewArtworkHandler(artworkService artwork.Service) *ArtworkHandler {
	return &ArtworkHandler{artworkService: artworkService}
}

func (h *ArtworkHandler) Submit(c *fiber.Ctx) error {
	var input domain.SubmitArtworkInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	created, err := h.artworkService.Submit(c.Context(), input)
	if err != nil {
		return validationError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *ArtworkHandler) Gallery(c *fiber.Ctx) error {
	result, err := h.artworkService.Gallery(c.Context(), getPaginationParams(c))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *ArtworkHandler) Get(c *fiber.Ctx) error {
	artworkID, err := parseID(c, "artworkId", "artwork")
	if err != nil {
		return err
	}

	a, err := h.artworkService.Get(c.Context(), artworkID)
	if err != nil {
		if errors.Is(err, artwork.ErrArtworkNotFound) {
			return middleware.NotFound("Artwork not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(a)
}
