package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"lomba-poster/internal/domain"
	"lomba-poster/internal/middleware"
	"lomba-poster/internal/service/artwork"
	"lomba-poster/internal/service/comment"
	"lomba-poster/internal/service/judge"
)

type AdminHandler struct {
	artworkService artwork.Service
	commentService comment.Service
	judgeService   judge.Service
}

func NewAdminHandler(artworkService artwork.Service, commentService comment.Service, judgeService judge.Service) *AdminHandler {
	return &AdminHandler{
		artworkService: artworkService,
		commentService: commentService,
		judgeService:   judgeService,
	}
}

func (h *AdminHandler) ListArtworks(c *fiber.Ctx) error {
	params := getPaginationParams(c)

	var status *domain.ArtworkStatus
	if s := c.Query("status"); s != "" {
		st := domain.ArtworkStatus(s)
		status = &st
	}

	result, err := h.artworkService.List(c.Context(), status, params)
	if err != nil {
		if errors.Is(err, artwork.ErrInvalidStatus) {
			return middleware.BadRequest("Invalid status filter")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *AdminHandler) Review(c *fiber.Ctx) error {
	artworkID, err := parseID(c, "artworkId", "artwork")
	if err != nil {
		return err
	}

	var input domain.ReviewArtworkInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	updated, err := h.artworkService.Review(c.Context(), artworkID, input)
	if err != nil {
		if errors.Is(err, artwork.ErrArtworkNotFound) {
			return middleware.NotFound("Artwork not found")
		}
		return validationError(err)
	}

	return c.Status(fiber.StatusOK).JSON(updated)
}

func (h *AdminHandler) DeleteArtwork(c *fiber.Ctx) error {
	artworkID, err := parseID(c, "artworkId", "artwork")
	if err != nil {
		return err
	}

	if err := h.artworkService.Delete(c.Context(), artworkID); err != nil {
		if errors.Is(err, artwork.ErrArtworkNotFound) {
			return middleware.NotFound("Artwork not found")
		}
		return err
	}

	return c.Status(fiber.StatusNoContent).SendString("")
}

func (h *AdminHandler) Scores(c *fiber.Ctx) error {
	artworkID, err := parseID(c, "artworkId", "artwork")
	if err != nil {
		return err
	}

	scores, err := h.judgeService.ForArtwork(c.Context(), artworkID)
	if err != nil {
		return judgeError(err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"scores": scores})
}

func (h *AdminHandler) DeleteComment(c *fiber.Ctx) error {
	commentID, err := parseID(c, "commentId", "comment")
	if err != nil {
		return err
	}

	if err := h.commentService.Delete(c.Context(), commentID); err != nil {
		return commentError(err)
	}

	return c.Status(fiber.StatusNoContent).SendString("")
}
