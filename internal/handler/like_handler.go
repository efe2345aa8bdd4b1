package handler

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"lomba-poster/internal/middleware"
	"lomba-poster/internal/service/like"
)

const VisitorHeader = "X-Visitor-ID"

type LikeHandler struct {
	likeService like.Service
}

func NewLikeHandler(likeService like.Service) *LikeHandler {
	return &LikeHandler{likeService: likeService}
}

func (h *LikeHandler) Like(c *fiber.Ctx) error {
	return h.toggle(c, h.likeService.Like)
}

func (h *LikeHandler) Unlike(c *fiber.Ctx) error {
	return h.toggle(c, h.likeService.Unlike)
}

func (h *LikeHandler) toggle(c *fiber.Ctx, op func(ctx context.Context, visitorID string, artworkID uuid.UUID) (*like.Result, error)) error {
	artworkID, err := parseID(c, "artworkId", "artwork")
	if err != nil {
		return err
	}

	result, err := op(c.Context(), c.Get(VisitorHeader), artworkID)
	if err != nil {
		return likeError(err)
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *LikeHandler) Liked(c *fiber.Ctx) error {
	ids, err := h.likeService.Liked(c.Context(), c.Get(VisitorHeader))
	if err != nil {
		return likeError(err)
	}
	if ids == nil {
		ids = []uuid.UUID{}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"artwork_ids": ids})
}

func likeError(err error) error {
	switch {
	case errors.Is(err, like.ErrMissingVisitor):
		return middleware.BadRequest("Missing or invalid " + VisitorHeader + " header")
	case errors.Is(err, like.ErrArtworkNotFound):
		return middleware.NotFound("Artwork not found")
	}
	return err
}
