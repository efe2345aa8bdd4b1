package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"lomba-poster/internal/domain"
	"lomba-poster/internal/middleware"
	"lomba-poster/internal/service/comment"
)

type CommentHandler struct {
	commentService comment.Service
}

func NewCommentHandler(commentService comment.Service) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// Create answers with the full refreshed artwork so the client can replace
// its snapshot wholesale.
func (h *CommentHandler) Create(c *fiber.Ctx) error {
	artworkID, err := parseID(c, "artworkId", "artwork")
	if err != nil {
		return err
	}

	var input domain.AddCommentInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	updated, err := h.commentService.AddComment(c.Context(), artworkID, input.Payload(), input.ParentID)
	if err != nil {
		return commentError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(domain.AddCommentResult{
		Success:        true,
		UpdatedArtwork: updated,
	})
}

func (h *CommentHandler) Thread(c *fiber.Ctx) error {
	artworkID, err := parseID(c, "artworkId", "artwork")
	if err != nil {
		return err
	}

	forest, err := h.commentService.Thread(c.Context(), artworkID)
	if err != nil {
		return commentError(err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"artwork_id": artworkID,
		"comments":   forest,
	})
}

func commentError(err error) error {
	switch {
	case errors.Is(err, comment.ErrEmptyComment):
		return middleware.BadRequest("Comment must not be empty")
	case errors.Is(err, comment.ErrCommentTooLong):
		return middleware.BadRequest("Comment is too long")
	case errors.Is(err, comment.ErrCommentRejected):
		return middleware.Unprocessable("Comment contains words that are not allowed")
	case errors.Is(err, comment.ErrArtworkNotFound):
		return middleware.NotFound("Artwork not found")
	case errors.Is(err, comment.ErrCommentNotFound):
		return middleware.NotFound("Comment not found")
	}
	return err
}
