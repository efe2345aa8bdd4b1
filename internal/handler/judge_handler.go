package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"lomba-poster/internal/domain"
	"lomba-poster/internal/middleware"
	"lomba-poster/internal/service/judge"
)

type JudgeHandler struct {
	judgeService judge.Service
}

func NewJudgeHandler(judgeService judge.Service) *JudgeHandler {
	return &JudgeHandler{judgeService: judgeService}
}

func (h *JudgeHandler) Score(c *fiber.Ctx) error {
	artworkID, err := parseID(c, "artworkId", "artwork")
	if err != nil {
		return err
	}

	var input domain.ScoreInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	score, err := h.judgeService.Score(c.Context(), middleware.GetPanel(c).Name, artworkID, input)
	if err != nil {
		return judgeError(err)
	}

	return c.Status(fiber.StatusOK).JSON(score)
}

func (h *JudgeHandler) MyScores(c *fiber.Ctx) error {
	scores, err := h.judgeService.MyScores(c.Context(), middleware.GetPanel(c).Name)
	if err != nil {
		return judgeError(err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"scores": scores})
}

func judgeError(err error) error {
	switch {
	case errors.Is(err, judge.ErrArtworkNotFound):
		return middleware.NotFound("Artwork not found")
	case errors.Is(err, judge.ErrArtworkNotOpen):
		return middleware.Conflict("Only approved artworks can be scored")
	case errors.Is(err, judge.ErrMissingJudge):
		return middleware.BadRequest("Judge name is required")
	}
	return validationError(err)
}
