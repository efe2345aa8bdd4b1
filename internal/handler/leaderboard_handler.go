package handler

import (
	"github.com/gofiber/fiber/v2"

	"lomba-poster/internal/service/leaderboard"
)

type LeaderboardHandler struct {
	leaderboardService leaderboard.Service
}

func NewLeaderboardHandler(leaderboardService leaderboard.Service) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboardService: leaderboardService}
}

func (h *LeaderboardHandler) Get(c *fiber.Ctx) error {
	entries, err := h.leaderboardService.Get(c.Context(), c.QueryInt("limit", leaderboard.DefaultLimit))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"entries": entries})
}
