package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"lomba-poster/internal/domain"
	"lomba-poster/internal/middleware"
)

func SetupRoutes(app *fiber.App, h *Handlers, validator middleware.TokenValidator) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	v1 := app.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.Post("/login", h.Auth.Login)

	artworks := v1.Group("/artworks")
	artworks.Post("/", h.Artwork.Submit)
	artworks.Get("/", h.Artwork.Gallery)
	artworks.Get("/:artworkId", h.Artwork.Get)
	artworks.Get("/:artworkId/comments", h.Comment.Thread)
	artworks.Post("/:artworkId/comments", h.Comment.Create)
	artworks.Post("/:artworkId/like", h.Like.Like)
	artworks.Delete("/:artworkId/like", h.Like.Unlike)

	v1.Get("/likes", h.Like.Liked)
	v1.Get("/leaderboard", h.Leaderboard.Get)

	panel := v1.Group("", middleware.PanelRequired(validator))

	judge := panel.Group("/judge", middleware.RequireRole(domain.RoleJudge))
	judge.Put("/artworks/:artworkId/score", h.Judge.Score)
	judge.Get("/scores", h.Judge.MyScores)

	admin := panel.Group("/admin", middleware.RequireRole(domain.RoleAdmin))
	admin.Get("/artworks", h.Admin.ListArtworks)
	admin.Patch("/artworks/:artworkId", h.Admin.Review)
	admin.Delete("/artworks/:artworkId", h.Admin.DeleteArtwork)
	admin.Get("/artworks/:artworkId/scores", h.Admin.Scores)
	admin.Delete("/comments/:commentId", h.Admin.DeleteComment)
}
