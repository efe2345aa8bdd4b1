package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"

	"lomba-poster/internal/config"
	"lomba-poster/internal/handler"
	"lomba-poster/internal/middleware"
	"lomba-poster/internal/service"
)

// New assembles the fiber app with middleware and every API route.
func New(cfg *config.Config, services *service.Services, log *logrus.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "lomba-poster",
		ErrorHandler: middleware.ErrorHandler,
		BodyLimit:    64 * 1024,
	})

	app.Use(recover.New())
	app.Use(middleware.RequestLogger(log, "/health", "/metrics"))
	app.Use(middleware.Metrics())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, " + handler.VisitorHeader,
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	handler.SetupRoutes(app, handler.NewHandlers(services), services.Auth)
	return app
}
