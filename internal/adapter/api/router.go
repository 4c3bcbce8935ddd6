package api

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func SetupRouter(app *fiber.App, handler *ChatHandler) {
	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "healthy",
			"version": os.Getenv("APP_VERSION"),
			"env":     os.Getenv("ENV"),
		})
	})

	// Chat pipeline + analytics
	app.Post("/chatbot", handler.HandleChat)
	app.Post("/chatbot/analytics", handler.HandleAnalyticsCommand)
	app.Get("/chatbot/analytics", handler.HandleAnalyticsQuery)

	// Generator management
	app.Get("/gemini/status", handler.HandleGeminiStatus)
	app.Post("/gemini/settings", handler.HandleGeminiSettings)
	app.Post("/gemini/compare", handler.HandleGeminiCompare)
}
