package routes

import (
	"github.com/gofiber/fiber/v2"

	"tasktrack/interfaces/api/handlers"
)

func SetupHealthRoutes(app *fiber.App, h *handlers.Handlers) {
	app.Get("/health", h.HealthHandler.Health)
	app.Get("/api/v1/health", h.HealthHandler.Health)
	app.Get("/", h.HealthHandler.Root)
}
