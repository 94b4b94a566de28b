package routes

import (
	"github.com/gofiber/fiber/v2"

	"tasktrack/interfaces/api/handlers"
	"tasktrack/interfaces/api/middleware"
)

func SetupRoutes(app *fiber.App, h *handlers.Handlers, validator middleware.TokenValidator) {
	SetupHealthRoutes(app, h)

	api := app.Group("/api/v1")
	protected := middleware.Protected(validator)

	SetupAuthRoutes(api, h, protected)
	SetupUserRoutes(api, h, protected)
	SetupBoardRoutes(api, h, protected)
	SetupTaskRoutes(api, h, protected)
	SetupPriorityRoutes(api, h, protected)
}
