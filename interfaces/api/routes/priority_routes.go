package routes

import (
	"github.com/gofiber/fiber/v2"

	"tasktrack/interfaces/api/handlers"
)

func SetupPriorityRoutes(api fiber.Router, h *handlers.Handlers, protected fiber.Handler) {
	priorities := api.Group("/priorities")
	priorities.Use(protected)
	priorities.Get("/", h.PriorityHandler.ListPriorities)
	priorities.Put("/:id/reminders", h.PriorityHandler.ReplaceReminders)
}
