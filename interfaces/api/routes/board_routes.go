package routes

import (
	"github.com/gofiber/fiber/v2"

	"tasktrack/interfaces/api/handlers"
)

func SetupBoardRoutes(api fiber.Router, h *handlers.Handlers, protected fiber.Handler) {
	boards := api.Group("/boards")
	boards.Use(protected)
	boards.Get("/", h.BoardHandler.ListBoards)
	boards.Post("/", h.BoardHandler.CreateBoard)
	boards.Get("/:id", h.BoardHandler.GetBoard)
	boards.Put("/:id", h.BoardHandler.UpdateBoard)
	boards.Delete("/:id", h.BoardHandler.DeleteBoard)
	boards.Get("/:id/kanban", h.BoardHandler.Kanban)

	// Sharing
	boards.Post("/:id/guests", h.BoardHandler.AddGuest)
	boards.Delete("/:id/guests/:userId", h.BoardHandler.RemoveGuest)

	// Board scoped collections
	boards.Get("/:id/categories", h.CategoryHandler.ListCategories)
	boards.Post("/:id/categories", h.CategoryHandler.CreateCategory)
	boards.Get("/:id/tasks", h.TaskHandler.ListTasks)
	boards.Post("/:id/tasks", h.TaskHandler.CreateTask)

	categories := api.Group("/categories")
	categories.Use(protected)
	categories.Put("/:id", h.CategoryHandler.UpdateCategory)
	categories.Delete("/:id", h.CategoryHandler.DeleteCategory)
}
