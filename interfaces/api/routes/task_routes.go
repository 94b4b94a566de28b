package routes

import (
	"github.com/gofiber/fiber/v2"

	"tasktrack/interfaces/api/handlers"
)

func SetupTaskRoutes(api fiber.Router, h *handlers.Handlers, protected fiber.Handler) {
	tasks := api.Group("/tasks")
	tasks.Use(protected)
	tasks.Get("/:id", h.TaskHandler.GetTask)
	tasks.Put("/:id", h.TaskHandler.UpdateTask)
	tasks.Patch("/:id/column", h.TaskHandler.UpdateColumn)
	tasks.Delete("/:id", h.TaskHandler.DeleteTask)

	tasks.Get("/:id/comments", h.CommentHandler.ListComments)
	tasks.Post("/:id/comments", h.CommentHandler.AddComment)
	tasks.Get("/:id/attachments", h.AttachmentHandler.ListAttachments)
	tasks.Post("/:id/attachments", h.AttachmentHandler.Upload)

	comments := api.Group("/comments")
	comments.Use(protected)
	comments.Delete("/:id", h.CommentHandler.DeleteComment)

	attachments := api.Group("/attachments")
	attachments.Use(protected)
	attachments.Get("/:id/signed-url", h.AttachmentHandler.SignedURL)
	attachments.Delete("/:id", h.AttachmentHandler.DeleteAttachment)
}
