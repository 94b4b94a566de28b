package routes

import (
	"github.com/gofiber/fiber/v2"

	"tasktrack/interfaces/api/handlers"
)

func SetupAuthRoutes(api fiber.Router, h *handlers.Handlers, protected fiber.Handler) {
	auth := api.Group("/auth")

	// Password auth
	auth.Post("/register", h.AuthHandler.Register)
	auth.Post("/login", h.AuthHandler.Login)
	auth.Post("/refresh", h.AuthHandler.Refresh)

	// OAuth
	auth.Get("/google", h.AuthHandler.GoogleLogin)
	auth.Get("/google/callback", h.AuthHandler.GoogleCallback)
	auth.Get("/github", h.AuthHandler.GitHubLogin)
	auth.Get("/github/callback", h.AuthHandler.GitHubCallback)

	auth.Post("/logout", protected, h.AuthHandler.Logout)
	auth.Get("/me", protected, h.UserHandler.GetProfile)
}
