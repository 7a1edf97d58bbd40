package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilm27/skill_swap/handlers"
	"github.com/sahilm27/skill_swap/middleware"
)

func ProfileRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	profile := api.Group("/profile/me", middleware.Protected())
	profile.Get("", handlers.GetProfile)
	profile.Put("", handlers.UpdateProfile)

	api.Get("/users/:userId", handlers.GetPublicProfile)
}
