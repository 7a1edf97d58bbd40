package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilm27/skill_swap/handlers"
	"github.com/sahilm27/skill_swap/middleware"
)

func AdminRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	admin := api.Group("/admin", middleware.Protected(), middleware.AdminRequired())
	admin.Get("/stats", handlers.GetPlatformStats)
	admin.Get("/users", handlers.ListUsers)
	admin.Patch("/users/:userId/status", handlers.UpdateUserStatus)
}
