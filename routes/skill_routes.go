package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilm27/skill_swap/handlers"
	"github.com/sahilm27/skill_swap/middleware"
)

func SkillRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	skills := api.Group("/skills")
	skills.Get("", handlers.ListSkills)
	skills.Get("/:skillId", handlers.GetSkill)

	skills.Post("", middleware.Protected(), handlers.CreateSkill)
	skills.Put("/:skillId", middleware.Protected(), handlers.UpdateSkill)
	skills.Delete("/:skillId", middleware.Protected(), handlers.DeleteSkill)
}
