package routes

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/sahilm27/skill_swap/handlers"
	"github.com/sahilm27/skill_swap/middleware"
)

func MessagingRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	conversations := api.Group("/conversations", middleware.Protected())
	conversations.Get("", handlers.GetUserConversations)
	conversations.Post("", handlers.StartConversation)
	conversations.Get("/:conversationKey/messages", handlers.GetConversationMessages)
	conversations.Post("/:conversationKey/messages", handlers.SendMessage)
	conversations.Post("/:conversationKey/read", handlers.MarkConversationRead)

	api.Use("/ws", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		return c.Next()
	})
	api.Get("/ws", websocket.New(handlers.ServeWs))
}
