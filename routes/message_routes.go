package routes

import (
	"github.com/RockInMyHead/tendersyte-sub000/handlers"
	"github.com/RockInMyHead/tendersyte-sub000/middleware"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

func MessageRoutes(app *fiber.App) {
	api := app.Group("/api")

	messages := api.Group("/messages", middleware.Protected())
	messages.Get("", handlers.GetMyMessages)
	messages.Post("", handlers.SendMessage)
	messages.Put("/:id/read", handlers.MarkMessageRead)
	messages.Get("/:userId", handlers.GetConversation)

	api.Use("/ws", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		return c.Next()
	})
	api.Get("/ws", websocket.New(handlers.ServeWs))
}
