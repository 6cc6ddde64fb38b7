package routes

import (
	"github.com/RockInMyHead/tendersyte-sub000/handlers"
	"github.com/RockInMyHead/tendersyte-sub000/middleware"
	"github.com/gofiber/fiber/v2"
)

func UserRoutes(app *fiber.App) {
	api := app.Group("/api")

	api.Get("/users", handlers.ListUsers)

	me := api.Group("/users/me", middleware.Protected())
	me.Get("", handlers.GetMe)
	me.Put("", handlers.UpdateMe)

	api.Get("/users/:id", handlers.GetUser)
	api.Get("/users/:id/reviews", handlers.GetUserReviews)
}
