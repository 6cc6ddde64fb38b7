package routes

import (
	"github.com/RockInMyHead/tendersyte-sub000/handlers"
	"github.com/RockInMyHead/tendersyte-sub000/middleware"
	"github.com/gofiber/fiber/v2"
)

func ReviewRoutes(app *fiber.App) {
	api := app.Group("/api")

	api.Post("/reviews", middleware.Protected(), handlers.CreateReview)
}
