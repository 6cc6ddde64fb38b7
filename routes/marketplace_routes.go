package routes

import (
	"github.com/RockInMyHead/tendersyte-sub000/handlers"
	"github.com/RockInMyHead/tendersyte-sub000/middleware"
	"github.com/gofiber/fiber/v2"
)

func MarketplaceRoutes(app *fiber.App) {
	api := app.Group("/api")

	api.Get("/marketplace", handlers.ListListings)
	api.Get("/marketplace/:id", handlers.GetListing)

	marketplace := api.Group("/marketplace", middleware.Protected())
	marketplace.Post("", handlers.CreateListing)
	marketplace.Put("/:id", handlers.UpdateListing)
	marketplace.Delete("/:id", handlers.DeleteListing)
}
