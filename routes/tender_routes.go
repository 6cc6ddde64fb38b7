package routes

import (
	"github.com/RockInMyHead/tendersyte-sub000/handlers"
	"github.com/RockInMyHead/tendersyte-sub000/middleware"
	"github.com/gofiber/fiber/v2"
)

func TenderRoutes(app *fiber.App) {
	api := app.Group("/api")

	api.Get("/tenders", handlers.ListTenders)

	// Registered before /tenders/:id so "bids" is not taken for a tender id.
	api.Post("/tenders/bids/:id/accept", middleware.Protected(), handlers.AcceptBid)

	api.Get("/tenders/:id", handlers.GetTender)
	api.Get("/tenders/:id/bids", handlers.ListTenderBids)

	tenders := api.Group("/tenders", middleware.Protected())
	tenders.Post("", handlers.CreateTender)
	tenders.Put("/:id", handlers.UpdateTender)
	tenders.Delete("/:id", handlers.DeleteTender)
	tenders.Post("/:id/bids", handlers.CreateBid)
}
